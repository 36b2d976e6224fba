package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/adamyatiwari12/staysync/internal/domain"
)

const tracerName = "github.com/adamyatiwari12/staysync/internal/adapter/otel"

// TracingRoomRepository wraps a domain.RoomRepository with OpenTelemetry
// tracing. Room assignment is the hot path with the interesting failure
// modes (capacity races, version conflicts), so that is where spans earn
// their keep.
type TracingRoomRepository struct {
	next   domain.RoomRepository
	tracer trace.Tracer
}

// Compile-time check: TracingRoomRepository implements domain.RoomRepository.
var _ domain.RoomRepository = (*TracingRoomRepository)(nil)

// NewTracingRoomRepository creates a tracing decorator around the given repository.
func NewTracingRoomRepository(next domain.RoomRepository) *TracingRoomRepository {
	return &TracingRoomRepository{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
}

func (r *TracingRoomRepository) Create(ctx context.Context, room domain.Room) error {
	ctx, span := r.tracer.Start(ctx, "RoomRepository.Create",
		trace.WithAttributes(
			attribute.String("room.id", room.ID),
			attribute.String("room.number", room.RoomNumber),
			attribute.Int("room.capacity", room.Capacity),
		),
	)
	defer span.End()

	err := r.next.Create(ctx, room)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (r *TracingRoomRepository) GetByID(ctx context.Context, stayID, id string) (domain.Room, error) {
	ctx, span := r.tracer.Start(ctx, "RoomRepository.GetByID",
		trace.WithAttributes(attribute.String("room.id", id)),
	)
	defer span.End()

	room, err := r.next.GetByID(ctx, stayID, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return room, err
}

func (r *TracingRoomRepository) List(ctx context.Context, stayID string) ([]domain.Room, error) {
	ctx, span := r.tracer.Start(ctx, "RoomRepository.List")
	defer span.End()

	rooms, err := r.next.List(ctx, stayID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.Int("result.count", len(rooms)))
	}
	return rooms, err
}

func (r *TracingRoomRepository) AssignTenant(ctx context.Context, stayID, roomID, tenantID string) (domain.Room, error) {
	ctx, span := r.tracer.Start(ctx, "RoomRepository.AssignTenant",
		trace.WithAttributes(
			attribute.String("room.id", roomID),
			attribute.String("tenant.id", tenantID),
		),
	)
	defer span.End()

	room, err := r.next.AssignTenant(ctx, stayID, roomID, tenantID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.Int("room.occupied", room.OccupiedCount))
	}
	return room, err
}

func (r *TracingRoomRepository) RemoveTenant(ctx context.Context, stayID, tenantID string) (domain.Room, error) {
	ctx, span := r.tracer.Start(ctx, "RoomRepository.RemoveTenant",
		trace.WithAttributes(attribute.String("tenant.id", tenantID)),
	)
	defer span.End()

	room, err := r.next.RemoveTenant(ctx, stayID, tenantID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return room, err
}

func (r *TracingRoomRepository) Delete(ctx context.Context, stayID, id string) error {
	ctx, span := r.tracer.Start(ctx, "RoomRepository.Delete",
		trace.WithAttributes(attribute.String("room.id", id)),
	)
	defer span.End()

	err := r.next.Delete(ctx, stayID, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
