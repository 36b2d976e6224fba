package app

import (
	"context"
	"fmt"
	"math"

	"github.com/adamyatiwari12/staysync/internal/domain"
)

// RoomService orchestrates the room occupancy ledger. The repository owns
// the atomic assign/remove transactions; this layer performs the
// referential checks and publishes events.
type RoomService struct {
	rooms     domain.RoomRepository
	actors    domain.ActorRepository
	publisher domain.EventPublisher
}

// NewRoomService creates a service with the given adapters.
func NewRoomService(rooms domain.RoomRepository, actors domain.ActorRepository, publisher domain.EventPublisher) *RoomService {
	return &RoomService{rooms: rooms, actors: actors, publisher: publisher}
}

// Create adds an empty room to the stay. Occupancy always starts at zero;
// callers cannot seed occupiedCount or availability.
func (s *RoomService) Create(ctx context.Context, sess domain.Session, roomNumber string, floor, capacity int, rentAmount int64) (domain.Room, error) {
	if roomNumber == "" {
		return domain.Room{}, &domain.ValidationError{Field: "roomNumber", Message: "must not be empty"}
	}
	if capacity < 1 {
		return domain.Room{}, &domain.ValidationError{Field: "capacity", Message: "must be a positive integer"}
	}
	if floor < 0 {
		return domain.Room{}, &domain.ValidationError{Field: "floor", Message: "must not be negative"}
	}
	if rentAmount < 0 {
		return domain.Room{}, &domain.ValidationError{Field: "rentAmount", Message: "must not be negative"}
	}

	id, err := generateID()
	if err != nil {
		return domain.Room{}, fmt.Errorf("generating room id: %w", err)
	}

	room := domain.NewRoom(id, sess.StayID, roomNumber, floor, capacity, rentAmount)
	if err := s.rooms.Create(ctx, room); err != nil {
		return domain.Room{}, err
	}

	return room, nil
}

// List returns all rooms in the stay with their tenant references.
func (s *RoomService) List(ctx context.Context, sess domain.Session) ([]domain.Room, error) {
	return s.rooms.List(ctx, sess.StayID)
}

// ListAvailable returns rooms that still have an open slot.
func (s *RoomService) ListAvailable(ctx context.Context, sess domain.Session) ([]domain.Room, error) {
	rooms, err := s.rooms.List(ctx, sess.StayID)
	if err != nil {
		return nil, err
	}

	available := make([]domain.Room, 0, len(rooms))
	for _, room := range rooms {
		if room.Available() {
			available = append(available, room)
		}
	}
	return available, nil
}

// FloorGroups returns rooms grouped by floor, ascending, with labels.
func (s *RoomService) FloorGroups(ctx context.Context, sess domain.Session) ([]domain.FloorGroup, error) {
	rooms, err := s.rooms.List(ctx, sess.StayID)
	if err != nil {
		return nil, err
	}
	return domain.GroupByFloor(rooms), nil
}

// OccupancySummary aggregates room stats for the admin dashboard.
type OccupancySummary struct {
	TotalRooms     int
	AvailableRooms int
	OccupiedCount  int
	TotalCapacity  int
	OccupancyRate  int
}

// Summary computes the stay-wide occupancy summary. The rate is a
// percentage of total capacity, rounded to the nearest integer.
func (s *RoomService) Summary(ctx context.Context, sess domain.Session) (OccupancySummary, error) {
	rooms, err := s.rooms.List(ctx, sess.StayID)
	if err != nil {
		return OccupancySummary{}, err
	}

	var summary OccupancySummary
	summary.TotalRooms = len(rooms)
	for _, room := range rooms {
		summary.OccupiedCount += room.OccupiedCount
		summary.TotalCapacity += room.Capacity
		if room.Available() {
			summary.AvailableRooms++
		}
	}
	if summary.TotalCapacity > 0 {
		summary.OccupancyRate = int(math.Round(float64(summary.OccupiedCount) / float64(summary.TotalCapacity) * 100))
	}
	return summary, nil
}

// MyRoom returns the calling tenant's room.
func (s *RoomService) MyRoom(ctx context.Context, sess domain.Session) (domain.Room, error) {
	actor, err := s.actors.GetByID(ctx, sess.StayID, sess.ActorID)
	if err != nil {
		return domain.Room{}, err
	}
	if !actor.Assigned() {
		return domain.Room{}, &domain.TenantNotAssignedError{TenantID: actor.ID}
	}
	return s.rooms.GetByID(ctx, sess.StayID, *actor.RoomID)
}

// Assign places a tenant into a room. Capacity and the tenant's current
// assignment are re-validated inside the repository transaction, so two
// concurrent assignments against the last slot cannot both succeed.
func (s *RoomService) Assign(ctx context.Context, sess domain.Session, roomID, tenantID string) (domain.Room, error) {
	actor, err := s.actors.GetByID(ctx, sess.StayID, tenantID)
	if err != nil {
		return domain.Room{}, err
	}
	if actor.Role != domain.RoleTenant {
		return domain.Room{}, &domain.ValidationError{Field: "tenantId", Message: "actor is not a tenant"}
	}

	room, err := s.rooms.AssignTenant(ctx, sess.StayID, roomID, tenantID)
	if err != nil {
		return domain.Room{}, err
	}

	if err := s.publisher.Publish(ctx, domain.EventRoomAssigned, domain.EventPayload{
		StayID:   sess.StayID,
		EntityID: room.ID,
		TenantID: tenantID,
		RoomID:   room.ID,
		Detail:   room.RoomNumber,
	}); err != nil {
		return domain.Room{}, fmt.Errorf("publishing assignment event: %w", err)
	}

	return room, nil
}

// Remove takes a tenant out of their room.
func (s *RoomService) Remove(ctx context.Context, sess domain.Session, tenantID string) (domain.Room, error) {
	room, err := s.rooms.RemoveTenant(ctx, sess.StayID, tenantID)
	if err != nil {
		return domain.Room{}, err
	}

	if err := s.publisher.Publish(ctx, domain.EventRoomRemoved, domain.EventPayload{
		StayID:   sess.StayID,
		EntityID: room.ID,
		TenantID: tenantID,
		RoomID:   room.ID,
		Detail:   room.RoomNumber,
	}); err != nil {
		return domain.Room{}, fmt.Errorf("publishing removal event: %w", err)
	}

	return room, nil
}

// Delete removes a room. The repository rejects the delete while any
// tenant remains assigned, regardless of what the caller believes.
func (s *RoomService) Delete(ctx context.Context, sess domain.Session, roomID string) error {
	return s.rooms.Delete(ctx, sess.StayID, roomID)
}
