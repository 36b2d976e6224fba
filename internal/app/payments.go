package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/adamyatiwari12/staysync/internal/domain"
)

// PaymentService orchestrates the rent payment lifecycle. Transitions run
// through the FSM validator; paid is terminal and paid records cannot be
// deleted.
type PaymentService struct {
	payments  domain.PaymentRepository
	rooms     domain.RoomRepository
	actors    domain.ActorRepository
	validator domain.TransitionValidator
	publisher domain.EventPublisher
}

// NewPaymentService creates a service with the given adapters.
func NewPaymentService(
	payments domain.PaymentRepository,
	rooms domain.RoomRepository,
	actors domain.ActorRepository,
	validator domain.TransitionValidator,
	publisher domain.EventPublisher,
) *PaymentService {
	return &PaymentService{
		payments:  payments,
		rooms:     rooms,
		actors:    actors,
		validator: validator,
		publisher: publisher,
	}
}

// Create issues a pending invoice for a tenant, room, and billing period.
// At most one payment may exist per (tenant, month, year).
func (s *PaymentService) Create(ctx context.Context, sess domain.Session, tenantID, roomID string, amount int64, month, year int) (domain.Payment, error) {
	if month < 1 || month > 12 {
		return domain.Payment{}, &domain.ValidationError{Field: "month", Message: "must be between 1 and 12"}
	}
	if amount <= 0 {
		return domain.Payment{}, &domain.ValidationError{Field: "amount", Message: "must be positive"}
	}

	actor, err := s.actors.GetByID(ctx, sess.StayID, tenantID)
	if err != nil {
		return domain.Payment{}, err
	}
	if actor.Role != domain.RoleTenant {
		return domain.Payment{}, &domain.ValidationError{Field: "tenantId", Message: "actor is not a tenant"}
	}

	if _, err := s.rooms.GetByID(ctx, sess.StayID, roomID); err != nil {
		return domain.Payment{}, err
	}

	exists, err := s.payments.ExistsForPeriod(ctx, tenantID, month, year)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("checking billing period: %w", err)
	}
	if exists {
		return domain.Payment{}, &domain.DuplicatePeriodError{TenantID: tenantID, Month: month, Year: year}
	}

	id, err := generateID()
	if err != nil {
		return domain.Payment{}, fmt.Errorf("generating payment id: %w", err)
	}

	payment := domain.NewPayment(id, sess.StayID, tenantID, roomID, amount, month, year)
	if err := s.payments.Create(ctx, payment); err != nil {
		return domain.Payment{}, err
	}

	if err := s.publisher.Publish(ctx, domain.EventPaymentCreated, paymentPayload(payment)); err != nil {
		return domain.Payment{}, fmt.Errorf("publishing payment event: %w", err)
	}

	return payment, nil
}

// List returns all payments in the stay.
func (s *PaymentService) List(ctx context.Context, sess domain.Session) ([]domain.Payment, error) {
	return s.payments.List(ctx, sess.StayID)
}

// ListMine returns the calling tenant's payments.
func (s *PaymentService) ListMine(ctx context.Context, sess domain.Session) ([]domain.Payment, error) {
	return s.payments.ListByTenant(ctx, sess.StayID, sess.ActorID)
}

// MarkPaid settles a pending payment and stamps paidAt. Settling an
// already paid payment fails with AlreadyPaidError; the original paidAt
// is never overwritten.
func (s *PaymentService) MarkPaid(ctx context.Context, sess domain.Session, id string) (domain.Payment, error) {
	return s.settle(ctx, sess, id, "")
}

// ConfirmExternal applies the gateway-verified settlement for a payment.
// The caller must have verified the provider's signature before calling;
// this records the provider reference alongside the normal pending→paid
// transition. Tenants may only confirm their own payments.
func (s *PaymentService) ConfirmExternal(ctx context.Context, sess domain.Session, id, providerRef string) (domain.Payment, error) {
	if providerRef == "" {
		return domain.Payment{}, &domain.ValidationError{Field: "providerRef", Message: "must not be empty"}
	}
	return s.settle(ctx, sess, id, providerRef)
}

func (s *PaymentService) settle(ctx context.Context, sess domain.Session, id, providerRef string) (domain.Payment, error) {
	payment, err := s.payments.GetByID(ctx, sess.StayID, id)
	if err != nil {
		return domain.Payment{}, err
	}
	if sess.Role == domain.RoleTenant && payment.TenantID != sess.ActorID {
		return domain.Payment{}, domain.ErrPaymentNotFound
	}

	newStatus, err := s.validator.Apply(ctx, payment.Status, domain.EventMarkPaid)
	if err != nil {
		var trErr *domain.TransitionError
		if errors.As(err, &trErr) && trErr.Current == domain.PaymentPaid {
			return domain.Payment{}, &domain.AlreadyPaidError{PaymentID: id}
		}
		return domain.Payment{}, err
	}

	now := time.Now().UTC()
	payment.Status = newStatus
	payment.PaidAt = &now
	payment.ProviderRef = providerRef

	if err := s.payments.Update(ctx, payment); err != nil {
		return domain.Payment{}, fmt.Errorf("updating payment: %w", err)
	}

	if err := s.publisher.Publish(ctx, domain.EventPaymentPaid, paymentPayload(payment)); err != nil {
		return domain.Payment{}, fmt.Errorf("publishing payment event: %w", err)
	}

	return payment, nil
}

// GatewayOrder is the reference handed to the external payment gateway.
type GatewayOrder struct {
	OrderID  string
	Amount   int64
	Currency string
}

// CreateGatewayOrder prepares an external checkout for a pending payment.
// Tenants may only order against their own payments.
func (s *PaymentService) CreateGatewayOrder(ctx context.Context, sess domain.Session, id string) (GatewayOrder, error) {
	payment, err := s.payments.GetByID(ctx, sess.StayID, id)
	if err != nil {
		return GatewayOrder{}, err
	}
	if sess.Role == domain.RoleTenant && payment.TenantID != sess.ActorID {
		return GatewayOrder{}, domain.ErrPaymentNotFound
	}
	if payment.Status == domain.PaymentPaid {
		return GatewayOrder{}, &domain.AlreadyPaidError{PaymentID: id}
	}

	return GatewayOrder{
		OrderID:  uuid.NewString(),
		Amount:   payment.Amount,
		Currency: "INR",
	}, nil
}

// Delete removes a pending payment. Paid payments are immutable history
// and cannot be deleted.
func (s *PaymentService) Delete(ctx context.Context, sess domain.Session, id string) error {
	payment, err := s.payments.GetByID(ctx, sess.StayID, id)
	if err != nil {
		return err
	}
	if payment.Status == domain.PaymentPaid {
		return &domain.CannotDeletePaidError{PaymentID: id}
	}
	return s.payments.Delete(ctx, sess.StayID, id)
}

func paymentPayload(p domain.Payment) domain.EventPayload {
	return domain.EventPayload{
		StayID:   p.StayID,
		EntityID: p.ID,
		TenantID: p.TenantID,
		RoomID:   p.RoomID,
		Detail:   fmt.Sprintf("%d/%d", p.Month, p.Year),
	}
}
