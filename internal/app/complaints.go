package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/adamyatiwari12/staysync/internal/domain"
)

// ComplaintService orchestrates the complaint lifecycle. Tenants raise
// complaints against their assigned room; admins move them between open,
// in_progress, and resolved.
type ComplaintService struct {
	complaints domain.ComplaintRepository
	actors     domain.ActorRepository
	validator  domain.TransitionValidator
	publisher  domain.EventPublisher
	categories []string
}

// NewComplaintService creates a service with the given adapters. An empty
// category list falls back to the default set.
func NewComplaintService(
	complaints domain.ComplaintRepository,
	actors domain.ActorRepository,
	validator domain.TransitionValidator,
	publisher domain.EventPublisher,
	categories []string,
) *ComplaintService {
	if len(categories) == 0 {
		categories = domain.DefaultComplaintCategories
	}
	return &ComplaintService{
		complaints: complaints,
		actors:     actors,
		validator:  validator,
		publisher:  publisher,
		categories: categories,
	}
}

// Categories returns the configured category list.
func (s *ComplaintService) Categories() []string {
	return s.categories
}

// Create raises a complaint for the calling tenant's room.
func (s *ComplaintService) Create(ctx context.Context, sess domain.Session, category, description string) (domain.Complaint, error) {
	if strings.TrimSpace(description) == "" {
		return domain.Complaint{}, &domain.ValidationError{Field: "description", Message: "must not be blank"}
	}
	if !s.validCategory(category) {
		return domain.Complaint{}, &domain.ValidationError{
			Field:   "category",
			Message: fmt.Sprintf("must be one of %s", strings.Join(s.categories, ", ")),
		}
	}

	actor, err := s.actors.GetByID(ctx, sess.StayID, sess.ActorID)
	if err != nil {
		return domain.Complaint{}, err
	}
	if !actor.Assigned() {
		return domain.Complaint{}, &domain.TenantNotAssignedError{TenantID: actor.ID}
	}

	id, err := generateID()
	if err != nil {
		return domain.Complaint{}, fmt.Errorf("generating complaint id: %w", err)
	}

	complaint := domain.NewComplaint(id, sess.StayID, actor.ID, *actor.RoomID, category, description)
	if err := s.complaints.Create(ctx, complaint); err != nil {
		return domain.Complaint{}, err
	}

	if err := s.publisher.Publish(ctx, domain.EventComplaintCreated, complaintPayload(complaint)); err != nil {
		return domain.Complaint{}, fmt.Errorf("publishing complaint event: %w", err)
	}

	return complaint, nil
}

// List returns all complaints in the stay.
func (s *ComplaintService) List(ctx context.Context, sess domain.Session) ([]domain.Complaint, error) {
	return s.complaints.List(ctx, sess.StayID)
}

// ListMine returns the calling tenant's complaints.
func (s *ComplaintService) ListMine(ctx context.Context, sess domain.Session) ([]domain.Complaint, error) {
	return s.complaints.ListByTenant(ctx, sess.StayID, sess.ActorID)
}

// SetStatus moves a complaint to the target status. ResolvedAt is
// re-derived on every change: stamped when entering resolved, cleared
// when leaving it.
func (s *ComplaintService) SetStatus(ctx context.Context, sess domain.Session, id string, target domain.Status) (domain.Complaint, error) {
	event, ok := domain.ComplaintEventFor(target)
	if !ok {
		return domain.Complaint{}, &domain.ValidationError{Field: "status", Message: "must be open, in_progress, or resolved"}
	}

	complaint, err := s.complaints.GetByID(ctx, sess.StayID, id)
	if err != nil {
		return domain.Complaint{}, err
	}

	newStatus, err := s.validator.Apply(ctx, complaint.Status, event)
	if err != nil {
		return domain.Complaint{}, err
	}

	complaint.Status = newStatus
	if newStatus == domain.ComplaintResolved {
		now := time.Now().UTC()
		complaint.ResolvedAt = &now
	} else {
		complaint.ResolvedAt = nil
	}

	if err := s.complaints.Update(ctx, complaint); err != nil {
		return domain.Complaint{}, fmt.Errorf("updating complaint: %w", err)
	}

	if err := s.publisher.Publish(ctx, domain.EventComplaintStatusChanged, complaintPayload(complaint)); err != nil {
		return domain.Complaint{}, fmt.Errorf("publishing complaint event: %w", err)
	}

	return complaint, nil
}

func (s *ComplaintService) validCategory(category string) bool {
	for _, c := range s.categories {
		if c == category {
			return true
		}
	}
	return false
}

func complaintPayload(c domain.Complaint) domain.EventPayload {
	return domain.EventPayload{
		StayID:   c.StayID,
		EntityID: c.ID,
		TenantID: c.TenantID,
		RoomID:   c.RoomID,
		Detail:   string(c.Status),
	}
}
