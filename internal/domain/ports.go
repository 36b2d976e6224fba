package domain

import "context"

// ActorRepository defines the persistence contract for actors. All
// lookups are scoped to a stay.
type ActorRepository interface {
	Create(ctx context.Context, actor Actor) error
	GetByID(ctx context.Context, stayID, id string) (Actor, error)
	GetByEmail(ctx context.Context, stayID, email string) (Actor, error)
	ListTenants(ctx context.Context, stayID string) ([]Actor, error)
	CountByStay(ctx context.Context, stayID string) (int, error)
	UpdateProfile(ctx context.Context, actor Actor) error
}

// RoomRepository defines the persistence contract for rooms.
// AssignTenant and RemoveTenant must mutate the room's occupancy and the
// tenant's assignment atomically, re-validating capacity inside the same
// transaction.
type RoomRepository interface {
	Create(ctx context.Context, room Room) error
	GetByID(ctx context.Context, stayID, id string) (Room, error)
	List(ctx context.Context, stayID string) ([]Room, error)
	AssignTenant(ctx context.Context, stayID, roomID, tenantID string) (Room, error)
	RemoveTenant(ctx context.Context, stayID, tenantID string) (Room, error)
	Delete(ctx context.Context, stayID, id string) error
}

// PaymentRepository defines the persistence contract for payments.
type PaymentRepository interface {
	Create(ctx context.Context, payment Payment) error
	GetByID(ctx context.Context, stayID, id string) (Payment, error)
	List(ctx context.Context, stayID string) ([]Payment, error)
	ListByTenant(ctx context.Context, stayID, tenantID string) ([]Payment, error)
	ExistsForPeriod(ctx context.Context, tenantID string, month, year int) (bool, error)
	Update(ctx context.Context, payment Payment) error
	Delete(ctx context.Context, stayID, id string) error
}

// ComplaintRepository defines the persistence contract for complaints.
type ComplaintRepository interface {
	Create(ctx context.Context, complaint Complaint) error
	GetByID(ctx context.Context, stayID, id string) (Complaint, error)
	List(ctx context.Context, stayID string) ([]Complaint, error)
	ListByTenant(ctx context.Context, stayID, tenantID string) ([]Complaint, error)
	Update(ctx context.Context, complaint Complaint) error
}

// TransitionValidator checks whether an event is valid from a state and
// returns the destination state.
type TransitionValidator interface {
	Apply(ctx context.Context, current Status, event Event) (Status, error)
}

// TokenIssuer mints and verifies bearer credentials carrying a session.
type TokenIssuer interface {
	Issue(session Session) (string, error)
	Verify(token string) (Session, error)
}

// EventPublisher defines the contract for emitting domain events.
type EventPublisher interface {
	Publish(ctx context.Context, event Event, payload EventPayload) error
}
