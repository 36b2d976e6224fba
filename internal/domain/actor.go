package domain

import "time"

// Role determines which operations an actor may perform. It is fixed at
// signup; there is no role-change operation.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleTenant Role = "tenant"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleTenant
}

// Actor is a user of the system, scoped to a stay (the tenancy boundary).
// Every query an actor issues is filtered by its StayID. Tenants may hold
// a room assignment; RoomID is nil while unassigned.
type Actor struct {
	ID           string
	StayID       string
	Username     string
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	RoomID       *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewActor creates an actor with no room assignment.
func NewActor(id, stayID, username, email, passwordHash string, role Role) Actor {
	now := time.Now().UTC()
	return Actor{
		ID:           id,
		StayID:       stayID,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Assigned reports whether the actor currently holds a room.
func (a Actor) Assigned() bool {
	return a.RoomID != nil
}
