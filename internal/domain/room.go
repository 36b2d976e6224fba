package domain

import "time"

// TenantRef is a denormalization-free reference to an assigned tenant,
// resolved from the users table on read.
type TenantRef struct {
	ID       string
	Username string
	Email    string
}

// Room tracks capacity against assigned tenants within a stay.
//
// OccupiedCount is a cached count of Tenants maintained only inside the
// same transaction as the membership change; Version backs the optimistic
// concurrency check that keeps two concurrent assignments from both taking
// the last slot.
type Room struct {
	ID            string
	StayID        string
	RoomNumber    string
	Floor         int
	Capacity      int
	OccupiedCount int
	RentAmount    int64
	Version       int
	Tenants       []TenantRef
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewRoom creates an empty room at version 1.
func NewRoom(id, stayID, roomNumber string, floor, capacity int, rentAmount int64) Room {
	now := time.Now().UTC()
	return Room{
		ID:         id,
		StayID:     stayID,
		RoomNumber: roomNumber,
		Floor:      floor,
		Capacity:   capacity,
		RentAmount: rentAmount,
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Available reports whether the room has at least one open slot. This is
// always derived; it is never stored or accepted from a client.
func (r Room) Available() bool {
	return r.OccupiedCount < r.Capacity
}
