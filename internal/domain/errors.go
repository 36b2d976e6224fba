package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for simple conditions without extra context.
var (
	ErrActorNotFound     = errors.New("actor not found")
	ErrRoomNotFound      = errors.New("room not found")
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrComplaintNotFound = errors.New("complaint not found")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")

	// ErrVersionConflict is returned when an optimistic concurrency check
	// fails; the caller should re-fetch and retry the user-facing action.
	ErrVersionConflict = errors.New("room was modified concurrently")
)

// ValidationError is returned for malformed or missing input. Never
// retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ForbiddenError is returned when an authenticated actor's role does not
// permit the operation.
type ForbiddenError struct {
	Role Role
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("role %q is not allowed to perform this operation", e.Role)
}

// EmailConflictError is returned when an email is already registered
// within the stay.
type EmailConflictError struct {
	Email string
}

func (e *EmailConflictError) Error() string {
	return fmt.Sprintf("email %q is already registered", e.Email)
}

// RoomNumberConflictError is returned when a room number is already in
// use within the stay.
type RoomNumberConflictError struct {
	RoomNumber string
}

func (e *RoomNumberConflictError) Error() string {
	return fmt.Sprintf("room number %q is already in use", e.RoomNumber)
}

// RoomFullError is returned when an assignment targets a room with no
// open slots.
type RoomFullError struct {
	RoomNumber string
	Capacity   int
}

func (e *RoomFullError) Error() string {
	return fmt.Sprintf("room %q is full (capacity %d)", e.RoomNumber, e.Capacity)
}

// RoomOccupiedError is returned when deleting a room that still has
// tenants assigned.
type RoomOccupiedError struct {
	RoomNumber    string
	OccupiedCount int
}

func (e *RoomOccupiedError) Error() string {
	return fmt.Sprintf("room %q still has %d tenant(s) assigned", e.RoomNumber, e.OccupiedCount)
}

// TenantAssignedError is returned when assigning a tenant who already
// holds a room.
type TenantAssignedError struct {
	TenantID string
}

func (e *TenantAssignedError) Error() string {
	return fmt.Sprintf("tenant %q is already assigned to a room", e.TenantID)
}

// TenantNotAssignedError is returned when an operation requires a room
// assignment the tenant does not have.
type TenantNotAssignedError struct {
	TenantID string
}

func (e *TenantNotAssignedError) Error() string {
	return fmt.Sprintf("tenant %q is not assigned to a room", e.TenantID)
}

// DuplicatePeriodError is returned when a payment already exists for the
// tenant and billing period.
type DuplicatePeriodError struct {
	TenantID string
	Month    int
	Year     int
}

func (e *DuplicatePeriodError) Error() string {
	return fmt.Sprintf("payment for tenant %q already exists for %d/%d", e.TenantID, e.Month, e.Year)
}

// AlreadyPaidError is returned when settling a payment that is already
// paid. The first settlement wins; repeats are rejected, never silently
// accepted.
type AlreadyPaidError struct {
	PaymentID string
}

func (e *AlreadyPaidError) Error() string {
	return fmt.Sprintf("payment %q is already paid", e.PaymentID)
}

// CannotDeletePaidError is returned when deleting a settled payment.
type CannotDeletePaidError struct {
	PaymentID string
}

func (e *CannotDeletePaidError) Error() string {
	return fmt.Sprintf("payment %q is paid and cannot be deleted", e.PaymentID)
}

// TransitionError is returned when a state transition is not allowed.
type TransitionError struct {
	Event   Event
	Current Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("event %q is not valid from state %q", e.Event, e.Current)
}
