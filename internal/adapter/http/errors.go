package http

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/adamyatiwari12/staysync/internal/domain"
)

// toHumaError translates domain errors to Huma HTTP errors. All handlers
// funnel errors through here so status mapping lives in one place.
func toHumaError(err error) error {
	switch {
	case errors.Is(err, domain.ErrActorNotFound):
		return huma.Error404NotFound("user not found")
	case errors.Is(err, domain.ErrRoomNotFound):
		return huma.Error404NotFound("room not found")
	case errors.Is(err, domain.ErrPaymentNotFound):
		return huma.Error404NotFound("payment not found")
	case errors.Is(err, domain.ErrComplaintNotFound):
		return huma.Error404NotFound("complaint not found")
	case errors.Is(err, domain.ErrInvalidCredentials):
		return huma.Error401Unauthorized("invalid credentials")
	case errors.Is(err, domain.ErrUnauthenticated):
		return huma.Error401Unauthorized("invalid or expired token")
	case errors.Is(err, domain.ErrVersionConflict):
		return huma.Error409Conflict("room changed concurrently, retry")
	}

	var valErr *domain.ValidationError
	if errors.As(err, &valErr) {
		return huma.Error422UnprocessableEntity(valErr.Error())
	}

	var trErr *domain.TransitionError
	if errors.As(err, &trErr) {
		return huma.Error422UnprocessableEntity(trErr.Error())
	}

	var forbErr *domain.ForbiddenError
	if errors.As(err, &forbErr) {
		return huma.Error403Forbidden(forbErr.Error())
	}

	// A tenant without a room has nothing to fetch or remove.
	var notAssigned *domain.TenantNotAssignedError
	if errors.As(err, &notAssigned) {
		return huma.Error404NotFound(notAssigned.Error())
	}

	if msg, ok := conflictMessage(err); ok {
		return huma.Error409Conflict(msg)
	}

	return huma.Error500InternalServerError("internal server error")
}

func conflictMessage(err error) (string, bool) {
	var emailErr *domain.EmailConflictError
	if errors.As(err, &emailErr) {
		return emailErr.Error(), true
	}
	var numberErr *domain.RoomNumberConflictError
	if errors.As(err, &numberErr) {
		return numberErr.Error(), true
	}
	var fullErr *domain.RoomFullError
	if errors.As(err, &fullErr) {
		return fullErr.Error(), true
	}
	var occErr *domain.RoomOccupiedError
	if errors.As(err, &occErr) {
		return occErr.Error(), true
	}
	var assignedErr *domain.TenantAssignedError
	if errors.As(err, &assignedErr) {
		return assignedErr.Error(), true
	}
	var periodErr *domain.DuplicatePeriodError
	if errors.As(err, &periodErr) {
		return periodErr.Error(), true
	}
	var paidErr *domain.AlreadyPaidError
	if errors.As(err, &paidErr) {
		return paidErr.Error(), true
	}
	var delErr *domain.CannotDeletePaidError
	if errors.As(err, &delErr) {
		return delErr.Error(), true
	}
	return "", false
}
