package domain_test

import (
	"testing"

	"github.com/adamyatiwari12/staysync/internal/domain"
)

func TestRoomFullError_Message(t *testing.T) {
	err := &domain.RoomFullError{RoomNumber: "101", Capacity: 2}
	want := `room "101" is full (capacity 2)`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestTransitionError_Message(t *testing.T) {
	err := &domain.TransitionError{Event: domain.EventMarkPaid, Current: domain.PaymentPaid}
	want := `event "mark_paid" is not valid from state "paid"`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestDuplicatePeriodError_Message(t *testing.T) {
	err := &domain.DuplicatePeriodError{TenantID: "t1", Month: 1, Year: 2026}
	want := `payment for tenant "t1" already exists for 1/2026`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
