package domain

import "time"

// Payment lifecycle states.
const (
	PaymentPending Status = "pending"
	PaymentPaid    Status = "paid"
)

// EventMarkPaid settles a pending payment. Paid is terminal: no event
// leads out of it, so a paid payment can never revert.
const EventMarkPaid Event = "mark_paid"

// PaymentTransitions defines all valid payment state changes.
var PaymentTransitions = []Transition{
	{Event: EventMarkPaid, Src: PaymentPending, Dst: PaymentPaid},
}

// Payment is a rent invoice for one tenant, room, and billing period.
// At most one payment exists per (tenant, month, year).
type Payment struct {
	ID          string
	StayID      string
	TenantID    string
	RoomID      string
	Amount      int64
	Month       int
	Year        int
	Status      Status
	PaidAt      *time.Time
	ProviderRef string
	CreatedAt   time.Time
}

// NewPayment creates a pending payment.
func NewPayment(id, stayID, tenantID, roomID string, amount int64, month, year int) Payment {
	return Payment{
		ID:        id,
		StayID:    stayID,
		TenantID:  tenantID,
		RoomID:    roomID,
		Amount:    amount,
		Month:     month,
		Year:      year,
		Status:    PaymentPending,
		CreatedAt: time.Now().UTC(),
	}
}
