package domain

// Status is a lifecycle state of a payment or complaint.
type Status string

// Event represents an action. Lifecycle events trigger state transitions;
// notification events are published to the async queue.
type Event string

// Transition defines a valid state change: an event moves a record from
// Src to Dst. Transition tables are domain knowledge consumed by the FSM
// adapter.
type Transition struct {
	Event Event
	Src   Status
	Dst   Status
}

// Notification events published after successful operations.
const (
	EventRoomAssigned           Event = "room.assigned"
	EventRoomRemoved            Event = "room.removed"
	EventPaymentCreated         Event = "payment.created"
	EventPaymentPaid            Event = "payment.paid"
	EventComplaintCreated       Event = "complaint.created"
	EventComplaintStatusChanged Event = "complaint.status_changed"
)

// EventPayload is a snapshot carried with a published event so async
// consumers never need to re-query the source records.
type EventPayload struct {
	StayID   string
	EntityID string
	TenantID string
	RoomID   string
	Detail   string
}
