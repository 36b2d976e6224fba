package domain

import "time"

// Complaint lifecycle states.
const (
	ComplaintOpen       Status = "open"
	ComplaintInProgress Status = "in_progress"
	ComplaintResolved   Status = "resolved"
)

// Complaint lifecycle events. The admin sets a target status directly, so
// every ordered pair of distinct states is reachable; reopening a resolved
// complaint is allowed.
const (
	EventReopen        Event = "reopen"
	EventStartProgress Event = "start_progress"
	EventResolve       Event = "resolve"
)

// ComplaintTransitions defines all valid complaint state changes. Setting
// the status a complaint already has is not a transition.
var ComplaintTransitions = []Transition{
	{Event: EventReopen, Src: ComplaintInProgress, Dst: ComplaintOpen},
	{Event: EventReopen, Src: ComplaintResolved, Dst: ComplaintOpen},
	{Event: EventStartProgress, Src: ComplaintOpen, Dst: ComplaintInProgress},
	{Event: EventStartProgress, Src: ComplaintResolved, Dst: ComplaintInProgress},
	{Event: EventResolve, Src: ComplaintOpen, Dst: ComplaintResolved},
	{Event: EventResolve, Src: ComplaintInProgress, Dst: ComplaintResolved},
}

// ComplaintEventFor maps a target status to the event that reaches it.
// Returns false for an unknown status.
func ComplaintEventFor(target Status) (Event, bool) {
	switch target {
	case ComplaintOpen:
		return EventReopen, true
	case ComplaintInProgress:
		return EventStartProgress, true
	case ComplaintResolved:
		return EventResolve, true
	default:
		return "", false
	}
}

// Complaint is an issue report raised by a tenant against their room.
// ResolvedAt is non-nil exactly while Status is resolved; every status
// change re-derives it.
type Complaint struct {
	ID          string
	StayID      string
	TenantID    string
	RoomID      string
	Category    string
	Description string
	Status      Status
	CreatedAt   time.Time
	ResolvedAt  *time.Time
}

// NewComplaint creates an open complaint.
func NewComplaint(id, stayID, tenantID, roomID, category, description string) Complaint {
	return Complaint{
		ID:          id,
		StayID:      stayID,
		TenantID:    tenantID,
		RoomID:      roomID,
		Category:    category,
		Description: description,
		Status:      ComplaintOpen,
		CreatedAt:   time.Now().UTC(),
	}
}

// DefaultComplaintCategories is the category list used when none is
// configured.
var DefaultComplaintCategories = []string{
	"Maintenance", "Plumbing", "Electrical", "Internet", "Other",
}
