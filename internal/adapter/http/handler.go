package http

import (
	"time"

	"github.com/adamyatiwari12/staysync/internal/domain"
)

const timeFormat = "2006-01-02T15:04:05Z"

// UserResponse is the API representation of a user. The password hash
// never leaves the domain layer.
type UserResponse struct {
	ID        string  `json:"id" doc:"Unique identifier"`
	Username  string  `json:"username" doc:"Display name chosen at signup"`
	Name      string  `json:"name,omitempty" doc:"Full name, when set"`
	Email     string  `json:"email" doc:"Email address"`
	Role      string  `json:"role" doc:"Either admin or tenant" enum:"admin,tenant"`
	StayID    string  `json:"stayId" doc:"Property the account belongs to"`
	RoomID    *string `json:"roomId,omitempty" doc:"Assigned room, if any"`
	CreatedAt string  `json:"created_at" doc:"Creation timestamp (ISO 8601)"`
}

func toUserResponse(a domain.Actor) UserResponse {
	return UserResponse{
		ID:        a.ID,
		Username:  a.Username,
		Name:      a.Name,
		Email:     a.Email,
		Role:      string(a.Role),
		StayID:    a.StayID,
		RoomID:    a.RoomID,
		CreatedAt: a.CreatedAt.Format(timeFormat),
	}
}

// TenantRefResponse is an embedded tenant reference on a room.
type TenantRefResponse struct {
	ID       string `json:"id" doc:"Tenant ID"`
	Username string `json:"username" doc:"Display name"`
	Email    string `json:"email" doc:"Email address"`
}

// RoomResponse is the API representation of a room. Availability is
// derived from occupancy against capacity on every read.
type RoomResponse struct {
	ID            string              `json:"id" doc:"Unique identifier"`
	RoomNumber    string              `json:"roomNumber" doc:"Room number, unique within the stay"`
	Floor         int                 `json:"floor" doc:"Floor number (0 = ground)"`
	FloorLabel    string              `json:"floorLabel" doc:"Human-readable floor name"`
	Capacity      int                 `json:"capacity" doc:"Maximum tenants"`
	OccupiedCount int                 `json:"occupiedCount" doc:"Currently assigned tenants"`
	Available     bool                `json:"available" doc:"Whether at least one slot is open"`
	RentAmount    int64               `json:"rentAmount" doc:"Monthly rent in minor currency units"`
	Tenants       []TenantRefResponse `json:"tenants" doc:"Assigned tenants"`
	CreatedAt     string              `json:"created_at" doc:"Creation timestamp (ISO 8601)"`
}

func toRoomResponse(r domain.Room) RoomResponse {
	tenants := make([]TenantRefResponse, len(r.Tenants))
	for i, t := range r.Tenants {
		tenants[i] = TenantRefResponse{ID: t.ID, Username: t.Username, Email: t.Email}
	}
	return RoomResponse{
		ID:            r.ID,
		RoomNumber:    r.RoomNumber,
		Floor:         r.Floor,
		FloorLabel:    domain.FloorLabel(r.Floor),
		Capacity:      r.Capacity,
		OccupiedCount: r.OccupiedCount,
		Available:     r.Available(),
		RentAmount:    r.RentAmount,
		Tenants:       tenants,
		CreatedAt:     r.CreatedAt.Format(timeFormat),
	}
}

func toRoomResponses(rooms []domain.Room) []RoomResponse {
	resp := make([]RoomResponse, len(rooms))
	for i, r := range rooms {
		resp[i] = toRoomResponse(r)
	}
	return resp
}

// PaymentResponse is the API representation of a payment.
type PaymentResponse struct {
	ID          string `json:"id" doc:"Unique identifier"`
	TenantID    string `json:"tenantId" doc:"Tenant billed"`
	RoomID      string `json:"roomId" doc:"Room billed against"`
	Amount      int64  `json:"amount" doc:"Amount in minor currency units"`
	Month       int    `json:"month" doc:"Billing month (1-12)"`
	Year        int    `json:"year" doc:"Billing year"`
	Status      string `json:"status" doc:"Lifecycle state" enum:"pending,paid"`
	PaidAt      string `json:"paidAt,omitempty" doc:"Settlement timestamp, once paid"`
	ProviderRef string `json:"providerRef,omitempty" doc:"External gateway reference, when settled externally"`
	CreatedAt   string `json:"created_at" doc:"Creation timestamp (ISO 8601)"`
}

func toPaymentResponse(p domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID,
		TenantID:    p.TenantID,
		RoomID:      p.RoomID,
		Amount:      p.Amount,
		Month:       p.Month,
		Year:        p.Year,
		Status:      string(p.Status),
		PaidAt:      formatOptionalTime(p.PaidAt),
		ProviderRef: p.ProviderRef,
		CreatedAt:   p.CreatedAt.Format(timeFormat),
	}
}

func toPaymentResponses(payments []domain.Payment) []PaymentResponse {
	resp := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		resp[i] = toPaymentResponse(p)
	}
	return resp
}

// ComplaintResponse is the API representation of a complaint.
type ComplaintResponse struct {
	ID          string `json:"id" doc:"Unique identifier"`
	TenantID    string `json:"tenantId" doc:"Tenant who raised it"`
	RoomID      string `json:"roomId" doc:"Room it was raised against"`
	Category    string `json:"category" doc:"Complaint category"`
	Description string `json:"description" doc:"Issue description"`
	Status      string `json:"status" doc:"Lifecycle state" enum:"open,in_progress,resolved"`
	ResolvedAt  string `json:"resolvedAt,omitempty" doc:"Resolution timestamp, while resolved"`
	CreatedAt   string `json:"created_at" doc:"Creation timestamp (ISO 8601)"`
}

func toComplaintResponse(c domain.Complaint) ComplaintResponse {
	return ComplaintResponse{
		ID:          c.ID,
		TenantID:    c.TenantID,
		RoomID:      c.RoomID,
		Category:    c.Category,
		Description: c.Description,
		Status:      string(c.Status),
		ResolvedAt:  formatOptionalTime(c.ResolvedAt),
		CreatedAt:   c.CreatedAt.Format(timeFormat),
	}
}

func toComplaintResponses(complaints []domain.Complaint) []ComplaintResponse {
	resp := make([]ComplaintResponse, len(complaints))
	for i, c := range complaints {
		resp[i] = toComplaintResponse(c)
	}
	return resp
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(timeFormat)
}
