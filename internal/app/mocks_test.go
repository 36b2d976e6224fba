package app_test

import (
	"context"
	"strings"

	"github.com/adamyatiwari12/staysync/internal/domain"
)

// --- Mocks shared by the service tests ---

type mockActors struct {
	actors map[string]domain.Actor
}

func newMockActors() *mockActors {
	return &mockActors{actors: make(map[string]domain.Actor)}
}

func (m *mockActors) Create(_ context.Context, a domain.Actor) error {
	m.actors[a.ID] = a
	return nil
}

func (m *mockActors) GetByID(_ context.Context, stayID, id string) (domain.Actor, error) {
	a, ok := m.actors[id]
	if !ok || a.StayID != stayID {
		return domain.Actor{}, domain.ErrActorNotFound
	}
	return a, nil
}

func (m *mockActors) GetByEmail(_ context.Context, stayID, email string) (domain.Actor, error) {
	for _, a := range m.actors {
		if a.StayID == stayID && strings.EqualFold(a.Email, email) {
			return a, nil
		}
	}
	return domain.Actor{}, domain.ErrActorNotFound
}

func (m *mockActors) ListTenants(_ context.Context, stayID string) ([]domain.Actor, error) {
	var out []domain.Actor
	for _, a := range m.actors {
		if a.StayID == stayID && a.Role == domain.RoleTenant {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockActors) CountByStay(_ context.Context, stayID string) (int, error) {
	n := 0
	for _, a := range m.actors {
		if a.StayID == stayID {
			n++
		}
	}
	return n, nil
}

func (m *mockActors) UpdateProfile(_ context.Context, a domain.Actor) error {
	m.actors[a.ID] = a
	return nil
}

type mockRooms struct {
	rooms  map[string]domain.Room
	actors *mockActors
}

func newMockRooms(actors *mockActors) *mockRooms {
	return &mockRooms{rooms: make(map[string]domain.Room), actors: actors}
}

func (m *mockRooms) Create(_ context.Context, r domain.Room) error {
	for _, existing := range m.rooms {
		if existing.StayID == r.StayID && existing.RoomNumber == r.RoomNumber {
			return &domain.RoomNumberConflictError{RoomNumber: r.RoomNumber}
		}
	}
	m.rooms[r.ID] = r
	return nil
}

func (m *mockRooms) GetByID(_ context.Context, stayID, id string) (domain.Room, error) {
	r, ok := m.rooms[id]
	if !ok || r.StayID != stayID {
		return domain.Room{}, domain.ErrRoomNotFound
	}
	return r, nil
}

func (m *mockRooms) List(_ context.Context, stayID string) ([]domain.Room, error) {
	var out []domain.Room
	for _, r := range m.rooms {
		if r.StayID == stayID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRooms) AssignTenant(ctx context.Context, stayID, roomID, tenantID string) (domain.Room, error) {
	room, err := m.GetByID(ctx, stayID, roomID)
	if err != nil {
		return domain.Room{}, err
	}
	actor, err := m.actors.GetByID(ctx, stayID, tenantID)
	if err != nil {
		return domain.Room{}, err
	}
	if actor.Assigned() {
		return domain.Room{}, &domain.TenantAssignedError{TenantID: tenantID}
	}
	if !room.Available() {
		return domain.Room{}, &domain.RoomFullError{RoomNumber: room.RoomNumber, Capacity: room.Capacity}
	}

	room.OccupiedCount++
	room.Version++
	room.Tenants = append(room.Tenants, domain.TenantRef{ID: actor.ID, Username: actor.Username, Email: actor.Email})
	m.rooms[room.ID] = room

	actor.RoomID = &room.ID
	m.actors.actors[actor.ID] = actor

	return room, nil
}

func (m *mockRooms) RemoveTenant(ctx context.Context, stayID, tenantID string) (domain.Room, error) {
	actor, err := m.actors.GetByID(ctx, stayID, tenantID)
	if err != nil {
		return domain.Room{}, err
	}
	if !actor.Assigned() {
		return domain.Room{}, &domain.TenantNotAssignedError{TenantID: tenantID}
	}

	room := m.rooms[*actor.RoomID]
	room.OccupiedCount--
	room.Version++
	kept := room.Tenants[:0]
	for _, ref := range room.Tenants {
		if ref.ID != tenantID {
			kept = append(kept, ref)
		}
	}
	room.Tenants = kept
	m.rooms[room.ID] = room

	actor.RoomID = nil
	m.actors.actors[actor.ID] = actor

	return room, nil
}

func (m *mockRooms) Delete(ctx context.Context, stayID, id string) error {
	room, err := m.GetByID(ctx, stayID, id)
	if err != nil {
		return err
	}
	if room.OccupiedCount > 0 {
		return &domain.RoomOccupiedError{RoomNumber: room.RoomNumber, OccupiedCount: room.OccupiedCount}
	}
	delete(m.rooms, id)
	return nil
}

type mockPayments struct {
	payments map[string]domain.Payment
}

func newMockPayments() *mockPayments {
	return &mockPayments{payments: make(map[string]domain.Payment)}
}

func (m *mockPayments) Create(_ context.Context, p domain.Payment) error {
	m.payments[p.ID] = p
	return nil
}

func (m *mockPayments) GetByID(_ context.Context, stayID, id string) (domain.Payment, error) {
	p, ok := m.payments[id]
	if !ok || p.StayID != stayID {
		return domain.Payment{}, domain.ErrPaymentNotFound
	}
	return p, nil
}

func (m *mockPayments) List(_ context.Context, stayID string) ([]domain.Payment, error) {
	var out []domain.Payment
	for _, p := range m.payments {
		if p.StayID == stayID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPayments) ListByTenant(_ context.Context, stayID, tenantID string) ([]domain.Payment, error) {
	var out []domain.Payment
	for _, p := range m.payments {
		if p.StayID == stayID && p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPayments) ExistsForPeriod(_ context.Context, tenantID string, month, year int) (bool, error) {
	for _, p := range m.payments {
		if p.TenantID == tenantID && p.Month == month && p.Year == year {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockPayments) Update(_ context.Context, p domain.Payment) error {
	m.payments[p.ID] = p
	return nil
}

func (m *mockPayments) Delete(_ context.Context, stayID, id string) error {
	delete(m.payments, id)
	return nil
}

type mockComplaints struct {
	complaints map[string]domain.Complaint
}

func newMockComplaints() *mockComplaints {
	return &mockComplaints{complaints: make(map[string]domain.Complaint)}
}

func (m *mockComplaints) Create(_ context.Context, c domain.Complaint) error {
	m.complaints[c.ID] = c
	return nil
}

func (m *mockComplaints) GetByID(_ context.Context, stayID, id string) (domain.Complaint, error) {
	c, ok := m.complaints[id]
	if !ok || c.StayID != stayID {
		return domain.Complaint{}, domain.ErrComplaintNotFound
	}
	return c, nil
}

func (m *mockComplaints) List(_ context.Context, stayID string) ([]domain.Complaint, error) {
	var out []domain.Complaint
	for _, c := range m.complaints {
		if c.StayID == stayID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockComplaints) ListByTenant(_ context.Context, stayID, tenantID string) ([]domain.Complaint, error) {
	var out []domain.Complaint
	for _, c := range m.complaints {
		if c.StayID == stayID && c.TenantID == tenantID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockComplaints) Update(_ context.Context, c domain.Complaint) error {
	m.complaints[c.ID] = c
	return nil
}

type mockPublisher struct {
	events []publishedEvent
}

type publishedEvent struct {
	event   domain.Event
	payload domain.EventPayload
}

func (m *mockPublisher) Publish(_ context.Context, e domain.Event, p domain.EventPayload) error {
	m.events = append(m.events, publishedEvent{event: e, payload: p})
	return nil
}

// tableValidator applies a transition table directly, standing in for the
// FSM adapter.
type tableValidator struct {
	transitions []domain.Transition
}

func (v *tableValidator) Apply(_ context.Context, current domain.Status, event domain.Event) (domain.Status, error) {
	for _, t := range v.transitions {
		if t.Event == event && t.Src == current {
			return t.Dst, nil
		}
	}
	return "", &domain.TransitionError{Event: event, Current: current}
}

// mockTokens issues predictable tokens for auth tests.
type mockTokens struct {
	sessions map[string]domain.Session
}

func newMockTokens() *mockTokens {
	return &mockTokens{sessions: make(map[string]domain.Session)}
}

func (m *mockTokens) Issue(sess domain.Session) (string, error) {
	tok := "token-" + sess.ActorID
	m.sessions[tok] = sess
	return tok, nil
}

func (m *mockTokens) Verify(raw string) (domain.Session, error) {
	sess, ok := m.sessions[raw]
	if !ok {
		return domain.Session{}, domain.ErrUnauthenticated
	}
	return sess, nil
}
