package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/adamyatiwari12/staysync/internal/app"
	"github.com/adamyatiwari12/staysync/internal/domain"
)

func adminSession() domain.Session {
	return domain.Session{ActorID: "admin-1", Role: domain.RoleAdmin, StayID: "stay-1"}
}

func seedTenant(actors *mockActors, id string) domain.Actor {
	a := domain.NewActor(id, "stay-1", "user-"+id, id+"@example.com", "hash", domain.RoleTenant)
	actors.actors[a.ID] = a
	return a
}

func TestRoomCreate_DuplicateNumber(t *testing.T) {
	actors := newMockActors()
	svc := app.NewRoomService(newMockRooms(actors), actors, &mockPublisher{})

	if _, err := svc.Create(context.Background(), adminSession(), "101", 1, 2, 5000); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := svc.Create(context.Background(), adminSession(), "101", 2, 3, 6000)
	var confErr *domain.RoomNumberConflictError
	if !errors.As(err, &confErr) {
		t.Fatalf("expected RoomNumberConflictError, got %v", err)
	}
}

func TestRoomCreate_InvalidCapacity(t *testing.T) {
	actors := newMockActors()
	svc := app.NewRoomService(newMockRooms(actors), actors, &mockPublisher{})

	_, err := svc.Create(context.Background(), adminSession(), "101", 1, 0, 5000)
	var valErr *domain.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

// Walks the full scenario: capacity-2 room, assign two tenants, third
// assignment fails RoomFull with no state change.
func TestAssign_FillsRoomThenRejects(t *testing.T) {
	actors := newMockActors()
	rooms := newMockRooms(actors)
	pub := &mockPublisher{}
	svc := app.NewRoomService(rooms, actors, pub)

	room, err := svc.Create(context.Background(), adminSession(), "101", 1, 2, 5000)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	a := seedTenant(actors, "ten-a")
	b := seedTenant(actors, "ten-b")
	c := seedTenant(actors, "ten-c")

	room, err = svc.Assign(context.Background(), adminSession(), room.ID, a.ID)
	if err != nil {
		t.Fatalf("assign A failed: %v", err)
	}
	if room.OccupiedCount != 1 || !room.Available() {
		t.Errorf("after A: occupied=%d available=%v, want 1/true", room.OccupiedCount, room.Available())
	}

	room, err = svc.Assign(context.Background(), adminSession(), room.ID, b.ID)
	if err != nil {
		t.Fatalf("assign B failed: %v", err)
	}
	if room.OccupiedCount != 2 || room.Available() {
		t.Errorf("after B: occupied=%d available=%v, want 2/false", room.OccupiedCount, room.Available())
	}

	_, err = svc.Assign(context.Background(), adminSession(), room.ID, c.ID)
	var fullErr *domain.RoomFullError
	if !errors.As(err, &fullErr) {
		t.Fatalf("expected RoomFullError, got %v", err)
	}

	// No state change from the failed assignment.
	got, _ := rooms.GetByID(context.Background(), "stay-1", room.ID)
	if got.OccupiedCount != 2 || len(got.Tenants) != 2 {
		t.Errorf("failed assign mutated state: occupied=%d tenants=%d", got.OccupiedCount, len(got.Tenants))
	}
	if actors.actors[c.ID].Assigned() {
		t.Error("tenant C should remain unassigned")
	}

	if len(pub.events) != 2 {
		t.Errorf("published %d events, want 2", len(pub.events))
	}
}

func TestAssign_TenantAlreadyAssigned(t *testing.T) {
	actors := newMockActors()
	rooms := newMockRooms(actors)
	svc := app.NewRoomService(rooms, actors, &mockPublisher{})

	r1, _ := svc.Create(context.Background(), adminSession(), "101", 1, 2, 5000)
	r2, _ := svc.Create(context.Background(), adminSession(), "102", 1, 2, 5000)
	a := seedTenant(actors, "ten-a")

	if _, err := svc.Assign(context.Background(), adminSession(), r1.ID, a.ID); err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	_, err := svc.Assign(context.Background(), adminSession(), r2.ID, a.ID)
	var assignedErr *domain.TenantAssignedError
	if !errors.As(err, &assignedErr) {
		t.Fatalf("expected TenantAssignedError, got %v", err)
	}
}

func TestAssign_AdminRejected(t *testing.T) {
	actors := newMockActors()
	rooms := newMockRooms(actors)
	svc := app.NewRoomService(rooms, actors, &mockPublisher{})

	room, _ := svc.Create(context.Background(), adminSession(), "101", 1, 2, 5000)
	admin := domain.NewActor("admin-2", "stay-1", "boss", "boss@example.com", "hash", domain.RoleAdmin)
	actors.actors[admin.ID] = admin

	_, err := svc.Assign(context.Background(), adminSession(), room.ID, admin.ID)
	var valErr *domain.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestRemove_NotAssigned(t *testing.T) {
	actors := newMockActors()
	svc := app.NewRoomService(newMockRooms(actors), actors, &mockPublisher{})

	a := seedTenant(actors, "ten-a")
	_, err := svc.Remove(context.Background(), adminSession(), a.ID)
	var notErr *domain.TenantNotAssignedError
	if !errors.As(err, &notErr) {
		t.Fatalf("expected TenantNotAssignedError, got %v", err)
	}
}

func TestRemove_FreesSlot(t *testing.T) {
	actors := newMockActors()
	rooms := newMockRooms(actors)
	svc := app.NewRoomService(rooms, actors, &mockPublisher{})

	room, _ := svc.Create(context.Background(), adminSession(), "101", 1, 1, 5000)
	a := seedTenant(actors, "ten-a")

	if _, err := svc.Assign(context.Background(), adminSession(), room.ID, a.ID); err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	room, err := svc.Remove(context.Background(), adminSession(), a.ID)
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if room.OccupiedCount != 0 || !room.Available() {
		t.Errorf("after remove: occupied=%d available=%v, want 0/true", room.OccupiedCount, room.Available())
	}
	if actors.actors[a.ID].Assigned() {
		t.Error("tenant should be unassigned after removal")
	}
}

func TestDeleteRoom_Occupied(t *testing.T) {
	actors := newMockActors()
	rooms := newMockRooms(actors)
	svc := app.NewRoomService(rooms, actors, &mockPublisher{})

	room, _ := svc.Create(context.Background(), adminSession(), "101", 1, 2, 5000)
	a := seedTenant(actors, "ten-a")
	if _, err := svc.Assign(context.Background(), adminSession(), room.ID, a.ID); err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	err := svc.Delete(context.Background(), adminSession(), room.ID)
	var occErr *domain.RoomOccupiedError
	if !errors.As(err, &occErr) {
		t.Fatalf("expected RoomOccupiedError, got %v", err)
	}

	if _, err := svc.Remove(context.Background(), adminSession(), a.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := svc.Delete(context.Background(), adminSession(), room.ID); err != nil {
		t.Fatalf("delete after removal failed: %v", err)
	}
}

func TestSummary(t *testing.T) {
	actors := newMockActors()
	rooms := newMockRooms(actors)
	svc := app.NewRoomService(rooms, actors, &mockPublisher{})

	r1, _ := svc.Create(context.Background(), adminSession(), "101", 0, 2, 5000)
	if _, err := svc.Create(context.Background(), adminSession(), "102", 1, 2, 5000); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	a := seedTenant(actors, "ten-a")
	if _, err := svc.Assign(context.Background(), adminSession(), r1.ID, a.ID); err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	summary, err := svc.Summary(context.Background(), adminSession())
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summary.TotalRooms != 2 || summary.TotalCapacity != 4 || summary.OccupiedCount != 1 {
		t.Errorf("summary = %+v, want 2 rooms, capacity 4, occupied 1", summary)
	}
	if summary.OccupancyRate != 25 {
		t.Errorf("OccupancyRate = %d, want 25", summary.OccupancyRate)
	}
	if summary.AvailableRooms != 2 {
		t.Errorf("AvailableRooms = %d, want 2", summary.AvailableRooms)
	}
}

func TestMyRoom(t *testing.T) {
	actors := newMockActors()
	rooms := newMockRooms(actors)
	svc := app.NewRoomService(rooms, actors, &mockPublisher{})

	room, _ := svc.Create(context.Background(), adminSession(), "101", 1, 2, 5000)
	a := seedTenant(actors, "ten-a")
	sess := domain.Session{ActorID: a.ID, Role: domain.RoleTenant, StayID: "stay-1"}

	_, err := svc.MyRoom(context.Background(), sess)
	var notErr *domain.TenantNotAssignedError
	if !errors.As(err, &notErr) {
		t.Fatalf("expected TenantNotAssignedError, got %v", err)
	}

	if _, err := svc.Assign(context.Background(), adminSession(), room.ID, a.ID); err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	mine, err := svc.MyRoom(context.Background(), sess)
	if err != nil {
		t.Fatalf("MyRoom failed: %v", err)
	}
	if mine.ID != room.ID {
		t.Errorf("MyRoom = %q, want %q", mine.ID, room.ID)
	}
}
