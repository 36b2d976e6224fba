package domain_test

import (
	"testing"

	"github.com/adamyatiwari12/staysync/internal/domain"
)

func TestFloorLabel(t *testing.T) {
	cases := []struct {
		floor int
		want  string
	}{
		{0, "Ground Floor"},
		{1, "1st Floor"},
		{2, "2nd Floor"},
		{3, "3rd Floor"},
		{4, "4th Floor"},
		{10, "10th Floor"},
	}

	for _, tc := range cases {
		if got := domain.FloorLabel(tc.floor); got != tc.want {
			t.Errorf("FloorLabel(%d) = %q, want %q", tc.floor, got, tc.want)
		}
	}
}

func TestGroupByFloor_SortedAscending(t *testing.T) {
	rooms := []domain.Room{
		{ID: "r3", Floor: 2},
		{ID: "r1", Floor: 0},
		{ID: "r2", Floor: 0},
		{ID: "r4", Floor: 5},
	}

	groups := domain.GroupByFloor(rooms)

	if len(groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(groups))
	}
	if groups[0].Floor != 0 || groups[1].Floor != 2 || groups[2].Floor != 5 {
		t.Errorf("floors = %d,%d,%d, want 0,2,5", groups[0].Floor, groups[1].Floor, groups[2].Floor)
	}
	if len(groups[0].Rooms) != 2 {
		t.Errorf("ground floor has %d rooms, want 2", len(groups[0].Rooms))
	}
	if groups[2].Label != "5th Floor" {
		t.Errorf("label = %q, want %q", groups[2].Label, "5th Floor")
	}
}

func TestRoomAvailable(t *testing.T) {
	room := domain.NewRoom("r1", "stay-1", "101", 1, 2, 5000)
	if !room.Available() {
		t.Error("empty room should be available")
	}

	room.OccupiedCount = 2
	if room.Available() {
		t.Error("full room should not be available")
	}
}
