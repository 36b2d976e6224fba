package domain

import (
	"fmt"
	"sort"
)

// FloorGroup is a projection of rooms sharing a floor, used by the
// grouped room listing.
type FloorGroup struct {
	Floor int
	Label string
	Rooms []Room
}

// FloorLabel renders the display label for a floor. Floor 0 is the ground
// floor; higher floors get ordinal labels.
func FloorLabel(floor int) string {
	switch floor {
	case 0:
		return "Ground Floor"
	case 1:
		return "1st Floor"
	case 2:
		return "2nd Floor"
	case 3:
		return "3rd Floor"
	default:
		return fmt.Sprintf("%dth Floor", floor)
	}
}

// GroupByFloor groups rooms by their floor, ordered ascending.
func GroupByFloor(rooms []Room) []FloorGroup {
	byFloor := make(map[int][]Room)
	for _, room := range rooms {
		byFloor[room.Floor] = append(byFloor[room.Floor], room)
	}

	floors := make([]int, 0, len(byFloor))
	for floor := range byFloor {
		floors = append(floors, floor)
	}
	sort.Ints(floors)

	groups := make([]FloorGroup, 0, len(floors))
	for _, floor := range floors {
		groups = append(groups, FloorGroup{
			Floor: floor,
			Label: FloorLabel(floor),
			Rooms: byFloor[floor],
		})
	}
	return groups
}
