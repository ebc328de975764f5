package booking

import (
	"sort"
	"time"

	"github.com/yahorse/boardo/internal/room"
)

// Overlaps reports whether the half-open date ranges [s1, e1) and [s2, e2)
// intersect. A checkout morning and a check-in on the same day do not conflict.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// AvailableRooms filters the catalog down to rooms that can house
// requiredCapacity pets over [start, end): capacity must suffice and no
// pending or confirmed booking on the room may overlap the range. The result
// is ordered by room type, then name.
//
// This is an advisory read; Repository.Create re-runs the overlap check inside
// the insert transaction, so a stale result can never violate the invariant.
func AvailableRooms(rooms []*room.Room, bookings []*Booking, start, end time.Time, requiredCapacity int) []*room.Room {
	busy := make(map[string]bool)
	for _, b := range bookings {
		if !b.Status.IsActive() {
			continue
		}
		if Overlaps(b.StartDate, b.EndDate, start, end) {
			busy[b.RoomID] = true
		}
	}

	var available []*room.Room
	for _, r := range rooms {
		if r.Capacity < requiredCapacity {
			continue
		}
		if busy[r.ID] {
			continue
		}
		available = append(available, r)
	}

	sort.Slice(available, func(i, j int) bool {
		if available[i].RoomType != available[j].RoomType {
			return available[i].RoomType < available[j].RoomType
		}
		return available[i].Name < available[j].Name
	})

	return available
}
