package room

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("room not found")
	ErrEmptyName       = errors.New("room name cannot be empty")
	ErrInvalidRoomType = errors.New("invalid room type")
	ErrInvalidCapacity = errors.New("room capacity must be at least 1")
)

// ValidRoomTypes are the category labels the kennel offers.
var ValidRoomTypes = []string{"Standard", "Deluxe", "Suite"}

// Room represents a bookable boarding room. Rooms are seeded or created by
// staff and are immutable afterwards; they are never deleted, so bookings can
// always resolve their room.
type Room struct {
	ID        string
	Name      string
	RoomType  string
	Capacity  int // max pets housed simultaneously
	CreatedAt time.Time
}
