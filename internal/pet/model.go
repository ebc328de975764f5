package pet

import (
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("pet not found")
	ErrEmptyName = errors.New("pet name cannot be empty")
)

// Pet represents an animal registered by an owner. Bookings reference pets by
// id; the booking core never mutates them.
type Pet struct {
	ID        string
	OwnerID   string
	Name      string
	Breed     *string
	BirthDate *time.Time
	Notes     *string
	CreatedAt time.Time
}
