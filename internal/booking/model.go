package booking

import (
	"net/http"
	"time"

	"github.com/yahorse/boardo/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "booking not found")
	ErrRoomNotFound      = apperror.New(http.StatusNotFound, "room not found")
	ErrPetNotFound       = apperror.New(http.StatusNotFound, "pet not found")
	ErrRoomConflict      = apperror.New(http.StatusConflict, "room already booked for overlapping dates")
	ErrInvalidDateRange  = apperror.New(http.StatusBadRequest, "start date must be before end date")
	ErrInvalidCapacity   = apperror.New(http.StatusBadRequest, "required capacity must be at least 1")
	ErrCapacityExceeded  = apperror.New(http.StatusBadRequest, "pet count exceeds room capacity")
	ErrNoPets            = apperror.New(http.StatusBadRequest, "booking must include at least one pet")
	ErrPetNotOwned       = apperror.New(http.StatusForbidden, "pet does not belong to the requesting owner")
	ErrInvalidTransition = apperror.New(http.StatusConflict, "invalid booking status transition")
	ErrPermissionDenied  = apperror.New(http.StatusForbidden, "permission denied")
	ErrStoreUnavailable  = apperror.ErrStoreUnavailable
)

// PetRef names a pet attached to a booking.
type PetRef struct {
	ID   string
	Name string
}

// Booking is a stay reservation for a set of pets in one room over a half-open
// date range [StartDate, EndDate). The pet set is fixed at creation; the only
// mutation after creation is a status transition. Bookings are never deleted.
type Booking struct {
	ID         string
	OwnerID    string
	OwnerEmail string
	RoomID     string
	RoomName   string
	RoomType   string
	StartDate  time.Time
	EndDate    time.Time
	Status     Status
	Pets       []PetRef
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Filter defines parameters for listing bookings.
type Filter struct {
	OwnerID  string
	RoomID   string
	Status   string
	Upcoming bool // only bookings whose end date is today or later
	Page     int
	PageSize int
}
