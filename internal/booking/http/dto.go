package http

import (
	"time"

	"github.com/yahorse/boardo/internal/booking"
	petHttp "github.com/yahorse/boardo/internal/pet/http"
	"github.com/yahorse/boardo/internal/pkg/request"
	roomHttp "github.com/yahorse/boardo/internal/room/http"
)

const dateLayout = "2006-01-02"

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	RoomID   string `form:"room_id" binding:"omitempty,uuid"`
	Status   string `form:"status" binding:"omitempty,oneof=pending confirmed cancelled"`
	OwnerID  string `form:"owner_id" binding:"omitempty,uuid"`
	Upcoming bool   `form:"upcoming"`
}

type BookingResponse struct {
	ID        string           `json:"id"`
	OwnerID   string           `json:"owner_id"`
	Room      roomHttp.RoomTag `json:"room"`
	StartDate string           `json:"start_date"`
	EndDate   string           `json:"end_date"`
	Status    string           `json:"status"`
	Pets      []petHttp.PetTag `json:"pets"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	pets := make([]petHttp.PetTag, len(b.Pets))
	for i, p := range b.Pets {
		pets[i] = petHttp.PetTag{ID: p.ID, Name: p.Name}
	}
	return BookingResponse{
		ID:        b.ID,
		OwnerID:   b.OwnerID,
		Room:      roomHttp.RoomTag{ID: b.RoomID, Name: b.RoomName, RoomType: b.RoomType},
		StartDate: b.StartDate.Format(dateLayout),
		EndDate:   b.EndDate.Format(dateLayout),
		Status:    string(b.Status),
		Pets:      pets,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// CreateBookingRequest is the payload for booking a stay. Dates are calendar
// days; the end date is exclusive (checkout morning).
type CreateBookingRequest struct {
	RoomID    string   `json:"room_id" binding:"required,uuid"`
	StartDate string   `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string   `json:"end_date" binding:"required,datetime=2006-01-02"`
	PetIDs    []string `json:"pet_ids" binding:"required,min=1,dive,uuid"`
}

// DateRange parses the request dates.
func (r *CreateBookingRequest) DateRange() (start, end time.Time, err error) {
	start, err = time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return
	}
	end, err = time.Parse(dateLayout, r.EndDate)
	return
}
