package http

import (
	"time"

	"github.com/yahorse/boardo/internal/room"
)

// RoomResponse is the shape of room data returned in API responses.
type RoomResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	RoomType  string    `json:"room_type"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
}

// RoomTag is a brief representation of a room.
type RoomTag struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	RoomType string `json:"room_type"`
}

func NewRoomResponse(r *room.Room) RoomResponse {
	return RoomResponse{
		ID:        r.ID,
		Name:      r.Name,
		RoomType:  r.RoomType,
		Capacity:  r.Capacity,
		CreatedAt: r.CreatedAt,
	}
}

// CreateRoomRequest defines the payload for adding a room to the catalog.
type CreateRoomRequest struct {
	Name     string `json:"name" binding:"required"`
	RoomType string `json:"room_type" binding:"required,oneof=Standard Deluxe Suite"`
	Capacity int    `json:"capacity" binding:"required,min=1"`
}

// AvailabilityRequest defines query parameters for the availability read.
// Dates are calendar days; the end date is the (exclusive) checkout day.
type AvailabilityRequest struct {
	StartDate string `form:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"required,datetime=2006-01-02"`
	Pets      int    `form:"pets,default=1" binding:"omitempty,min=1"`
}
