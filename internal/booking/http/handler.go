package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yahorse/boardo/internal/auth"
	"github.com/yahorse/boardo/internal/booking"
	"github.com/yahorse/boardo/internal/pkg/request"
	"github.com/yahorse/boardo/internal/pkg/response"
	"github.com/yahorse/boardo/internal/user"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

// List returns bookings visible to the caller. Owners are forced to their own
// bookings; staff may see everything and filter by owner.
func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	actorID := auth.GetUserID(c)
	actorRole := user.Role(auth.GetUserRole(c))

	filter := booking.Filter{
		OwnerID:  req.OwnerID,
		RoomID:   req.RoomID,
		Status:   req.Status,
		Upcoming: req.Upcoming,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter, actorID, actorRole)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// Create books a stay: the room chosen from a prior availability read is
// re-validated atomically at commit, so a stale choice surfaces as a conflict.
func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	start, end, err := body.DateRange()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected YYYY-MM-DD"})
		return
	}

	ownerID := auth.GetUserID(c)
	if ownerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		OwnerID:   ownerID,
		RoomID:    body.RoomID,
		StartDate: start,
		EndDate:   end,
		PetIDs:    body.PetIDs,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	actorID := auth.GetUserID(c)
	actorRole := user.Role(auth.GetUserRole(c))

	b, err := h.service.GetByID(c.Request.Context(), req.ID, actorID, actorRole)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// Confirm transitions a pending booking to confirmed. The staff requirement is
// enforced again in the service; the route also sits behind RequireStaff.
func (h *Handler) Confirm(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	actorRole := user.Role(auth.GetUserRole(c))

	b, err := h.service.Confirm(c.Request.Context(), req.ID, actorRole)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Cancel(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	actorID := auth.GetUserID(c)
	actorRole := user.Role(auth.GetUserRole(c))

	b, err := h.service.Cancel(c.Request.Context(), req.ID, actorID, actorRole)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}
