package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yahorse/boardo/internal/auth"
	"github.com/yahorse/boardo/internal/pet"
	"github.com/yahorse/boardo/internal/pkg/request"
	"github.com/yahorse/boardo/internal/pkg/response"
	"github.com/yahorse/boardo/internal/user"
)

type Handler struct {
	service pet.Service
}

func NewHandler(service pet.Service) *Handler {
	return &Handler{service: service}
}

// Create registers a new pet owned by the authenticated user.
func (h *Handler) Create(c *gin.Context) {
	var body CreatePetRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	ownerID := auth.GetUserID(c)
	if ownerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var birthDate *time.Time
	if body.BirthDate != "" {
		t, err := time.Parse("2006-01-02", body.BirthDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid birth_date"})
			return
		}
		birthDate = &t
	}

	p, err := h.service.Create(c.Request.Context(), pet.CreateRequest{
		OwnerID:   ownerID,
		Name:      body.Name,
		Breed:     body.Breed,
		BirthDate: birthDate,
		Notes:     body.Notes,
	})
	if err != nil {
		if errors.Is(err, pet.ErrEmptyName) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewPetResponse(p))
}

// List returns the authenticated user's pets, ordered by name.
func (h *Handler) List(c *gin.Context) {
	ownerID := auth.GetUserID(c)
	if ownerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	pets, err := h.service.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]PetResponse, len(pets))
	for i, p := range pets {
		items[i] = NewPetResponse(p)
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Get returns a single pet. Access: the pet's owner or staff.
func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		if errors.Is(err, pet.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "pet not found"})
			return
		}
		response.Error(c, err)
		return
	}

	userID := auth.GetUserID(c)
	role := user.Role(auth.GetUserRole(c))
	if p.OwnerID != userID && !role.IsStaff() {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	c.JSON(http.StatusOK, NewPetResponse(p))
}
