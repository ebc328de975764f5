package http

import (
	"time"

	"github.com/yahorse/boardo/internal/pet"
)

// PetResponse is the shape of pet data returned in API responses.
type PetResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Breed     *string   `json:"breed"`
	BirthDate *string   `json:"birth_date"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// PetTag is a brief representation of a pet.
type PetTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewPetResponse(p *pet.Pet) PetResponse {
	var birthDate *string
	if p.BirthDate != nil {
		d := p.BirthDate.Format("2006-01-02")
		birthDate = &d
	}
	return PetResponse{
		ID:        p.ID,
		OwnerID:   p.OwnerID,
		Name:      p.Name,
		Breed:     p.Breed,
		BirthDate: birthDate,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
	}
}

// CreatePetRequest defines the payload for registering a pet.
type CreatePetRequest struct {
	Name      string `json:"name" binding:"required"`
	Breed     string `json:"breed"`
	BirthDate string `json:"birth_date" binding:"omitempty,datetime=2006-01-02"`
	Notes     string `json:"notes"`
}
