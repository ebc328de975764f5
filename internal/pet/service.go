package pet

import (
	"context"
	"strings"
	"time"
)

type CreateRequest struct {
	OwnerID   string
	Name      string
	Breed     string
	BirthDate *time.Time
	Notes     string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Pet, error)
	GetByID(ctx context.Context, id string) (*Pet, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Pet, error)
	ListByIDs(ctx context.Context, ids []string) ([]*Pet, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Pet, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}

	p := &Pet{
		OwnerID:   req.OwnerID,
		Name:      name,
		BirthDate: req.BirthDate,
	}
	if b := strings.TrimSpace(req.Breed); b != "" {
		p.Breed = &b
	}
	if n := strings.TrimSpace(req.Notes); n != "" {
		p.Notes = &n
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Pet, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByOwner(ctx context.Context, ownerID string) ([]*Pet, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *service) ListByIDs(ctx context.Context, ids []string) ([]*Pet, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return s.repo.ListByIDs(ctx, ids)
}
