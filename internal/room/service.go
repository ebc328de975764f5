package room

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

type CreateRequest struct {
	Name     string
	RoomType string
	Capacity int
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Room, error)
	GetByID(ctx context.Context, id string) (*Room, error)
	List(ctx context.Context) ([]*Room, error)
	// Seed inserts the default room set when the catalog is empty.
	Seed(ctx context.Context) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Room, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if req.Capacity < 1 {
		return nil, ErrInvalidCapacity
	}

	validType := false
	for _, t := range ValidRoomTypes {
		if req.RoomType == t {
			validType = true
			break
		}
	}
	if !validType {
		return nil, ErrInvalidRoomType
	}

	room := &Room{
		Name:     strings.TrimSpace(req.Name),
		RoomType: req.RoomType,
		Capacity: req.Capacity,
	}

	if err := s.repo.Create(ctx, room); err != nil {
		return nil, err
	}

	s.logger.Info("room created",
		zap.String("room_id", room.ID),
		zap.String("room_type", room.RoomType),
		zap.Int("capacity", room.Capacity),
	)
	return room, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Room, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*Room, error) {
	return s.repo.List(ctx)
}

func (s *service) Seed(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []Room{
		{Name: "Standard 1", RoomType: "Standard", Capacity: 1},
		{Name: "Standard 2", RoomType: "Standard", Capacity: 2},
		{Name: "Deluxe 1", RoomType: "Deluxe", Capacity: 1},
		{Name: "Suite 1", RoomType: "Suite", Capacity: 2},
	}
	for i := range defaults {
		if err := s.repo.Create(ctx, &defaults[i]); err != nil {
			return err
		}
	}

	s.logger.Info("seeded default room catalog", zap.Int("rooms", len(defaults)))
	return nil
}
