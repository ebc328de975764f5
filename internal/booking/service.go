package booking

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/yahorse/boardo/internal/pet"
	"github.com/yahorse/boardo/internal/room"
	"github.com/yahorse/boardo/internal/user"
)

// CreateRequest carries everything needed to book a stay. OwnerID is the
// authenticated caller; ownership of every pet is verified against it.
type CreateRequest struct {
	OwnerID   string
	RoomID    string
	StartDate time.Time
	EndDate   time.Time
	PetIDs    []string
}

type Service interface {
	// FindAvailableRooms proposes rooms that can house requiredCapacity pets
	// over [start, end). The result is advisory: Create re-validates inside
	// its transaction.
	FindAvailableRooms(ctx context.Context, start, end time.Time, requiredCapacity int) ([]*room.Room, error)

	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id, actorID string, actorRole user.Role) (*Booking, error)
	List(ctx context.Context, filter Filter, actorID string, actorRole user.Role) ([]*Booking, int, error)

	// Confirm moves a pending booking to confirmed. Staff only.
	Confirm(ctx context.Context, id string, actorRole user.Role) (*Booking, error)
	// Cancel moves a pending or confirmed booking to cancelled, immediately
	// freeing the room for the date range. Booking owner or staff.
	Cancel(ctx context.Context, id, actorID string, actorRole user.Role) (*Booking, error)
}

type service struct {
	repo        Repository
	roomService room.Service
	petService  pet.Service
	logger      *zap.Logger
}

func NewService(repo Repository, roomService room.Service, petService pet.Service, logger *zap.Logger) Service {
	return &service{
		repo:        repo,
		roomService: roomService,
		petService:  petService,
		logger:      logger,
	}
}

func (s *service) FindAvailableRooms(ctx context.Context, start, end time.Time, requiredCapacity int) ([]*room.Room, error) {
	if !start.Before(end) {
		return nil, ErrInvalidDateRange
	}
	if requiredCapacity < 1 {
		return nil, ErrInvalidCapacity
	}

	rooms, err := s.roomService.List(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.repo.ListActiveBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	return AvailableRooms(rooms, active, start, end, requiredCapacity), nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	if !req.StartDate.Before(req.EndDate) {
		return nil, ErrInvalidDateRange
	}

	petIDs := dedupe(req.PetIDs)
	if len(petIDs) == 0 {
		return nil, ErrNoPets
	}

	rm, err := s.roomService.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, room.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if len(petIDs) > rm.Capacity {
		return nil, ErrCapacityExceeded
	}

	pets, err := s.petService.ListByIDs(ctx, petIDs)
	if err != nil {
		return nil, err
	}
	if len(pets) != len(petIDs) {
		return nil, ErrPetNotFound
	}
	for _, p := range pets {
		if p.OwnerID != req.OwnerID {
			return nil, ErrPetNotOwned
		}
	}

	b := &Booking{
		OwnerID:   req.OwnerID,
		RoomID:    req.RoomID,
		RoomName:  rm.Name,
		RoomType:  rm.RoomType,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    StatusPending,
	}
	for _, p := range pets {
		b.Pets = append(b.Pets, PetRef{ID: p.ID, Name: p.Name})
	}

	// The repository re-runs the overlap check inside the insert transaction;
	// the advisory FindAvailableRooms result is never trusted here.
	if err := s.repo.Create(ctx, b, petIDs); err != nil {
		return nil, err
	}

	s.logger.Info("booking created",
		zap.String("booking_id", b.ID),
		zap.String("room_id", b.RoomID),
		zap.String("owner_id", b.OwnerID),
		zap.Int("pets", len(b.Pets)),
	)
	return b, nil
}

func (s *service) GetByID(ctx context.Context, id, actorID string, actorRole user.Role) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.OwnerID != actorID && !actorRole.IsStaff() {
		return nil, ErrPermissionDenied
	}
	return b, nil
}

func (s *service) List(ctx context.Context, filter Filter, actorID string, actorRole user.Role) ([]*Booking, int, error) {
	// Owners only ever see their own bookings; staff may filter freely.
	if !actorRole.IsStaff() {
		filter.OwnerID = actorID
	}
	return s.repo.List(ctx, filter)
}

func (s *service) Confirm(ctx context.Context, id string, actorRole user.Role) (*Booking, error) {
	if !actorRole.IsStaff() {
		return nil, ErrPermissionDenied
	}
	return s.transition(ctx, id, StatusConfirmed)
}

func (s *service) Cancel(ctx context.Context, id, actorID string, actorRole user.Role) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.OwnerID != actorID && !actorRole.IsStaff() {
		return nil, ErrPermissionDenied
	}
	return s.applyTransition(ctx, b, StatusCancelled)
}

func (s *service) transition(ctx context.Context, id string, target Status) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.applyTransition(ctx, b, target)
}

func (s *service) applyTransition(ctx context.Context, b *Booking, target Status) (*Booking, error) {
	if !b.Status.CanTransitionTo(target) {
		return nil, ErrInvalidTransition
	}
	updatedAt, err := s.repo.UpdateStatus(ctx, b.ID, b.Status, target)
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking status changed",
		zap.String("booking_id", b.ID),
		zap.String("from", b.Status.String()),
		zap.String("to", target.String()),
	)

	b.Status = target
	b.UpdatedAt = updatedAt
	return b, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	var out []string
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
