package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yahorse/boardo/internal/pet"
	"github.com/yahorse/boardo/internal/room"
	"github.com/yahorse/boardo/internal/user"
)

// fakeRepo is an in-memory Repository. Create serializes the overlap check
// and the insert under one mutex, mirroring the row-lock transaction of the
// pgx implementation.
type fakeRepo struct {
	mu       sync.Mutex
	seq      int
	bookings map[string]*Booking
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bookings: make(map[string]*Booking)}
}

func (f *fakeRepo) Create(ctx context.Context, b *Booking, petIDs []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, other := range f.bookings {
		if other.RoomID == b.RoomID && other.Status.IsActive() &&
			Overlaps(other.StartDate, other.EndDate, b.StartDate, b.EndDate) {
			return ErrRoomConflict
		}
	}

	f.seq++
	b.ID = fmt.Sprintf("booking-%d", f.seq)
	b.CreatedAt = time.Now().UTC()
	b.UpdatedAt = b.CreatedAt
	cp := *b
	f.bookings[b.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeRepo) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*Booking
	for _, b := range f.bookings {
		if filter.OwnerID != "" && b.OwnerID != filter.OwnerID {
			continue
		}
		if filter.RoomID != "" && b.RoomID != filter.RoomID {
			continue
		}
		if filter.Status != "" && string(b.Status) != filter.Status {
			continue
		}
		if filter.Upcoming && b.EndDate.Before(today()) {
			continue
		}
		cp := *b
		result = append(result, &cp)
	}
	return result, len(result), nil
}

func (f *fakeRepo) ListActiveBetween(ctx context.Context, start, end time.Time) ([]*Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*Booking
	for _, b := range f.bookings {
		if b.Status.IsActive() && Overlaps(b.StartDate, b.EndDate, start, end) {
			cp := *b
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, id string, from, to Status) (time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok || b.Status != from {
		return time.Time{}, ErrInvalidTransition
	}
	b.Status = to
	// Push past CreatedAt so a stale copy is detectable.
	b.UpdatedAt = time.Now().UTC().Add(time.Second)
	return b.UpdatedAt, nil
}

func today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

type fakeRoomService struct {
	rooms map[string]*room.Room
}

func (f *fakeRoomService) Create(ctx context.Context, req room.CreateRequest) (*room.Room, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRoomService) GetByID(ctx context.Context, id string) (*room.Room, error) {
	r, ok := f.rooms[id]
	if !ok {
		return nil, room.ErrNotFound
	}
	return r, nil
}

func (f *fakeRoomService) List(ctx context.Context) ([]*room.Room, error) {
	var result []*room.Room
	for _, r := range f.rooms {
		result = append(result, r)
	}
	return result, nil
}

func (f *fakeRoomService) Seed(ctx context.Context) error { return nil }

type fakePetService struct {
	pets map[string]*pet.Pet
}

func (f *fakePetService) Create(ctx context.Context, req pet.CreateRequest) (*pet.Pet, error) {
	return nil, errors.New("not implemented")
}

func (f *fakePetService) GetByID(ctx context.Context, id string) (*pet.Pet, error) {
	p, ok := f.pets[id]
	if !ok {
		return nil, pet.ErrNotFound
	}
	return p, nil
}

func (f *fakePetService) ListByOwner(ctx context.Context, ownerID string) ([]*pet.Pet, error) {
	var result []*pet.Pet
	for _, p := range f.pets {
		if p.OwnerID == ownerID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (f *fakePetService) ListByIDs(ctx context.Context, ids []string) ([]*pet.Pet, error) {
	var result []*pet.Pet
	for _, id := range ids {
		if p, ok := f.pets[id]; ok {
			result = append(result, p)
		}
	}
	return result, nil
}

// newTestService builds a service over two rooms (A: capacity 2, B: capacity 1)
// and three pets owned by owner-1 plus one owned by owner-2.
func newTestService() (*fakeRepo, Service) {
	repo := newFakeRepo()
	rooms := &fakeRoomService{rooms: map[string]*room.Room{
		"room-a": {ID: "room-a", Name: "Standard 2", RoomType: "Standard", Capacity: 2},
		"room-b": {ID: "room-b", Name: "Deluxe 1", RoomType: "Deluxe", Capacity: 1},
	}}
	pets := &fakePetService{pets: map[string]*pet.Pet{
		"pet-1": {ID: "pet-1", OwnerID: "owner-1", Name: "Biscuit"},
		"pet-2": {ID: "pet-2", OwnerID: "owner-1", Name: "Mochi"},
		"pet-3": {ID: "pet-3", OwnerID: "owner-1", Name: "Ziggy"},
		"pet-4": {ID: "pet-4", OwnerID: "owner-2", Name: "Pepper"},
	}}
	return repo, NewService(repo, rooms, pets, zap.NewNop())
}

func createReq(owner, roomID, start, end string, petIDs ...string) CreateRequest {
	return CreateRequest{
		OwnerID:   owner,
		RoomID:    roomID,
		StartDate: mustDay(start),
		EndDate:   mustDay(end),
		PetIDs:    petIDs,
	}
}

func TestCreateBooking(t *testing.T) {
	_, svc := newTestService()
	ctx := context.Background()

	b, err := svc.Create(ctx, createReq("owner-1", "room-a", "2024-06-01", "2024-06-05", "pet-1", "pet-2"))
	require.NoError(t, err)

	assert.NotEmpty(t, b.ID)
	assert.Equal(t, StatusPending, b.Status)
	assert.Equal(t, "room-a", b.RoomID)
	assert.Len(t, b.Pets, 2)

	got, err := svc.GetByID(ctx, b.ID, "owner-1", user.RoleOwner)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
}

func TestCreateBookingValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateRequest
		wantErr error
	}{
		{
			name:    "start equals end",
			req:     createReq("owner-1", "room-a", "2024-06-01", "2024-06-01", "pet-1"),
			wantErr: ErrInvalidDateRange,
		},
		{
			name:    "start after end",
			req:     createReq("owner-1", "room-a", "2024-06-05", "2024-06-01", "pet-1"),
			wantErr: ErrInvalidDateRange,
		},
		{
			name:    "no pets",
			req:     createReq("owner-1", "room-a", "2024-06-01", "2024-06-05"),
			wantErr: ErrNoPets,
		},
		{
			name:    "unknown room",
			req:     createReq("owner-1", "room-x", "2024-06-01", "2024-06-05", "pet-1"),
			wantErr: ErrRoomNotFound,
		},
		{
			name:    "three pets in a capacity-two room",
			req:     createReq("owner-1", "room-a", "2024-06-01", "2024-06-05", "pet-1", "pet-2", "pet-3"),
			wantErr: ErrCapacityExceeded,
		},
		{
			name:    "unknown pet",
			req:     createReq("owner-1", "room-a", "2024-06-01", "2024-06-05", "pet-1", "pet-x"),
			wantErr: ErrPetNotFound,
		},
		{
			name:    "pet owned by someone else",
			req:     createReq("owner-1", "room-a", "2024-06-01", "2024-06-05", "pet-1", "pet-4"),
			wantErr: ErrPetNotOwned,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, svc := newTestService()
			_, err := svc.Create(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, repo.bookings, "no write may happen on a rejected create")
		})
	}
}

func TestCreateBookingConflict(t *testing.T) {
	_, svc := newTestService()
	ctx := context.Background()

	// Room A occupied 2024-06-01 .. 2024-06-05 by two pets.
	_, err := svc.Create(ctx, createReq("owner-1", "room-a", "2024-06-01", "2024-06-05", "pet-1", "pet-2"))
	require.NoError(t, err)

	// The overlapping range must exclude room A from availability.
	rooms, err := svc.FindAvailableRooms(ctx, mustDay("2024-06-04"), mustDay("2024-06-06"), 1)
	require.NoError(t, err)
	for _, r := range rooms {
		assert.NotEqual(t, "room-a", r.ID)
	}

	// A commit against room A anyway fails with a conflict.
	_, err = svc.Create(ctx, createReq("owner-2", "room-a", "2024-06-04", "2024-06-06", "pet-4"))
	require.ErrorIs(t, err, ErrRoomConflict)

	// Same-day turnover is allowed: checkout morning, check-in same day.
	_, err = svc.Create(ctx, createReq("owner-2", "room-a", "2024-06-05", "2024-06-08", "pet-4"))
	require.NoError(t, err)
}

func TestCancelFreesRoom(t *testing.T) {
	_, svc := newTestService()
	ctx := context.Background()

	b, err := svc.Create(ctx, createReq("owner-1", "room-a", "2024-06-01", "2024-06-05", "pet-1", "pet-2"))
	require.NoError(t, err)

	rooms, err := svc.FindAvailableRooms(ctx, mustDay("2024-06-01"), mustDay("2024-06-05"), 2)
	require.NoError(t, err)
	assert.Empty(t, rooms, "room A is the only capacity-2 room and it is taken")

	_, err = svc.Cancel(ctx, b.ID, "owner-1", user.RoleOwner)
	require.NoError(t, err)

	rooms, err = svc.FindAvailableRooms(ctx, mustDay("2024-06-01"), mustDay("2024-06-05"), 2)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "room-a", rooms[0].ID)

	// The freed range can be booked again.
	_, err = svc.Create(ctx, createReq("owner-2", "room-a", "2024-06-01", "2024-06-05", "pet-4"))
	require.NoError(t, err)
}

func TestConfirmBooking(t *testing.T) {
	_, svc := newTestService()
	ctx := context.Background()

	b, err := svc.Create(ctx, createReq("owner-1", "room-b", "2024-07-01", "2024-07-03", "pet-1"))
	require.NoError(t, err)

	// Owners cannot confirm.
	_, err = svc.Confirm(ctx, b.ID, user.RoleOwner)
	require.ErrorIs(t, err, ErrPermissionDenied)

	confirmed, err := svc.Confirm(ctx, b.ID, user.RoleStaff)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, confirmed.Status)

	// The returned booking reflects the stored update timestamp.
	stored, err := svc.GetByID(ctx, b.ID, "owner-1", user.RoleOwner)
	require.NoError(t, err)
	assert.True(t, confirmed.UpdatedAt.Equal(stored.UpdatedAt))
	assert.True(t, confirmed.UpdatedAt.After(confirmed.CreatedAt))

	// Re-confirming an already-confirmed booking errors.
	_, err = svc.Confirm(ctx, b.ID, user.RoleStaff)
	require.ErrorIs(t, err, ErrInvalidTransition)

	// Unknown booking.
	_, err = svc.Confirm(ctx, "booking-999", user.RoleAdmin)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCancelBooking(t *testing.T) {
	_, svc := newTestService()
	ctx := context.Background()

	b, err := svc.Create(ctx, createReq("owner-1", "room-b", "2024-07-01", "2024-07-03", "pet-1"))
	require.NoError(t, err)

	// A different owner cannot cancel.
	_, err = svc.Cancel(ctx, b.ID, "owner-2", user.RoleOwner)
	require.ErrorIs(t, err, ErrPermissionDenied)

	// Staff can cancel a confirmed booking.
	_, err = svc.Confirm(ctx, b.ID, user.RoleStaff)
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, b.ID, "staff-1", user.RoleStaff)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)

	stored, err := svc.GetByID(ctx, b.ID, "owner-1", user.RoleOwner)
	require.NoError(t, err)
	assert.True(t, cancelled.UpdatedAt.Equal(stored.UpdatedAt))

	// Cancelling twice errors and changes nothing.
	_, err = svc.Cancel(ctx, b.ID, "owner-1", user.RoleOwner)
	require.ErrorIs(t, err, ErrInvalidTransition)

	got, err := svc.GetByID(ctx, b.ID, "owner-1", user.RoleOwner)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, got.Status)
	assert.Equal(t, mustDay("2024-07-01"), got.StartDate)
	assert.Equal(t, mustDay("2024-07-03"), got.EndDate)
	assert.Len(t, got.Pets, 1)
}

func TestFindAvailableRoomsValidation(t *testing.T) {
	_, svc := newTestService()
	ctx := context.Background()

	_, err := svc.FindAvailableRooms(ctx, mustDay("2024-06-05"), mustDay("2024-06-01"), 1)
	require.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = svc.FindAvailableRooms(ctx, mustDay("2024-06-01"), mustDay("2024-06-01"), 1)
	require.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = svc.FindAvailableRooms(ctx, mustDay("2024-06-01"), mustDay("2024-06-05"), 0)
	require.ErrorIs(t, err, ErrInvalidCapacity)
}

func TestListScopedToOwner(t *testing.T) {
	_, svc := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, createReq("owner-1", "room-a", "2024-06-01", "2024-06-05", "pet-1"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, createReq("owner-2", "room-b", "2024-06-01", "2024-06-05", "pet-4"))
	require.NoError(t, err)

	// An owner asking for someone else's bookings still only sees their own.
	bookings, total, err := svc.List(ctx, Filter{OwnerID: "owner-2"}, "owner-1", user.RoleOwner)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, bookings, 1)
	assert.Equal(t, "owner-1", bookings[0].OwnerID)

	// Staff sees everything.
	_, total, err = svc.List(ctx, Filter{}, "staff-1", user.RoleStaff)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestListUpcomingFilter(t *testing.T) {
	_, svc := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, createReq("owner-1", "room-a", "2024-06-01", "2024-06-05", "pet-1"))
	require.NoError(t, err)
	future, err := svc.Create(ctx, createReq("owner-1", "room-b", "2030-06-01", "2030-06-05", "pet-2"))
	require.NoError(t, err)

	bookings, total, err := svc.List(ctx, Filter{Upcoming: true}, "owner-1", user.RoleOwner)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, bookings, 1)
	assert.Equal(t, future.ID, bookings[0].ID, "past stays are filtered out")

	_, total, err = svc.List(ctx, Filter{}, "owner-1", user.RoleOwner)
	require.NoError(t, err)
	assert.Equal(t, 2, total, "without the filter both stays are visible")
}

func TestConcurrentCreateSingleWinner(t *testing.T) {
	_, svc := newTestService()
	ctx := context.Background()

	// Room B has capacity 1; both owners race for an overlapping range.
	reqs := []CreateRequest{
		createReq("owner-1", "room-b", "2024-08-01", "2024-08-05", "pet-1"),
		createReq("owner-2", "room-b", "2024-08-03", "2024-08-07", "pet-4"),
	}

	errs := make([]error, len(reqs))
	var wg sync.WaitGroup
	for i, req := range reqs {
		wg.Add(1)
		go func(i int, req CreateRequest) {
			defer wg.Done()
			_, errs[i] = svc.Create(ctx, req)
		}(i, req)
	}
	wg.Wait()

	var successes, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrRoomConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes, "exactly one create must win")
	assert.Equal(t, 1, conflicts, "the loser must see a room conflict")
}

func TestNoOverlapInvariantHolds(t *testing.T) {
	repo, svc := newTestService()
	ctx := context.Background()

	// A mixed sequence of creates, some conflicting, then a cancel.
	var created []string
	steps := []CreateRequest{
		createReq("owner-1", "room-a", "2024-06-01", "2024-06-05", "pet-1"),
		createReq("owner-1", "room-a", "2024-06-03", "2024-06-07", "pet-2"), // conflicts
		createReq("owner-1", "room-a", "2024-06-05", "2024-06-09", "pet-2"), // turnover, fine
		createReq("owner-2", "room-b", "2024-06-01", "2024-06-03", "pet-4"),
		createReq("owner-2", "room-b", "2024-06-02", "2024-06-04", "pet-4"), // conflicts
	}
	for _, req := range steps {
		if b, err := svc.Create(ctx, req); err == nil {
			created = append(created, b.ID)
		}
	}
	require.NotEmpty(t, created)
	if _, err := svc.Cancel(ctx, created[0], "owner-1", user.RoleOwner); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	// The freed range can be reused.
	_, err := svc.Create(ctx, createReq("owner-1", "room-a", "2024-06-01", "2024-06-05", "pet-3"))
	require.NoError(t, err)

	// Pairwise non-overlap of active bookings per room.
	repo.mu.Lock()
	defer repo.mu.Unlock()
	var active []*Booking
	for _, b := range repo.bookings {
		if b.Status.IsActive() {
			active = append(active, b)
		}
	}
	for i := 0; i < len(active); i++ {
		for j := i + 1; j < len(active); j++ {
			a, b := active[i], active[j]
			if a.RoomID != b.RoomID {
				continue
			}
			assert.False(t, Overlaps(a.StartDate, a.EndDate, b.StartDate, b.EndDate),
				"active bookings %s and %s overlap on room %s", a.ID, b.ID, a.RoomID)
		}
	}
}
