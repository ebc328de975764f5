package room

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRepo struct {
	seq   int
	rooms []*Room
}

func (f *fakeRepo) Create(ctx context.Context, room *Room) error {
	f.seq++
	room.ID = fmt.Sprintf("room-%d", f.seq)
	cp := *room
	f.rooms = append(f.rooms, &cp)
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*Room, error) {
	for _, r := range f.rooms {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeRepo) List(ctx context.Context) ([]*Room, error) {
	return f.rooms, nil
}

func (f *fakeRepo) Count(ctx context.Context) (int, error) {
	return len(f.rooms), nil
}

func TestCreateRoom(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, zap.NewNop())

	r, err := svc.Create(context.Background(), CreateRequest{
		Name:     "  Suite 2  ",
		RoomType: "Suite",
		Capacity: 3,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "Suite 2", r.Name, "name is trimmed")
	assert.Equal(t, 3, r.Capacity)
}

func TestCreateRoomValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateRequest
		wantErr error
	}{
		{"empty name", CreateRequest{Name: "  ", RoomType: "Standard", Capacity: 1}, ErrEmptyName},
		{"zero capacity", CreateRequest{Name: "Standard 9", RoomType: "Standard", Capacity: 0}, ErrInvalidCapacity},
		{"negative capacity", CreateRequest{Name: "Standard 9", RoomType: "Standard", Capacity: -2}, ErrInvalidCapacity},
		{"unknown room type", CreateRequest{Name: "Penthouse 1", RoomType: "Penthouse", Capacity: 1}, ErrInvalidRoomType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{}
			svc := NewService(repo, zap.NewNop())
			_, err := svc.Create(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, repo.rooms)
		})
	}
}

func TestSeed(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, svc.Seed(ctx))
	assert.Len(t, repo.rooms, 4)

	// Seeding again is a no-op.
	require.NoError(t, svc.Seed(ctx))
	assert.Len(t, repo.rooms, 4)
}

func TestSeedSkipsNonEmptyCatalog(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Name: "Standard 1", RoomType: "Standard", Capacity: 1})
	require.NoError(t, err)

	require.NoError(t, svc.Seed(ctx))
	assert.Len(t, repo.rooms, 1, "an existing catalog is never reseeded")
}
