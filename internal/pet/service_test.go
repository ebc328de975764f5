package pet

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	seq  int
	pets map[string]*Pet
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{pets: make(map[string]*Pet)}
}

func (f *fakeRepo) Create(ctx context.Context, p *Pet) error {
	f.seq++
	p.ID = fmt.Sprintf("pet-%d", f.seq)
	p.CreatedAt = time.Now().UTC()
	cp := *p
	f.pets[p.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*Pet, error) {
	p, ok := f.pets[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (f *fakeRepo) ListByOwner(ctx context.Context, ownerID string) ([]*Pet, error) {
	var result []*Pet
	for _, p := range f.pets {
		if p.OwnerID == ownerID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (f *fakeRepo) ListByIDs(ctx context.Context, ids []string) ([]*Pet, error) {
	var result []*Pet
	for _, id := range ids {
		if p, ok := f.pets[id]; ok {
			result = append(result, p)
		}
	}
	return result, nil
}

func TestCreatePet(t *testing.T) {
	svc := NewService(newFakeRepo())
	birth := time.Date(2021, 3, 14, 0, 0, 0, 0, time.UTC)

	p, err := svc.Create(context.Background(), CreateRequest{
		OwnerID:   "owner-1",
		Name:      "  Biscuit ",
		Breed:     "Corgi",
		BirthDate: &birth,
		Notes:     "",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Biscuit", p.Name)
	require.NotNil(t, p.Breed)
	assert.Equal(t, "Corgi", *p.Breed)
	assert.Nil(t, p.Notes, "blank notes stay null")
}

func TestCreatePetEmptyName(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), CreateRequest{OwnerID: "owner-1", Name: "   "})
	require.ErrorIs(t, err, ErrEmptyName)
	assert.Empty(t, repo.pets)
}

func TestListByIDs(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	p1, err := svc.Create(ctx, CreateRequest{OwnerID: "owner-1", Name: "Mochi"})
	require.NoError(t, err)
	p2, err := svc.Create(ctx, CreateRequest{OwnerID: "owner-2", Name: "Pepper"})
	require.NoError(t, err)

	pets, err := svc.ListByIDs(ctx, []string{p1.ID, p2.ID, "pet-missing"})
	require.NoError(t, err)
	assert.Len(t, pets, 2, "missing ids are skipped, not errors")

	pets, err = svc.ListByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, pets)
}
