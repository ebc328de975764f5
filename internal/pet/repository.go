package pet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yahorse/boardo/internal/pkg/apperror"
)

type Repository interface {
	Create(ctx context.Context, p *Pet) error
	GetByID(ctx context.Context, id string) (*Pet, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Pet, error)
	ListByIDs(ctx context.Context, ids []string) ([]*Pet, error)
}

type pgxRepository struct {
	pool         *pgxpool.Pool
	queryTimeout time.Duration
}

func NewPgxRepository(pool *pgxpool.Pool, queryTimeout time.Duration) Repository {
	return &pgxRepository{
		pool:         pool,
		queryTimeout: queryTimeout,
	}
}

func (r *pgxRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}

// storeErr maps timeouts and connection failures to the retryable
// store-unavailable error.
func storeErr(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return fmt.Errorf("%s: %w", op, apperror.ErrStoreUnavailable)
	}
	return fmt.Errorf("%s failed: %w", op, err)
}

func (r *pgxRepository) Create(ctx context.Context, p *Pet) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	const query = `
		INSERT INTO public.pets (owner_id, name, breed, birth_date, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query, p.OwnerID, p.Name, p.Breed, p.BirthDate, p.Notes).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return storeErr("create pet", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Pet, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	const query = `
		SELECT id, owner_id, name, breed, birth_date, notes, created_at
		FROM public.pets
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)

	var p Pet
	if err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Breed, &p.BirthDate, &p.Notes, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, storeErr("get pet", err)
	}
	return &p, nil
}

func (r *pgxRepository) ListByOwner(ctx context.Context, ownerID string) ([]*Pet, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	const query = `
		SELECT id, owner_id, name, breed, birth_date, notes, created_at
		FROM public.pets
		WHERE owner_id = $1
		ORDER BY name ASC
	`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, storeErr("list pets", err)
	}
	defer rows.Close()

	return scanPets(rows)
}

func (r *pgxRepository) ListByIDs(ctx context.Context, ids []string) ([]*Pet, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	const query = `
		SELECT id, owner_id, name, breed, birth_date, notes, created_at
		FROM public.pets
		WHERE id = ANY($1)
		ORDER BY name ASC
	`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, storeErr("list pets by ids", err)
	}
	defer rows.Close()

	return scanPets(rows)
}

func scanPets(rows pgx.Rows) ([]*Pet, error) {
	var pets []*Pet
	for rows.Next() {
		var p Pet
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Breed, &p.BirthDate, &p.Notes, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pet failed: %w", err)
		}
		pets = append(pets, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("scan pets", err)
	}
	return pets, nil
}
