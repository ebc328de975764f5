package room

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
	Create(ctx context.Context, room *Room) error
	GetByID(ctx context.Context, id string) (*Room, error)
	// List returns the whole catalog ordered by room type then name.
	List(ctx context.Context) ([]*Room, error)
	Count(ctx context.Context) (int, error)
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
// store-unavailable error. Availability reads depend on the catalog, so a
// hung catalog query must fail fast instead of blocking the resolver.
func storeErr(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return fmt.Errorf("%s: %w", op, apperror.ErrStoreUnavailable)
	}
	return fmt.Errorf("%s failed: %w", op, err)
}

func (r *pgxRepository) Create(ctx context.Context, room *Room) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	const query = `
		INSERT INTO public.rooms (name, room_type, capacity)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query, room.Name, room.RoomType, room.Capacity).
		Scan(&room.ID, &room.CreatedAt)
	if err != nil {
		return storeErr("create room", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Room, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	const query = `
		SELECT id, name, room_type, capacity, created_at
		FROM public.rooms
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)

	var room Room
	if err := row.Scan(&room.ID, &room.Name, &room.RoomType, &room.Capacity, &room.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, storeErr("get room", err)
	}
	return &room, nil
}

func (r *pgxRepository) List(ctx context.Context) ([]*Room, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	const query = `
		SELECT id, name, room_type, capacity, created_at
		FROM public.rooms
		ORDER BY room_type ASC, name ASC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, storeErr("list rooms", err)
	}
	defer rows.Close()

	var rooms []*Room
	for rows.Next() {
		var room Room
		if err := rows.Scan(&room.ID, &room.Name, &room.RoomType, &room.Capacity, &room.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan room failed: %w", err)
		}
		rooms = append(rooms, &room)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list rooms", err)
	}
	return rooms, nil
}

func (r *pgxRepository) Count(ctx context.Context) (int, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var count int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM public.rooms`).Scan(&count); err != nil {
		return 0, storeErr("count rooms", err)
	}
	return count, nil
}
