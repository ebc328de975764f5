package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// Create atomically re-checks the room for overlapping active bookings and
	// inserts the booking row together with its pet associations. It returns
	// ErrRoomConflict when the re-check finds an overlap; nothing is written
	// in that case.
	Create(ctx context.Context, b *Booking, petIDs []string) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// ListActiveBetween returns pending/confirmed bookings overlapping the
	// half-open range [start, end).
	ListActiveBetween(ctx context.Context, start, end time.Time) ([]*Booking, error)

	// UpdateStatus transitions a booking from one status to another and
	// returns the new update timestamp. The update is guarded by the expected
	// current status, so a concurrent transition surfaces as
	// ErrInvalidTransition instead of being double-applied.
	UpdateStatus(ctx context.Context, id string, from, to Status) (time.Time, error)
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
// store-unavailable error. A timed-out overlap check must never read as
// "no conflict".
func storeErr(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return fmt.Errorf("%s: %w", op, ErrStoreUnavailable)
	}
	return fmt.Errorf("%s failed: %w", op, err)
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking, petIDs []string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return storeErr("begin create booking tx", err)
	}
	defer tx.Rollback(ctx)

	// Lock the room row. Concurrent check-then-insert pairs for the same room
	// serialize here; cancellations commit before a waiting create re-checks.
	var roomID string
	err = tx.QueryRow(ctx, `SELECT id FROM public.rooms WHERE id = $1 FOR UPDATE`, b.RoomID).Scan(&roomID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrRoomNotFound
		}
		return storeErr("lock room", err)
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	// Overlap re-check inside the transaction:
	// active status AND start_date < new end AND end_date > new start.
	subQuery := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"room_id": b.RoomID}).
		Where(squirrel.Eq{"status": []string{string(StatusPending), string(StatusConfirmed)}}).
		Where(squirrel.Lt{"start_date": b.EndDate}).
		Where(squirrel.Gt{"end_date": b.StartDate})

	checkSQL, args, err := subQuery.ToSql()
	if err != nil {
		return fmt.Errorf("build overlap check query failed: %w", err)
	}

	var exists bool
	if err := tx.QueryRow(ctx, "SELECT EXISTS ("+checkSQL+")", args...).Scan(&exists); err != nil {
		return storeErr("check overlap", err)
	}
	if exists {
		return ErrRoomConflict
	}

	insertSQL, args, err := psql.Insert("public.bookings").
		Columns("owner_id", "room_id", "start_date", "end_date", "status").
		Values(b.OwnerID, b.RoomID, b.StartDate, b.EndDate, b.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, insertSQL, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ExclusionViolation {
			// The schema-level daterange exclusion constraint backs up the
			// in-transaction check.
			return ErrRoomConflict
		}
		return storeErr("insert booking", err)
	}

	for _, petID := range petIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO public.booking_pets (booking_id, pet_id) VALUES ($1, $2)`,
			b.ID, petID,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
				return ErrPetNotFound
			}
			return storeErr("insert booking pet", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return storeErr("commit create booking", err)
	}
	return nil
}

const bookingSelect = `
	SELECT
		b.id, b.owner_id, u.email, b.room_id, r.name, r.room_type,
		b.start_date, b.end_date, b.status, b.created_at, b.updated_at,
		COALESCE(array_agg(p.id::text ORDER BY p.name) FILTER (WHERE p.id IS NOT NULL), '{}'),
		COALESCE(array_agg(p.name ORDER BY p.name) FILTER (WHERE p.id IS NOT NULL), '{}')
	FROM public.bookings b
	JOIN public.rooms r ON b.room_id = r.id
	JOIN public.users u ON b.owner_id = u.id
	LEFT JOIN public.booking_pets bp ON bp.booking_id = b.id
	LEFT JOIN public.pets p ON p.id = bp.pet_id
`

const bookingGroupBy = `
	GROUP BY b.id, b.owner_id, u.email, b.room_id, r.name, r.room_type,
		b.start_date, b.end_date, b.status, b.created_at, b.updated_at
`

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	var petIDs, petNames []string
	if err := row.Scan(
		&b.ID, &b.OwnerID, &b.OwnerEmail, &b.RoomID, &b.RoomName, &b.RoomType,
		&b.StartDate, &b.EndDate, &b.Status, &b.CreatedAt, &b.UpdatedAt,
		&petIDs, &petNames,
	); err != nil {
		return nil, err
	}
	b.Pets = make([]PetRef, len(petIDs))
	for i := range petIDs {
		b.Pets[i] = PetRef{ID: petIDs[i], Name: petNames[i]}
	}
	return &b, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := bookingSelect + ` WHERE b.id = $1 ` + bookingGroupBy

	b, err := scanBooking(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, storeErr("get booking", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	where := " WHERE 1=1"
	var args []interface{}
	paramIndex := 1

	if filter.OwnerID != "" {
		where += fmt.Sprintf(" AND b.owner_id = $%d", paramIndex)
		args = append(args, filter.OwnerID)
		paramIndex++
	}
	if filter.RoomID != "" {
		where += fmt.Sprintf(" AND b.room_id = $%d", paramIndex)
		args = append(args, filter.RoomID)
		paramIndex++
	}
	if filter.Status != "" {
		where += fmt.Sprintf(" AND b.status = $%d", paramIndex)
		args = append(args, filter.Status)
		paramIndex++
	}
	if filter.Upcoming {
		where += " AND b.end_date >= CURRENT_DATE"
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query := bookingSelect + where + bookingGroupBy +
		fmt.Sprintf(" ORDER BY b.start_date ASC LIMIT %d OFFSET %d", filter.PageSize, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, storeErr("list bookings", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, storeErr("list bookings", err)
	}

	countQuery := `SELECT count(*) FROM public.bookings b ` + where
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, storeErr("count bookings", err)
	}

	return bookings, total, nil
}

func (r *pgxRepository) ListActiveBetween(ctx context.Context, start, end time.Time) ([]*Booking, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	const query = `
		SELECT id, owner_id, room_id, start_date, end_date, status
		FROM public.bookings
		WHERE status IN ('pending', 'confirmed')
		  AND start_date < $2 AND end_date > $1
	`
	rows, err := r.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, storeErr("list active bookings", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(&b.ID, &b.OwnerID, &b.RoomID, &b.StartDate, &b.EndDate, &b.Status); err != nil {
			return nil, fmt.Errorf("scan active booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list active bookings", err)
	}
	return bookings, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, from, to Status) (time.Time, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	const query = `
		UPDATE public.bookings
		SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3
		RETURNING updated_at
	`
	var updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query, to, id, from).Scan(&updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Bookings are never deleted, so no row means the status moved
			// underneath us.
			return time.Time{}, ErrInvalidTransition
		}
		return time.Time{}, storeErr("update booking status", err)
	}
	return updatedAt, nil
}
