package item

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

// Repository defines the persistence contract for items. The last/next
// booking lookups read the bookings table directly so the item package does
// not depend on the booking package.
type Repository interface {
	Create(ctx context.Context, it *Item) error
	GetByID(ctx context.Context, id int64) (*Item, error)
	Update(ctx context.Context, it *Item) error
	Delete(ctx context.Context, id int64) error
	ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]*Item, error)
	CountByOwner(ctx context.Context, ownerID int64) (int, error)
	Search(ctx context.Context, text string, limit, offset int) ([]*Item, error)
	RequestExists(ctx context.Context, requestID int64) (bool, error)

	// LastBooking returns the non-rejected booking of the item that started
	// most recently before now, NextBooking the one starting soonest after.
	// Both return nil when no such booking exists.
	LastBooking(ctx context.Context, itemID int64, now time.Time) (*BookingRef, error)
	NextBooking(ctx context.Context, itemID int64, now time.Time) (*BookingRef, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, it *Item) error {
	const query = `
		INSERT INTO items (name, description, available, owner_id, request_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	if err := r.pool.QueryRow(ctx, query,
		it.Name, it.Description, it.Available, it.OwnerID, it.RequestID,
	).Scan(&it.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return ErrRequestNotFound
		}
		return fmt.Errorf("create item failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Item, error) {
	const query = `
		SELECT id, name, description, available, owner_id, request_id
		FROM items
		WHERE id = $1
	`

	var it Item
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &it.RequestID,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get item failed: %w", err)
	}
	return &it, nil
}

func (r *pgxRepository) Update(ctx context.Context, it *Item) error {
	const query = `
		UPDATE items
		SET name = $1, description = $2, available = $3
		WHERE id = $4
	`

	ct, err := r.pool.Exec(ctx, query, it.Name, it.Description, it.Available, it.ID)
	if err != nil {
		return fmt.Errorf("update item failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM items WHERE id = $1`

	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return ErrItemInUse
		}
		return fmt.Errorf("delete item failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]*Item, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "name", "description", "available", "owner_id", "request_id").
		From("items").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("id").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list items query failed: %w", err)
	}

	return r.queryItems(ctx, query, args...)
}

func (r *pgxRepository) CountByOwner(ctx context.Context, ownerID int64) (int, error) {
	const query = `SELECT count(*) FROM items WHERE owner_id = $1`

	var n int
	if err := r.pool.QueryRow(ctx, query, ownerID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count items failed: %w", err)
	}
	return n, nil
}

func (r *pgxRepository) Search(ctx context.Context, text string, limit, offset int) ([]*Item, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "name", "description", "available", "owner_id", "request_id").
		From("items").
		Where(squirrel.Or{
			squirrel.ILike{"name": "%" + text + "%"},
			squirrel.ILike{"description": "%" + text + "%"},
		}).
		OrderBy("id").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search items query failed: %w", err)
	}

	return r.queryItems(ctx, query, args...)
}

func (r *pgxRepository) RequestExists(ctx context.Context, requestID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM requests WHERE id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, requestID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check request failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) LastBooking(ctx context.Context, itemID int64, now time.Time) (*BookingRef, error) {
	const query = `
		SELECT id, booker_id
		FROM bookings
		WHERE item_id = $1 AND status <> 'REJECTED' AND start_time < $2
		ORDER BY end_time DESC
		LIMIT 1
	`
	return r.queryBookingRef(ctx, query, itemID, now)
}

func (r *pgxRepository) NextBooking(ctx context.Context, itemID int64, now time.Time) (*BookingRef, error) {
	const query = `
		SELECT id, booker_id
		FROM bookings
		WHERE item_id = $1 AND status <> 'REJECTED' AND start_time > $2
		ORDER BY start_time
		LIMIT 1
	`
	return r.queryBookingRef(ctx, query, itemID, now)
}

func (r *pgxRepository) queryBookingRef(ctx context.Context, query string, args ...any) (*BookingRef, error) {
	var ref BookingRef
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&ref.ID, &ref.BookerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking ref failed: %w", err)
	}
	return &ref, nil
}

func (r *pgxRepository) queryItems(ctx context.Context, query string, args ...any) ([]*Item, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query items failed: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &it.RequestID); err != nil {
			return nil, fmt.Errorf("scan item failed: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}
