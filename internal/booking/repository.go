package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// Create inserts a booking and fills ID, CreatedAt and UpdatedAt.
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id int64) (*Booking, error)
	Find(ctx context.Context, c Criteria) ([]*Booking, error)

	// UpdateStatusIfWaiting atomically moves a WAITING booking to status.
	// It returns ErrAlreadyDecided when the booking is no longer WAITING.
	UpdateStatusIfWaiting(ctx context.Context, id int64, status Status) (*Booking, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func selectBookings() squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return psql.Select(
		"b.id", "b.start_time", "b.end_time", "b.item_id", "i.name", "i.owner_id",
		"b.booker_id", "u.name", "b.status", "b.created_at", "b.updated_at",
	).
		From("public.bookings b").
		Join("public.items i ON b.item_id = i.id").
		Join("public.users u ON b.booker_id = u.id")
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	if err := row.Scan(
		&b.ID, &b.Start, &b.End, &b.ItemID, &b.ItemName, &b.OwnerID,
		&b.BookerID, &b.BookerName, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	b.Start = b.Start.UTC()
	b.End = b.End.UTC()
	return &b, nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("start_time", "end_time", "item_id", "booker_id", "status").
		Values(b.Start, b.End, b.ItemID, b.BookerID, b.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	query, args, err := selectBookings().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) Find(ctx context.Context, c Criteria) ([]*Booking, error) {
	query := selectBookings()

	switch c.Subject {
	case SubjectBooker:
		query = query.Where(squirrel.Eq{"b.booker_id": c.SubjectID})
	case SubjectOwner:
		query = query.Where(squirrel.Eq{"i.owner_id": c.SubjectID})
	}
	if c.ItemID != 0 {
		query = query.Where(squirrel.Eq{"b.item_id": c.ItemID})
	}
	if len(c.Statuses) > 0 {
		query = query.Where(squirrel.Eq{"b.status": statusStrings(c.Statuses)})
	}
	if c.StartBefore != nil {
		query = query.Where(squirrel.Lt{"b.start_time": *c.StartBefore})
	}
	if c.StartAfter != nil {
		query = query.Where(squirrel.Gt{"b.start_time": *c.StartAfter})
	}
	if c.EndBefore != nil {
		query = query.Where(squirrel.Lt{"b.end_time": *c.EndBefore})
	}
	if c.EndAfter != nil {
		query = query.Where(squirrel.Gt{"b.end_time": *c.EndAfter})
	}

	switch c.Order {
	case OrderStartDesc:
		query = query.OrderBy("b.start_time DESC", "b.id ASC")
	case OrderStartAsc:
		query = query.OrderBy("b.start_time ASC", "b.id ASC")
	default:
		query = query.OrderBy("b.id ASC")
	}

	if c.Page.Paged() {
		query = query.Limit(c.Page.Limit()).Offset(c.Page.Offset())
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("find bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, rows.Err()
}

func (r *pgxRepository) UpdateStatusIfWaiting(ctx context.Context, id int64, status Status) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "status": StatusWaiting}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update booking status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return nil, ErrAlreadyDecided
	}

	return r.GetByID(ctx, id)
}
