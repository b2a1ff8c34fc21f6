package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/iliyamo/train-seat-booking/internal/model"
)

// BookingRepo stores successful bookings. Queries use only portable SQL
// so the same code runs against MySQL and SQLite.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo constructs a BookingRepo with the given DB handle.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// EnsureSchema creates the bookings table when it does not exist yet.
// booked_at holds Unix milliseconds; seats holds a comma joined list; seq
// numbers rows in insertion order and breaks booked_at ties.
func (r *BookingRepo) EnsureSchema(ctx context.Context) error {
	const table = `CREATE TABLE IF NOT EXISTS bookings (
		id         VARCHAR(36)  NOT NULL PRIMARY KEY,
		user_id    VARCHAR(64)  NOT NULL,
		seat_count INT          NOT NULL,
		seats      VARCHAR(255) NOT NULL,
		booked_at  BIGINT       NOT NULL,
		seq        BIGINT       NOT NULL,
		UNIQUE (seq)
	)`
	if _, err := r.db.ExecContext(ctx, table); err != nil {
		return fmt.Errorf("create bookings table: %w", err)
	}
	return nil
}

// Create inserts b after every booking already stored.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	const q = `INSERT INTO bookings (id, user_id, seat_count, seats, booked_at, seq)
			   SELECT ?, ?, ?, ?, ?, COALESCE(MAX(seq), 0) + 1 FROM bookings`
	_, err := r.db.ExecContext(ctx, q, b.ID, b.UserID, len(b.Seats), joinSeats(b.Seats), b.BookedAt.UTC().UnixMilli())
	return err
}

// GetByID retrieves one booking or ErrBookingNotFound.
func (r *BookingRepo) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	const q = `SELECT id, user_id, seats, booked_at FROM bookings WHERE id = ?`
	b, err := scanBooking(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

// ListByUser returns the bookings of userID, newest first. Bookings made
// in the same millisecond come back in reverse insertion order.
func (r *BookingRepo) ListByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	const q = `SELECT id, user_id, seats, booked_at FROM bookings
			   WHERE user_id = ?
			   ORDER BY booked_at DESC, seq DESC`
	return r.list(ctx, q, userID)
}

// ListRecent returns at most limit bookings, newest first, with the same
// tie order as ListByUser.
func (r *BookingRepo) ListRecent(ctx context.Context, limit int) ([]model.Booking, error) {
	const q = `SELECT id, user_id, seats, booked_at FROM bookings
			   ORDER BY booked_at DESC, seq DESC
			   LIMIT ?`
	return r.list(ctx, q, limit)
}

func (r *BookingRepo) list(ctx context.Context, q string, args ...any) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBooking(s scanner) (*model.Booking, error) {
	var (
		b     model.Booking
		seats string
		ms    int64
	)
	if err := s.Scan(&b.ID, &b.UserID, &seats, &ms); err != nil {
		return nil, err
	}
	parsed, err := splitSeats(seats)
	if err != nil {
		return nil, fmt.Errorf("booking %s: %w", b.ID, err)
	}
	b.Seats = parsed
	b.BookedAt = time.UnixMilli(ms).UTC()
	return &b, nil
}

func joinSeats(seats []int) string {
	parts := make([]string, len(seats))
	for i, n := range seats {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

func splitSeats(s string) ([]int, error) {
	out := []int{}
	if s == "" {
		return out, nil
	}
	for _, p := range strings.Split(s, ",") {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("bad seat list %q", s)
		}
		out = append(out, n)
	}
	return out, nil
}
