package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// BookingRepository persists room bookings. CreateInSlot and
// UpdateInSlot run the caller-supplied conflict check and the write in
// one transaction, serialized per room and day, so two concurrent
// requests cannot both pass the check before either commits.
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
	ListByOrganizer(ctx context.Context, organizerID string) ([]domain.Booking, error)
	Delete(ctx context.Context, id string) error
	CreateInSlot(ctx context.Context, booking *domain.Booking, check ConflictCheck) error
	UpdateInSlot(ctx context.Context, booking *domain.Booking, check ConflictCheck) error
}

// ConflictCheck inspects the bookings already occupying the target room
// and day and returns a domain error when the new window collides.
type ConflictCheck func(existing []domain.Booking) error

type bookingRepository struct {
	pool *pgxpool.Pool
}

// NewBookingRepository returns a Postgres-backed implementation.
func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &bookingRepository{pool: pool}
}

const bookingColumns = `id, title, subject, day, start_minute, end_minute, video_link, room, organizer_id, created_at`

const bookingOrder = ` ORDER BY day, start_minute`

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id)
	return scanBooking(row)
}

func (r *bookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+bookingColumns+` FROM bookings`+bookingOrder)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (r *bookingRepository) ListByOrganizer(ctx context.Context, organizerID string) ([]domain.Booking, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE organizer_id=$1`+bookingOrder, organizerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (r *bookingRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM bookings WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *bookingRepository) CreateInSlot(ctx context.Context, booking *domain.Booking, check ConflictCheck) error {
	return r.inSlotTx(ctx, booking, check, func(ctx context.Context, tx pgx.Tx) error {
		const query = `
            INSERT INTO bookings (title, subject, day, start_minute, end_minute, video_link, room, organizer_id)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
            RETURNING id, created_at`
		return tx.QueryRow(ctx, query,
			booking.Title,
			booking.Subject,
			booking.Date,
			booking.Start,
			booking.End,
			booking.VideoLink,
			booking.Room,
			booking.OrganizerID,
		).Scan(&booking.ID, &booking.CreatedAt)
	})
}

func (r *bookingRepository) UpdateInSlot(ctx context.Context, booking *domain.Booking, check ConflictCheck) error {
	return r.inSlotTx(ctx, booking, check, func(ctx context.Context, tx pgx.Tx) error {
		const query = `
            UPDATE bookings SET title=$1, subject=$2, day=$3, start_minute=$4, end_minute=$5,
                video_link=$6, room=$7
            WHERE id=$8`
		cmd, err := tx.Exec(ctx, query,
			booking.Title,
			booking.Subject,
			booking.Date,
			booking.Start,
			booking.End,
			booking.VideoLink,
			booking.Room,
			booking.ID,
		)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return nil
	})
}

// inSlotTx takes a per room+day advisory lock, feeds the occupying
// bookings to the conflict check, and runs the write only when the
// check passes. Any failure rolls the whole transaction back.
func (r *bookingRepository) inSlotTx(ctx context.Context, booking *domain.Booking, check ConflictCheck, write func(context.Context, pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	slotKey := string(booking.Room) + "|" + booking.Date.Format(domain.BookingDateLayout)
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, slotKey); err != nil {
		return err
	}

	rows, err := tx.Query(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE room=$1 AND day=$2`+bookingOrder,
		booking.Room, booking.Date)
	if err != nil {
		return err
	}
	existing, err := scanBookings(rows)
	rows.Close()
	if err != nil {
		return err
	}

	if err := check(existing); err != nil {
		return err
	}
	if err := write(ctx, tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var booking domain.Booking
	if err := row.Scan(
		&booking.ID,
		&booking.Title,
		&booking.Subject,
		&booking.Date,
		&booking.Start,
		&booking.End,
		&booking.VideoLink,
		&booking.Room,
		&booking.OrganizerID,
		&booking.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &booking, nil
}

func scanBookings(rows pgx.Rows) ([]domain.Booking, error) {
	var result []domain.Booking
	for rows.Next() {
		var booking domain.Booking
		if err := rows.Scan(
			&booking.ID,
			&booking.Title,
			&booking.Subject,
			&booking.Date,
			&booking.Start,
			&booking.End,
			&booking.VideoLink,
			&booking.Room,
			&booking.OrganizerID,
			&booking.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, booking)
	}
	return result, rows.Err()
}
