package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/neupane-rajan/airline-reservation/internal/domain"
)

type BookingRepository interface {
	// Create inserts the booking and takes its seat in one transaction.
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByPassenger(ctx context.Context, passengerID int64) ([]domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
	RecordPayment(ctx context.Context, id int64, paymentStatus domain.PaymentStatus, status domain.BookingStatus, paymentID string) (*domain.Booking, error)
	// Cancel marks the booking cancelled and returns its seat in one transaction.
	Cancel(ctx context.Context, id int64, paymentStatus domain.PaymentStatus) (*domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, reference, passenger_id, flight_id, seat_number, status, payment_status, payment_id, amount_cents, created_at, updated_at`

func scanBooking(row pgx.Row, b *domain.Booking) error {
	return row.Scan(&b.ID, &b.Reference, &b.PassengerID, &b.FlightID, &b.SeatNumber, &b.Status, &b.PaymentStatus, &b.PaymentID, &b.AmountCents, &b.CreatedAt, &b.UpdatedAt)
}

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// The conditional decrement is what keeps a full flight from being
	// oversold: of N concurrent creates against one remaining seat,
	// exactly one update reports a row.
	cmd, err := tx.Exec(ctx, `UPDATE flights SET available_seats = available_seats - 1, updated_at = now() WHERE id=$1 AND is_active AND available_seats > 0`, booking.FlightID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("flight %d: %w", booking.FlightID, domain.ErrNoSeats)
	}

	err = tx.QueryRow(ctx, `INSERT INTO bookings (reference, passenger_id, flight_id, seat_number, status, payment_status, payment_id, amount_cents)
		VALUES ($1, $2, $3, $4, $5, $6, '', $7)
		RETURNING id, created_at, updated_at`,
		booking.Reference, booking.PassengerID, booking.FlightID, booking.SeatNumber, booking.Status, booking.PaymentStatus, booking.AmountCents).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("booking reference %s: %w", booking.Reference, domain.ErrDuplicate)
		}
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id)
	var b domain.Booking
	if err := scanBooking(row, &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("booking %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return &b, nil
}

func (r *PGBookingRepository) ListByPassenger(ctx context.Context, passengerID int64) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE passenger_id=$1 ORDER BY created_at DESC`, passengerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (r *PGBookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (r *PGBookingRepository) RecordPayment(ctx context.Context, id int64, paymentStatus domain.PaymentStatus, status domain.BookingStatus, paymentID string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings SET payment_status=$2, status=$3, payment_id=$4, updated_at=now() WHERE id=$1 RETURNING `+bookingColumns,
		id, paymentStatus, status, paymentID)
	var b domain.Booking
	if err := scanBooking(row, &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("booking %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return &b, nil
}

func (r *PGBookingRepository) Cancel(ctx context.Context, id int64, paymentStatus domain.PaymentStatus) (*domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `UPDATE bookings SET status=$2, payment_status=$3, updated_at=now() WHERE id=$1 RETURNING `+bookingColumns,
		id, domain.BookingStatusCancelled, paymentStatus)
	var b domain.Booking
	if err := scanBooking(row, &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("booking %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}

	// Flights carry no capacity column, so nothing stops this increment
	// from exceeding the count the flight started with.
	if _, err := tx.Exec(ctx, `UPDATE flights SET available_seats = available_seats + 1, updated_at = now() WHERE id=$1`, b.FlightID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &b, nil
}

func collectBookings(rows pgx.Rows) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)
