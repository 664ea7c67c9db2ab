package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/neupane-rajan/airline-reservation/internal/domain"
)

type FlightFilter struct {
	DepartureCity string
	ArrivalCity   string
	DepartureDate *time.Time
}

// FlightUpdate carries the fields of a partial update; nil means unchanged.
type FlightUpdate struct {
	Airline        *string
	DepartureCity  *string
	ArrivalCity    *string
	DepartureTime  *time.Time
	ArrivalTime    *time.Time
	PriceCents     *int64
	AvailableSeats *int
}

type FlightRepository interface {
	Create(ctx context.Context, flight *domain.Flight) error
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	ListActive(ctx context.Context, limit, offset int) ([]domain.Flight, error)
	Search(ctx context.Context, filter FlightFilter) ([]domain.Flight, error)
	Update(ctx context.Context, id int64, update FlightUpdate) (*domain.Flight, error)
	Deactivate(ctx context.Context, id int64) error
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, flight_number, airline, departure_city, arrival_city, departure_time, arrival_time, price_cents, available_seats, is_active, created_at, updated_at`

func scanFlight(row pgx.Row, f *domain.Flight) error {
	return row.Scan(&f.ID, &f.FlightNumber, &f.Airline, &f.DepartureCity, &f.ArrivalCity, &f.DepartureTime, &f.ArrivalTime, &f.PriceCents, &f.AvailableSeats, &f.IsActive, &f.CreatedAt, &f.UpdatedAt)
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	err := r.db.QueryRow(ctx, `INSERT INTO flights (flight_number, airline, departure_city, arrival_city, departure_time, arrival_time, price_cents, available_seats, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, true)
		RETURNING id, is_active, created_at, updated_at`,
		flight.FlightNumber, flight.Airline, flight.DepartureCity, flight.ArrivalCity, flight.DepartureTime, flight.ArrivalTime, flight.PriceCents, flight.AvailableSeats).
		Scan(&flight.ID, &flight.IsActive, &flight.CreatedAt, &flight.UpdatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("flight number %s: %w", flight.FlightNumber, domain.ErrDuplicate)
	}
	return err
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id)
	var f domain.Flight
	if err := scanFlight(row, &f); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("flight %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return &f, nil
}

func (r *PGFlightRepository) ListActive(ctx context.Context, limit, offset int) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights WHERE is_active ORDER BY departure_time LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFlights(rows)
}

func (r *PGFlightRepository) Search(ctx context.Context, filter FlightFilter) ([]domain.Flight, error) {
	query := `SELECT ` + flightColumns + ` FROM flights WHERE is_active`
	args := []interface{}{}
	if filter.DepartureCity != "" {
		args = append(args, filter.DepartureCity)
		query += fmt.Sprintf(" AND departure_city=$%d", len(args))
	}
	if filter.ArrivalCity != "" {
		args = append(args, filter.ArrivalCity)
		query += fmt.Sprintf(" AND arrival_city=$%d", len(args))
	}
	if filter.DepartureDate != nil {
		day := filter.DepartureDate.Truncate(24 * time.Hour)
		args = append(args, day)
		query += fmt.Sprintf(" AND departure_time >= $%d", len(args))
		args = append(args, day.Add(24*time.Hour))
		query += fmt.Sprintf(" AND departure_time < $%d", len(args))
	}
	query += " ORDER BY departure_time"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFlights(rows)
}

func (r *PGFlightRepository) Update(ctx context.Context, id int64, update FlightUpdate) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `UPDATE flights SET
			airline = COALESCE($2, airline),
			departure_city = COALESCE($3, departure_city),
			arrival_city = COALESCE($4, arrival_city),
			departure_time = COALESCE($5, departure_time),
			arrival_time = COALESCE($6, arrival_time),
			price_cents = COALESCE($7, price_cents),
			available_seats = COALESCE($8, available_seats),
			updated_at = now()
		WHERE id=$1 RETURNING `+flightColumns,
		id, update.Airline, update.DepartureCity, update.ArrivalCity, update.DepartureTime, update.ArrivalTime, update.PriceCents, update.AvailableSeats)
	var f domain.Flight
	if err := scanFlight(row, &f); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("flight %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return &f, nil
}

func (r *PGFlightRepository) Deactivate(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `UPDATE flights SET is_active=false, updated_at=now() WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("flight %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func collectFlights(rows pgx.Rows) ([]domain.Flight, error) {
	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := scanFlight(rows, &f); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ FlightRepository = (*PGFlightRepository)(nil)
