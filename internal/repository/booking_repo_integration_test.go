//go:build integration

package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/neupane-rajan/airline-reservation/internal/domain"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPool starts a PostgreSQL testcontainer, applies the schema and
// returns a connected pool. The container is terminated on cleanup.
func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_airline",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=test_airline sslmode=disable", host, port.Port())

	var pool *pgxpool.Pool
	require.Eventually(t, func() bool {
		var err error
		pool, err = pgxpool.New(ctx, dsn)
		if err != nil {
			return false
		}
		return pool.Ping(ctx) == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")
	t.Cleanup(pool.Close)

	schema, err := os.ReadFile(filepath.Join("..", "..", "migrations", "0001_init.sql"))
	require.NoError(t, err)
	_, err = pool.Exec(ctx, string(schema))
	require.NoError(t, err)

	return pool
}

// seedFlight inserts a passenger and a flight with the given seat count.
func seedFlight(t *testing.T, pool *pgxpool.Pool, seats int) (passengerID, flightID int64) {
	t.Helper()
	ctx := context.Background()

	err := pool.QueryRow(ctx, `INSERT INTO users (email, username, password_hash, role)
		VALUES ('ada@example.com', 'ada', 'x', 'PASSENGER') RETURNING id`).Scan(&passengerID)
	require.NoError(t, err)

	err = pool.QueryRow(ctx, `INSERT INTO flights (flight_number, airline, departure_city, arrival_city, departure_time, arrival_time, price_cents, available_seats)
		VALUES ('NA101', 'Nepal Airlines', 'Kathmandu', 'Pokhara', now() + interval '1 day', now() + interval '1 day 1 hour', 19900, $1)
		RETURNING id`, seats).Scan(&flightID)
	require.NoError(t, err)
	return passengerID, flightID
}

func seatCount(t *testing.T, pool *pgxpool.Pool, flightID int64) int {
	t.Helper()
	var seats int
	require.NoError(t, pool.QueryRow(context.Background(), `SELECT available_seats FROM flights WHERE id=$1`, flightID).Scan(&seats))
	return seats
}

// Concurrent creates against a single remaining seat: exactly one wins,
// the rest report no seats, and the flight ends at zero without going
// negative.
func TestPGBookingRepository_Create_lastSeatRace(t *testing.T) {
	pool := setupPool(t)
	passengerID, flightID := seedFlight(t, pool, 1)
	repo := NewBookingRepository(pool)

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Create(context.Background(), &domain.Booking{
				Reference:     fmt.Sprintf("BK-%08X", i),
				PassengerID:   passengerID,
				FlightID:      flightID,
				SeatNumber:    fmt.Sprintf("12%c", 'A'+i),
				Status:        domain.BookingStatusPending,
				PaymentStatus: domain.PaymentStatusPending,
				AmountCents:   19900,
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		require.ErrorIs(t, err, domain.ErrNoSeats)
	}
	require.Equal(t, 1, succeeded)
	require.Equal(t, 0, seatCount(t, pool, flightID))

	var bookings int
	require.NoError(t, pool.QueryRow(context.Background(), `SELECT count(*) FROM bookings WHERE flight_id=$1`, flightID).Scan(&bookings))
	require.Equal(t, 1, bookings)
}

// The booking row and the seat decrement commit together: a failed
// insert must leave the seat count untouched.
func TestPGBookingRepository_Create_rollsBackSeatOnInsertFailure(t *testing.T) {
	pool := setupPool(t)
	passengerID, flightID := seedFlight(t, pool, 2)
	repo := NewBookingRepository(pool)

	booking := &domain.Booking{
		Reference:     "BK-AAAA0001",
		PassengerID:   passengerID,
		FlightID:      flightID,
		SeatNumber:    "12A",
		Status:        domain.BookingStatusPending,
		PaymentStatus: domain.PaymentStatusPending,
		AmountCents:   19900,
	}
	require.NoError(t, repo.Create(context.Background(), booking))
	require.Equal(t, 1, seatCount(t, pool, flightID))

	dup := *booking
	dup.ID = 0
	err := repo.Create(context.Background(), &dup)
	require.ErrorIs(t, err, domain.ErrDuplicate)
	require.Equal(t, 1, seatCount(t, pool, flightID))
}

// A seat taken by Create comes back through Cancel.
func TestPGBookingRepository_Cancel_returnsSeat(t *testing.T) {
	pool := setupPool(t)
	passengerID, flightID := seedFlight(t, pool, 2)
	repo := NewBookingRepository(pool)

	booking := &domain.Booking{
		Reference:     "BK-BBBB0001",
		PassengerID:   passengerID,
		FlightID:      flightID,
		SeatNumber:    "14C",
		Status:        domain.BookingStatusPending,
		PaymentStatus: domain.PaymentStatusPending,
		AmountCents:   19900,
	}
	require.NoError(t, repo.Create(context.Background(), booking))
	require.Equal(t, 1, seatCount(t, pool, flightID))

	cancelled, err := repo.Cancel(context.Background(), booking.ID, domain.PaymentStatusPending)
	require.NoError(t, err)
	require.Equal(t, domain.BookingStatusCancelled, cancelled.Status)
	require.Equal(t, 2, seatCount(t, pool, flightID))
}

// Create against an inactive flight reports no seats even when seats
// remain.
func TestPGBookingRepository_Create_inactiveFlight(t *testing.T) {
	pool := setupPool(t)
	passengerID, flightID := seedFlight(t, pool, 5)
	repo := NewBookingRepository(pool)

	_, err := pool.Exec(context.Background(), `UPDATE flights SET is_active = false WHERE id=$1`, flightID)
	require.NoError(t, err)

	err = repo.Create(context.Background(), &domain.Booking{
		Reference:     "BK-CCCC0001",
		PassengerID:   passengerID,
		FlightID:      flightID,
		SeatNumber:    "1A",
		Status:        domain.BookingStatusPending,
		PaymentStatus: domain.PaymentStatusPending,
		AmountCents:   19900,
	})
	require.ErrorIs(t, err, domain.ErrNoSeats)
	require.Equal(t, 5, seatCount(t, pool, flightID))
}
