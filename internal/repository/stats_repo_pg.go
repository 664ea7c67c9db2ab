package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/neupane-rajan/airline-reservation/internal/domain"
)

type UserStats struct {
	TotalUsers int64
	Passengers int64
	Staff      int64
}

type FlightStats struct {
	TotalFlights  int64
	ActiveFlights int64
}

type BookingStats struct {
	TotalBookings     int64
	ConfirmedBookings int64
	PendingBookings   int64
	CancelledBookings int64
	RecentBookings    int64
}

type DashboardStats struct {
	Users             UserStats
	Flights           FlightStats
	Bookings          BookingStats
	TotalRevenueCents int64
}

type MonthlyRevenue struct {
	Month        int
	MonthName    string
	RevenueCents int64
}

type RouteStats struct {
	DepartureCity string
	ArrivalCity   string
	BookingCount  int64
}

type StatsRepository interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
	MonthlyRevenue(ctx context.Context, year int) ([]MonthlyRevenue, error)
	PopularRoutes(ctx context.Context, limit int) ([]RouteStats, error)
}

type PGStatsRepository struct {
	db *pgxpool.Pool
}

func NewStatsRepository(db *pgxpool.Pool) StatsRepository {
	return &PGStatsRepository{db: db}
}

func (r *PGStatsRepository) Dashboard(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats

	err := r.db.QueryRow(ctx, `SELECT count(*),
			count(*) FILTER (WHERE role=$1),
			count(*) FILTER (WHERE role=$2)
		FROM users`, domain.RolePassenger, domain.RoleStaff).
		Scan(&stats.Users.TotalUsers, &stats.Users.Passengers, &stats.Users.Staff)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(ctx, `SELECT count(*), count(*) FILTER (WHERE is_active) FROM flights`).
		Scan(&stats.Flights.TotalFlights, &stats.Flights.ActiveFlights)
	if err != nil {
		return nil, err
	}

	weekAgo := time.Now().AddDate(0, 0, -7)
	err = r.db.QueryRow(ctx, `SELECT count(*),
			count(*) FILTER (WHERE status=$1),
			count(*) FILTER (WHERE status=$2),
			count(*) FILTER (WHERE status=$3),
			count(*) FILTER (WHERE created_at >= $4),
			COALESCE(sum(amount_cents) FILTER (WHERE payment_status=$5), 0)
		FROM bookings`,
		domain.BookingStatusConfirmed, domain.BookingStatusPending, domain.BookingStatusCancelled, weekAgo, domain.PaymentStatusCompleted).
		Scan(&stats.Bookings.TotalBookings, &stats.Bookings.ConfirmedBookings, &stats.Bookings.PendingBookings,
			&stats.Bookings.CancelledBookings, &stats.Bookings.RecentBookings, &stats.TotalRevenueCents)
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

func (r *PGStatsRepository) MonthlyRevenue(ctx context.Context, year int) ([]MonthlyRevenue, error) {
	rows, err := r.db.Query(ctx, `SELECT extract(month FROM created_at)::int, COALESCE(sum(amount_cents), 0)
		FROM bookings
		WHERE payment_status=$1 AND extract(year FROM created_at)::int = $2
		GROUP BY 1`, domain.PaymentStatusCompleted, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byMonth := make(map[int]int64)
	for rows.Next() {
		var month int
		var cents int64
		if err := rows.Scan(&month, &cents); err != nil {
			return nil, err
		}
		byMonth[month] = cents
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	revenue := make([]MonthlyRevenue, 0, 12)
	for month := 1; month <= 12; month++ {
		revenue = append(revenue, MonthlyRevenue{
			Month:        month,
			MonthName:    time.Month(month).String(),
			RevenueCents: byMonth[month],
		})
	}
	return revenue, nil
}

func (r *PGStatsRepository) PopularRoutes(ctx context.Context, limit int) ([]RouteStats, error) {
	rows, err := r.db.Query(ctx, `SELECT f.departure_city, f.arrival_city, count(b.id)
		FROM flights f
		JOIN bookings b ON b.flight_id = f.id
		WHERE b.status = $1
		GROUP BY f.departure_city, f.arrival_city
		ORDER BY count(b.id) DESC
		LIMIT $2`, domain.BookingStatusConfirmed, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routes := make([]RouteStats, 0)
	for rows.Next() {
		var rt RouteStats
		if err := rows.Scan(&rt.DepartureCity, &rt.ArrivalCity, &rt.BookingCount); err != nil {
			return nil, err
		}
		routes = append(routes, rt)
	}
	return routes, rows.Err()
}

var _ StatsRepository = (*PGStatsRepository)(nil)
