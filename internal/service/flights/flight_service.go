package flights

import (
	"context"
	"errors"
	"time"

	"github.com/neupane-rajan/airline-reservation/internal/domain"
	"github.com/neupane-rajan/airline-reservation/internal/repository"
	"go.uber.org/zap"
)

type CreateFlightInput struct {
	FlightNumber   string    `json:"flight_number"`
	Airline        string    `json:"airline"`
	DepartureCity  string    `json:"departure_city"`
	ArrivalCity    string    `json:"arrival_city"`
	DepartureTime  time.Time `json:"departure_time"`
	ArrivalTime    time.Time `json:"arrival_time"`
	PriceCents     int64     `json:"price_cents"`
	AvailableSeats int       `json:"available_seats"`
}

type UpdateFlightInput struct {
	Airline        *string    `json:"airline"`
	DepartureCity  *string    `json:"departure_city"`
	ArrivalCity    *string    `json:"arrival_city"`
	DepartureTime  *time.Time `json:"departure_time"`
	ArrivalTime    *time.Time `json:"arrival_time"`
	PriceCents     *int64     `json:"price_cents"`
	AvailableSeats *int       `json:"available_seats"`
}

type SearchInput struct {
	DepartureCity string     `json:"departure_city"`
	ArrivalCity   string     `json:"arrival_city"`
	DepartureDate *time.Time `json:"departure_date"`
}

type FlightUseCase interface {
	List(ctx context.Context, limit, offset int) ([]domain.Flight, error)
	Search(ctx context.Context, input SearchInput) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error)
	Update(ctx context.Context, id int64, input UpdateFlightInput) (*domain.Flight, error)
	Delete(ctx context.Context, id int64) error
}

type FlightService struct {
	repo   repository.FlightRepository
	logger *zap.Logger
}

func NewFlightService(repo repository.FlightRepository, logger *zap.Logger) *FlightService {
	return &FlightService{repo: repo, logger: logger}
}

func (s *FlightService) List(ctx context.Context, limit, offset int) ([]domain.Flight, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListActive(ctx, limit, offset)
}

func (s *FlightService) Search(ctx context.Context, input SearchInput) ([]domain.Flight, error) {
	return s.repo.Search(ctx, repository.FlightFilter{
		DepartureCity: input.DepartureCity,
		ArrivalCity:   input.ArrivalCity,
		DepartureDate: input.DepartureDate,
	})
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error) {
	if input.FlightNumber == "" {
		return nil, errors.New("flight number is required")
	}
	if input.AvailableSeats < 0 {
		return nil, errors.New("available seats must not be negative")
	}

	flight := &domain.Flight{
		FlightNumber:   input.FlightNumber,
		Airline:        input.Airline,
		DepartureCity:  input.DepartureCity,
		ArrivalCity:    input.ArrivalCity,
		DepartureTime:  input.DepartureTime,
		ArrivalTime:    input.ArrivalTime,
		PriceCents:     input.PriceCents,
		AvailableSeats: input.AvailableSeats,
	}
	if err := s.repo.Create(ctx, flight); err != nil {
		return nil, err
	}
	s.logger.Info("flight created", zap.String("flight_number", flight.FlightNumber), zap.Int64("id", flight.ID))
	return flight, nil
}

func (s *FlightService) Update(ctx context.Context, id int64, input UpdateFlightInput) (*domain.Flight, error) {
	if input.AvailableSeats != nil && *input.AvailableSeats < 0 {
		return nil, errors.New("available seats must not be negative")
	}
	return s.repo.Update(ctx, id, repository.FlightUpdate{
		Airline:        input.Airline,
		DepartureCity:  input.DepartureCity,
		ArrivalCity:    input.ArrivalCity,
		DepartureTime:  input.DepartureTime,
		ArrivalTime:    input.ArrivalTime,
		PriceCents:     input.PriceCents,
		AvailableSeats: input.AvailableSeats,
	})
}

// Delete deactivates the flight; booking rows referencing it survive.
func (s *FlightService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return err
	}
	s.logger.Info("flight deactivated", zap.Int64("id", id))
	return nil
}

var _ FlightUseCase = (*FlightService)(nil)
