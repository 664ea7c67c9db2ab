package flights

import (
	"context"
	"testing"
	"time"

	"github.com/neupane-rajan/airline-reservation/internal/domain"
	"github.com/neupane-rajan/airline-reservation/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) ListActive(ctx context.Context, limit, offset int) ([]domain.Flight, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Search(ctx context.Context, filter repository.FlightFilter) ([]domain.Flight, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Update(ctx context.Context, id int64, update repository.FlightUpdate) (*domain.Flight, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Deactivate(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestFlightService_Create(t *testing.T) {
	repo := &MockFlightRepository{}
	svc := NewFlightService(repo, zap.NewNop())

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Flight")).Return(nil)

	flight, err := svc.Create(context.Background(), CreateFlightInput{
		FlightNumber:   "NA101",
		Airline:        "Nimbus Air",
		DepartureCity:  "Kathmandu",
		ArrivalCity:    "Pokhara",
		DepartureTime:  time.Now().Add(24 * time.Hour),
		ArrivalTime:    time.Now().Add(25 * time.Hour),
		PriceCents:     19900,
		AvailableSeats: 120,
	})

	assert.NoError(t, err)
	assert.Equal(t, "NA101", flight.FlightNumber)
	repo.AssertExpectations(t)
}

func TestFlightService_Create_duplicateNumber(t *testing.T) {
	repo := &MockFlightRepository{}
	svc := NewFlightService(repo, zap.NewNop())

	repo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicate)

	_, err := svc.Create(context.Background(), CreateFlightInput{FlightNumber: "NA101"})

	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestFlightService_Create_invalidInput(t *testing.T) {
	repo := &MockFlightRepository{}
	svc := NewFlightService(repo, zap.NewNop())

	_, err := svc.Create(context.Background(), CreateFlightInput{FlightNumber: ""})
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), CreateFlightInput{FlightNumber: "NA101", AvailableSeats: -1})
	assert.Error(t, err)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFlightService_Search(t *testing.T) {
	repo := &MockFlightRepository{}
	svc := NewFlightService(repo, zap.NewNop())

	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	repo.On("Search", mock.Anything, repository.FlightFilter{
		DepartureCity: "Kathmandu",
		ArrivalCity:   "Pokhara",
		DepartureDate: &date,
	}).Return([]domain.Flight{{ID: 1}}, nil)

	found, err := svc.Search(context.Background(), SearchInput{
		DepartureCity: "Kathmandu",
		ArrivalCity:   "Pokhara",
		DepartureDate: &date,
	})

	assert.NoError(t, err)
	assert.Len(t, found, 1)
	repo.AssertExpectations(t)
}

func TestFlightService_List_clampsLimit(t *testing.T) {
	repo := &MockFlightRepository{}
	svc := NewFlightService(repo, zap.NewNop())

	repo.On("ListActive", mock.Anything, 100, 0).Return([]domain.Flight{}, nil)

	_, err := svc.List(context.Background(), 1000, -5)
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestFlightService_Delete(t *testing.T) {
	repo := &MockFlightRepository{}
	svc := NewFlightService(repo, zap.NewNop())

	repo.On("Deactivate", mock.Anything, int64(3)).Return(nil)

	assert.NoError(t, svc.Delete(context.Background(), 3))
	repo.AssertExpectations(t)
}
