package booking

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/neupane-rajan/airline-reservation/internal/auth"
	"github.com/neupane-rajan/airline-reservation/internal/domain"
	"github.com/neupane-rajan/airline-reservation/internal/metrics"
	"github.com/neupane-rajan/airline-reservation/internal/payment"
	"github.com/neupane-rajan/airline-reservation/internal/repository"
	"go.uber.org/zap"
)

// Actor identifies the authenticated caller of a lifecycle operation.
type Actor struct {
	UserID int64
	Role   domain.UserRole
}

type CreateBookingInput struct {
	FlightID   int64  `json:"flight_id"`
	SeatNumber string `json:"seat_number"`
}

type PaymentInput struct {
	AmountCents int64  `json:"amount_cents"`
	CardNumber  string `json:"card_number"`
	ExpiryDate  string `json:"expiry_date"`
	CVV         string `json:"cvv"`
}

type BookingUseCase interface {
	Create(ctx context.Context, actor Actor, input CreateBookingInput) (*domain.Booking, error)
	Get(ctx context.Context, actor Actor, id int64) (*domain.Booking, error)
	List(ctx context.Context, actor Actor) ([]domain.Booking, error)
	Pay(ctx context.Context, actor Actor, id int64, input PaymentInput) (*domain.Booking, error)
	Cancel(ctx context.Context, actor Actor, id int64) (*domain.Booking, error)
	ETicket(ctx context.Context, actor Actor, id int64) (*domain.ETicket, error)
}

// BookingService owns the booking state machine: status moves
// PENDING -> CONFIRMED (payment) or -> CANCELLED, payment status moves
// PENDING -> COMPLETED/FAILED -> REFUNDED. The seat is taken at creation
// and returned at cancellation; there is no expiry for abandoned pending
// bookings, they hold their seat until cancelled.
type BookingService struct {
	bookings repository.BookingRepository
	flights  repository.FlightRepository
	users    repository.UserRepository
	gateway  payment.Gateway
	logger   *zap.Logger
}

func NewBookingService(
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	users repository.UserRepository,
	gateway payment.Gateway,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		flights:  flights,
		users:    users,
		gateway:  gateway,
		logger:   logger,
	}
}

func (s *BookingService) Create(ctx context.Context, actor Actor, input CreateBookingInput) (*domain.Booking, error) {
	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		return nil, err
	}
	if !flight.IsActive {
		return nil, fmt.Errorf("flight %d is inactive: %w", flight.ID, domain.ErrNotFound)
	}
	if flight.AvailableSeats <= 0 {
		return nil, fmt.Errorf("flight %d: %w", flight.ID, domain.ErrNoSeats)
	}

	booking := &domain.Booking{
		Reference:     NewReference(),
		PassengerID:   actor.UserID,
		FlightID:      flight.ID,
		SeatNumber:    input.SeatNumber,
		Status:        domain.BookingStatusPending,
		PaymentStatus: domain.PaymentStatusPending,
		AmountCents:   flight.PriceCents,
	}
	// Seat decrement and insert commit together; a reference collision
	// surfaces as a unique-violation conflict, never a silent retry.
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	metrics.BookingsCreated.Inc()
	s.logger.Info("booking created",
		zap.String("reference", booking.Reference),
		zap.Int64("flight_id", flight.ID),
		zap.Int64("passenger_id", actor.UserID))
	return booking, nil
}

func (s *BookingService) Get(ctx context.Context, actor Actor, id int64) (*domain.Booking, error) {
	return s.getAuthorized(ctx, actor, id)
}

func (s *BookingService) List(ctx context.Context, actor Actor) ([]domain.Booking, error) {
	if actor.Role == domain.RolePassenger {
		return s.bookings.ListByPassenger(ctx, actor.UserID)
	}
	return s.bookings.ListAll(ctx)
}

// Pay charges the booking's stored amount. A FAILED attempt leaves the
// booking payable; each retry is a fresh gateway call and, on success, a
// fresh payment id. The amount in the request body is ignored: the price
// was frozen when the booking was created.
func (s *BookingService) Pay(ctx context.Context, actor Actor, id int64, input PaymentInput) (*domain.Booking, error) {
	booking, err := s.getAuthorized(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if booking.PaymentStatus == domain.PaymentStatusCompleted {
		return nil, fmt.Errorf("booking %s: %w", booking.Reference, domain.ErrAlreadyPaid)
	}

	// The gateway call happens outside any storage transaction; the
	// booking row is updated in a narrow follow-up write once the
	// outcome is known.
	result, err := s.gateway.Charge(ctx, booking.AmountCents, payment.Card{
		Number:     input.CardNumber,
		ExpiryDate: input.ExpiryDate,
		CVV:        input.CVV,
	})
	if err != nil {
		return nil, fmt.Errorf("charge booking %s: %w", booking.Reference, err)
	}

	if result.Status == domain.PaymentStatusCompleted {
		updated, err := s.bookings.RecordPayment(ctx, id, domain.PaymentStatusCompleted, domain.BookingStatusConfirmed, result.PaymentID)
		if err != nil {
			return nil, err
		}
		metrics.Payments.WithLabelValues("completed").Inc()
		s.logger.Info("payment completed",
			zap.String("reference", updated.Reference),
			zap.String("payment_id", result.PaymentID))
		return updated, nil
	}

	updated, err := s.bookings.RecordPayment(ctx, id, domain.PaymentStatusFailed, booking.Status, "")
	if err != nil {
		return nil, err
	}
	metrics.Payments.WithLabelValues("failed").Inc()
	s.logger.Info("payment failed",
		zap.String("reference", updated.Reference),
		zap.String("reason", result.Message))
	return updated, nil
}

func (s *BookingService) Cancel(ctx context.Context, actor Actor, id int64) (*domain.Booking, error) {
	booking, err := s.getAuthorized(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if booking.Status == domain.BookingStatusCancelled {
		return nil, fmt.Errorf("booking %s: %w", booking.Reference, domain.ErrAlreadyCancelled)
	}

	paymentStatus := booking.PaymentStatus
	if booking.PaymentStatus == domain.PaymentStatusCompleted {
		if err := s.gateway.Refund(ctx, booking.PaymentID); err != nil {
			return nil, fmt.Errorf("refund booking %s: %w", booking.Reference, err)
		}
		paymentStatus = domain.PaymentStatusRefunded
		metrics.Refunds.Inc()
	}

	updated, err := s.bookings.Cancel(ctx, id, paymentStatus)
	if err != nil {
		return nil, err
	}
	metrics.BookingsCancelled.Inc()
	s.logger.Info("booking cancelled",
		zap.String("reference", updated.Reference),
		zap.String("payment_status", string(updated.PaymentStatus)))
	return updated, nil
}

func (s *BookingService) ETicket(ctx context.Context, actor Actor, id int64) (*domain.ETicket, error) {
	booking, err := s.getAuthorized(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if booking.Status != domain.BookingStatusConfirmed {
		return nil, fmt.Errorf("booking %s: %w", booking.Reference, domain.ErrNotConfirmed)
	}

	passenger, err := s.users.GetByID(ctx, booking.PassengerID)
	if err != nil {
		return nil, err
	}
	flight, err := s.flights.GetByID(ctx, booking.FlightID)
	if err != nil {
		return nil, err
	}

	return &domain.ETicket{
		BookingReference: booking.Reference,
		PassengerName:    passenger.FullName,
		FlightNumber:     flight.FlightNumber,
		Airline:          flight.Airline,
		DepartureCity:    flight.DepartureCity,
		ArrivalCity:      flight.ArrivalCity,
		DepartureTime:    flight.DepartureTime,
		ArrivalTime:      flight.ArrivalTime,
		SeatNumber:       booking.SeatNumber,
		BookingDate:      booking.CreatedAt,
		AmountCents:      booking.AmountCents,
	}, nil
}

func (s *BookingService) getAuthorized(ctx context.Context, actor Actor, id int64) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanAccess(actor.Role, actor.UserID, booking.PassengerID) {
		return nil, fmt.Errorf("booking %d: %w", id, domain.ErrForbidden)
	}
	return booking, nil
}

// NewReference returns a fresh human-facing booking reference.
func NewReference() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "BK-" + strings.ToUpper(hex[:8])
}

var _ BookingUseCase = (*BookingService)(nil)
