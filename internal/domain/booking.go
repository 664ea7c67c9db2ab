package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
)

// Booking holds one seat on a flight from the moment it is created,
// regardless of whether it has been paid for. AmountCents is copied from
// the flight price at creation time and never recomputed.
type Booking struct {
	ID            int64
	Reference     string
	PassengerID   int64
	FlightID      int64
	SeatNumber    string
	Status        BookingStatus
	PaymentStatus PaymentStatus
	PaymentID     string
	AmountCents   int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ETicket is a read-only snapshot of a confirmed booking together with its
// flight and passenger data at the time of the request.
type ETicket struct {
	BookingReference string
	PassengerName    string
	FlightNumber     string
	Airline          string
	DepartureCity    string
	ArrivalCity      string
	DepartureTime    time.Time
	ArrivalTime      time.Time
	SeatNumber       string
	BookingDate      time.Time
	AmountCents      int64
}
