package domain

import "time"

type Flight struct {
	ID             int64
	FlightNumber   string
	Airline        string
	DepartureCity  string
	ArrivalCity    string
	DepartureTime  time.Time
	ArrivalTime    time.Time
	PriceCents     int64
	AvailableSeats int
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
