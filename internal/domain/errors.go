package domain

import "errors"

// Domain rule violations are detected before mutation and returned to the
// caller with a specific reason. Handlers map them to HTTP statuses.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicate          = errors.New("already exists")
	ErrNoSeats            = errors.New("no available seats")
	ErrAlreadyCancelled   = errors.New("booking is already cancelled")
	ErrAlreadyPaid        = errors.New("payment has already been processed")
	ErrNotConfirmed       = errors.New("booking is not confirmed")
)
