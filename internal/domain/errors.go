package domain

import "errors"

// Error kinds shared across the service layer. Wrap them with %w so callers
// can match with errors.Is without parsing messages.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrFailedPrecondition = errors.New("failed precondition")
	ErrNoSeats            = errors.New("not enough available seats")
)
