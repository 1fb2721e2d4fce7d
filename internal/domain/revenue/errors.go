package revenue

import "errors"

var (
	// ErrNoContracts is returned when no output rows exist to average over.
	ErrNoContracts = errors.New("no contracts in revenue output")
	// ErrInvalidPeriod is returned for a reporting period with missing or inverted bounds.
	ErrInvalidPeriod = errors.New("invalid reporting period")
	// ErrUnknownPolicy is returned when a negative overlap policy name is not recognised.
	ErrUnknownPolicy = errors.New("unknown negative overlap policy")
)
