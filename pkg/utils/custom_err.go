package utils

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidPreferences  = errors.New("invalid trip preferences")
	ErrUnknownDestination  = errors.New("unknown destination")
	ErrInvalidDuration     = errors.New("trip duration must be at least one day")
	ErrDraftNotFound       = errors.New("draft not found")
	ErrDestinationNotFound = errors.New("destination not found")
	ErrDatabaseError       = errors.New("database error")
	ErrCatalogUnavailable  = errors.New("catalog unavailable")
)
