package service

import (
	"errors"
	"fmt"
)

// Domain errors mapped to HTTP statuses by the handlers.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("not allowed")
	ErrInvalidInput = errors.New("invalid input")

	// ErrScheduleMisconfigured marks a schedule the evaluator cannot interpret.
	// The scheduler logs and skips such schedules.
	ErrScheduleMisconfigured = errors.New("schedule misconfigured")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
