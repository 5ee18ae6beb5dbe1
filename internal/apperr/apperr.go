// Package apperr holds the error kinds shared by the store, the services and
// the HTTP layer.
package apperr

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned for malformed or out-of-range request data.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnavailable is returned when the store cannot be reached.
	ErrUnavailable = errors.New("store unavailable")
	// ErrTimeout is returned when a store operation exceeds its deadline.
	ErrTimeout = errors.New("store timeout")
)

// NotFound wraps ErrNotFound with a formatted message.
func NotFound(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}

// Invalid wraps ErrInvalidInput with a formatted message.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidInput)
}

// Kind returns a short machine-readable name for err.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrUnavailable):
		return "unavailable"
	default:
		return "internal"
	}
}

// FromStore classifies a raw driver error. Deadline and cancellation errors
// become ErrTimeout, network failures become ErrUnavailable and everything
// else is wrapped unchanged.
func FromStore(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrTimeout) || errors.Is(err, ErrUnavailable) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %v: %w", op, err, ErrTimeout)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return fmt.Errorf("%s: %v: %w", op, err, ErrTimeout)
		}
		return fmt.Errorf("%s: %v: %w", op, err, ErrUnavailable)
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "connection refused") || strings.Contains(msg, "failed to connect") ||
		strings.Contains(msg, "database is closed") || strings.Contains(msg, "sql: database is closed") {
		return fmt.Errorf("%s: %v: %w", op, err, ErrUnavailable)
	}
	return fmt.Errorf("%s: %w", op, err)
}
