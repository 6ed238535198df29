// Package apperr defines the error kinds surfaced at the service boundary.
// Storage and transport failures are translated into one of these kinds
// before they reach a caller; handlers map them to HTTP statuses.
package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrNotFound                = errors.New("not found")
	ErrInvalidArgument         = errors.New("invalid argument")
	ErrInvalidTransition       = errors.New("invalid transition")
	ErrExpired                 = errors.New("expired")
	ErrConflict                = errors.New("conflict")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrInvalidUpstreamResponse = errors.New("invalid upstream response")
	ErrUpstreamUnavailable     = errors.New("upstream unavailable")
)

// Wrap attaches a kind to a formatted message so callers can check it
// with errors.Is while still reading a useful description.
func Wrap(kind error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), kind)
}

// HTTPStatus maps an error kind to the status code the API returns for it.
// Unknown errors fall through to 500.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrInvalidArgument):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrInvalidTransition):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, ErrExpired):
		return fiber.StatusGone
	case errors.Is(err, ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, ErrInvalidUpstreamResponse):
		return fiber.StatusBadGateway
	case errors.Is(err, ErrUpstreamUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
