package services

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidCredentials is returned when the supplied admin code is wrong
	ErrInvalidCredentials = errors.New("invalid admin code")
	// ErrUnauthorized is returned when a session is missing, expired or forged
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound is returned when operating on a prize or record that does not exist
	ErrNotFound = errors.New("not found")
	// ErrCatalogEmpty is returned when a spin is attempted with no prizes configured
	ErrCatalogEmpty = errors.New("no prizes configured")
	// ErrSpinConflict is returned when a concurrent spin for the same DNI won the write
	ErrSpinConflict = errors.New("concurrent spin for the same DNI")
)

// ValidationError is a user-correctable input problem. Message is shown to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

// RateLimitedError is returned while a DNI is cooling down
type RateLimitedError struct {
	RetryIn         time.Duration
	NextAvailableAt time.Time
}

func newRateLimited(nextAvailableAt, now time.Time) *RateLimitedError {
	return &RateLimitedError{RetryIn: nextAvailableAt.Sub(now), NextAvailableAt: nextAvailableAt}
}

// RetryInMs returns the remaining wait in milliseconds
func (e *RateLimitedError) RetryInMs() int64 {
	return e.RetryIn.Milliseconds()
}

// Hours returns the whole hours of the remaining wait
func (e *RateLimitedError) Hours() int64 {
	return e.RetryInMs() / int64(time.Hour/time.Millisecond)
}

// Minutes returns the minutes left after Hours, rounded up
func (e *RateLimitedError) Minutes() int64 {
	const minuteMs = int64(time.Minute / time.Millisecond)
	rem := e.RetryInMs() % int64(time.Hour/time.Millisecond)
	return (rem + minuteMs - 1) / minuteMs
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("Este DNI ya giró. Faltan %dh %dm para volver a tirar.", e.Hours(), e.Minutes())
}
