package domain

import (
	"errors"
	"fmt"
)

// Error classes. Every relay failure wraps exactly one of these.
var (
	// ErrConnection is returned when an rVASP address cannot be reached at dial time.
	ErrConnection = errors.New("connection error")
	// ErrStream is returned when an open LiveUpdates stream drops.
	ErrStream = errors.New("stream error")
	// ErrLookup is returned for unknown VASP ids or sessions without a binding.
	ErrLookup = errors.New("lookup error")
	// ErrUsage is returned when a session asks for something out of order or malformed.
	ErrUsage = errors.New("usage error")
)

var (
	ErrVASPNotFound  = fmt.Errorf("%w: vasp not found", ErrLookup)
	ErrNoContext     = fmt.Errorf("%w: no vasp context bound to session", ErrUsage)
	ErrInvalidAmount = fmt.Errorf("%w: amount must be greater than zero", ErrUsage)
	ErrClosed        = fmt.Errorf("%w: transport closed", ErrStream)
)

// ConnectionError records the address that could not be reached.
type ConnectionError struct {
	Address string
	Err     error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error: %s: %v", e.Address, e.Err)
}

func (e *ConnectionError) Unwrap() []error { return []error{ErrConnection, e.Err} }

// StreamError records the address whose stream dropped.
type StreamError struct {
	Address string
	Err     error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("stream error: %s: %v", e.Address, e.Err)
}

func (e *StreamError) Unwrap() []error { return []error{ErrStream, e.Err} }

// LookupError records the id that was not found.
type LookupError struct {
	ID  string
	Err error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%v: %q", e.Err, e.ID)
}

func (e *LookupError) Unwrap() []error { return []error{ErrLookup, e.Err} }

// Usage returns a usage error with the given message.
func Usage(msg string) error {
	return fmt.Errorf("%w: %s", ErrUsage, msg)
}
