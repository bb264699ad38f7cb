package reminder

import (
	"errors"
	"fmt"
)

// TransportError means the email transport did not confirm delivery.
// The threshold stays pending and is retried on a later scan.
type TransportError struct {
	AppointmentID uint
	Offset        int
	Err           error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("reminder transport: appointment %d offset %d: %v", e.AppointmentID, e.Offset, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// PersistenceError means a store read or write failed for one appointment.
// The appointment is skipped for the rest of the scan.
type PersistenceError struct {
	AppointmentID uint
	Op            string
	Err           error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("reminder persistence: %s appointment %d: %v", e.Op, e.AppointmentID, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// ConfigurationError means an appointment's stored offsets could not be used.
// The appointment is treated as having no offsets.
type ConfigurationError struct {
	AppointmentID uint
	Err           error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("reminder configuration: appointment %d: %v", e.AppointmentID, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}

func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
