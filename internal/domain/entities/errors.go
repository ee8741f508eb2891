package entities

import (
	"errors"
	"fmt"
)

// Engine error taxonomy. Every failure is local (validation or resource conflict);
// nothing is retried automatically, callers decide.
var (
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrAppointmentClosed   = errors.New("appointment is closed")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrDuplicateInvoice    = errors.New("invoice already exists for appointment")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrCatalogLookupFailed = errors.New("catalog lookup failed")
)

// InvalidTransitionError identifies the status an appointment was in and the one requested.
type InvalidTransitionError struct {
	From AppointmentStatus
	To   AppointmentStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// AppointmentClosedError rejects a change to an appointment in a terminal status.
// It matches both ErrAppointmentClosed and ErrInvalidTransition.
type AppointmentClosedError struct {
	Status AppointmentStatus
}

func (e *AppointmentClosedError) Error() string {
	return fmt.Sprintf("appointment is closed with status %s", e.Status)
}

func (e *AppointmentClosedError) Is(target error) bool {
	return target == ErrAppointmentClosed || target == ErrInvalidTransition
}
