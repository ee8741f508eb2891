package interfaces

import (
	"automobile_shop/internal/domain/entities"
	"context"
	"time"
)

// AppointmentFilter narrows List results. Empty fields match everything.
// ScheduledFrom is inclusive, ScheduledTo exclusive.
type AppointmentFilter struct {
	CustomerID    string
	VehicleID     string
	ServiceID     string
	Status        entities.AppointmentStatus
	ScheduledFrom time.Time
	ScheduledTo   time.Time
}

func (f AppointmentFilter) Matches(a entities.Appointment) bool {
	switch {
	case f.CustomerID != "" && a.CustomerID != f.CustomerID,
		f.VehicleID != "" && a.VehicleID != f.VehicleID,
		f.Status != "" && a.Status != f.Status,
		!f.ScheduledFrom.IsZero() && a.ScheduledAt.Before(f.ScheduledFrom),
		!f.ScheduledTo.IsZero() && !a.ScheduledAt.Before(f.ScheduledTo):
		return false
	}
	if f.ServiceID == "" {
		return true
	}
	for _, id := range a.ServiceIDs {
		if id == f.ServiceID {
			return true
		}
	}
	return false
}

// IAppointmentRepository abstracts persistence for Appointment.
//
// Lookups return a zero Appointment (empty ID) when nothing matches.
// Status and schedule updates are conditional on the status the caller read and
// fail with ErrConditionFailed when it changed in between.

type IAppointmentRepository interface {
	Create(ctx context.Context, a entities.Appointment) (entities.Appointment, error)
	GetByID(ctx context.Context, id string) (entities.Appointment, error)
	List(ctx context.Context, filter AppointmentFilter) ([]entities.Appointment, error)
	UpdateStatus(ctx context.Context, id string, from, to entities.AppointmentStatus) (entities.Appointment, error)
	UpdateScheduledAt(ctx context.Context, id string, expected entities.AppointmentStatus, scheduledAt time.Time) (entities.Appointment, error)
}
