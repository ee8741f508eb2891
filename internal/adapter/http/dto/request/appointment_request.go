package request

import (
	"errors"
	"strings"
	"time"

	"automobile_shop/internal/domain/entities"
)

var (
	ErrInvalidStatusValue = errors.New("invalid status value")
)

type CreateAppointmentRequest struct {
	CustomerID  string    `json:"customer_id" binding:"required"`
	VehicleID   string    `json:"vehicle_id" binding:"required"`
	ServiceIDs  []string  `json:"service_ids" binding:"required"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
}

type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
}

// ResolveStatus accepts any casing, e.g. "ongoing".
func (r TransitionRequest) ResolveStatus() (entities.AppointmentStatus, error) {
	s, ok := entities.ParseAppointmentStatus(r.Status)
	if !ok {
		return "", ErrInvalidStatusValue
	}
	return s, nil
}

type RescheduleRequest struct {
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
}

// AppointmentListQuery binds the optional filters of GET /appointments.
// The schedule window is [scheduled_from, scheduled_to) in RFC 3339.
type AppointmentListQuery struct {
	CustomerID    string    `form:"customer_id"`
	VehicleID     string    `form:"vehicle_id"`
	ServiceID     string    `form:"service_id"`
	Status        string    `form:"status"`
	ScheduledFrom time.Time `form:"scheduled_from" time_format:"2006-01-02T15:04:05Z07:00"`
	ScheduledTo   time.Time `form:"scheduled_to" time_format:"2006-01-02T15:04:05Z07:00"`
}

func (q AppointmentListQuery) ResolveStatus() (entities.AppointmentStatus, error) {
	if strings.TrimSpace(q.Status) == "" {
		return "", nil
	}
	s, ok := entities.ParseAppointmentStatus(q.Status)
	if !ok {
		return "", ErrInvalidStatusValue
	}
	return s, nil
}
