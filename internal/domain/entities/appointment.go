package entities

import (
	"strings"
	"time"
)

// AppointmentStatus represents the lifecycle of a service appointment.
//
// Domain notes:
//   - BOOKED is the initial status.
//   - COMPLETED is terminal for billing purposes and requires an invoice.
//   - CANCELLED is terminal.
type AppointmentStatus string

const (
	AppointmentStatusBooked    AppointmentStatus = "BOOKED"
	AppointmentStatusOngoing   AppointmentStatus = "ONGOING"
	AppointmentStatusCompleted AppointmentStatus = "COMPLETED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
)

// AppointmentStatuses lists every status in lifecycle order.
var AppointmentStatuses = []AppointmentStatus{
	AppointmentStatusBooked,
	AppointmentStatusOngoing,
	AppointmentStatusCompleted,
	AppointmentStatusCancelled,
}

var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusBooked:  {AppointmentStatusOngoing, AppointmentStatusCancelled},
	AppointmentStatusOngoing: {AppointmentStatusCompleted, AppointmentStatusCancelled},
}

// ParseAppointmentStatus accepts any casing and surrounding spaces.
func ParseAppointmentStatus(raw string) (AppointmentStatus, bool) {
	s := AppointmentStatus(strings.ToUpper(strings.TrimSpace(raw)))
	return s, s.IsValid()
}

func (s AppointmentStatus) IsValid() bool {
	for _, known := range AppointmentStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentStatusCompleted || s == AppointmentStatusCancelled
}

// CanTransitionTo reports whether next is reachable from s in one step.
// A request for the current status is not a transition.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ValidateTransition returns an *InvalidTransitionError when from -> to is not allowed.
func ValidateTransition(from, to AppointmentStatus) error {
	if !from.CanTransitionTo(to) {
		return &InvalidTransitionError{From: from, To: to}
	}
	return nil
}

// Appointment is a scheduled service engagement for one customer/vehicle.
//
// Storage model (DynamoDB):
//   - PK: id
//
// CustomerID, VehicleID and ServiceIDs reference external catalogs and are not
// resolved by the engine. ServiceIDs keeps insertion order for display only.
type Appointment struct {
	ID          string            `json:"id"`
	CustomerID  string            `json:"customer_id"`
	VehicleID   string            `json:"vehicle_id"`
	ServiceIDs  []string          `json:"service_ids"`
	ScheduledAt time.Time         `json:"scheduled_at"`
	Status      AppointmentStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// CanReschedule reports whether ScheduledAt may still change.
func (a Appointment) CanReschedule() bool {
	return !a.Status.IsTerminal()
}

// NormalizeIDs trims, drops empty values and removes duplicates keeping first-seen order.
func NormalizeIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
