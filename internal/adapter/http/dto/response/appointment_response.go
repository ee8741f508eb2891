package response

import (
	"automobile_shop/internal/domain/entities"
	"time"
)

type AppointmentResponse struct {
	AppointmentID string    `json:"appointment_id"`
	CustomerID    string    `json:"customer_id"`
	VehicleID     string    `json:"vehicle_id"`
	ServiceIDs    []string  `json:"service_ids"`
	ScheduledAt   time.Time `json:"scheduled_at"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func FromAppointment(a entities.Appointment) AppointmentResponse {
	services := a.ServiceIDs
	if services == nil {
		services = []string{}
	}
	return AppointmentResponse{
		AppointmentID: a.ID,
		CustomerID:    a.CustomerID,
		VehicleID:     a.VehicleID,
		ServiceIDs:    services,
		ScheduledAt:   a.ScheduledAt,
		Status:        string(a.Status),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func FromAppointments(items []entities.Appointment) []AppointmentResponse {
	out := make([]AppointmentResponse, 0, len(items))
	for _, a := range items {
		out = append(out, FromAppointment(a))
	}
	return out
}

// TransitionResponse carries the invoice provisioned when the appointment completed.
type TransitionResponse struct {
	Appointment AppointmentResponse `json:"appointment"`
	Invoice     *InvoiceResponse    `json:"invoice,omitempty"`
}

func FromTransition(a entities.Appointment, inv *entities.Invoice) TransitionResponse {
	out := TransitionResponse{Appointment: FromAppointment(a)}
	if inv != nil {
		r := FromInvoice(*inv)
		out.Invoice = &r
	}
	return out
}
