package response

import (
	"automobile_shop/internal/domain/entities"
	"time"
)

type InvoicePaymentResponse struct {
	PaymentID     string    `json:"payment_id"`
	ID            string    `json:"id"`
	InvoiceID     string    `json:"invoice_id"`
	AppointmentID string    `json:"appointment_id"`
	Amount        string    `json:"amount"`
	PaymentDate   time.Time `json:"payment_date"`
	Status        string    `json:"status"`

	MPPayloadRaw string                 `json:"mp_payload_raw,omitempty"`
	MPPayload    map[string]interface{} `json:"mp_payload,omitempty"`
}

func FromInvoicePayment(p entities.InvoicePayment) InvoicePaymentResponse {
	return InvoicePaymentResponse{
		PaymentID:     p.ID,
		ID:            p.ID,
		InvoiceID:     p.InvoiceID,
		AppointmentID: p.AppointmentID,
		Amount:        p.Amount.StringFixed(entities.CurrencyPrecision),
		PaymentDate:   p.Date,
		Status:        string(p.Status),
		MPPayloadRaw:  string(p.MPPayloadRaw),
		MPPayload:     p.MPPayload,
	}
}
