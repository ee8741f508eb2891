package entities

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents the payment processing outcome.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusDenied   PaymentStatus = "denied"
)

// InvoicePayment is a payment charged for an invoice's grand total.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (invoice_id-index): invoice_id
//
// MercadoPago payload:
//   - MPPayloadRaw keeps the provider response body (JSON) for traceability/audit.
//   - MPPayload is the parsed representation, useful for querying/debugging.
type InvoicePayment struct {
	ID            string          `json:"id"`
	InvoiceID     string          `json:"invoice_id"`
	AppointmentID string          `json:"appointment_id"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	Status        PaymentStatus   `json:"status"`

	MPPayloadRaw json.RawMessage        `json:"mp_payload_raw,omitempty"`
	MPPayload    map[string]interface{} `json:"mp_payload,omitempty"`
}
