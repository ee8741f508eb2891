package request

import "encoding/json"

// InvoicePaymentCreateRequest is the payload for the create-and-approve payment route.
//
// `mp_payload` is stored as-is (raw JSON) to support varying Mercado Pago schemas.

type InvoicePaymentCreateRequest struct {
	MPPayload json.RawMessage `json:"mp_payload"`
}
