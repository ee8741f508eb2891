package interfaces

import (
	"context"
	"encoding/json"
)

// IPaymentGateway charges a payer through an external provider (Mercado Pago).
// providerResponse is kept verbatim on the stored payment.
type IPaymentGateway interface {
	CreatePayment(ctx context.Context, requestPayload json.RawMessage) (providerPaymentID string, providerStatus string, providerResponse json.RawMessage, err error)
}
