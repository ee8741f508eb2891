package interfaces

import (
	"automobile_shop/internal/domain/entities"
	"context"
)

// IInvoicePaymentRepository abstracts persistence for InvoicePayment.

type IInvoicePaymentRepository interface {
	Create(ctx context.Context, p entities.InvoicePayment) (entities.InvoicePayment, error)
	GetByID(ctx context.Context, id string) (entities.InvoicePayment, error)
	ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.InvoicePayment, error)
}
