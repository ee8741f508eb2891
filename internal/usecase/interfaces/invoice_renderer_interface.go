package interfaces

import (
	"automobile_shop/internal/domain/entities"
	"context"
)

// IInvoiceRenderer turns a finalized invoice into a printable document.
type IInvoiceRenderer interface {
	RenderPDF(ctx context.Context, inv entities.PrintableInvoice) ([]byte, error)
}
