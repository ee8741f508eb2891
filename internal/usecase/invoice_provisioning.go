package usecase

import (
	"automobile_shop/internal/domain/entities"
	"automobile_shop/internal/usecase/interfaces"
	"context"
	"time"

	"github.com/google/uuid"
)

// provisionInvoice is the atomic insert-if-absent keyed by appointment id.
// The loser of a concurrent first call receives the winner's invoice.
func provisionInvoice(ctx context.Context, repo interfaces.IInvoiceRepository, appointmentID string, now time.Time) (entities.Invoice, bool, error) {
	inv := entities.NewInvoice(uuid.NewString(), appointmentID, now)
	stored, created, err := repo.CreateIfAbsent(ctx, inv)
	if err != nil {
		return entities.Invoice{}, false, err
	}
	// The existing invoice vanished between the failed insert and the re-read.
	if stored.ID == "" {
		return entities.Invoice{}, false, entities.ErrDuplicateInvoice
	}
	return stored, created, nil
}
