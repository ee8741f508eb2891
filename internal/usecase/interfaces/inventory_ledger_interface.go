package interfaces

import "context"

// IInventoryLedger tracks quantity available per part.
//
// Quantities never go below zero: Decrement fails with entities.ErrInsufficientStock,
// both moves with entities.ErrInvalidAmount on a non-positive count.
// QuantityAvailable and Decrement fail with ErrNotFound on unknown parts; Increment
// creates the row.
//
// Decrement and Increment are the single-part form of the moves IInvoiceRepository
// performs inside its atomic part and discard writes; each adapter builds both from
// one primitive. The engine itself only reads stock through QuantityAvailable.

type IInventoryLedger interface {
	QuantityAvailable(ctx context.Context, partID string) (int, error)
	Decrement(ctx context.Context, partID string, count int) (int, error)
	Increment(ctx context.Context, partID string, count int) (int, error)
}
