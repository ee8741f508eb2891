package interfaces

import (
	"context"

	"github.com/shopspring/decimal"
)

// ICatalog is the read-only view over the part and mechanic registries.
// Unknown ids fail with ErrNotFound.

type ICatalog interface {
	UnitPrice(ctx context.Context, partID string) (decimal.Decimal, error)
	PartName(ctx context.Context, partID string) (string, error)
	MechanicName(ctx context.Context, mechanicID string) (string, error)
}
