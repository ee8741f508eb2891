package interfaces

import (
	"automobile_shop/internal/domain/entities"
	"context"

	"github.com/shopspring/decimal"
)

// PartChange moves one used-part line from ExpectedCount to NewCount.
// NewCount 0 removes the line; ExpectedCount 0 means the line must not exist yet.
type PartChange struct {
	PartID        string
	ExpectedCount int
	NewCount      int
}

// Delta is the number of units taken from inventory (negative when restored).
func (c PartChange) Delta() int {
	return c.NewCount - c.ExpectedCount
}

// InvoiceFilter selects invoices through the appointments they belong to.
type InvoiceFilter struct {
	CustomerID string
	VehicleID  string
}

// ChargesUpdate overwrites the charge fields that are set; nil fields keep their value.
type ChargesUpdate struct {
	LabourCost    *decimal.Decimal
	TaxPercentage *decimal.Decimal
}

func (c ChargesUpdate) IsEmpty() bool {
	return c.LabourCost == nil && c.TaxPercentage == nil
}

// IInvoiceRepository abstracts persistence for Invoice.
//
// The invoice must be able to:
//   - be inserted at most once per appointment (CreateIfAbsent)
//   - change a used-part line together with the inventory ledger as one atomic unit
//   - be discarded returning every used part to inventory
//
// Lookups return a zero Invoice (empty ID) when nothing matches.

type IInvoiceRepository interface {
	// CreateIfAbsent stores inv unless an invoice already exists for inv.AppointmentID.
	// It returns the stored invoice and whether this call created it.
	CreateIfAbsent(ctx context.Context, inv entities.Invoice) (entities.Invoice, bool, error)
	GetByID(ctx context.Context, id string) (entities.Invoice, error)
	GetByAppointmentID(ctx context.Context, appointmentID string) (entities.Invoice, error)
	// UpdateCharges writes every set field of charges in one update.
	UpdateCharges(ctx context.Context, appointmentID string, charges ChargesUpdate) (entities.Invoice, error)
	UpdateMechanics(ctx context.Context, appointmentID string, mechanicIDs []string) (entities.Invoice, error)
	// ApplyPartChange fails with ErrConditionFailed when the line no longer holds
	// ExpectedCount and with entities.ErrInsufficientStock when inventory cannot cover Delta.
	ApplyPartChange(ctx context.Context, appointmentID string, change PartChange) (entities.Invoice, error)
	// Delete removes inv and restores inv.UsedParts to inventory. It fails with
	// ErrConditionFailed when the stored version differs from inv.Version.
	Delete(ctx context.Context, inv entities.Invoice) error
}
