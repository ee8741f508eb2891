package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// PrintableInvoice is the immutable finalized view of an invoice used for print/export.
// It is a projection: producing it never changes the invoice.
type PrintableInvoice struct {
	InvoiceID     string              `json:"invoice_id"`
	AppointmentID string              `json:"appointment_id"`
	CustomerID    string              `json:"customer_id"`
	VehicleID     string              `json:"vehicle_id"`
	ScheduledAt   time.Time           `json:"scheduled_at"`
	Lines         []PrintableLine     `json:"lines"`
	Mechanics     []PrintableMechanic `json:"mechanics"`
	PartsTotal    decimal.Decimal     `json:"parts_total"`
	LabourCost    decimal.Decimal     `json:"labour_cost"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	TaxPercentage decimal.Decimal     `json:"tax_percentage"`
	Tax           decimal.Decimal     `json:"tax"`
	GrandTotal    decimal.Decimal     `json:"grand_total"`
	FinalizedAt   time.Time           `json:"finalized_at"`
}

type PrintableLine struct {
	PartID    string          `json:"part_id"`
	Name      string          `json:"name"`
	Count     int             `json:"count"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Amount    decimal.Decimal `json:"amount"`
}

type PrintableMechanic struct {
	MechanicID string `json:"mechanic_id"`
	Name       string `json:"name"`
}
