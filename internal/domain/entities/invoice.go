package entities

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the billable record attached to exactly one appointment.
//
// Storage model (DynamoDB):
//   - PK: appointment_id (guarantees 1 invoice per appointment)
//   - GSI1 (invoice_id-index): invoice_id
//
// UsedParts maps a part id to a positive count. Re-adding a part increments its
// count instead of creating a second line. Mechanics is a sorted set.
// Version increases on every write and guards whole-invoice operations.
type Invoice struct {
	ID            string          `json:"id"`
	AppointmentID string          `json:"appointment_id"`
	TaxPercentage decimal.Decimal `json:"tax_percentage"`
	LabourCost    decimal.Decimal `json:"labour_cost"`
	UsedParts     map[string]int  `json:"used_parts"`
	Mechanics     []string        `json:"mechanics"`
	Version       int64           `json:"version"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// NewInvoice builds the empty invoice provisioned for an appointment.
func NewInvoice(id, appointmentID string, now time.Time) Invoice {
	return Invoice{
		ID:            id,
		AppointmentID: appointmentID,
		TaxPercentage: decimal.Zero,
		LabourCost:    decimal.Zero,
		UsedParts:     map[string]int{},
		Mechanics:     []string{},
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (i Invoice) PartCount(partID string) int {
	return i.UsedParts[partID]
}

// PartIDs returns the recorded part ids in a stable order.
func (i Invoice) PartIDs() []string {
	ids := make([]string, 0, len(i.UsedParts))
	for id := range i.UsedParts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone returns a copy that shares no map or slice with i.
func (i Invoice) Clone() Invoice {
	out := i
	out.UsedParts = make(map[string]int, len(i.UsedParts))
	for k, v := range i.UsedParts {
		out.UsedParts[k] = v
	}
	out.Mechanics = append([]string{}, i.Mechanics...)
	return out
}

// NormalizeMechanics collapses duplicates and sorts the mechanic set.
func NormalizeMechanics(ids []string) []string {
	out := NormalizeIDs(ids)
	sort.Strings(out)
	return out
}

// InvoiceLine is one priced used-part line.
type InvoiceLine struct {
	PartID    string          `json:"part_id"`
	Count     int             `json:"count"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Amount    decimal.Decimal `json:"amount"`
}

// InvoiceTotals is the computed billing breakdown of an invoice.
type InvoiceTotals struct {
	Lines         []InvoiceLine   `json:"lines"`
	PartsTotal    decimal.Decimal `json:"parts_total"`
	LabourCost    decimal.Decimal `json:"labour_cost"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxPercentage decimal.Decimal `json:"tax_percentage"`
	Tax           decimal.Decimal `json:"tax"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
}

// UnitPriceFunc resolves the catalog unit price of a part.
type UnitPriceFunc func(partID string) (decimal.Decimal, error)

// ComputeTotals prices every line and aggregates labour and tax.
//
// Each line amount is rounded to currency precision before summing so rounding
// does not drift across many small parts. Tax is rounded once on the subtotal.
func (i Invoice) ComputeTotals(unitPrice UnitPriceFunc) (InvoiceTotals, error) {
	totals := InvoiceTotals{
		Lines:         make([]InvoiceLine, 0, len(i.UsedParts)),
		PartsTotal:    decimal.Zero,
		LabourCost:    i.LabourCost,
		TaxPercentage: i.TaxPercentage,
	}

	for _, partID := range i.PartIDs() {
		count := i.UsedParts[partID]
		price, err := unitPrice(partID)
		if err != nil {
			return InvoiceTotals{}, fmt.Errorf("price part %s: %w", partID, err)
		}
		amount := RoundCurrency(price.Mul(decimal.NewFromInt(int64(count))))
		totals.Lines = append(totals.Lines, InvoiceLine{
			PartID:    partID,
			Count:     count,
			UnitPrice: price,
			Amount:    amount,
		})
		totals.PartsTotal = totals.PartsTotal.Add(amount)
	}

	totals.Subtotal = totals.PartsTotal.Add(i.LabourCost)
	totals.Tax = RoundCurrency(totals.Subtotal.Mul(i.TaxPercentage).Div(hundred))
	totals.GrandTotal = totals.Subtotal.Add(totals.Tax)
	return totals, nil
}
