package response

import (
	"automobile_shop/internal/domain/entities"
	"time"
)

type UsedPartResponse struct {
	PartID string `json:"part_id"`
	Count  int    `json:"count"`
}

type InvoiceResponse struct {
	InvoiceID     string             `json:"invoice_id"`
	AppointmentID string             `json:"appointment_id"`
	LabourCost    string             `json:"labour_cost"`
	TaxPercentage string             `json:"tax_percentage"`
	UsedParts     []UsedPartResponse `json:"used_parts"`
	Mechanics     []string           `json:"mechanics"`
	Version       int64              `json:"version"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// FromInvoice lists used parts ordered by part id.
func FromInvoice(inv entities.Invoice) InvoiceResponse {
	parts := make([]UsedPartResponse, 0, len(inv.UsedParts))
	for _, id := range inv.PartIDs() {
		parts = append(parts, UsedPartResponse{PartID: id, Count: inv.UsedParts[id]})
	}
	mechanics := inv.Mechanics
	if mechanics == nil {
		mechanics = []string{}
	}
	return InvoiceResponse{
		InvoiceID:     inv.ID,
		AppointmentID: inv.AppointmentID,
		LabourCost:    inv.LabourCost.StringFixed(entities.CurrencyPrecision),
		TaxPercentage: inv.TaxPercentage.String(),
		UsedParts:     parts,
		Mechanics:     mechanics,
		Version:       inv.Version,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

func FromInvoices(items []entities.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, 0, len(items))
	for _, inv := range items {
		out = append(out, FromInvoice(inv))
	}
	return out
}

type InvoiceLineResponse struct {
	PartID    string `json:"part_id"`
	Name      string `json:"name,omitempty"`
	Count     int    `json:"count"`
	UnitPrice string `json:"unit_price"`
	Amount    string `json:"amount"`
}

type TotalsResponse struct {
	InvoiceID     string                `json:"invoice_id"`
	Lines         []InvoiceLineResponse `json:"lines"`
	PartsTotal    string                `json:"parts_total"`
	LabourCost    string                `json:"labour_cost"`
	Subtotal      string                `json:"subtotal"`
	TaxPercentage string                `json:"tax_percentage"`
	Tax           string                `json:"tax"`
	GrandTotal    string                `json:"grand_total"`
}

func FromTotals(invoiceID string, t entities.InvoiceTotals) TotalsResponse {
	lines := make([]InvoiceLineResponse, 0, len(t.Lines))
	for _, l := range t.Lines {
		lines = append(lines, InvoiceLineResponse{
			PartID:    l.PartID,
			Count:     l.Count,
			UnitPrice: money(l.UnitPrice),
			Amount:    money(l.Amount),
		})
	}
	return TotalsResponse{
		InvoiceID:     invoiceID,
		Lines:         lines,
		PartsTotal:    money(t.PartsTotal),
		LabourCost:    money(t.LabourCost),
		Subtotal:      money(t.Subtotal),
		TaxPercentage: t.TaxPercentage.String(),
		Tax:           money(t.Tax),
		GrandTotal:    money(t.GrandTotal),
	}
}

type MechanicResponse struct {
	MechanicID string `json:"mechanic_id"`
	Name       string `json:"name"`
}

type PrintableInvoiceResponse struct {
	TotalsResponse
	AppointmentID string             `json:"appointment_id"`
	CustomerID    string             `json:"customer_id"`
	VehicleID     string             `json:"vehicle_id"`
	ScheduledAt   time.Time          `json:"scheduled_at"`
	Mechanics     []MechanicResponse `json:"mechanics"`
	FinalizedAt   time.Time          `json:"finalized_at"`
}

func FromPrintableInvoice(p entities.PrintableInvoice) PrintableInvoiceResponse {
	lines := make([]InvoiceLineResponse, 0, len(p.Lines))
	for _, l := range p.Lines {
		lines = append(lines, InvoiceLineResponse{
			PartID:    l.PartID,
			Name:      l.Name,
			Count:     l.Count,
			UnitPrice: money(l.UnitPrice),
			Amount:    money(l.Amount),
		})
	}
	mechanics := make([]MechanicResponse, 0, len(p.Mechanics))
	for _, m := range p.Mechanics {
		mechanics = append(mechanics, MechanicResponse{MechanicID: m.MechanicID, Name: m.Name})
	}
	return PrintableInvoiceResponse{
		TotalsResponse: TotalsResponse{
			InvoiceID:     p.InvoiceID,
			Lines:         lines,
			PartsTotal:    money(p.PartsTotal),
			LabourCost:    money(p.LabourCost),
			Subtotal:      money(p.Subtotal),
			TaxPercentage: p.TaxPercentage.String(),
			Tax:           money(p.Tax),
			GrandTotal:    money(p.GrandTotal),
		},
		AppointmentID: p.AppointmentID,
		CustomerID:    p.CustomerID,
		VehicleID:     p.VehicleID,
		ScheduledAt:   p.ScheduledAt,
		Mechanics:     mechanics,
		FinalizedAt:   p.FinalizedAt,
	}
}
