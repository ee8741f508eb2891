package request

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCharges = errors.New("labour_cost or tax_percentage is required")
)

type CreateInvoiceRequest struct {
	AppointmentID string `json:"appointment_id" binding:"required"`
}

// PartCountRequest carries the units to add (POST) or the absolute count (PUT).
type PartCountRequest struct {
	Count *int `json:"count" binding:"required"`
}

// ChargesRequest updates labour cost and/or tax percentage. Amounts accept JSON
// numbers or strings ("120.50").
type ChargesRequest struct {
	LabourCost    *decimal.Decimal `json:"labour_cost"`
	TaxPercentage *decimal.Decimal `json:"tax_percentage"`
}

func (r ChargesRequest) Validate() error {
	if r.LabourCost == nil && r.TaxPercentage == nil {
		return ErrEmptyCharges
	}
	return nil
}

// InvoiceListQuery binds the optional filters of GET /invoices.
type InvoiceListQuery struct {
	CustomerID string `form:"customer_id"`
	VehicleID  string `form:"vehicle_id"`
}

type MechanicsRequest struct {
	MechanicIDs []string `json:"mechanic_ids"`
}
