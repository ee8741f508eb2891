package memory

import (
	"context"
	"time"

	"automobile_shop/internal/domain/entities"
	"automobile_shop/internal/usecase/interfaces"
)

type InvoiceRepository struct {
	s *Store
}

var _ interfaces.IInvoiceRepository = (*InvoiceRepository)(nil)

func NewInvoiceRepository(s *Store) *InvoiceRepository {
	return &InvoiceRepository{s: s}
}

func (r *InvoiceRepository) CreateIfAbsent(_ context.Context, inv entities.Invoice) (entities.Invoice, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if existing, ok := r.s.invoices[inv.AppointmentID]; ok {
		return existing.Clone(), false, nil
	}
	if inv.UsedParts == nil {
		inv.UsedParts = map[string]int{}
	}
	r.s.invoices[inv.AppointmentID] = inv.Clone()
	r.s.invoiceIndex[inv.ID] = inv.AppointmentID
	return inv.Clone(), true, nil
}

func (r *InvoiceRepository) GetByID(_ context.Context, id string) (entities.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	appointmentID, ok := r.s.invoiceIndex[id]
	if !ok {
		return entities.Invoice{}, nil
	}
	return r.s.invoices[appointmentID].Clone(), nil
}

func (r *InvoiceRepository) GetByAppointmentID(_ context.Context, appointmentID string) (entities.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invoices[appointmentID]
	if !ok {
		return entities.Invoice{}, nil
	}
	return inv.Clone(), nil
}

func (r *InvoiceRepository) UpdateCharges(_ context.Context, appointmentID string, charges interfaces.ChargesUpdate) (entities.Invoice, error) {
	return r.update(appointmentID, func(inv *entities.Invoice) {
		if charges.LabourCost != nil {
			inv.LabourCost = *charges.LabourCost
		}
		if charges.TaxPercentage != nil {
			inv.TaxPercentage = *charges.TaxPercentage
		}
	})
}

func (r *InvoiceRepository) UpdateMechanics(_ context.Context, appointmentID string, mechanicIDs []string) (entities.Invoice, error) {
	return r.update(appointmentID, func(inv *entities.Invoice) {
		inv.Mechanics = append([]string{}, mechanicIDs...)
	})
}

func (r *InvoiceRepository) update(appointmentID string, apply func(inv *entities.Invoice)) (entities.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invoices[appointmentID]
	if !ok {
		return entities.Invoice{}, nil
	}
	inv = inv.Clone()
	apply(&inv)
	touch(&inv)
	r.s.invoices[appointmentID] = inv
	return inv.Clone(), nil
}

func (r *InvoiceRepository) ApplyPartChange(_ context.Context, appointmentID string, change interfaces.PartChange) (entities.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invoices[appointmentID]
	if !ok || inv.PartCount(change.PartID) != change.ExpectedCount {
		return entities.Invoice{}, interfaces.ErrConditionFailed
	}

	switch delta := change.Delta(); {
	case delta > 0:
		if _, err := r.s.takeStock(change.PartID, delta); err != nil {
			return entities.Invoice{}, err
		}
	case delta < 0:
		r.s.restoreStock(change.PartID, -delta)
	}

	inv = inv.Clone()
	if change.NewCount == 0 {
		delete(inv.UsedParts, change.PartID)
	} else {
		inv.UsedParts[change.PartID] = change.NewCount
	}
	touch(&inv)
	r.s.invoices[appointmentID] = inv
	return inv.Clone(), nil
}

func (r *InvoiceRepository) Delete(_ context.Context, inv entities.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.invoices[inv.AppointmentID]
	if !ok || stored.Version != inv.Version {
		return interfaces.ErrConditionFailed
	}
	for partID, count := range stored.UsedParts {
		r.s.restoreStock(partID, count)
	}
	delete(r.s.invoices, inv.AppointmentID)
	delete(r.s.invoiceIndex, stored.ID)
	return nil
}

func touch(inv *entities.Invoice) {
	inv.Version++
	inv.UpdatedAt = time.Now().UTC()
}
