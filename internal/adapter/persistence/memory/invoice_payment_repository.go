package memory

import (
	"context"
	"sort"

	"automobile_shop/internal/domain/entities"
	"automobile_shop/internal/usecase/interfaces"
)

type InvoicePaymentRepository struct {
	s *Store
}

var _ interfaces.IInvoicePaymentRepository = (*InvoicePaymentRepository)(nil)

func NewInvoicePaymentRepository(s *Store) *InvoicePaymentRepository {
	return &InvoicePaymentRepository{s: s}
}

func (r *InvoicePaymentRepository) Create(_ context.Context, p entities.InvoicePayment) (entities.InvoicePayment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.payments[p.ID]; ok {
		return entities.InvoicePayment{}, interfaces.ErrConditionFailed
	}
	r.s.payments[p.ID] = p
	return p, nil
}

func (r *InvoicePaymentRepository) GetByID(_ context.Context, id string) (entities.InvoicePayment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.payments[id], nil
}

func (r *InvoicePaymentRepository) ListByInvoiceID(_ context.Context, invoiceID string) ([]entities.InvoicePayment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entities.InvoicePayment{}
	for _, p := range r.s.payments {
		if p.InvoiceID == invoiceID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}
