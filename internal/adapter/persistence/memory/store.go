// Package memory holds process-local adapters used by the dev backend and by tests.
//
// All views share one Store and one mutex, which makes an invoice line change and
// its inventory movement a single atomic step.
package memory

import (
	"sync"

	"automobile_shop/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// Part is a catalog entry.
type Part struct {
	ID        string
	Name      string
	UnitPrice decimal.Decimal
}

type Store struct {
	mu sync.Mutex

	appointments map[string]entities.Appointment
	// invoices is keyed by appointment id; invoiceIndex maps invoice id to it.
	invoices     map[string]entities.Invoice
	invoiceIndex map[string]string
	inventory    map[string]int
	payments     map[string]entities.InvoicePayment

	parts     map[string]Part
	mechanics map[string]string
}

func NewStore() *Store {
	return &Store{
		appointments: map[string]entities.Appointment{},
		invoices:     map[string]entities.Invoice{},
		invoiceIndex: map[string]string{},
		inventory:    map[string]int{},
		payments:     map[string]entities.InvoicePayment{},
		parts:        map[string]Part{},
		mechanics:    map[string]string{},
	}
}

// PutPart registers a catalog part and sets its quantity available.
func (s *Store) PutPart(p Part, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parts[p.ID] = p
	s.inventory[p.ID] = quantity
}

func (s *Store) PutMechanic(id, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mechanics[id] = name
}

func cloneAppointment(a entities.Appointment) entities.Appointment {
	a.ServiceIDs = append([]string{}, a.ServiceIDs...)
	return a
}
