package memory

import (
	"context"
	"fmt"

	"automobile_shop/internal/domain/entities"
	"automobile_shop/internal/usecase/interfaces"
)

type InventoryLedger struct {
	s *Store
}

var _ interfaces.IInventoryLedger = (*InventoryLedger)(nil)

func NewInventoryLedger(s *Store) *InventoryLedger {
	return &InventoryLedger{s: s}
}

func (l *InventoryLedger) QuantityAvailable(_ context.Context, partID string) (int, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	qty, ok := l.s.inventory[partID]
	if !ok {
		return 0, fmt.Errorf("inventory part %s: %w", partID, interfaces.ErrNotFound)
	}
	return qty, nil
}

func (l *InventoryLedger) Decrement(_ context.Context, partID string, count int) (int, error) {
	if count <= 0 {
		return 0, entities.ErrInvalidAmount
	}
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return l.s.takeStock(partID, count)
}

func (l *InventoryLedger) Increment(_ context.Context, partID string, count int) (int, error) {
	if count <= 0 {
		return 0, entities.ErrInvalidAmount
	}
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return l.s.restoreStock(partID, count), nil
}

// takeStock and restoreStock are the inventory moves shared by the ledger and the
// invoice repository. Callers hold s.mu.
func (s *Store) takeStock(partID string, count int) (int, error) {
	qty, ok := s.inventory[partID]
	if !ok {
		return 0, fmt.Errorf("inventory part %s: %w", partID, interfaces.ErrNotFound)
	}
	if qty < count {
		return qty, entities.ErrInsufficientStock
	}
	s.inventory[partID] = qty - count
	return qty - count, nil
}

func (s *Store) restoreStock(partID string, count int) int {
	s.inventory[partID] += count
	return s.inventory[partID]
}
