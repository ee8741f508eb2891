package memory

import (
	"context"
	"fmt"

	"automobile_shop/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
)

type Catalog struct {
	s *Store
}

var _ interfaces.ICatalog = (*Catalog)(nil)

func NewCatalog(s *Store) *Catalog {
	return &Catalog{s: s}
}

func (c *Catalog) UnitPrice(_ context.Context, partID string) (decimal.Decimal, error) {
	p, err := c.part(partID)
	if err != nil {
		return decimal.Zero, err
	}
	return p.UnitPrice, nil
}

func (c *Catalog) PartName(_ context.Context, partID string) (string, error) {
	p, err := c.part(partID)
	if err != nil {
		return "", err
	}
	return p.Name, nil
}

func (c *Catalog) MechanicName(_ context.Context, mechanicID string) (string, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	name, ok := c.s.mechanics[mechanicID]
	if !ok {
		return "", fmt.Errorf("mechanic %s: %w", mechanicID, interfaces.ErrNotFound)
	}
	return name, nil
}

func (c *Catalog) part(partID string) (Part, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	p, ok := c.s.parts[partID]
	if !ok {
		return Part{}, fmt.Errorf("part %s: %w", partID, interfaces.ErrNotFound)
	}
	return p, nil
}
