// Package seed generates demo catalog and inventory data.
package seed

import (
	"context"
	"fmt"

	"automobile_shop/internal/adapter/persistence/memory"
	"automobile_shop/internal/domain/entities"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

type Part struct {
	ID        string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

type Mechanic struct {
	ID   string
	Name string
}

type Dataset struct {
	Parts     []Part
	Mechanics []Mechanic
}

// CatalogWriter is the write side of the part/mechanic catalog.
type CatalogWriter interface {
	UpsertPart(ctx context.Context, id, name string, unitPrice decimal.Decimal) error
	UpsertMechanic(ctx context.Context, id, name string) error
}

// InventoryWriter sets the quantity available of a part.
type InventoryWriter interface {
	Put(ctx context.Context, partID string, quantity int) error
}

// DemoSeed, DemoParts and DemoMechanics size the dataset shared by the
// in-memory backend and cmd/seed.
const (
	DemoSeed      uint64 = 2024
	DemoParts            = 20
	DemoMechanics        = 5
)

// Demo is the default demo dataset.
func Demo() Dataset {
	return Generate(DemoSeed, DemoParts, DemoMechanics)
}

// Generate is deterministic for a given seed. Part ids are part-001, part-002...
// and mechanic ids mech-001, mech-002...
func Generate(seed uint64, parts, mechanics int) Dataset {
	f := gofakeit.New(seed)

	d := Dataset{
		Parts:     make([]Part, 0, parts),
		Mechanics: make([]Mechanic, 0, mechanics),
	}
	for i := 1; i <= parts; i++ {
		d.Parts = append(d.Parts, Part{
			ID:        fmt.Sprintf("part-%03d", i),
			Name:      f.ProductName(),
			UnitPrice: entities.RoundCurrency(decimal.NewFromFloat(f.Price(5, 900))),
			Quantity:  f.IntRange(0, 40),
		})
	}
	for i := 1; i <= mechanics; i++ {
		d.Mechanics = append(d.Mechanics, Mechanic{
			ID:   fmt.Sprintf("mech-%03d", i),
			Name: f.Name(),
		})
	}
	return d
}

// Load writes d to the catalog and the inventory. Either writer may be nil.
func Load(ctx context.Context, catalog CatalogWriter, inventory InventoryWriter, d Dataset) error {
	for _, p := range d.Parts {
		if catalog != nil {
			if err := catalog.UpsertPart(ctx, p.ID, p.Name, p.UnitPrice); err != nil {
				return fmt.Errorf("upsert part %s: %w", p.ID, err)
			}
		}
		if inventory != nil {
			if err := inventory.Put(ctx, p.ID, p.Quantity); err != nil {
				return fmt.Errorf("put inventory %s: %w", p.ID, err)
			}
		}
	}
	if catalog == nil {
		return nil
	}
	for _, m := range d.Mechanics {
		if err := catalog.UpsertMechanic(ctx, m.ID, m.Name); err != nil {
			return fmt.Errorf("upsert mechanic %s: %w", m.ID, err)
		}
	}
	return nil
}

// LoadMemory fills the in-memory store.
func LoadMemory(s *memory.Store, d Dataset) {
	for _, p := range d.Parts {
		s.PutPart(memory.Part{ID: p.ID, Name: p.Name, UnitPrice: p.UnitPrice}, p.Quantity)
	}
	for _, m := range d.Mechanics {
		s.PutMechanic(m.ID, m.Name)
	}
}
