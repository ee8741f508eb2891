package repository

import (
	"context"
	"errors"
	"fmt"

	"automobile_shop/internal/usecase/interfaces"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// CatalogSchema creates the reference tables read by CatalogPgRepository.
const CatalogSchema = `
CREATE TABLE IF NOT EXISTS parts (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	unit_price NUMERIC(12, 2) NOT NULL CHECK (unit_price >= 0)
);

CREATE TABLE IF NOT EXISTS mechanics (
	id   TEXT PRIMARY KEY,
	name TEXT NOT NULL
);
`

// PgxQuerier is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type PgxQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// CatalogPgRepository reads part prices and display names from Postgres.
type CatalogPgRepository struct {
	db PgxQuerier
}

var _ interfaces.ICatalog = (*CatalogPgRepository)(nil)

func NewCatalogPgRepository(db PgxQuerier) *CatalogPgRepository {
	return &CatalogPgRepository{db: db}
}

func (r *CatalogPgRepository) UnitPrice(ctx context.Context, partID string) (decimal.Decimal, error) {
	var raw string
	err := r.db.QueryRow(ctx, `SELECT unit_price::text FROM parts WHERE id = $1`, partID).Scan(&raw)
	if err != nil {
		return decimal.Zero, notFound(err, "part", partID)
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("part %s: parse unit price %q: %w", partID, raw, err)
	}
	return price, nil
}

func (r *CatalogPgRepository) PartName(ctx context.Context, partID string) (string, error) {
	var name string
	err := r.db.QueryRow(ctx, `SELECT name FROM parts WHERE id = $1`, partID).Scan(&name)
	if err != nil {
		return "", notFound(err, "part", partID)
	}
	return name, nil
}

func (r *CatalogPgRepository) MechanicName(ctx context.Context, mechanicID string) (string, error) {
	var name string
	err := r.db.QueryRow(ctx, `SELECT name FROM mechanics WHERE id = $1`, mechanicID).Scan(&name)
	if err != nil {
		return "", notFound(err, "mechanic", mechanicID)
	}
	return name, nil
}

func (r *CatalogPgRepository) Migrate(ctx context.Context) error {
	_, err := r.db.Exec(ctx, CatalogSchema)
	return err
}

func (r *CatalogPgRepository) UpsertPart(ctx context.Context, id, name string, unitPrice decimal.Decimal) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO parts (id, name, unit_price)
		VALUES ($1, $2, $3::numeric)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, unit_price = EXCLUDED.unit_price
	`, id, name, unitPrice.StringFixed(2))
	return err
}

func (r *CatalogPgRepository) UpsertMechanic(ctx context.Context, id, name string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO mechanics (id, name)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name
	`, id, name)
	return err
}

func notFound(err error, kind, id string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", kind, id, interfaces.ErrNotFound)
	}
	return err
}
