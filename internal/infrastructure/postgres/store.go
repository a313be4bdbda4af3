// Package postgres implementa el adaptador de persistencia sobre
// PostgreSQL: el espejo durable remoto de las colecciones del motor. No hay
// garantía transaccional entre artículos y movimientos (ver diseño): cada
// colección se espeja por separado y la ventana de inconsistencia ante un
// crash es aceptada.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/qmd-apps/inventario-ledger/internal/domain/entity"
	"github.com/qmd-apps/inventario-ledger/internal/domain/repository"
)

var _ repository.Store = (*Store)(nil)

// Store espejo de las dos colecciones sobre las tablas items y movements
// (ver migrations/001_init.sql).
type Store struct {
	pool *pgxpool.Pool
}

// NewStore construye el adaptador.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// LoadItems carga todos los artículos.
func (s *Store) LoadItems(ctx context.Context) ([]entity.Item, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, description, quantity, price, category, low_stock_threshold, date_added, last_updated
		FROM items ORDER BY date_added`)
	if err != nil {
		return nil, fmt.Errorf("cargar artículos: %w", err)
	}
	defer rows.Close()

	var items []entity.Item
	for rows.Next() {
		var it entity.Item
		var price *decimal.Decimal
		var threshold *int
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Quantity,
			&price, &it.Category, &threshold, &it.DateAdded, &it.LastUpdated); err != nil {
			return nil, fmt.Errorf("scan artículo: %w", err)
		}
		it.Price = price
		it.LowStockThreshold = threshold
		items = append(items, it)
	}
	return items, rows.Err()
}

// SaveItems espeja la colección completa: upsert de cada artículo y borrado
// de los ids que ya no están, todo en un batch.
func (s *Store) SaveItems(ctx context.Context, items []entity.Item) error {
	batch := &pgx.Batch{}
	ids := make([]string, 0, len(items))
	for i := range items {
		it := &items[i]
		ids = append(ids, it.ID)
		batch.Queue(`
			INSERT INTO items (id, name, description, quantity, price, category, low_stock_threshold, date_added, last_updated)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				description = EXCLUDED.description,
				quantity = EXCLUDED.quantity,
				price = EXCLUDED.price,
				category = EXCLUDED.category,
				low_stock_threshold = EXCLUDED.low_stock_threshold,
				last_updated = EXCLUDED.last_updated`,
			it.ID, it.Name, it.Description, it.Quantity, it.Price, it.Category,
			it.LowStockThreshold, it.DateAdded, it.LastUpdated)
	}
	// Con la colección vacía esto borra toda la tabla, que es lo correcto.
	batch.Queue(`DELETE FROM items WHERE id <> ALL($1::uuid[])`, ids)

	if err := s.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("espejar artículos: %w", err)
	}
	return nil
}

// LoadMovements carga el historial completo.
func (s *Store) LoadMovements(ctx context.Context) ([]entity.Movement, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, item_id, item_name, type, quantity_changed, reason, date
		FROM movements ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("cargar movimientos: %w", err)
	}
	defer rows.Close()

	var movements []entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.ItemID, &m.ItemName, &m.Type,
			&m.QuantityChanged, &m.Reason, &m.Date); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}

// SaveMovements inserta los movimientos nuevos. La colección es append-only
// e inmutable, así que los ya existentes se ignoran (ON CONFLICT DO NOTHING)
// y nunca se borra nada.
func (s *Store) SaveMovements(ctx context.Context, movements []entity.Movement) error {
	if len(movements) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for i := range movements {
		m := &movements[i]
		batch.Queue(`
			INSERT INTO movements (id, item_id, item_name, type, quantity_changed, reason, date)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO NOTHING`,
			m.ID, m.ItemID, m.ItemName, m.Type, m.QuantityChanged, m.Reason, m.Date)
	}
	if err := s.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("espejar movimientos: %w", err)
	}
	return nil
}
