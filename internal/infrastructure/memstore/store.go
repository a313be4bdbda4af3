// Package memstore implementa el adaptador de persistencia en memoria.
// Driver "memory": sesiones efímeras, demos y tests.
package memstore

import (
	"context"
	"sync"

	"github.com/qmd-apps/inventario-ledger/internal/domain/entity"
	"github.com/qmd-apps/inventario-ledger/internal/domain/repository"
)

var _ repository.Store = (*Store)(nil)

// Store espejo en memoria de las dos colecciones.
type Store struct {
	mu        sync.RWMutex
	items     []entity.Item
	movements []entity.Movement
}

// New construye un store vacío.
func New() *Store {
	return &Store{}
}

// LoadItems devuelve la colección de artículos.
func (s *Store) LoadItems(_ context.Context) ([]entity.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Item, len(s.items))
	copy(out, s.items)
	return out, nil
}

// SaveItems reemplaza la colección de artículos.
func (s *Store) SaveItems(_ context.Context, items []entity.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make([]entity.Item, len(items))
	copy(s.items, items)
	return nil
}

// LoadMovements devuelve la colección de movimientos.
func (s *Store) LoadMovements(_ context.Context) ([]entity.Movement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Movement, len(s.movements))
	copy(out, s.movements)
	return out, nil
}

// SaveMovements reemplaza la colección de movimientos.
func (s *Store) SaveMovements(_ context.Context, movements []entity.Movement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.movements = make([]entity.Movement, len(movements))
	copy(s.movements, movements)
	return nil
}
