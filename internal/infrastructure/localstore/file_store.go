// Package localstore implementa el adaptador de persistencia sobre archivos
// JSON locales: un documento por colección bajo un directorio de datos. Es
// el análogo de servidor del almacenamiento local del navegador de la
// versión original de la aplicación.
package localstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/qmd-apps/inventario-ledger/internal/domain/entity"
	"github.com/qmd-apps/inventario-ledger/internal/domain/repository"
)

const (
	itemsFile     = "items.json"
	movementsFile = "movements.json"
)

var _ repository.Store = (*Store)(nil)

// Store persiste cada colección como un documento JSON. Las escrituras son
// atómicas (archivo temporal + rename) para no dejar un documento truncado
// si el proceso muere a mitad de escritura.
type Store struct {
	dir string
	mu  sync.Mutex
}

// New crea el directorio de datos si no existe.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de datos: %w", err)
	}
	return &Store{dir: dir}, nil
}

// LoadItems lee items.json. Archivo ausente equivale a colección vacía.
func (s *Store) LoadItems(_ context.Context) ([]entity.Item, error) {
	var items []entity.Item
	if err := s.read(itemsFile, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SaveItems escribe items.json.
func (s *Store) SaveItems(_ context.Context, items []entity.Item) error {
	return s.write(itemsFile, items)
}

// LoadMovements lee movements.json. Archivo ausente equivale a colección vacía.
func (s *Store) LoadMovements(_ context.Context) ([]entity.Movement, error) {
	var movements []entity.Movement
	if err := s.read(movementsFile, &movements); err != nil {
		return nil, err
	}
	return movements, nil
}

// SaveMovements escribe movements.json.
func (s *Store) SaveMovements(_ context.Context, movements []entity.Movement) error {
	return s.write(movementsFile, movements)
}

func (s *Store) read(name string, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("leer %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsear %s: %w", name, err)
	}
	return nil
}

func (s *Store) write(name string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("serializar %s: %w", name, err)
	}
	path := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("archivo temporal para %s: %w", name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("escribir %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("cerrar %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("renombrar %s: %w", name, err)
	}
	return nil
}
