package localstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qmd-apps/inventario-ledger/internal/domain/entity"
)

func TestStore_DirectorioNuevoColeccionesVacias(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "datos"))
	require.NoError(t, err)

	items, err := store.LoadItems(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)

	movements, err := store.LoadMovements(context.Background())
	require.NoError(t, err)
	assert.Empty(t, movements)
}

func TestStore_GuardarYRecargar(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := New(dir)
	require.NoError(t, err)

	now := time.Now().UTC().Truncate(time.Second)
	threshold := 3
	items := []entity.Item{{
		ID:                "id-1",
		Name:              "Martillo",
		Quantity:          4,
		LowStockThreshold: &threshold,
		DateAdded:         now,
		LastUpdated:       now,
	}}
	movements := []entity.Movement{{
		ID:              "mov-1",
		ItemID:          "id-1",
		ItemName:        "Martillo",
		Type:            entity.MovementTypeEntrada,
		QuantityChanged: 4,
		Reason:          "Alta inicial de artículo",
		Date:            now,
	}}

	require.NoError(t, store.SaveItems(ctx, items))
	require.NoError(t, store.SaveMovements(ctx, movements))

	// Otra instancia sobre el mismo directorio ve lo mismo
	reopened, err := New(dir)
	require.NoError(t, err)

	gotItems, err := reopened.LoadItems(ctx)
	require.NoError(t, err)
	require.Len(t, gotItems, 1)
	assert.Equal(t, "Martillo", gotItems[0].Name)
	require.NotNil(t, gotItems[0].LowStockThreshold)
	assert.Equal(t, 3, *gotItems[0].LowStockThreshold)

	gotMovs, err := reopened.LoadMovements(ctx)
	require.NoError(t, err)
	require.Len(t, gotMovs, 1)
	assert.Equal(t, entity.MovementTypeEntrada, gotMovs[0].Type)
	assert.Equal(t, 4, gotMovs[0].QuantityChanged)
}

// La escritura reemplaza el documento entero: guardar vacío deja vacío.
func TestStore_GuardarVacioReemplaza(t *testing.T) {
	ctx := context.Background()
	store, err := New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.SaveItems(ctx, []entity.Item{{ID: "x", Name: "Algo"}}))
	require.NoError(t, store.SaveItems(ctx, nil))

	items, err := store.LoadItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestStore_DocumentoCorrupto(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "items.json"), []byte("{no es json"), 0o644))

	_, err = store.LoadItems(context.Background())
	assert.Error(t, err)
}
