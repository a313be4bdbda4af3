package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qmd-apps/inventario-ledger/internal/application/analytics"
	"github.com/qmd-apps/inventario-ledger/internal/application/dto"
	"github.com/qmd-apps/inventario-ledger/internal/application/ledger"
	"github.com/qmd-apps/inventario-ledger/internal/application/usecase"
	"github.com/qmd-apps/inventario-ledger/internal/domain/entity"
	"github.com/qmd-apps/inventario-ledger/internal/infrastructure/memstore"
	"github.com/qmd-apps/inventario-ledger/internal/infrastructure/notify"
	httpiface "github.com/qmd-apps/inventario-ledger/internal/interfaces/http"
	"github.com/qmd-apps/inventario-ledger/pkg/logger"
)

// stubLLM respuestas fijas para las rutas de IA.
type stubLLM struct{}

func (stubLLM) GenerateDescription(context.Context, string, string) (string, error) {
	return "Descripción generada.", nil
}

func (stubLLM) SuggestCategory(context.Context, string, string) (string, error) {
	return "Herramientas", nil
}

func (stubLLM) SuggestPrice(context.Context, string, string, string) (*dto.PriceSuggestionDTO, error) {
	return &dto.PriceSuggestionDTO{Reasoning: "sin datos"}, nil
}

// newTestApp levanta la aplicación completa sobre un store en memoria.
func newTestApp(t *testing.T) (*fiber.App, *notify.MemorySink) {
	t.Helper()

	log := logger.New(logger.Config{Env: "production", Level: "error"})
	alertSink := notify.NewMemorySink(10)

	engine := ledger.New(memstore.New(), alertSink, log)
	require.NoError(t, engine.Init(context.Background()))
	t.Cleanup(engine.Close)

	app := fiber.New()
	httpiface.Router(app, httpiface.RouterDeps{
		Engine:      engine,
		DashboardUC: analytics.NewDashboardUseCase(engine),
		AIUC:        usecase.NewAIUseCase(stubLLM{}),
		AlertSink:   alertSink,
	})
	return app, alertSink
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp, decoded
}

func createItem(t *testing.T, app *fiber.App, body map[string]any) string {
	t.Helper()
	resp, decoded := doJSON(t, app, fiber.MethodPost, "/api/items", body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	id, _ := decoded["id"].(string)
	require.NotEmpty(t, id)
	return id
}

// ──────────────────────────────────────────────────────────────────────────────
// CRUD de artículos
// ──────────────────────────────────────────────────────────────────────────────

func TestItems_CicloCompleto(t *testing.T) {
	app, _ := newTestApp(t)

	id := createItem(t, app, map[string]any{
		"name":     "Martillo",
		"quantity": "10", // string: la coerción del formulario
		"price":    12.5,
		"category": "Herramientas",
	})

	resp, decoded := doJSON(t, app, fiber.MethodGet, "/api/items/"+id, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Martillo", decoded["name"])
	assert.Equal(t, float64(10), decoded["quantity"])

	resp, decoded = doJSON(t, app, fiber.MethodGet, "/api/items", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), decoded["total"])

	resp, decoded = doJSON(t, app, fiber.MethodPut, "/api/items/"+id, map[string]any{
		"name":     "Martillo de bola",
		"quantity": 10,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Martillo de bola", decoded["name"])

	resp, _ = doJSON(t, app, fiber.MethodDelete, "/api/items/"+id, nil)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, decoded = doJSON(t, app, fiber.MethodGet, "/api/items/"+id, nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decoded["code"])

	// Idempotente: repetir el borrado sigue siendo 204
	resp, _ = doJSON(t, app, fiber.MethodDelete, "/api/items/"+id, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestItems_ValidacionDelFormulario(t *testing.T) {
	app, _ := newTestApp(t)

	resp, decoded := doJSON(t, app, fiber.MethodPost, "/api/items", map[string]any{
		"name":     "",
		"quantity": 1,
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decoded["code"])

	resp, decoded = doJSON(t, app, fiber.MethodPost, "/api/items", map[string]any{
		"name":     "X",
		"quantity": -1,
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decoded["code"])
}

func TestItems_EditarInexistente(t *testing.T) {
	app, _ := newTestApp(t)

	resp, decoded := doJSON(t, app, fiber.MethodPut, "/api/items/no-existe", map[string]any{
		"name":     "X",
		"quantity": 1,
	})
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decoded["code"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Entradas y salidas
// ──────────────────────────────────────────────────────────────────────────────

func TestStock_EntradaYSalida(t *testing.T) {
	app, _ := newTestApp(t)
	id := createItem(t, app, map[string]any{"name": "Tuerca", "quantity": 0})

	resp, decoded := doJSON(t, app, fiber.MethodPost, "/api/stock/input", map[string]any{
		"item_id":  id,
		"quantity": 8,
		"reason":   "compra",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(8), decoded["quantity"])

	resp, decoded = doJSON(t, app, fiber.MethodPost, "/api/stock/output", map[string]any{
		"item_id":  id,
		"quantity": "3", // string también acá
		"reason":   "venta",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(5), decoded["quantity"])
}

func TestStock_SalidaInsuficienteDevuelve409(t *testing.T) {
	app, _ := newTestApp(t)
	id := createItem(t, app, map[string]any{"name": "Tuerca", "quantity": 2})

	resp, decoded := doJSON(t, app, fiber.MethodPost, "/api/stock/output", map[string]any{
		"item_id":  id,
		"quantity": 5,
		"reason":   "venta",
	})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", decoded["code"])

	// La cantidad no se tocó
	resp, decoded = doJSON(t, app, fiber.MethodGet, "/api/items/"+id, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), decoded["quantity"])
}

func TestStock_CantidadCeroDevuelve400(t *testing.T) {
	app, _ := newTestApp(t)
	id := createItem(t, app, map[string]any{"name": "Tuerca", "quantity": 2})

	resp, decoded := doJSON(t, app, fiber.MethodPost, "/api/stock/input", map[string]any{
		"item_id":  id,
		"quantity": 0,
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_QUANTITY", decoded["code"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajustes rápidos
// ──────────────────────────────────────────────────────────────────────────────

func TestItems_IncrementoYDecremento(t *testing.T) {
	app, _ := newTestApp(t)
	id := createItem(t, app, map[string]any{"name": "Clavo", "quantity": 1})

	// Sin body: amount por defecto 1
	resp, decoded := doJSON(t, app, fiber.MethodPost, "/api/items/"+id+"/increment", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), decoded["quantity"])

	resp, decoded = doJSON(t, app, fiber.MethodPost, "/api/items/"+id+"/decrement", map[string]any{
		"amount": 10,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	// Recorte: de 2 con resta 10 queda 0, nunca negativo
	assert.Equal(t, float64(0), decoded["quantity"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Historial
// ──────────────────────────────────────────────────────────────────────────────

func TestMovements_HistorialSobreviveAlBorrado(t *testing.T) {
	app, _ := newTestApp(t)
	id := createItem(t, app, map[string]any{"name": "Gadget", "quantity": 5})

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/stock/output", map[string]any{
		"item_id":  id,
		"quantity": 2,
		"reason":   "venta",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodDelete, "/api/items/"+id, nil)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, decoded := doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/api/items/%s/movements", id), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, float64(2), decoded["total"])

	movements, ok := decoded["movements"].([]any)
	require.True(t, ok)
	newest := movements[0].(map[string]any)
	assert.Equal(t, "Gadget", newest["itemName"])
	assert.Equal(t, entity.MovementTypeSalida, newest["type"])

	resp, decoded = doJSON(t, app, fiber.MethodGet, "/api/movements", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), decoded["total"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard y alertas
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboard_Resumen(t *testing.T) {
	app, _ := newTestApp(t)
	createItem(t, app, map[string]any{"name": "Martillo", "quantity": 10, "price": 2, "category": "Herramientas"})
	createItem(t, app, map[string]any{"name": "Cinta", "quantity": 4})

	resp, decoded := doJSON(t, app, fiber.MethodGet, "/api/dashboard", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), decoded["total_items"])
	assert.Equal(t, float64(14), decoded["total_units"])

	mostStocked, ok := decoded["most_stocked"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Martillo", mostStocked["name"])
}

func TestAlerts_RegistraCaidasBajoUmbral(t *testing.T) {
	app, _ := newTestApp(t)
	id := createItem(t, app, map[string]any{
		"name":              "Foco",
		"quantity":          10,
		"lowStockThreshold": 5,
	})

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/stock/output", map[string]any{
		"item_id":  id,
		"quantity": 7,
		"reason":   "venta",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, decoded := doJSON(t, app, fiber.MethodGet, "/api/alerts", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, float64(1), decoded["total"])

	alerts := decoded["alerts"].([]any)
	alert := alerts[0].(map[string]any)
	assert.Equal(t, "Foco", alert["item_name"])
	assert.Equal(t, float64(3), alert["quantity"])
	assert.Equal(t, float64(5), alert["threshold"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Sugerencias IA
// ──────────────────────────────────────────────────────────────────────────────

func TestAI_Rutas(t *testing.T) {
	app, _ := newTestApp(t)

	resp, decoded := doJSON(t, app, fiber.MethodPost, "/api/ai/description", map[string]any{
		"item_name": "Taladro",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Descripción generada.", decoded["description"])

	resp, decoded = doJSON(t, app, fiber.MethodPost, "/api/ai/category", map[string]any{
		"item_name": "Taladro",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Herramientas", decoded["suggested_category"])

	// Sin nombre: validación, no 502
	resp, decoded = doJSON(t, app, fiber.MethodPost, "/api/ai/description", map[string]any{})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decoded["code"])
}
