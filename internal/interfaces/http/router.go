package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/qmd-apps/inventario-ledger/internal/application/analytics"
	"github.com/qmd-apps/inventario-ledger/internal/application/ledger"
	"github.com/qmd-apps/inventario-ledger/internal/application/usecase"
	"github.com/qmd-apps/inventario-ledger/internal/infrastructure/notify"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Engine      *ledger.Engine
	DashboardUC *analytics.DashboardUseCase
	AIUC        *usecase.AIUseCase
	AlertSink   *notify.MemorySink
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Artículos: CRUD + ajustes rápidos + historial por artículo
	items := api.Group("/items")
	itemHandler := NewItemHandler(deps.Engine)
	movementHandler := NewMovementHandler(deps.Engine)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)
	items.Post("/:id/increment", itemHandler.Increment)
	items.Post("/:id/decrement", itemHandler.Decrement)
	items.Get("/:id/movements", movementHandler.ListByItem)

	// Entradas y salidas de stock
	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.Engine)
	stock.Post("/input", stockHandler.Input)
	stock.Post("/output", stockHandler.Output)

	// Historial completo
	api.Get("/movements", movementHandler.List)

	// Dashboard y alertas
	api.Get("/dashboard", NewDashboardHandler(deps.DashboardUC).Summary)
	api.Get("/alerts", NewAlertHandler(deps.AlertSink).Recent)

	// Sugerencias IA (nunca tocan el motor de inventario)
	aiGroup := api.Group("/ai")
	aiHandler := NewAIHandler(deps.AIUC)
	aiGroup.Post("/description", aiHandler.GenerateDescription)
	aiGroup.Post("/category", aiHandler.SuggestCategory)
	aiGroup.Post("/price", aiHandler.SuggestPrice)
}
