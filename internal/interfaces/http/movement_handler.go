package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/qmd-apps/inventario-ledger/internal/application/ledger"
)

// MovementHandler sirve el historial de movimientos (solo lectura: la
// colección es append-only y no expone mutaciones).
type MovementHandler struct {
	engine *ledger.Engine
}

// NewMovementHandler construye el handler.
func NewMovementHandler(engine *ledger.Engine) *MovementHandler {
	return &MovementHandler{engine: engine}
}

// List godoc
// @Summary      Historial completo de movimientos
// @Tags         movements
// @Produce      json
// @Success      200  {array}  entity.Movement
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	movements := h.engine.Movements()
	return c.JSON(fiber.Map{"total": len(movements), "movements": movements})
}

// ListByItem godoc
// @Summary      Movimientos de un artículo
// @Description  Funciona también para artículos ya eliminados: cada
//	movimiento conserva el nombre del artículo al momento del cambio.
// @Tags         movements
// @Produce      json
// @Param        id  path  string  true  "ID del artículo"
// @Success      200  {array}  entity.Movement
// @Router       /api/items/{id}/movements [get]
func (h *MovementHandler) ListByItem(c *fiber.Ctx) error {
	movements := h.engine.MovementsByItemID(c.Params("id"))
	return c.JSON(fiber.Map{"total": len(movements), "movements": movements})
}
