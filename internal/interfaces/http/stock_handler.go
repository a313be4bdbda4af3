package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/qmd-apps/inventario-ledger/internal/application/dto"
	"github.com/qmd-apps/inventario-ledger/internal/application/ledger"
)

// StockHandler maneja las entradas y salidas de stock explícitas (los
// formularios de entrada/salida de la aplicación).
type StockHandler struct {
	engine *ledger.Engine
}

// NewStockHandler construye el handler.
func NewStockHandler(engine *ledger.Engine) *StockHandler {
	return &StockHandler{engine: engine}
}

// Input godoc
// @Summary      Registrar entrada de stock
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockRequest  true  "item_id, quantity > 0, reason"
// @Success      200   {object}  entity.Item
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/input [post]
func (h *StockHandler) Input(c *fiber.Ctx) error {
	var req dto.StockRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	quantity, err := req.Validate()
	if err != nil {
		return respondError(c, err)
	}
	item, err := h.engine.RecordStockInput(c.Context(), req.ItemID, quantity, req.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// Output godoc
// @Summary      Registrar salida de stock
// @Description  Se rechaza entera (409) si la cantidad supera el stock
//	actual; nunca se aplica parcialmente.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockRequest  true  "item_id, quantity > 0, reason"
// @Success      200   {object}  entity.Item
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/output [post]
func (h *StockHandler) Output(c *fiber.Ctx) error {
	var req dto.StockRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	quantity, err := req.Validate()
	if err != nil {
		return respondError(c, err)
	}
	item, err := h.engine.RecordStockOutput(c.Context(), req.ItemID, quantity, req.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}
