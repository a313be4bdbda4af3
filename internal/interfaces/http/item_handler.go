package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/qmd-apps/inventario-ledger/internal/application/dto"
	"github.com/qmd-apps/inventario-ledger/internal/application/ledger"
)

// ItemHandler maneja el CRUD de artículos y sus ajustes rápidos.
type ItemHandler struct {
	engine *ledger.Engine
}

// NewItemHandler construye el handler.
func NewItemHandler(engine *ledger.Engine) *ItemHandler {
	return &ItemHandler{engine: engine}
}

// Create godoc
// @Summary      Crear artículo
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ItemFormRequest  true  "name, quantity; price, category, lowStockThreshold opcionales"
// @Success      201   {object}  entity.Item
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var req dto.ItemFormRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	in, err := req.Validate()
	if err != nil {
		return respondError(c, err)
	}
	item, err := h.engine.AddItem(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// List godoc
// @Summary      Listar artículos
// @Tags         items
// @Produce      json
// @Success      200  {array}  entity.Item
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	items := h.engine.Items()
	return c.JSON(fiber.Map{"total": len(items), "items": items})
}

// GetByID godoc
// @Summary      Obtener artículo por ID
// @Tags         items
// @Produce      json
// @Param        id   path      string  true  "ID del artículo"
// @Success      200  {object}  entity.Item
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	item, ok := h.engine.GetItemByID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "artículo no encontrado"})
	}
	return c.JSON(item)
}

// Update godoc
// @Summary      Editar artículo
// @Description  Reemplaza los campos mutables. Una diferencia de cantidad
//	genera el movimiento de entrada o salida correspondiente.
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del artículo"
// @Param        body  body  dto.ItemFormRequest  true  "campos del artículo"
// @Success      200   {object}  entity.Item
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var req dto.ItemFormRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	in, err := req.Validate()
	if err != nil {
		return respondError(c, err)
	}
	item, err := h.engine.UpdateItem(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// Delete godoc
// @Summary      Eliminar artículo
// @Description  El historial de movimientos del artículo se conserva.
// @Tags         items
// @Param        id  path  string  true  "ID del artículo"
// @Success      204
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	// Id inexistente no es error: el borrado es idempotente.
	if err := h.engine.DeleteItem(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Increment godoc
// @Summary      Incrementar cantidad
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id    path  string             true   "ID del artículo"
// @Param        body  body  dto.AdjustRequest  false  "amount (1 por defecto), reason"
// @Success      200   {object}  entity.Item
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id}/increment [post]
func (h *ItemHandler) Increment(c *fiber.Ctx) error {
	var req dto.AdjustRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badBody(c)
		}
	}
	amount, err := req.Validate()
	if err != nil {
		return respondError(c, err)
	}
	item, err := h.engine.IncrementQuantity(c.Context(), c.Params("id"), amount, req.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// Decrement godoc
// @Summary      Decrementar cantidad
// @Description  La resta efectiva se recorta al stock disponible; la
//	cantidad nunca queda negativa.
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id    path  string             true   "ID del artículo"
// @Param        body  body  dto.AdjustRequest  false  "amount (1 por defecto), reason"
// @Success      200   {object}  entity.Item
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id}/decrement [post]
func (h *ItemHandler) Decrement(c *fiber.Ctx) error {
	var req dto.AdjustRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badBody(c)
		}
	}
	amount, err := req.Validate()
	if err != nil {
		return respondError(c, err)
	}
	item, err := h.engine.DecrementQuantity(c.Context(), c.Params("id"), amount, req.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}
