package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/qmd-apps/inventario-ledger/internal/application/dto"
	"github.com/qmd-apps/inventario-ledger/internal/application/usecase"
	"github.com/qmd-apps/inventario-ledger/internal/domain"
)

// AIHandler expone las sugerencias asistidas por IA del formulario de
// artículos. Un fallo del modelo se responde como 502 AI_UNAVAILABLE: la
// capa de presentación lo trata como "sugerencia no disponible", nunca
// bloquea la operación de inventario.
type AIHandler struct {
	uc *usecase.AIUseCase
}

// NewAIHandler construye el handler.
func NewAIHandler(uc *usecase.AIUseCase) *AIHandler {
	return &AIHandler{uc: uc}
}

// GenerateDescription godoc
// @Summary      Generar descripción de artículo con IA
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DescriptionRequest  true  "item_name; item_category opcional"
// @Success      200   {object}  dto.DescriptionDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/ai/description [post]
func (h *AIHandler) GenerateDescription(c *fiber.Ctx) error {
	var req dto.DescriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	result, err := h.uc.GenerateDescription(c.Context(), req)
	if err != nil {
		return aiError(c, err)
	}
	return c.JSON(result)
}

// SuggestCategory godoc
// @Summary      Sugerir categoría con IA
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CategoryRequest  true  "item_name; item_description opcional"
// @Success      200   {object}  dto.CategoryDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/ai/category [post]
func (h *AIHandler) SuggestCategory(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	result, err := h.uc.SuggestCategory(c.Context(), req)
	if err != nil {
		return aiError(c, err)
	}
	return c.JSON(result)
}

// SuggestPrice godoc
// @Summary      Sugerir precio con IA
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PriceRequest  true  "item_name; item_description, item_category opcionales"
// @Success      200   {object}  dto.PriceSuggestionDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/ai/price [post]
func (h *AIHandler) SuggestPrice(c *fiber.Ctx) error {
	var req dto.PriceRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	result, err := h.uc.SuggestPrice(c.Context(), req)
	if err != nil {
		return aiError(c, err)
	}
	return c.JSON(result)
}

func aiError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "AI_UNAVAILABLE", Message: err.Error()})
}
