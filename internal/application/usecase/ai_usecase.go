package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/qmd-apps/inventario-ledger/internal/application/dto"
	"github.com/qmd-apps/inventario-ledger/internal/application/ports"
	"github.com/qmd-apps/inventario-ledger/internal/domain"
)

// aiCallTimeout límite por llamada al LLM: las latencias externas no deben
// retener goroutines del servidor.
const aiCallTimeout = 10 * time.Second

// AIUseCase orquesta las sugerencias asistidas por IA del formulario de
// artículos: descripción, categoría y precio.
type AIUseCase struct {
	llm ports.SuggestionService
}

// NewAIUseCase construye el caso de uso inyectando el puerto SuggestionService.
func NewAIUseCase(llm ports.SuggestionService) *AIUseCase {
	return &AIUseCase{llm: llm}
}

// GenerateDescription valida la entrada y delega al LLM con timeout.
func (uc *AIUseCase) GenerateDescription(ctx context.Context, req dto.DescriptionRequest) (*dto.DescriptionDTO, error) {
	if req.ItemName == "" {
		return nil, fmt.Errorf("%w: item_name es obligatorio", domain.ErrInvalidInput)
	}
	ctx, cancel := context.WithTimeout(ctx, aiCallTimeout)
	defer cancel()

	description, err := uc.llm.GenerateDescription(ctx, req.ItemName, req.ItemCategory)
	if err != nil {
		return nil, fmt.Errorf("generar descripción: %w", err)
	}
	return &dto.DescriptionDTO{Description: description}, nil
}

// SuggestCategory valida la entrada y delega al LLM con timeout.
func (uc *AIUseCase) SuggestCategory(ctx context.Context, req dto.CategoryRequest) (*dto.CategoryDTO, error) {
	if req.ItemName == "" {
		return nil, fmt.Errorf("%w: item_name es obligatorio", domain.ErrInvalidInput)
	}
	ctx, cancel := context.WithTimeout(ctx, aiCallTimeout)
	defer cancel()

	category, err := uc.llm.SuggestCategory(ctx, req.ItemName, req.ItemDescription)
	if err != nil {
		return nil, fmt.Errorf("sugerir categoría: %w", err)
	}
	return &dto.CategoryDTO{SuggestedCategory: category}, nil
}

// SuggestPrice valida la entrada y delega al LLM con timeout. Un resultado
// sin precio no es error: el modelo puede declinar la estimación.
func (uc *AIUseCase) SuggestPrice(ctx context.Context, req dto.PriceRequest) (*dto.PriceSuggestionDTO, error) {
	if req.ItemName == "" {
		return nil, fmt.Errorf("%w: item_name es obligatorio", domain.ErrInvalidInput)
	}
	ctx, cancel := context.WithTimeout(ctx, aiCallTimeout)
	defer cancel()

	suggestion, err := uc.llm.SuggestPrice(ctx, req.ItemName, req.ItemDescription, req.ItemCategory)
	if err != nil {
		return nil, fmt.Errorf("sugerir precio: %w", err)
	}
	return suggestion, nil
}
