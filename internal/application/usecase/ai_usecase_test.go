package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qmd-apps/inventario-ledger/internal/application/dto"
	"github.com/qmd-apps/inventario-ledger/internal/domain"
)

// stubLLM implementación fija del puerto SuggestionService.
type stubLLM struct {
	description string
	category    string
	price       *dto.PriceSuggestionDTO
	err         error
}

func (s stubLLM) GenerateDescription(context.Context, string, string) (string, error) {
	return s.description, s.err
}

func (s stubLLM) SuggestCategory(context.Context, string, string) (string, error) {
	return s.category, s.err
}

func (s stubLLM) SuggestPrice(context.Context, string, string, string) (*dto.PriceSuggestionDTO, error) {
	return s.price, s.err
}

func TestAIUseCase_NombreObligatorio(t *testing.T) {
	uc := NewAIUseCase(stubLLM{})
	ctx := context.Background()

	_, err := uc.GenerateDescription(ctx, dto.DescriptionRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.SuggestCategory(ctx, dto.CategoryRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.SuggestPrice(ctx, dto.PriceRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAIUseCase_DelegaAlModelo(t *testing.T) {
	price := decimal.RequireFromString("24.99")
	uc := NewAIUseCase(stubLLM{
		description: "Taladro percutor compacto para uso doméstico.",
		category:    "Herramientas",
		price:       &dto.PriceSuggestionDTO{SuggestedPrice: &price, Reasoning: "rango típico de mercado"},
	})
	ctx := context.Background()

	desc, err := uc.GenerateDescription(ctx, dto.DescriptionRequest{ItemName: "Taladro"})
	require.NoError(t, err)
	assert.Equal(t, "Taladro percutor compacto para uso doméstico.", desc.Description)

	cat, err := uc.SuggestCategory(ctx, dto.CategoryRequest{ItemName: "Taladro"})
	require.NoError(t, err)
	assert.Equal(t, "Herramientas", cat.SuggestedCategory)

	sug, err := uc.SuggestPrice(ctx, dto.PriceRequest{ItemName: "Taladro"})
	require.NoError(t, err)
	require.NotNil(t, sug.SuggestedPrice)
	assert.Equal(t, "24.99", sug.SuggestedPrice.String())
}

func TestAIUseCase_PropagaFalloDelModelo(t *testing.T) {
	llmErr := errors.New("modelo no disponible")
	uc := NewAIUseCase(stubLLM{err: llmErr})

	_, err := uc.GenerateDescription(context.Background(), dto.DescriptionRequest{ItemName: "Taladro"})
	assert.ErrorIs(t, err, llmErr)
}

// El modelo puede declinar el precio: nil no es error.
func TestAIUseCase_PrecioDeclinado(t *testing.T) {
	uc := NewAIUseCase(stubLLM{price: &dto.PriceSuggestionDTO{Reasoning: "sin datos de mercado"}})

	sug, err := uc.SuggestPrice(context.Background(), dto.PriceRequest{ItemName: "Pieza rara"})
	require.NoError(t, err)
	assert.Nil(t, sug.SuggestedPrice)
	assert.Equal(t, "sin datos de mercado", sug.Reasoning)
}
