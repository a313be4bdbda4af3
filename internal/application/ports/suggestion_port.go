package ports

import (
	"context"

	"github.com/qmd-apps/inventario-ledger/internal/application/dto"
)

// SuggestionService define el puerto de salida hacia el servicio generativo
// de sugerencias. Cualquier adaptador (Gemini, Anthropic, mock) implementa
// esta interfaz; la aplicación solo conoce el contrato (DIP).
//
// Las tres operaciones son independientes y pueden fallar o devolver un
// resultado parcial; el caller las trata como "sugerencia no disponible",
// nunca como error duro que bloquee una operación del inventario. El motor
// de inventario no invoca este puerto jamás.
type SuggestionService interface {
	// GenerateDescription redacta una descripción breve de catálogo a partir
	// del nombre y, opcionalmente, la categoría.
	GenerateDescription(ctx context.Context, itemName, itemCategory string) (string, error)

	// SuggestCategory propone una categoría concisa (una o dos palabras).
	SuggestCategory(ctx context.Context, itemName, itemDescription string) (string, error)

	// SuggestPrice estima un precio de venta competitivo en USD. El precio
	// puede venir vacío si el modelo no puede determinarlo.
	SuggestPrice(ctx context.Context, itemName, itemDescription, itemCategory string) (*dto.PriceSuggestionDTO, error)
}
