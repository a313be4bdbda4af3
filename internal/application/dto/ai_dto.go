package dto

import "github.com/shopspring/decimal"

// DescriptionRequest body para POST /api/ai/description.
type DescriptionRequest struct {
	ItemName     string `json:"item_name"`
	ItemCategory string `json:"item_category,omitempty"`
}

// DescriptionDTO descripción generada por el modelo.
type DescriptionDTO struct {
	Description string `json:"description"`
}

// CategoryRequest body para POST /api/ai/category.
type CategoryRequest struct {
	ItemName        string `json:"item_name"`
	ItemDescription string `json:"item_description,omitempty"`
}

// CategoryDTO categoría sugerida por el modelo.
type CategoryDTO struct {
	SuggestedCategory string `json:"suggested_category"`
}

// PriceRequest body para POST /api/ai/price.
type PriceRequest struct {
	ItemName        string `json:"item_name"`
	ItemDescription string `json:"item_description,omitempty"`
	ItemCategory    string `json:"item_category,omitempty"`
}

// PriceSuggestionDTO precio sugerido. SuggestedPrice puede venir nil cuando
// el modelo no puede determinar un precio razonable; Reasoning lo explica.
type PriceSuggestionDTO struct {
	SuggestedPrice *decimal.Decimal `json:"suggested_price,omitempty"`
	Reasoning      string           `json:"reasoning,omitempty"`
}
