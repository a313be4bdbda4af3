package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un artículo del inventario con su cantidad actual en mano.
// Quantity nunca es negativa; los cambios de cantidad se registran siempre
// como Movement en paralelo (motor de inventario).
type Item struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	Description       string           `json:"description"`
	Quantity          int              `json:"quantity"`
	Price             *decimal.Decimal `json:"price,omitempty"`
	Category          string           `json:"category,omitempty"`
	LowStockThreshold *int             `json:"lowStockThreshold,omitempty"`
	DateAdded         time.Time        `json:"dateAdded"`   // inmutable desde la creación
	LastUpdated       time.Time        `json:"lastUpdated"` // se toca en cada mutación
}

// IsLowStock indica si la cantidad está por debajo del umbral configurado.
// Sin umbral definido nunca hay stock bajo.
func (i *Item) IsLowStock() bool {
	return i.LowStockThreshold != nil && i.Quantity < *i.LowStockThreshold
}

// Value devuelve el valor estimado del artículo (precio × cantidad).
// Artículos sin precio valen cero.
func (i *Item) Value() decimal.Decimal {
	if i.Price == nil {
		return decimal.Zero
	}
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
