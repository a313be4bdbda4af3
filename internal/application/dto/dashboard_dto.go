package dto

import (
	"github.com/shopspring/decimal"

	"github.com/qmd-apps/inventario-ledger/internal/domain/entity"
)

// DashboardSummaryDTO resumen del inventario para el dashboard.
type DashboardSummaryDTO struct {
	TotalItems      int                  `json:"total_items"`     // artículos distintos
	TotalUnits      int                  `json:"total_units"`     // unidades sumadas
	TotalValue      decimal.Decimal      `json:"total_value"`     // Σ precio × cantidad
	LowStockCount   int                  `json:"low_stock_count"`
	LowStockItems   []LowStockItemDTO    `json:"low_stock_items"`
	MostStocked     *MostStockedItemDTO  `json:"most_stocked,omitempty"`
	Categories      []CategorySummaryDTO `json:"categories"`
	RecentMovements []entity.Movement    `json:"recent_movements"`
}

// LowStockItemDTO artículo actualmente por debajo de su umbral.
type LowStockItemDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Threshold int    `json:"threshold"`
}

// MostStockedItemDTO artículo con mayor cantidad en mano.
type MostStockedItemDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// CategorySummaryDTO agregado por categoría ("Sin categoría" para vacías).
type CategorySummaryDTO struct {
	Category    string          `json:"category"`
	UniqueItems int             `json:"unique_items"`
	TotalUnits  int             `json:"total_units"`
	TotalValue  decimal.Decimal `json:"total_value"`
}
