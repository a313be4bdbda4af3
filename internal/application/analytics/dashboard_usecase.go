// Package analytics contiene el caso de uso del dashboard: agregados de solo
// lectura calculados sobre el snapshot del motor de inventario.
package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/qmd-apps/inventario-ledger/internal/application/dto"
	"github.com/qmd-apps/inventario-ledger/internal/domain/entity"
)

const (
	recentMovementsLimit = 5
	uncategorizedLabel   = "Sin categoría"
)

// Snapshot es la vista de solo lectura que el dashboard necesita del motor.
// *ledger.Engine la satisface.
type Snapshot interface {
	Items() []entity.Item
	Movements() []entity.Movement
}

// DashboardUseCase genera el resumen del inventario: totales, valor
// estimado, artículos bajo umbral, desglose por categoría y los últimos
// movimientos.
type DashboardUseCase struct {
	snapshot Snapshot
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(snapshot Snapshot) *DashboardUseCase {
	return &DashboardUseCase{snapshot: snapshot}
}

// GetSummary construye el DashboardSummaryDTO a partir del estado actual.
func (uc *DashboardUseCase) GetSummary() *dto.DashboardSummaryDTO {
	items := uc.snapshot.Items()
	movements := uc.snapshot.Movements()

	summary := &dto.DashboardSummaryDTO{
		TotalItems:    len(items),
		TotalValue:    decimal.Zero,
		LowStockItems: []dto.LowStockItemDTO{},
		Categories:    []dto.CategorySummaryDTO{},
	}

	type catAgg struct {
		uniqueItems int
		totalUnits  int
		totalValue  decimal.Decimal
	}
	byCategory := make(map[string]*catAgg)

	var mostStocked *entity.Item
	for i := range items {
		item := &items[i]
		summary.TotalUnits += item.Quantity
		summary.TotalValue = summary.TotalValue.Add(item.Value())

		if item.IsLowStock() {
			summary.LowStockItems = append(summary.LowStockItems, dto.LowStockItemDTO{
				ID:        item.ID,
				Name:      item.Name,
				Quantity:  item.Quantity,
				Threshold: *item.LowStockThreshold,
			})
		}
		if mostStocked == nil || item.Quantity > mostStocked.Quantity {
			mostStocked = item
		}

		category := item.Category
		if category == "" {
			category = uncategorizedLabel
		}
		agg, ok := byCategory[category]
		if !ok {
			agg = &catAgg{totalValue: decimal.Zero}
			byCategory[category] = agg
		}
		agg.uniqueItems++
		agg.totalUnits += item.Quantity
		agg.totalValue = agg.totalValue.Add(item.Value())
	}
	summary.LowStockCount = len(summary.LowStockItems)

	if mostStocked != nil {
		summary.MostStocked = &dto.MostStockedItemDTO{
			ID:       mostStocked.ID,
			Name:     mostStocked.Name,
			Quantity: mostStocked.Quantity,
		}
	}

	for category, agg := range byCategory {
		summary.Categories = append(summary.Categories, dto.CategorySummaryDTO{
			Category:    category,
			UniqueItems: agg.uniqueItems,
			TotalUnits:  agg.totalUnits,
			TotalValue:  agg.totalValue,
		})
	}
	sort.Slice(summary.Categories, func(i, j int) bool {
		return summary.Categories[i].Category < summary.Categories[j].Category
	})

	// Movements ya viene ordenado por fecha descendente.
	if len(movements) > recentMovementsLimit {
		movements = movements[:recentMovementsLimit]
	}
	summary.RecentMovements = movements

	return summary
}
