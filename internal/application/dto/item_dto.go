package dto

import (
	"fmt"

	"github.com/qmd-apps/inventario-ledger/internal/application/ledger"
	"github.com/qmd-apps/inventario-ledger/internal/domain"
)

// Límites de los campos del formulario de artículo.
const (
	maxNameLen        = 100
	maxDescriptionLen = 500
	maxCategoryLen    = 50
)

// ItemFormRequest body para crear o editar un artículo. Los campos numéricos
// llegan como número o como string (formularios); Validate hace la coerción
// y aplica los límites antes de construir el ItemInput tipado del motor.
type ItemFormRequest struct {
	Name              string      `json:"name"`
	Description       string      `json:"description"`
	Quantity          FlexNumber  `json:"quantity"`
	Price             *FlexNumber `json:"price,omitempty"`
	Category          string      `json:"category"`
	LowStockThreshold *FlexNumber `json:"lowStockThreshold,omitempty"`
}

// Validate valida y convierte el request a la entrada tipada del motor.
// Todo error envuelve domain.ErrInvalidInput.
func (r ItemFormRequest) Validate() (ledger.ItemInput, error) {
	var in ledger.ItemInput

	if r.Name == "" {
		return in, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	if len([]rune(r.Name)) > maxNameLen {
		return in, fmt.Errorf("%w: el nombre no puede exceder los %d caracteres", domain.ErrInvalidInput, maxNameLen)
	}
	if len([]rune(r.Description)) > maxDescriptionLen {
		return in, fmt.Errorf("%w: la descripción no puede exceder los %d caracteres", domain.ErrInvalidInput, maxDescriptionLen)
	}
	if len([]rune(r.Category)) > maxCategoryLen {
		return in, fmt.Errorf("%w: la categoría no puede exceder los %d caracteres", domain.ErrInvalidInput, maxCategoryLen)
	}

	qty, err := r.Quantity.Int()
	if err != nil {
		return in, fmt.Errorf("%w: cantidad: %v", domain.ErrInvalidInput, err)
	}
	if qty < 0 {
		return in, fmt.Errorf("%w: la cantidad no puede ser negativa", domain.ErrInvalidInput)
	}

	in.Name = r.Name
	in.Description = r.Description
	in.Quantity = qty
	in.Category = r.Category

	if r.Price != nil && !r.Price.Empty() {
		price, err := r.Price.Decimal()
		if err != nil {
			return in, fmt.Errorf("%w: precio: %v", domain.ErrInvalidInput, err)
		}
		if price.IsNegative() {
			return in, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
		}
		in.Price = &price
	}

	if r.LowStockThreshold != nil && !r.LowStockThreshold.Empty() {
		threshold, err := r.LowStockThreshold.Int()
		if err != nil {
			return in, fmt.Errorf("%w: umbral: %v", domain.ErrInvalidInput, err)
		}
		if threshold < 0 {
			return in, fmt.Errorf("%w: el umbral no puede ser negativo", domain.ErrInvalidInput)
		}
		in.LowStockThreshold = &threshold
	}

	return in, nil
}

// StockRequest body para registrar una entrada o salida de stock.
type StockRequest struct {
	ItemID   string     `json:"item_id"`
	Quantity FlexNumber `json:"quantity"`
	Reason   string     `json:"reason"`
}

// Validate valida y convierte la cantidad. La validación de positividad
// estricta (ErrInvalidQuantity) es del motor; aquí solo se coercia el tipo.
func (r StockRequest) Validate() (int, error) {
	if r.ItemID == "" {
		return 0, fmt.Errorf("%w: item_id es obligatorio", domain.ErrInvalidInput)
	}
	qty, err := r.Quantity.Int()
	if err != nil {
		return 0, fmt.Errorf("%w: cantidad: %v", domain.ErrInvalidInput, err)
	}
	return qty, nil
}

// AdjustRequest body para los ayudantes de incremento/decremento. Amount
// ausente equivale a 1, igual que en la operación original.
type AdjustRequest struct {
	Amount *FlexNumber `json:"amount,omitempty"`
	Reason string      `json:"reason"`
}

// Validate devuelve el monto coercionado (1 por defecto).
func (r AdjustRequest) Validate() (int, error) {
	if r.Amount == nil || r.Amount.Empty() {
		return 1, nil
	}
	amount, err := r.Amount.Int()
	if err != nil {
		return 0, fmt.Errorf("%w: monto: %v", domain.ErrInvalidInput, err)
	}
	return amount, nil
}
