// Package ledger implementa el motor de inventario: mantiene en memoria las
// colecciones de artículos y movimientos, garantiza que cada cambio real de
// cantidad quede registrado como movimiento, y decide cuándo una caída bajo
// el umbral amerita una notificación de stock bajo.
//
// El motor es el único escritor de ambas colecciones. El Store inyectado es
// un espejo durable que se sincroniza tras cada mutación; un fallo de
// persistencia se registra y no revierte la mutación en memoria.
package ledger

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/qmd-apps/inventario-ledger/internal/domain"
	"github.com/qmd-apps/inventario-ledger/internal/domain/entity"
	"github.com/qmd-apps/inventario-ledger/internal/domain/repository"
	"github.com/qmd-apps/inventario-ledger/pkg/logger"
)

// Razones fijas por tipo de operación. El alta inicial y los ajustes por
// edición no reciben razón del caller; entradas y salidas explícitas sí.
const (
	ReasonInitialStock     = "Alta inicial de artículo"
	ReasonEditAdjustment   = "Ajuste de cantidad (edición)"
	DefaultIncrementReason = "Ajuste manual (incremento)"
	DefaultDecrementReason = "Ajuste manual (decremento)"
)

// ItemInput son los campos mutables de un artículo, ya validados y tipados.
// La coerción string→número del formulario ocurre en la capa de DTOs; aquí
// no entran valores crudos.
type ItemInput struct {
	Name              string
	Description       string
	Quantity          int
	Price             *decimal.Decimal
	Category          string
	LowStockThreshold *int
}

// Engine es el motor de inventario. Construir uno por sesión con New y
// llamar Init antes de operar; Initialized() expone la ventana de carga.
//
// Aunque el diseño asume un único escritor lógico, los handlers HTTP corren
// en goroutines concurrentes, así que las colecciones van protegidas por un
// RWMutex. Entre sesiones contra un store compartido aplica last-write-wins.
type Engine struct {
	store repository.Store
	sink  NotificationSink
	log   *logger.Logger

	mu          sync.RWMutex
	items       []entity.Item
	movements   []entity.Movement // más reciente primero
	initialized bool

	cancels []func()
}

// New construye el motor con sus dependencias inyectadas.
func New(store repository.Store, sink NotificationSink, log *logger.Logger) *Engine {
	if sink == nil {
		sink = NopSink{}
	}
	return &Engine{store: store, sink: sink, log: log}
}

// Init carga ambas colecciones desde el Store. Un fallo de carga se trata
// como "todavía no hay datos" (se registra, no se propaga). Si el Store
// soporta suscripción en vivo, las colecciones en memoria pasan a ser una
// proyección de sus eventos.
func (e *Engine) Init(ctx context.Context) error {
	items, err := e.store.LoadItems(ctx)
	if err != nil {
		e.log.Warn().Err(err).Msg("cargar artículos: se parte de colección vacía")
		items = nil
	}
	movements, err := e.store.LoadMovements(ctx)
	if err != nil {
		e.log.Warn().Err(err).Msg("cargar movimientos: se parte de colección vacía")
		movements = nil
	}

	e.mu.Lock()
	e.items = items
	e.movements = movements
	e.initialized = true
	e.mu.Unlock()

	if live, ok := e.store.(repository.LiveStore); ok {
		cancelItems, err := live.SubscribeItems(ctx, func(items []entity.Item) {
			e.mu.Lock()
			e.items = items
			e.mu.Unlock()
		})
		if err != nil {
			e.log.Warn().Err(err).Msg("suscripción de artículos no disponible")
		} else {
			e.cancels = append(e.cancels, cancelItems)
		}
		cancelMovs, err := live.SubscribeMovements(ctx, func(movs []entity.Movement) {
			e.mu.Lock()
			e.movements = movs
			e.mu.Unlock()
		})
		if err != nil {
			e.log.Warn().Err(err).Msg("suscripción de movimientos no disponible")
		} else {
			e.cancels = append(e.cancels, cancelMovs)
		}
	}

	e.log.Info().
		Int("items", len(items)).
		Int("movements", len(movements)).
		Msg("motor de inventario inicializado")
	return nil
}

// Close cancela las suscripciones en vivo, si las hay.
func (e *Engine) Close() {
	for _, cancel := range e.cancels {
		cancel()
	}
	e.cancels = nil
}

// Initialized indica si la carga inicial ya terminó. Mientras sea false las
// lecturas devuelven vacío y las mutaciones fallan con ErrNotInitialized.
func (e *Engine) Initialized() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.initialized
}

// ── Lecturas ──────────────────────────────────────────────────────────────────

// GetItemByID devuelve una copia del artículo, o false si no existe o el
// motor no está inicializado.
func (e *Engine) GetItemByID(id string) (entity.Item, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if !e.initialized {
		return entity.Item{}, false
	}
	for i := range e.items {
		if e.items[i].ID == id {
			return e.items[i], true
		}
	}
	return entity.Item{}, false
}

// Items devuelve una copia de la colección de artículos.
func (e *Engine) Items() []entity.Item {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if !e.initialized {
		return []entity.Item{}
	}
	out := make([]entity.Item, len(e.items))
	copy(out, e.items)
	return out
}

// Movements devuelve todos los movimientos ordenados por fecha descendente.
func (e *Engine) Movements() []entity.Movement {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if !e.initialized {
		return []entity.Movement{}
	}
	out := make([]entity.Movement, len(e.movements))
	copy(out, e.movements)
	sortByDateDesc(out)
	return out
}

// MovementsByItemID devuelve los movimientos de un artículo, fecha
// descendente. Funciona también para artículos ya eliminados: el historial
// sobrevive al borrado.
func (e *Engine) MovementsByItemID(itemID string) []entity.Movement {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := []entity.Movement{}
	if !e.initialized {
		return out
	}
	for _, m := range e.movements {
		if m.ItemID == itemID {
			out = append(out, m)
		}
	}
	sortByDateDesc(out)
	return out
}

// ── Mutaciones ────────────────────────────────────────────────────────────────

// AddItem crea un artículo. Si la cantidad inicial es mayor que cero se
// registra una entrada con razón fija; un artículo creado ya por debajo de
// su umbral notifica stock bajo de inmediato.
func (e *Engine) AddItem(ctx context.Context, in ItemInput) (*entity.Item, error) {
	e.mu.Lock()
	if !e.initialized {
		e.mu.Unlock()
		return nil, domain.ErrNotInitialized
	}

	now := time.Now()
	item := entity.Item{
		ID:                uuid.New().String(),
		Name:              in.Name,
		Description:       in.Description,
		Quantity:          in.Quantity,
		Price:             in.Price,
		Category:          in.Category,
		LowStockThreshold: in.LowStockThreshold,
		DateAdded:         now,
		LastUpdated:       now,
	}
	e.items = append(e.items, item)
	if in.Quantity > 0 {
		e.appendMovement(item, entity.MovementTypeEntrada, in.Quantity, ReasonInitialStock)
	}
	e.mu.Unlock()

	e.persist(ctx)
	e.checkLowStock(item, nil)
	return &item, nil
}

// UpdateItem reemplaza los campos mutables. Una diferencia de cantidad
// genera el movimiento correspondiente (entrada o salida) con razón fija;
// sin diferencia no se registra nada.
func (e *Engine) UpdateItem(ctx context.Context, id string, in ItemInput) (*entity.Item, error) {
	e.mu.Lock()
	if !e.initialized {
		e.mu.Unlock()
		return nil, domain.ErrNotInitialized
	}
	idx := e.indexOf(id)
	if idx < 0 {
		e.mu.Unlock()
		return nil, domain.ErrNotFound
	}

	oldQuantity := e.items[idx].Quantity
	item := &e.items[idx]
	item.Name = in.Name
	item.Description = in.Description
	item.Quantity = in.Quantity
	item.Price = in.Price
	item.Category = in.Category
	item.LowStockThreshold = in.LowStockThreshold
	item.LastUpdated = time.Now()

	delta := in.Quantity - oldQuantity
	switch {
	case delta > 0:
		e.appendMovement(*item, entity.MovementTypeEntrada, delta, ReasonEditAdjustment)
	case delta < 0:
		e.appendMovement(*item, entity.MovementTypeSalida, -delta, ReasonEditAdjustment)
	}
	updated := *item
	e.mu.Unlock()

	e.persist(ctx)
	e.checkLowStock(updated, &oldQuantity)
	return &updated, nil
}

// DeleteItem elimina el artículo. No es error que el id no exista. Los
// movimientos históricos no se tocan.
func (e *Engine) DeleteItem(ctx context.Context, id string) error {
	e.mu.Lock()
	if !e.initialized {
		e.mu.Unlock()
		return domain.ErrNotInitialized
	}
	idx := e.indexOf(id)
	if idx < 0 {
		e.mu.Unlock()
		return nil
	}
	e.items = append(e.items[:idx], e.items[idx+1:]...)
	e.mu.Unlock()

	e.persist(ctx)
	return nil
}

// RecordStockInput registra una entrada de stock con la razón del caller.
func (e *Engine) RecordStockInput(ctx context.Context, id string, quantity int, reason string) (*entity.Item, error) {
	return e.adjust(ctx, id, quantity, reason)
}

// RecordStockOutput registra una salida de stock. Se rechaza entera con
// ErrInsufficientStock si la cantidad supera el stock actual: nunca se
// aplica parcialmente ni se recorta.
func (e *Engine) RecordStockOutput(ctx context.Context, id string, quantity int, reason string) (*entity.Item, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	e.mu.Lock()
	if !e.initialized {
		e.mu.Unlock()
		return nil, domain.ErrNotInitialized
	}
	idx := e.indexOf(id)
	if idx < 0 {
		e.mu.Unlock()
		return nil, domain.ErrNotFound
	}
	item := &e.items[idx]
	if quantity > item.Quantity {
		e.mu.Unlock()
		return nil, domain.ErrInsufficientStock
	}

	oldQuantity := item.Quantity
	item.Quantity -= quantity
	item.LastUpdated = time.Now()
	e.appendMovement(*item, entity.MovementTypeSalida, quantity, reason)
	updated := *item
	e.mu.Unlock()

	e.persist(ctx)
	e.checkLowStock(updated, &oldQuantity)
	return &updated, nil
}

// IncrementQuantity es el ayudante genérico de aumento: se comporta igual
// que RecordStockInput. Con reason vacío usa la razón por defecto.
func (e *Engine) IncrementQuantity(ctx context.Context, id string, amount int, reason string) (*entity.Item, error) {
	if reason == "" {
		reason = DefaultIncrementReason
	}
	return e.adjust(ctx, id, amount, reason)
}

// DecrementQuantity es el ayudante genérico de disminución: recorta la
// resta efectiva a min(amount, cantidad actual) — el stock nunca baja de
// cero — y registra un movimiento solo por lo realmente descontado. Si el
// recorte deja la resta en cero no se registra movimiento.
func (e *Engine) DecrementQuantity(ctx context.Context, id string, amount int, reason string) (*entity.Item, error) {
	if reason == "" {
		reason = DefaultDecrementReason
	}
	if amount <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	e.mu.Lock()
	if !e.initialized {
		e.mu.Unlock()
		return nil, domain.ErrNotInitialized
	}
	idx := e.indexOf(id)
	if idx < 0 {
		e.mu.Unlock()
		return nil, domain.ErrNotFound
	}
	item := &e.items[idx]

	actual := amount
	if actual > item.Quantity {
		actual = item.Quantity
	}
	if actual == 0 {
		updated := *item
		e.mu.Unlock()
		return &updated, nil
	}

	oldQuantity := item.Quantity
	item.Quantity -= actual
	item.LastUpdated = time.Now()
	e.appendMovement(*item, entity.MovementTypeSalida, actual, reason)
	updated := *item
	e.mu.Unlock()

	e.persist(ctx)
	e.checkLowStock(updated, &oldQuantity)
	return &updated, nil
}

// adjust implementa el camino común de aumento (entrada explícita e
// incremento genérico).
func (e *Engine) adjust(ctx context.Context, id string, quantity int, reason string) (*entity.Item, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	e.mu.Lock()
	if !e.initialized {
		e.mu.Unlock()
		return nil, domain.ErrNotInitialized
	}
	idx := e.indexOf(id)
	if idx < 0 {
		e.mu.Unlock()
		return nil, domain.ErrNotFound
	}
	item := &e.items[idx]

	oldQuantity := item.Quantity
	item.Quantity += quantity
	item.LastUpdated = time.Now()
	e.appendMovement(*item, entity.MovementTypeEntrada, quantity, reason)
	updated := *item
	e.mu.Unlock()

	e.persist(ctx)
	e.checkLowStock(updated, &oldQuantity)
	return &updated, nil
}

// ── Internos ─────────────────────────────────────────────────────────────────

// indexOf busca un artículo por id. Llamar con el lock tomado.
func (e *Engine) indexOf(id string) int {
	for i := range e.items {
		if e.items[i].ID == id {
			return i
		}
	}
	return -1
}

// appendMovement registra un movimiento (el más reciente primero). Llamar
// con el lock tomado y solo cuando la cantidad cambió de verdad: la
// invariante es un movimiento si y solo si hubo cambio no nulo.
func (e *Engine) appendMovement(item entity.Item, movType string, quantity int, reason string) {
	if quantity <= 0 {
		return
	}
	m := entity.Movement{
		ID:              uuid.New().String(),
		ItemID:          item.ID,
		ItemName:        item.Name,
		Type:            movType,
		QuantityChanged: quantity,
		Reason:          reason,
		Date:            time.Now(),
	}
	e.movements = append([]entity.Movement{m}, e.movements...)
}

// checkLowStock aplica la regla de disparo por flanco: notificar si y solo
// si la cantidad nueva quedó bajo el umbral Y (no había cantidad previa —
// artículo recién creado — O la previa estaba en o sobre el umbral). Una
// mutación que deja el artículo todavía bajo el umbral no vuelve a avisar.
func (e *Engine) checkLowStock(item entity.Item, oldQuantity *int) {
	if item.LowStockThreshold == nil {
		return
	}
	threshold := *item.LowStockThreshold
	if item.Quantity >= threshold {
		return
	}
	if oldQuantity != nil && *oldQuantity < threshold {
		return // ya estaba bajo el umbral
	}
	e.sink.NotifyLowStock(item.Name, item.Quantity, threshold)
}

// persist espeja ambas colecciones al Store. Un fallo se registra como
// condición no fatal: la escritura es, como mucho, eventualmente persistida.
func (e *Engine) persist(ctx context.Context) {
	e.mu.RLock()
	items := make([]entity.Item, len(e.items))
	copy(items, e.items)
	movements := make([]entity.Movement, len(e.movements))
	copy(movements, e.movements)
	e.mu.RUnlock()

	if err := e.store.SaveItems(ctx, items); err != nil {
		e.log.Warn().Err(err).Msg("persistir artículos")
	}
	if err := e.store.SaveMovements(ctx, movements); err != nil {
		e.log.Warn().Err(err).Msg("persistir movimientos")
	}
}

func sortByDateDesc(movs []entity.Movement) {
	sort.SliceStable(movs, func(i, j int) bool {
		return movs[i].Date.After(movs[j].Date)
	})
}
