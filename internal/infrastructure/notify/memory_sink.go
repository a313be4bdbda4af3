package notify

import (
	"sync"
	"time"

	"github.com/qmd-apps/inventario-ledger/internal/application/ledger"
)

var _ ledger.NotificationSink = (*MemorySink)(nil)

// Alert es una alerta de stock bajo ya emitida, tal como la sirve
// GET /api/alerts (el equivalente de servidor del toast de la UI original).
type Alert struct {
	ItemName  string    `json:"item_name"`
	Quantity  int       `json:"quantity"`
	Threshold int       `json:"threshold"`
	Date      time.Time `json:"date"`
}

// MemorySink retiene las últimas alertas en un anillo acotado.
type MemorySink struct {
	mu     sync.Mutex
	alerts []Alert
	limit  int
}

// NewMemorySink construye el sink con capacidad máxima limit.
func NewMemorySink(limit int) *MemorySink {
	if limit <= 0 {
		limit = 50
	}
	return &MemorySink{limit: limit}
}

// NotifyLowStock guarda la alerta, descartando la más antigua si el anillo
// está lleno.
func (s *MemorySink) NotifyLowStock(itemName string, currentQuantity, threshold int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, Alert{
		ItemName:  itemName,
		Quantity:  currentQuantity,
		Threshold: threshold,
		Date:      time.Now(),
	})
	if len(s.alerts) > s.limit {
		s.alerts = s.alerts[len(s.alerts)-s.limit:]
	}
}

// Recent devuelve las alertas de más reciente a más antigua.
func (s *MemorySink) Recent() []Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Alert, 0, len(s.alerts))
	for i := len(s.alerts) - 1; i >= 0; i-- {
		out = append(out, s.alerts[i])
	}
	return out
}
