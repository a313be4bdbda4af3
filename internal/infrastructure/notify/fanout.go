package notify

import "github.com/qmd-apps/inventario-ledger/internal/application/ledger"

var _ ledger.NotificationSink = (*Fanout)(nil)

// Fanout reenvía cada alerta a varios sinks.
type Fanout struct {
	sinks []ledger.NotificationSink
}

// NewFanout construye el combinador.
func NewFanout(sinks ...ledger.NotificationSink) *Fanout {
	return &Fanout{sinks: sinks}
}

// NotifyLowStock reenvía a todos los sinks.
func (f *Fanout) NotifyLowStock(itemName string, currentQuantity, threshold int) {
	for _, s := range f.sinks {
		s.NotifyLowStock(itemName, currentQuantity, threshold)
	}
}
