// Package notify contiene las implementaciones del NotificationSink de
// stock bajo: log estructurado, anillo en memoria para la API de alertas y
// un combinador fan-out.
package notify

import (
	"github.com/qmd-apps/inventario-ledger/internal/application/ledger"
	"github.com/qmd-apps/inventario-ledger/pkg/logger"
)

var _ ledger.NotificationSink = (*LogSink)(nil)

// LogSink escribe cada alerta de stock bajo como warn estructurado.
type LogSink struct {
	log *logger.Logger
}

// NewLogSink construye el sink.
func NewLogSink(log *logger.Logger) *LogSink {
	return &LogSink{log: log}
}

// NotifyLowStock registra la alerta.
func (s *LogSink) NotifyLowStock(itemName string, currentQuantity, threshold int) {
	s.log.Warn().
		Str("item", itemName).
		Int("quantity", currentQuantity).
		Int("threshold", threshold).
		Msg("alerta de stock bajo")
}
