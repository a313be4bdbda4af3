package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/qmd-apps/inventario-ledger/internal/infrastructure/notify"
)

// AlertHandler sirve las alertas de stock bajo recientes (el feed que la UI
// muestra como avisos).
type AlertHandler struct {
	sink *notify.MemorySink
}

// NewAlertHandler construye el handler.
func NewAlertHandler(sink *notify.MemorySink) *AlertHandler {
	return &AlertHandler{sink: sink}
}

// Recent godoc
// @Summary      Alertas de stock bajo recientes
// @Tags         alerts
// @Produce      json
// @Success      200  {array}  notify.Alert
// @Router       /api/alerts [get]
func (h *AlertHandler) Recent(c *fiber.Ctx) error {
	alerts := h.sink.Recent()
	return c.JSON(fiber.Map{"total": len(alerts), "alerts": alerts})
}
