package ledger

// NotificationSink es el canal lateral por el que el motor avisa de stock
// bajo. El motor decide únicamente cuándo notificar; cómo se muestra la
// alerta es asunto de la capa de presentación. Fire-and-forget: el motor no
// consume valor de retorno ni propaga fallos del sink.
type NotificationSink interface {
	NotifyLowStock(itemName string, currentQuantity, threshold int)
}

// NopSink descarta todas las notificaciones. Útil en tests y herramientas.
type NopSink struct{}

func (NopSink) NotifyLowStock(string, int, int) {}
