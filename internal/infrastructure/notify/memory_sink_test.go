package notify

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySink_RecientesPrimero(t *testing.T) {
	sink := NewMemorySink(10)
	sink.NotifyLowStock("Primero", 2, 5)
	sink.NotifyLowStock("Segundo", 1, 5)

	alerts := sink.Recent()
	require.Len(t, alerts, 2)
	assert.Equal(t, "Segundo", alerts[0].ItemName)
	assert.Equal(t, "Primero", alerts[1].ItemName)
	assert.Equal(t, 1, alerts[0].Quantity)
	assert.Equal(t, 5, alerts[0].Threshold)
}

// El anillo descarta las alertas más antiguas al superar el límite.
func TestMemorySink_LimiteDelAnillo(t *testing.T) {
	sink := NewMemorySink(3)
	for i := 1; i <= 5; i++ {
		sink.NotifyLowStock(fmt.Sprintf("item-%d", i), i, 10)
	}

	alerts := sink.Recent()
	require.Len(t, alerts, 3)
	assert.Equal(t, "item-5", alerts[0].ItemName)
	assert.Equal(t, "item-3", alerts[2].ItemName)
}

func TestFanout_PropagaATodos(t *testing.T) {
	first := NewMemorySink(10)
	second := NewMemorySink(10)

	NewFanout(first, second).NotifyLowStock("Foco", 2, 5)

	assert.Len(t, first.Recent(), 1)
	assert.Len(t, second.Recent(), 1)
}
