package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/univesp-PI-III/merenda-certa/internal/application/telemetry"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/entity"
	"github.com/univesp-PI-III/merenda-certa/internal/infrastructure/metrics"
)

func TestTelemetry_Counters(t *testing.T) {
	m := metrics.New("merenda")

	m.MessageReceived()
	m.MessageReceived()
	m.MessageDropped(telemetry.DropPayload)
	m.ReadingStored(entity.ReadingAlert)
	m.ReadingFailed()

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	values := map[string]float64{}
	for _, f := range families {
		for _, metric := range f.GetMetric() {
			if metric.GetCounter() != nil {
				values[f.GetName()] += metric.GetCounter().GetValue()
			}
		}
	}
	assert.Equal(t, 2.0, values["merenda_telemetry_messages_received_total"])
	assert.Equal(t, 1.0, values["merenda_telemetry_messages_dropped_total"])
	assert.Equal(t, 1.0, values["merenda_telemetry_readings_stored_total"])
	assert.Equal(t, 1.0, values["merenda_telemetry_readings_failed_total"])
}
