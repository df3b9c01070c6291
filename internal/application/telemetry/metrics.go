package telemetry

import "github.com/univesp-PI-III/merenda-certa/internal/domain/entity"

// Metrics contadores de la ingesta. La implementación Prometheus vive en infrastructure/metrics.
type Metrics interface {
	MessageReceived()
	MessageDropped(reason string)
	ReadingStored(status entity.ReadingStatus)
	ReadingFailed()
}

// NopMetrics descarta todo.
type NopMetrics struct{}

func (NopMetrics) MessageReceived()                   {}
func (NopMetrics) MessageDropped(string)              {}
func (NopMetrics) ReadingStored(entity.ReadingStatus) {}
func (NopMetrics) ReadingFailed()                     {}
