package telemetry

import (
	"context"

	"github.com/univesp-PI-III/merenda-certa/internal/domain/entity"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/repository"
	"github.com/univesp-PI-III/merenda-certa/pkg/logger"
)

// NewQueue crea la cola acotada entre ingestor y writer.
func NewQueue(size int) chan *entity.Reading {
	if size <= 0 {
		size = 1
	}
	return make(chan *entity.Reading, size)
}

// Writer es el único que agrega lecturas de telemetría al almacén.
type Writer struct {
	readings repository.ReadingRepository
	queue    <-chan *entity.Reading
	metrics  Metrics
	log      *logger.Logger
}

// NewWriter construye el escritor. metrics puede ser nil.
func NewWriter(readings repository.ReadingRepository, queue <-chan *entity.Reading, metrics Metrics, log *logger.Logger) *Writer {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &Writer{readings: readings, queue: queue, metrics: metrics, log: log.Component("telemetry-writer")}
}

// Run consume la cola hasta que ctx se cancela o la cola se cierra.
// Al cancelar, escribe lo que ya estaba encolado antes de volver.
func (w *Writer) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.drain(context.WithoutCancel(ctx))
			return nil
		case r, ok := <-w.queue:
			if !ok {
				return nil
			}
			w.write(ctx, r)
		}
	}
}

func (w *Writer) drain(ctx context.Context) {
	n := 0
	for {
		select {
		case r, ok := <-w.queue:
			if !ok {
				w.log.Debug().Int("drained", n).Msg("cola de telemetría vaciada")
				return
			}
			w.write(ctx, r)
			n++
		default:
			w.log.Debug().Int("drained", n).Msg("cola de telemetría vaciada")
			return
		}
	}
}

func (w *Writer) write(ctx context.Context, r *entity.Reading) {
	if err := w.readings.Create(ctx, r); err != nil {
		w.metrics.ReadingFailed()
		w.log.Error().Err(err).Int64("meter_id", r.MeterID).Msg("no se pudo guardar la lectura")
		return
	}
	w.metrics.ReadingStored(r.Status)
	w.log.Debug().
		Int64("reading_id", r.ID).
		Str("meter_code", r.MeterCode).
		Str("temperature_c", r.TemperatureC.String()).
		Str("status", string(r.Status)).
		Msg("lectura guardada")
}
