package telemetry

import (
	"context"
	"time"

	"github.com/univesp-PI-III/merenda-certa/internal/domain/entity"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/repository"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/temperature"
	"github.com/univesp-PI-III/merenda-certa/pkg/logger"
)

// Ingestor decodifica y clasifica mensajes y los encola para el Writer.
// No escribe en el almacén: solo lee el medidor.
type Ingestor struct {
	router  *Router
	meters  repository.MeterRepository
	queue   chan<- *entity.Reading
	metrics Metrics
	now     func() time.Time
	log     *logger.Logger
}

// NewIngestor construye el ingestor. metrics puede ser nil.
func NewIngestor(
	router *Router,
	meters repository.MeterRepository,
	queue chan<- *entity.Reading,
	metrics Metrics,
	now func() time.Time,
	log *logger.Logger,
) *Ingestor {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	if now == nil {
		now = time.Now
	}
	return &Ingestor{router: router, meters: meters, queue: queue, metrics: metrics, now: now, log: log.Component("telemetry")}
}

// Handle procesa un mensaje. Devuelve una copia de la lectura encolada (el Writer es dueño de la
// encolada) o un *DropError; nunca entra en pánico por un payload inválido. El código de medidor
// del tópico manda sobre el del payload.
func (in *Ingestor) Handle(ctx context.Context, topic string, payload []byte) (*entity.Reading, error) {
	in.metrics.MessageReceived()
	reading, err := in.route(ctx, topic, payload)
	if err != nil {
		reason, _ := DropReason(err)
		in.metrics.MessageDropped(reason)
		ev := in.log.Debug()
		if reason == DropLookup || reason == DropBufferFull {
			ev = in.log.Warn()
		}
		ev.Err(err).Str("topic", topic).Str("reason", reason).Msg("mensaje de telemetría descartado")
		return nil, err
	}
	return reading, nil
}

func (in *Ingestor) route(ctx context.Context, topic string, payload []byte) (*entity.Reading, error) {
	code, ok := in.router.MeterCode(topic)
	if !ok {
		return nil, drop(DropTopic, "")
	}
	msg, err := decodePayload(payload)
	if err != nil {
		return nil, err
	}
	meter, err := in.meters.GetByCode(ctx, code)
	if err != nil {
		return nil, drop(DropLookup, err.Error())
	}
	if meter == nil {
		return nil, drop(DropMeter, code)
	}

	recordedAt := in.now()
	if msg.recordedAt != nil {
		recordedAt = *msg.recordedAt
	}
	reading := &entity.Reading{
		MeterID:      meter.ID,
		TemperatureC: msg.temperatureC,
		Status:       temperature.Classify(msg.temperatureC, meter.MinTemp, meter.MaxTemp),
		Source:       entity.SourceTelemetry,
		RecordedAt:   recordedAt,
		MeterName:    meter.Name,
		MeterCode:    meter.MeterCode,
		MinTemp:      meter.MinTemp,
		MaxTemp:      meter.MaxTemp,
	}

	queued := *reading
	select {
	case in.queue <- &queued:
		return reading, nil
	default:
		return nil, drop(DropBufferFull, code)
	}
}
