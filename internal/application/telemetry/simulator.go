package telemetry

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/temperature"
	"github.com/univesp-PI-III/merenda-certa/pkg/logger"
)

// outlierRate fracción de lecturas simuladas fuera de la banda.
const outlierRate = 0.25

// Publisher publica un mensaje en un tópico (infrastructure/mqtt.Publisher).
type Publisher interface {
	Publish(ctx context.Context, topic string, payload []byte) error
}

// Simulator publica periódicamente una lectura por medidor, como lo harían los equipos.
type Simulator struct {
	router   *Router
	pub      Publisher
	meters   []temperature.DefaultMeter
	interval time.Duration
	rnd      *rand.Rand
	now      func() time.Time
	log      *logger.Logger
}

// NewSimulator construye el simulador. rnd puede ser nil (semilla aleatoria).
func NewSimulator(
	router *Router,
	pub Publisher,
	meters []temperature.DefaultMeter,
	interval time.Duration,
	rnd *rand.Rand,
	log *logger.Logger,
) *Simulator {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Simulator{
		router:   router,
		pub:      pub,
		meters:   meters,
		interval: interval,
		rnd:      rnd,
		now:      time.Now,
		log:      log.Component("simulator"),
	}
}

// Run publica cada interval hasta que ctx termina.
func (s *Simulator) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := s.Tick(ctx); err != nil && ctx.Err() == nil {
				s.log.Warn().Err(err).Msg("publicación fallida")
			}
		}
	}
}

// Tick publica una lectura por medidor. Devuelve el último error de publicación.
func (s *Simulator) Tick(ctx context.Context) error {
	var last error
	for _, m := range s.meters {
		temp := SimulatedTemperature(m.MinTemp, m.MaxTemp, s.rnd)
		recordedAt := s.now().UTC().Format(time.RFC3339Nano)
		payload, err := json.Marshal(Payload{
			MeterCode:    m.MeterCode,
			TemperatureC: json.RawMessage(temp.String()),
			RecordedAt:   &recordedAt,
		})
		if err != nil {
			return err
		}
		topic := s.router.Topic(m.MeterCode)
		if err := s.pub.Publish(ctx, topic, payload); err != nil {
			last = err
			continue
		}
		s.log.Info().Str("topic", topic).RawJSON("payload", payload).Msg("lectura publicada")
	}
	return last
}

// SimulatedTemperature punto medio de la banda más una variación: ±1.5 normalmente y,
// en una de cada cuatro lecturas, entre 7 y 10 grados por debajo o entre 5 y 9 por encima.
// Redondeado a un decimal.
func SimulatedTemperature(minTemp, maxTemp decimal.Decimal, rnd *rand.Rand) decimal.Decimal {
	lo, hi := minTemp.InexactFloat64(), maxTemp.InexactFloat64()
	midpoint := lo + (hi-lo)/2

	var variation float64
	switch {
	case rnd.Float64() >= outlierRate:
		variation = -1.5 + rnd.Float64()*3
	case rnd.Float64() < 0.5:
		variation = -7 - rnd.Float64()*3
	default:
		variation = 5 + rnd.Float64()*4
	}
	return decimal.NewFromFloat(midpoint + variation).Round(1)
}
