package mqtt

import (
	"context"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/entity"
	"github.com/univesp-PI-III/merenda-certa/pkg/config"
	"github.com/univesp-PI-III/merenda-certa/pkg/logger"
)

// Handler procesa un mensaje de telemetría (telemetry.Ingestor).
type Handler interface {
	Handle(ctx context.Context, topic string, payload []byte) (*entity.Reading, error)
}

// Subscriber se suscribe al filtro de telemetría y entrega cada mensaje al Handler.
type Subscriber struct {
	cfg     config.MQTTConfig
	filter  string
	handler Handler
	log     *logger.Logger
}

// NewSubscriber construye el suscriptor para el filtro dado (p. ej. merenda/temperature/+/reading).
func NewSubscriber(cfg config.MQTTConfig, filter string, handler Handler, log *logger.Logger) *Subscriber {
	return &Subscriber{cfg: cfg, filter: filter, handler: handler, log: log.Component("mqtt")}
}

// Run conecta, se suscribe (y se vuelve a suscribir en cada reconexión) y bloquea hasta que ctx termina.
func (s *Subscriber) Run(ctx context.Context) error {
	opts := clientOptions(s.cfg, "merenda-certa").
		SetOnConnectHandler(func(c paho.Client) {
			token := c.Subscribe(s.filter, s.cfg.QoS, s.onMessage(ctx))
			if err := wait(ctx, token); err != nil {
				s.log.Error().Err(err).Str("filter", s.filter).Msg("no se pudo suscribir")
				return
			}
			s.log.Info().Str("filter", s.filter).Msg("suscrito a telemetría")
		}).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			s.log.Warn().Err(err).Msg("conexión MQTT perdida; reintentando")
		})

	client := paho.NewClient(opts)
	if err := connect(ctx, client, s.cfg.BrokerURL); err != nil {
		client.Disconnect(0)
		return err
	}
	s.log.Info().Str("broker", s.cfg.BrokerURL).Msg("conectado al broker MQTT")

	<-ctx.Done()
	client.Disconnect(disconnectQuiet)
	s.log.Info().Msg("suscriptor MQTT detenido")
	return nil
}

// onMessage adapta el callback de paho al Handler. Los descartes ya quedan registrados por el Handler.
func (s *Subscriber) onMessage(ctx context.Context) paho.MessageHandler {
	return func(_ paho.Client, m paho.Message) {
		if ctx.Err() != nil {
			return
		}
		_, _ = s.handler.Handle(ctx, m.Topic(), m.Payload())
	}
}

