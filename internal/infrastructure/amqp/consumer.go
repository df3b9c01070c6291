// Package amqp consume la telemetría desde RabbitMQ. El plugin MQTT de RabbitMQ republica
// los tópicos en el exchange amq.topic cambiando '/' por '.'.
package amqp

import (
	"context"
	"errors"
	"fmt"

	"github.com/streadway/amqp"
	"github.com/univesp-PI-III/merenda-certa/internal/application/telemetry"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/entity"
	"github.com/univesp-PI-III/merenda-certa/pkg/config"
	"github.com/univesp-PI-III/merenda-certa/pkg/logger"
)

const prefetch = 32

// Handler procesa un mensaje de telemetría (telemetry.Ingestor).
type Handler interface {
	Handle(ctx context.Context, topic string, payload []byte) (*entity.Reading, error)
}

// Consumer declara una cola durable ligada al exchange y entrega cada mensaje al Handler.
type Consumer struct {
	cfg        config.AMQPConfig
	routingKey string
	handler    Handler
	log        *logger.Logger
}

// NewConsumer construye el consumidor; routingKey es el binding (p. ej. merenda.temperature.*.reading).
func NewConsumer(cfg config.AMQPConfig, routingKey string, handler Handler, log *logger.Logger) *Consumer {
	return &Consumer{cfg: cfg, routingKey: routingKey, handler: handler, log: log.Component("amqp")}
}

// Run conecta y consume hasta que ctx termina o el broker cierra la conexión.
func (c *Consumer) Run(ctx context.Context) error {
	conn, err := amqp.Dial(c.cfg.URL)
	if err != nil {
		return fmt.Errorf("conectar a RabbitMQ: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("crear canal: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := c.setup(ch); err != nil {
		return err
	}

	msgs, err := ch.Consume(c.cfg.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consumir de %s: %w", c.cfg.Queue, err)
	}
	closed := conn.NotifyClose(make(chan *amqp.Error, 1))

	c.log.Info().
		Str("exchange", c.cfg.Exchange).
		Str("queue", c.cfg.Queue).
		Str("routing_key", c.routingKey).
		Msg("esperando mensajes de telemetría")

	for {
		select {
		case <-ctx.Done():
			c.log.Info().Msg("consumidor AMQP detenido")
			return nil
		case amqpErr := <-closed:
			if amqpErr == nil {
				return errors.New("conexión AMQP cerrada")
			}
			return fmt.Errorf("conexión AMQP cerrada: %w", amqpErr)
		case d, ok := <-msgs:
			if !ok {
				return errors.New("canal de entregas AMQP cerrado")
			}
			c.deliver(ctx, d)
		}
	}
}

func (c *Consumer) setup(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(c.cfg.Exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declarar exchange %s: %w", c.cfg.Exchange, err)
	}
	q, err := ch.QueueDeclare(c.cfg.Queue, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("declarar queue %s: %w", c.cfg.Queue, err)
	}
	if err := ch.QueueBind(q.Name, c.routingKey, c.cfg.Exchange, false, nil); err != nil {
		return fmt.Errorf("binding de %s: %w", c.routingKey, err)
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return fmt.Errorf("configurar QoS: %w", err)
	}
	return nil
}

// deliver entrega un mensaje al Handler. Un mensaje descartado no se re-encola.
func (c *Consumer) deliver(ctx context.Context, d amqp.Delivery) {
	topic := telemetry.TopicFromRoutingKey(d.RoutingKey)
	if _, err := c.handler.Handle(ctx, topic, d.Body); err != nil {
		if nackErr := d.Nack(false, false); nackErr != nil {
			c.log.Warn().Err(nackErr).Msg("nack falló")
		}
		return
	}
	if err := d.Ack(false); err != nil {
		c.log.Warn().Err(err).Msg("ack falló")
	}
}
