package mqtt

import (
	"context"
	"fmt"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/univesp-PI-III/merenda-certa/pkg/config"
)

// Publisher publica mensajes en el broker (simulador de medidores).
type Publisher struct {
	client paho.Client
	qos    byte
}

// NewPublisher conecta un cliente de publicación.
func NewPublisher(ctx context.Context, cfg config.MQTTConfig) (*Publisher, error) {
	client := paho.NewClient(clientOptions(cfg, "merenda-simulator"))
	if err := connect(ctx, client, cfg.BrokerURL); err != nil {
		client.Disconnect(0)
		return nil, err
	}
	return &Publisher{client: client, qos: cfg.QoS}, nil
}

// Publish envía payload al tópico y espera la confirmación según el QoS.
func (p *Publisher) Publish(ctx context.Context, topic string, payload []byte) error {
	if !p.client.IsConnectionOpen() {
		return errNotConnected
	}
	if err := wait(ctx, p.client.Publish(topic, p.qos, false, payload)); err != nil {
		return fmt.Errorf("publicar en %s: %w", topic, err)
	}
	return nil
}

// Close desconecta el cliente.
func (p *Publisher) Close() {
	p.client.Disconnect(disconnectQuiet)
}
