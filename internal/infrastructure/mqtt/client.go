// Package mqtt conecta la ingesta de telemetría a un broker MQTT (paho).
package mqtt

import (
	"context"
	"errors"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/univesp-PI-III/merenda-certa/pkg/config"
)

const (
	connectTimeout  = 10 * time.Second
	disconnectQuiet = 250 // ms
)

// clientOptions opciones comunes de suscriptor y publicador.
func clientOptions(cfg config.MQTTConfig, prefix string) *paho.ClientOptions {
	id := cfg.ClientID
	if id == "" {
		id = prefix + "-" + uuid.NewString()[:8]
	}
	opts := paho.NewClientOptions().
		AddBroker(cfg.BrokerURL).
		SetClientID(id).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(2 * time.Second).
		SetConnectTimeout(connectTimeout).
		SetOrderMatters(false)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username).SetPassword(cfg.Password)
	}
	return opts
}

// wait espera un token de paho respetando ctx.
func wait(ctx context.Context, t paho.Token) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.Done():
		return t.Error()
	}
}

var errNotConnected = errors.New("mqtt: cliente no conectado")

func connect(ctx context.Context, c paho.Client, broker string) error {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := wait(ctx, c.Connect()); err != nil {
		return fmt.Errorf("conectar a %s: %w", broker, err)
	}
	return nil
}
