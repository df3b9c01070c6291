package mqtt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/univesp-PI-III/merenda-certa/internal/domain/entity"
	"github.com/univesp-PI-III/merenda-certa/pkg/config"
	"github.com/univesp-PI-III/merenda-certa/pkg/logger"
)

type fakeMessage struct {
	topic   string
	payload []byte
}

func (m fakeMessage) Duplicate() bool   { return false }
func (m fakeMessage) Qos() byte         { return 0 }
func (m fakeMessage) Retained() bool    { return false }
func (m fakeMessage) Topic() string     { return m.topic }
func (m fakeMessage) MessageID() uint16 { return 1 }
func (m fakeMessage) Payload() []byte   { return m.payload }
func (m fakeMessage) Ack()              {}

type recordingHandler struct {
	topics   []string
	payloads []string
}

func (h *recordingHandler) Handle(_ context.Context, topic string, payload []byte) (*entity.Reading, error) {
	h.topics = append(h.topics, topic)
	h.payloads = append(h.payloads, string(payload))
	return nil, nil
}

func TestSubscriber_OnMessageDelegatesToHandler(t *testing.T) {
	h := &recordingHandler{}
	s := NewSubscriber(config.MQTTConfig{BrokerURL: "tcp://localhost:1883"}, "merenda/temperature/+/reading", h, logger.Nop())

	cb := s.onMessage(context.Background())
	cb(nil, fakeMessage{topic: "merenda/temperature/medidor-1/reading", payload: []byte(`{"temperatureC":63}`)})

	require.Len(t, h.topics, 1)
	assert.Equal(t, "merenda/temperature/medidor-1/reading", h.topics[0])
	assert.Equal(t, `{"temperatureC":63}`, h.payloads[0])
}

func TestSubscriber_OnMessageIgnoredAfterShutdown(t *testing.T) {
	h := &recordingHandler{}
	s := NewSubscriber(config.MQTTConfig{}, "x", h, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.onMessage(ctx)(nil, fakeMessage{topic: "merenda/temperature/medidor-1/reading"})

	assert.Empty(t, h.topics)
}

func TestClientOptions_GeneratesClientID(t *testing.T) {
	opts := clientOptions(config.MQTTConfig{BrokerURL: "tcp://broker:1883"}, "merenda-certa")
	assert.Contains(t, opts.ClientID, "merenda-certa-")

	opts = clientOptions(config.MQTTConfig{BrokerURL: "tcp://broker:1883", ClientID: "fixo", Username: "u", Password: "p"}, "merenda-certa")
	assert.Equal(t, "fixo", opts.ClientID)
	assert.Equal(t, "u", opts.Username)
	require.Len(t, opts.Servers, 1)
	assert.Equal(t, "broker:1883", opts.Servers[0].Host)
}
