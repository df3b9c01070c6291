// Package telemetry enruta lecturas de temperatura recibidas por el broker hacia el libro.
//
// Flujo: suscriptor → Ingestor.Handle (tópico, payload, medidor, clasificación) → cola acotada →
// Writer (única goroutine que agrega lecturas). Un mensaje inválido se descarta y el flujo sigue.
package telemetry

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Motivos de descarte (también son la etiqueta de la métrica).
const (
	DropTopic       = "topic"
	DropPayload     = "payload"
	DropTemperature = "temperature"
	DropRecordedAt  = "recorded_at"
	DropMeter       = "unknown_meter"
	DropLookup      = "lookup"
	DropBufferFull  = "buffer_full"
)

// DropError mensaje descartado por la ingesta. Nunca sale del camino de ingesta.
type DropError struct {
	Reason string
	Detail string
}

func (e *DropError) Error() string {
	if e.Detail == "" {
		return "telemetría descartada: " + e.Reason
	}
	return fmt.Sprintf("telemetría descartada: %s: %s", e.Reason, e.Detail)
}

// DropReason devuelve el motivo si err es un DropError.
func DropReason(err error) (string, bool) {
	var de *DropError
	if errors.As(err, &de) {
		return de.Reason, true
	}
	return "", false
}

func drop(reason, detail string) error {
	return &DropError{Reason: reason, Detail: detail}
}

// Router reconoce tópicos <namespace>/temperature/<meterCode>/reading.
type Router struct {
	namespace string
	pattern   *regexp.Regexp
}

// NewRouter construye el enrutador para el namespace dado.
func NewRouter(namespace string) *Router {
	return &Router{
		namespace: namespace,
		pattern:   regexp.MustCompile(`^` + regexp.QuoteMeta(namespace) + `/temperature/([^/]+)/reading$`),
	}
}

// MeterCode extrae el código de medidor del tópico.
func (r *Router) MeterCode(topic string) (string, bool) {
	m := r.pattern.FindStringSubmatch(topic)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Filter filtro MQTT que cubre todos los medidores.
func (r *Router) Filter() string {
	return r.namespace + "/temperature/+/reading"
}

// RoutingKey clave de binding AMQP equivalente al filtro MQTT (el plugin MQTT de RabbitMQ usa '.').
func (r *Router) RoutingKey() string {
	return RoutingKeyFromTopic(r.namespace) + ".temperature.*.reading"
}

// El plugin MQTT de RabbitMQ intercambia '/' y '.' en ambos sentidos.
var routingKeySwap = strings.NewReplacer(".", "/", "/", ".")

// TopicFromRoutingKey convierte una routing key AMQP al tópico MQTT original.
func TopicFromRoutingKey(key string) string {
	return routingKeySwap.Replace(key)
}

// RoutingKeyFromTopic convierte un tópico MQTT a la routing key que publica el plugin.
func RoutingKeyFromTopic(topic string) string {
	return routingKeySwap.Replace(topic)
}

// Topic tópico de publicación para un medidor.
func (r *Router) Topic(meterCode string) string {
	return r.namespace + "/temperature/" + meterCode + "/reading"
}

// Payload mensaje de telemetría en el cable.
type Payload struct {
	MeterCode    string          `json:"meterCode"`
	TemperatureC json.RawMessage `json:"temperatureC"`
	RecordedAt   *string         `json:"recordedAt,omitempty"`
}

type decoded struct {
	temperatureC decimal.Decimal
	recordedAt   *time.Time
}

// decodePayload exige un objeto JSON con temperatureC numérico; recordedAt opcional en RFC3339.
func decodePayload(raw []byte) (decoded, error) {
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return decoded{}, drop(DropPayload, err.Error())
	}

	num := strings.TrimSpace(string(p.TemperatureC))
	if num == "" || num == "null" || strings.HasPrefix(num, `"`) {
		return decoded{}, drop(DropTemperature, "temperatureC ausente o no numérico")
	}
	temp, err := decimal.NewFromString(num)
	if err != nil {
		return decoded{}, drop(DropTemperature, err.Error())
	}

	out := decoded{temperatureC: temp}
	if p.RecordedAt != nil && strings.TrimSpace(*p.RecordedAt) != "" {
		t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(*p.RecordedAt))
		if err != nil {
			return decoded{}, drop(DropRecordedAt, err.Error())
		}
		out.recordedAt = &t
	}
	return out, nil
}
