// Package metrics expone contadores Prometheus de la ingesta de telemetría.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/univesp-PI-III/merenda-certa/internal/application/telemetry"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/entity"
)

var _ telemetry.Metrics = (*Telemetry)(nil)

// Telemetry implementa telemetry.Metrics sobre un registro propio.
type Telemetry struct {
	registry *prometheus.Registry
	received prometheus.Counter
	dropped  *prometheus.CounterVec
	stored   *prometheus.CounterVec
	failed   prometheus.Counter
}

// New registra los contadores (y los collectors de proceso y runtime) en un registro nuevo.
func New(namespace string) *Telemetry {
	reg := prometheus.NewRegistry()
	t := &Telemetry{
		registry: reg,
		received: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "telemetry",
			Name:      "messages_received_total",
			Help:      "Mensajes de temperatura recibidos del broker.",
		}),
		dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "telemetry",
			Name:      "messages_dropped_total",
			Help:      "Mensajes descartados por motivo.",
		}, []string{"reason"}),
		stored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "telemetry",
			Name:      "readings_stored_total",
			Help:      "Lecturas guardadas por estado.",
		}, []string{"status"}),
		failed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "telemetry",
			Name:      "readings_failed_total",
			Help:      "Lecturas que no se pudieron guardar.",
		}),
	}
	reg.MustRegister(
		t.received, t.dropped, t.stored, t.failed,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return t
}

func (t *Telemetry) MessageReceived() { t.received.Inc() }

func (t *Telemetry) MessageDropped(reason string) { t.dropped.WithLabelValues(reason).Inc() }

func (t *Telemetry) ReadingStored(status entity.ReadingStatus) {
	t.stored.WithLabelValues(string(status)).Inc()
}

func (t *Telemetry) ReadingFailed() { t.failed.Inc() }

// Handler sirve el formato de exposición de Prometheus para este registro.
func (t *Telemetry) Handler() http.Handler {
	return promhttp.HandlerFor(t.registry, promhttp.HandlerOpts{})
}

// Registry devuelve el registro subyacente.
func (t *Telemetry) Registry() *prometheus.Registry {
	return t.registry
}
