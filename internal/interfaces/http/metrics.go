package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/inventario-serverless/internal/application/inventory"
)

var _ inventory.MovementObserver = (*Metrics)(nil)

// Metrics agrupa los colectores Prometheus de un proceso. Cada instancia usa su propio registro.
type Metrics struct {
	registry       *prometheus.Registry
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	movements      *prometheus.CounterVec
}

// NewMetrics crea y registra los colectores. namespace prefija los nombres (p. ej. "inventario").
func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total de peticiones HTTP por método, ruta y código",
			},
			[]string{"method", "route", "status"},
		),
		requestLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Latencia de peticiones HTTP",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		movements: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stock_movements_total",
				Help:      "Movimientos de stock por tipo y resultado",
			},
			[]string{"kind", "result"},
		),
	}
	m.registry.MustRegister(
		m.requestCounter,
		m.requestLatency,
		m.movements,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveMovement implementa inventory.MovementObserver.
func (m *Metrics) ObserveMovement(kind, result string) {
	m.movements.WithLabelValues(kind, result).Inc()
}

// Middleware mide cada petición. La ruta usa el patrón registrado para acotar la cardinalidad.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			status = StatusFor(err)
		}
		route := c.Route().Path
		m.requestCounter.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.requestLatency.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler expone /metrics.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
