// Package metrics registro Prometheus del API: HTTP y contadores de negocio.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Warehousing-api/internal/application/ports"
)

var _ ports.BusinessMetrics = (*Metrics)(nil)

// Metrics agrupa los colectores registrados en un registro propio.
type Metrics struct {
	serviceName string
	registry    *prometheus.Registry

	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	ledgerEntries      *prometheus.CounterVec
	transfersFinished  *prometheus.CounterVec
	ordersFinished     *prometheus.CounterVec
	workingHoursDenied prometheus.Counter
}

// New crea el registro con los colectores de Go y del proceso.
func New(serviceName, namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{serviceName: serviceName, registry: registry}

	m.httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total de peticiones HTTP",
	}, []string{"service", "method", "path", "status"})

	m.httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duración de las peticiones HTTP en segundos",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"service", "method", "path"})

	m.httpRequestsInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   namespace,
		Name:        "http_requests_in_flight",
		Help:        "Peticiones HTTP en curso",
		ConstLabels: prometheus.Labels{"service": serviceName},
	})

	m.ledgerEntries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "inventory_ledger_entries_total",
		Help:      "Movimientos de inventario registrados por tipo",
	}, []string{"service", "type"})

	m.transfersFinished = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_transfers_finished_total",
		Help:      "Traslados completados o cancelados",
	}, []string{"service", "status"})

	m.ordersFinished = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_finished_total",
		Help:      "Órdenes completadas o canceladas por tipo",
	}, []string{"service", "type", "status"})

	m.workingHoursDenied = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   namespace,
		Name:        "working_hours_denied_total",
		Help:        "Peticiones rechazadas por estar fuera del horario laboral",
		ConstLabels: prometheus.Labels{"service": serviceName},
	})

	registry.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.httpRequestsInFlight,
		m.ledgerEntries,
		m.transfersFinished,
		m.ordersFinished,
		m.workingHoursDenied,
	)
	return m
}

// Registry expone el registro (tests y colectores adicionales).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler sirve /metrics en formato Prometheus/OpenMetrics.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true}))
}

// Middleware mide cada petición. La etiqueta path usa la plantilla de la ruta (/api/products/:id)
// para no disparar la cardinalidad con IDs.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		m.httpRequestsInFlight.Inc()
		defer m.httpRequestsInFlight.Dec()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		path := "unmatched"
		if r := c.Route(); r != nil && r.Path != "" && r.Path != "/" {
			path = r.Path
		}
		m.RecordHTTPRequest(c.Method(), path, status, time.Since(start))
		return err
	}
}

// RecordHTTPRequest registra una petición HTTP terminada.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, d time.Duration) {
	m.httpRequestsTotal.WithLabelValues(m.serviceName, method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(d.Seconds())
}

func (m *Metrics) LedgerEntry(txType string) {
	m.ledgerEntries.WithLabelValues(m.serviceName, txType).Inc()
}

func (m *Metrics) TransferFinished(status string) {
	m.transfersFinished.WithLabelValues(m.serviceName, status).Inc()
}

func (m *Metrics) OrderFinished(orderType, status string) {
	m.ordersFinished.WithLabelValues(m.serviceName, orderType, status).Inc()
}

func (m *Metrics) WorkingHoursDenied() {
	m.workingHoursDenied.Inc()
}
