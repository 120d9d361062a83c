package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/boutique-api/internal/application/ports"
)

const namespace = "boutique"

var _ ports.Metrics = (*Prometheus)(nil)

// Prometheus registro propio con métricas HTTP y de negocio.
type Prometheus struct {
	registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	inFlight        prometheus.Gauge
	accessDecisions *prometheus.CounterVec
	payments        *prometheus.CounterVec
	notifications   *prometheus.CounterVec
}

// New crea y registra todas las métricas, más los collectors de runtime y proceso.
func New() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duración de las peticiones HTTP en segundos.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total de peticiones HTTP.",
		}, []string{"method", "route", "status"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Peticiones HTTP en curso.",
		}),
		accessDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rbac",
			Name:      "decisions_total",
			Help:      "Decisiones de control de acceso por módulo, verbo y resultado.",
		}, []string{"module", "verb", "result"}),
		payments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "payments",
			Name:      "recorded_total",
			Help:      "Abonos registrados por medio de pago.",
		}, []string{"mode"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notifications",
			Name:      "created_total",
			Help:      "Avisos generados por el escaneo programado.",
		}, []string{"type"}),
	}
	p.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		p.requestDuration,
		p.requestTotal,
		p.inFlight,
		p.accessDecisions,
		p.payments,
		p.notifications,
	)
	return p
}

// Registry expone el registro (tests y handlers adicionales).
func (p *Prometheus) Registry() *prometheus.Registry { return p.registry }

func (p *Prometheus) AccessDecision(module, verb string, allowed bool) {
	result := "denied"
	if allowed {
		result = "allowed"
	}
	p.accessDecisions.WithLabelValues(module, verb, result).Inc()
}

func (p *Prometheus) PaymentRecorded(mode string) {
	p.payments.WithLabelValues(mode).Inc()
}

func (p *Prometheus) NotificationsCreated(kind string, n int) {
	if n <= 0 {
		return
	}
	p.notifications.WithLabelValues(kind).Add(float64(n))
}

// Middleware mide duración y total por ruta registrada (no por path crudo, para acotar cardinalidad).
func (p *Prometheus) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		p.inFlight.Inc()
		defer p.inFlight.Dec()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		route := c.Route().Path
		labels := []string{c.Method(), route, strconv.Itoa(status)}
		p.requestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		p.requestTotal.WithLabelValues(labels...).Inc()
		return err
	}
}

// Handler http.Handler para GET /metrics.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
