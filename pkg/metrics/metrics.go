package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "rms"

// Registry agrupa os coletores do serviço em um registro próprio
type Registry struct {
	reg *prometheus.Registry
}

// NewRegistry cria um registro com os coletores de runtime e processo
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Registry{reg: reg}
}

// Handler expõe as métricas no formato Prometheus
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

// Gatherer expõe o registro para inspeção
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// ServerMetrics mede as requisições HTTP
type ServerMetrics struct {
	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec
}

// NewServerMetrics cria e registra as métricas HTTP
func (r *Registry) NewServerMetrics() *ServerMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "route", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"method", "route"})

	r.reg.MustRegister(requests, latency)
	return &ServerMetrics{Requests: requests, LatencyMS: latency}
}

// Middleware registra contagem e latência por rota
func (m *ServerMetrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.Requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.LatencyMS.WithLabelValues(c.Request.Method, route).Observe(float64(time.Since(start).Milliseconds()))
	}
}

// SaleMetrics conta os resultados da criação de vendas. Um ponteiro nil é válido e não registra nada.
type SaleMetrics struct {
	Created  prometheus.Counter
	Replayed prometheus.Counter
	Failures *prometheus.CounterVec
}

// NewSaleMetrics cria e registra as métricas de venda
func (r *Registry) NewSaleMetrics() *SaleMetrics {
	created := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sales_created_total",
		Help:      "Total number of committed sales.",
	})
	replayed := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sales_replayed_total",
		Help:      "Total number of sale requests answered from an idempotency key.",
	})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sale_failures_total",
		Help:      "Total number of rejected or failed sale requests.",
	}, []string{"kind"})

	r.reg.MustRegister(created, replayed, failures)
	return &SaleMetrics{Created: created, Replayed: replayed, Failures: failures}
}

// ObserveCreated registra uma venda confirmada
func (m *SaleMetrics) ObserveCreated() {
	if m == nil {
		return
	}
	m.Created.Inc()
}

// ObserveReplayed registra uma resposta vinda de chave de idempotência
func (m *SaleMetrics) ObserveReplayed() {
	if m == nil {
		return
	}
	m.Replayed.Inc()
}

// ObserveFailure registra uma falha pelo tipo de erro
func (m *SaleMetrics) ObserveFailure(kind string) {
	if m == nil {
		return
	}
	m.Failures.WithLabelValues(kind).Inc()
}
