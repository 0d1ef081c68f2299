// Package telemetry exports Prometheus metrics for classification passes,
// batch runs, and the HTTP API.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "lafter"

// Pass labels.
const (
	PassModel = "model"
	PassLLM   = "llm"
)

// Metrics holds all lafter Prometheus metrics.
type Metrics struct {
	Classifications  *prometheus.CounterVec
	ClassifyDuration *prometheus.HistogramVec
	LLMFailures      *prometheus.CounterVec
	BatchRuns        *prometheus.CounterVec
	BatchSize        *prometheus.HistogramVec
	ActiveWorkers    prometheus.Gauge
	HTTPRequests     *prometheus.CounterVec
}

// Provider owns a registry and the metrics registered on it. A nil
// *Provider is valid and records nothing.
type Provider struct {
	registry *prometheus.Registry
	Metrics  *Metrics
}

// NewProvider creates a private registry with process and Go collectors.
func NewProvider() *Provider {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Provider{registry: reg, Metrics: newMetrics(reg)}
}

func newMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Classifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classifications_total",
			Help:      "Titles classified, by pass and label",
		}, []string{"pass", "label"}),
		ClassifyDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "classify_duration_seconds",
			Help:      "Time to classify a single title",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"pass"}),
		LLMFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_failures_total",
			Help:      "LLM classifications that produced no verdict, by kind",
		}, []string{"kind"}),
		BatchRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_runs_total",
			Help:      "Batch runs by pass and outcome",
		}, []string{"pass", "outcome"}),
		BatchSize: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_size",
			Help:      "Items processed per batch run",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 200, 500},
		}, []string{"pass"}),
		ActiveWorkers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "llm_active_workers",
			Help:      "LLM batch workers currently running",
		}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP API requests by route and status code",
		}, []string{"route", "code"}),
	}
}

// Registry returns the underlying registry, or nil for a nil provider.
func (p *Provider) Registry() *prometheus.Registry {
	if p == nil {
		return nil
	}
	return p.registry
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func (p *Provider) Handler() http.Handler {
	if p == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

// RecordClassification records one verdict and its latency.
func (p *Provider) RecordClassification(pass, label string, duration time.Duration) {
	if p == nil {
		return
	}
	p.Metrics.Classifications.WithLabelValues(pass, label).Inc()
	p.Metrics.ClassifyDuration.WithLabelValues(pass).Observe(duration.Seconds())
}

// RecordLLMFailure records an LLM call that produced no verdict.
func (p *Provider) RecordLLMFailure(kind string) {
	if p == nil {
		return
	}
	if kind == "" {
		kind = "unknown"
	}
	p.Metrics.LLMFailures.WithLabelValues(kind).Inc()
}

// RecordBatchRun records the outcome and size of a batch run.
func (p *Provider) RecordBatchRun(pass, outcome string, size int) {
	if p == nil {
		return
	}
	p.Metrics.BatchRuns.WithLabelValues(pass, outcome).Inc()
	p.Metrics.BatchSize.WithLabelValues(pass).Observe(float64(size))
}

// WorkerStarted increments the active worker gauge.
func (p *Provider) WorkerStarted() {
	if p != nil {
		p.Metrics.ActiveWorkers.Inc()
	}
}

// WorkerStopped decrements the active worker gauge.
func (p *Provider) WorkerStopped() {
	if p != nil {
		p.Metrics.ActiveWorkers.Dec()
	}
}

// RecordRequest counts an HTTP request.
func (p *Provider) RecordRequest(route, code string) {
	if p == nil {
		return
	}
	p.Metrics.HTTPRequests.WithLabelValues(route, code).Inc()
}
