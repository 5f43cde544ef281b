package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "grounded_analyst"

// Metrics 服务指标，注册到外部传入的 registry 上（测试时可用独立 registry）
type Metrics struct {
	HTTPRequests        *prometheus.CounterVec
	HTTPDuration        *prometheus.HistogramVec
	Analyses            *prometheus.CounterVec
	ProviderDuration    prometheus.Histogram
	SourcesPerAnalysis  prometheus.Histogram
	EventPublishFailure prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		Analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Analysis outcomes by result kind.",
		}, []string{"result"}),
		ProviderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_call_duration_seconds",
			Help:      "Latency of the generation provider call.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 90},
		}),
		SourcesPerAnalysis: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sources_per_analysis",
			Help:      "Number of unique grounding sources returned per analysis.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
		}),
		EventPublishFailure: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_publish_failures_total",
			Help:      "Analysis events that could not be published.",
		}),
	}

	reg.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.Analyses,
		m.ProviderDuration,
		m.SourcesPerAnalysis,
		m.EventPublishFailure,
	)
	return m
}
