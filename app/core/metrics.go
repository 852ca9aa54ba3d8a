package core

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/memochat-ai/memochat/pkg/metrics"
)

type Metrics struct {
	apiResponseTime   *prometheus.HistogramVec
	apiErrorCounter   *prometheus.CounterVec
	llmRequestTime    *prometheus.HistogramVec
	llmErrorCounter   *prometheus.CounterVec
	toolDispatchTime  *prometheus.HistogramVec
	toolErrorCounter  *prometheus.CounterVec
	embeddingDuration *prometheus.HistogramVec
}

func NewMetrics(ns, system string) *Metrics {
	metrics.SetupMetricsManager(ns, system, prometheus.DefaultRegisterer.(*prometheus.Registry))

	m := &Metrics{
		apiResponseTime:   metrics.NewHistogramVec("api_response_time", []string{"api"}),
		apiErrorCounter:   metrics.NewCounterVec("api_error", []string{"method", "api", "status"}),
		llmRequestTime:    metrics.NewHistogramVec("llm_request_time", []string{"target"}),
		llmErrorCounter:   metrics.NewCounterVec("llm_error", []string{"type"}),
		toolDispatchTime:  metrics.NewHistogramVec("tool_dispatch_time", []string{"tool"}),
		toolErrorCounter:  metrics.NewCounterVec("tool_error", []string{"tool"}),
		embeddingDuration: metrics.NewHistogramVec("embedding_time", []string{"kind"}),
	}

	return m
}

func (m *Metrics) ApiResponseTimer(api string) *prometheus.Timer {
	return prometheus.NewTimer(m.apiResponseTime.WithLabelValues(api))
}

func (m *Metrics) ApiErrorInc(method, api string, status int) {
	m.apiErrorCounter.WithLabelValues(method, api, strconv.Itoa(status)).Inc()
}

func (m *Metrics) LLMRequestTimer(target string) *prometheus.Timer {
	return prometheus.NewTimer(m.llmRequestTime.WithLabelValues(target))
}

func (m *Metrics) LLMErrorInc(kind string) {
	m.llmErrorCounter.WithLabelValues(kind).Inc()
}

func (m *Metrics) ToolDispatchTimer(tool string) *prometheus.Timer {
	return prometheus.NewTimer(m.toolDispatchTime.WithLabelValues(tool))
}

func (m *Metrics) ToolErrorInc(tool string) {
	m.toolErrorCounter.WithLabelValues(tool).Inc()
}

func (m *Metrics) EmbeddingTimer(kind string) *prometheus.Timer {
	return prometheus.NewTimer(m.embeddingDuration.WithLabelValues(kind))
}
