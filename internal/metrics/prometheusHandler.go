package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Total number of requests labelled by path and status",
}, []string{"path", "status"})

var ingestStageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "ingest_stage_duration_seconds",
	Help:    "Time spent per ingest pipeline stage.",
	Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10, 30},
}, []string{"stage"})

var dependencyLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "dependency_latency_seconds",
	Help:    "Latency of external service calls.",
	Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10},
}, []string{"service"})

var ingestRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "ingest_runs_total",
	Help: "Completed ingest runs labelled by outcome.",
}, []string{"outcome"})

type HttpStatusRecorder struct {
	http.ResponseWriter
	Status int
}

func (r *HttpStatusRecorder) WriteHeader(code int) {
	r.Status = code
	r.ResponseWriter.WriteHeader(code)
}

func ObserveStage(stage string, elapsed time.Duration) {
	ingestStageDuration.WithLabelValues(stage).Observe(elapsed.Seconds())
}

func ObserveDependency(service string, elapsed time.Duration) {
	dependencyLatency.WithLabelValues(service).Observe(elapsed.Seconds())
}

func CountIngestRun(outcome string) {
	ingestRunsTotal.WithLabelValues(outcome).Inc()
}
