package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ridetiles"

// Analysis sources
const (
	SourceRequest = "request"
	SourceTask    = "task"
	SourceInline  = "inline"
)

var (
	analysisDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "analysis_duration_seconds",
		Help:      "Time spent computing tile coverage reports",
		Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
	}, []string{"source"})

	reportCells = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "report_cells",
		Help:      "Covered cell count of computed reports",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
	})

	tracksIngested = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tracks_ingested_total",
		Help:      "Tracks stored through the API",
	})

	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status",
	}, []string{"method", "route", "status"})
)

func init() {
	prometheus.MustRegister(analysisDuration, reportCells, tracksIngested, httpRequests)
}

// ObserveAnalysis records one report computation
func ObserveAnalysis(source string, started time.Time, cells int) {
	analysisDuration.WithLabelValues(source).Observe(time.Since(started).Seconds())
	reportCells.Observe(float64(cells))
}

// TrackIngested counts one stored track
func TrackIngested() {
	tracksIngested.Inc()
}

// ObserveRequest counts one served HTTP request
func ObserveRequest(method, route, status string) {
	httpRequests.WithLabelValues(method, route, status).Inc()
}

// Handler serves the default registry in the Prometheus text format
func Handler() http.Handler {
	return promhttp.Handler()
}
