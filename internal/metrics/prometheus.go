package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestCount counts HTTP requests
	RequestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// CheckCount counts plagiarism checks by outcome
	CheckCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plagiarism_checks_total",
			Help: "Total number of plagiarism checks",
		},
		[]string{"status"},
	)

	// CheckDuration measures full-check duration
	CheckDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name: "plagiarism_check_duration_seconds",
			Help: "Plagiarism check duration in seconds",
		},
	)

	// DocumentsIngested counts documents consumed from the ingest stream
	DocumentsIngested = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "documents_ingested_total",
			Help: "Total number of documents ingested from the stream",
		},
	)
)

// InitPrometheus registers all collectors
func InitPrometheus() {
	prometheus.MustRegister(RequestCount)
	prometheus.MustRegister(CheckCount)
	prometheus.MustRegister(CheckDuration)
	prometheus.MustRegister(DocumentsIngested)
}
