package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_errors_total",
			Help: "Total number of logged errors.",
		},
		[]string{"type"},
	)
	HTTPRequestsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_http_requests_total",
			Help: "Total number of handled HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobboard_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	JobsPostedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobboard_jobs_posted_total",
			Help: "Total number of posted jobs.",
		},
	)
	ApplicationsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_applications_total",
			Help: "Applications by resulting status (pending on submit, approved/rejected on decision).",
		},
		[]string{"status"},
	)
	JobsCacheCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_jobs_cache_requests_total",
			Help: "Job list cache lookups by result.",
		},
		[]string{"result"},
	)
)

var registerOnce sync.Once

// Register adds all collectors to the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			ErrorsCounter,
			HTTPRequestsCounter,
			HTTPRequestDuration,
			JobsPostedCounter,
			ApplicationsCounter,
			JobsCacheCounter,
		)
	})
}
