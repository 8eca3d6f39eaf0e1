package service

import (
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP layer
// and the in-memory store.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	storeMutations  *prometheus.CounterVec
	backupDuration  prometheus.Observer
	backupTotal     prometheus.Counter
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	storeMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_mutations_total",
		Help: "Total store mutations by operation",
	}, []string{"operation"})

	backupDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "backup_duration_seconds",
		Help:    "Duration of backup creation",
		Buckets: prometheus.DefBuckets,
	})

	backupTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "backups_total",
		Help: "Total backups created",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, storeMutations, backupDuration, backupTotal, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		storeMutations:  storeMutations,
		backupDuration:  backupDuration,
		backupTotal:     backupTotal,
	}
}

// Handler exposes the registry for the /metrics endpoint.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}

// ObserveHTTPRequest records one handled request.
func (s *MetricsService) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	s.requestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
	s.requestTotal.WithLabelValues(method, path, status).Inc()
}

// ObserveStoreMutation counts one store mutation. Plugged into the store's
// mutation hook.
func (s *MetricsService) ObserveStoreMutation(op string) {
	s.storeMutations.WithLabelValues(op).Inc()
}

// ObserveBackup records one completed backup.
func (s *MetricsService) ObserveBackup(duration time.Duration) {
	s.backupDuration.Observe(duration.Seconds())
	s.backupTotal.Inc()
}
