package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shiftline_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "shiftline_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	notificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shiftline_notifications_total",
		Help: "Count of notification delivery attempts by target kind and result",
	}, []string{"kind", "result"})

	shiftClaimsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shiftline_shift_claims_total",
		Help: "Count of shift claim attempts by result",
	}, []string{"result"})

	workLogsPaid = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shiftline_work_logs_paid_total",
		Help: "Count of work logs marked paid, including batch payments",
	})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveNotification records a notification delivery outcome.
// result is "sent", "failed", or "dropped".
func ObserveNotification(kind, result string) {
	notificationsTotal.WithLabelValues(kind, result).Inc()
}

// ObserveShiftClaim records a shift claim outcome ("taken" or "conflict")
func ObserveShiftClaim(result string) {
	shiftClaimsTotal.WithLabelValues(result).Inc()
}

// AddWorkLogsPaid adds to the paid-log counter
func AddWorkLogsPaid(n int64) {
	if n > 0 {
		workLogsPaid.Add(float64(n))
	}
}

// Middleware instruments requests with Prometheus metrics
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)
		ObserveHTTPRequest(r.Method, r.URL.Path, strconv.Itoa(ww.status), time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
