package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "HTTP requests by route, method and status."},
		[]string{"path", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request latency in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"path", "method"},
	)
	EligibilityVerdicts = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "eligibility_checks_total", Help: "Eligibility checks by outcome."},
		[]string{"outcome"},
	)
	FeeCalculations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "fee_calculations_total", Help: "Fee calculations by whether any fee was waived."},
		[]string{"waived"},
	)
	DocumentValidations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "document_validations_total", Help: "Document validations by result."},
		[]string{"valid"},
	)
	ServiceCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "service_cache_lookups_total", Help: "Service cache lookups by result."},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPLatency, EligibilityVerdicts, FeeCalculations, DocumentValidations, ServiceCache)
}

// Handler records request count and latency per matched route.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		HTTPLatency.WithLabelValues(path, c.Request.Method).Observe(time.Since(start).Seconds())
		HTTPRequests.WithLabelValues(path, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// Exposer serves the default registry.
func Exposer() gin.HandlerFunc { return gin.WrapH(promhttp.Handler()) }
