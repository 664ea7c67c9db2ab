package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "airline_bookings_created_total",
		Help: "Bookings created.",
	})
	BookingsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "airline_bookings_cancelled_total",
		Help: "Bookings cancelled.",
	})
	Payments = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "airline_payments_total",
		Help: "Payment attempts by outcome.",
	}, []string{"outcome"})
	Refunds = promauto.NewCounter(prometheus.CounterOpts{
		Name: "airline_refunds_total",
		Help: "Refunds issued.",
	})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "airline_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)

// Middleware records request latency per route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpDuration.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
