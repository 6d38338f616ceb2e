package middleware

import (
	"strconv"
	"time"

	"github.com/SscSPs/ledger_period_engine/internal/platform/metrics"
	"github.com/gin-gonic/gin"
)

// RequestMetrics records request counts and latency per matched route.
func RequestMetrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
