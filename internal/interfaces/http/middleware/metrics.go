package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HTTPMetrics records one finished request.  *prometheus.RoseMetrics
// satisfies it.
type HTTPMetrics interface {
	RecordHTTPRequest(method, path string, status int, d time.Duration)
}

// Metrics observes every request under its route template, so that
// /api/v1/diagrams/png is one series however many requests it serves.
// Requests matching no route are recorded as "unmatched".
func Metrics(m HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := c.Writer.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.RecordHTTPRequest(c.Request.Method, path, status, time.Since(start))
	}
}

// BodyLimit caps the request body at limit bytes.  Reading past the limit
// fails and the diagram handlers answer 400.
func BodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}

//Personal.AI order the ending
