package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Middleware creates a Gin middleware for metrics collection. Requests are
// labelled by route pattern so window ids do not explode cardinality.
func Middleware(metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method

		reqSize := c.Request.ContentLength
		if reqSize < 0 {
			reqSize = 0
		}

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		duration := time.Since(start)
		status := strconv.Itoa(c.Writer.Status())
		respSize := int64(c.Writer.Size())
		if respSize < 0 {
			respSize = 0
		}

		metrics.RecordHTTPRequest(method, path, status, duration, reqSize, respSize)
	}
}

// Timer measures one stage of scene production
type Timer struct {
	start   time.Time
	metrics *Metrics
	stage   string
}

// NewTimer creates a new timer
func NewTimer(metrics *Metrics, stage string) *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: metrics,
		stage:   stage,
	}
}

// Stop records the elapsed time. A nil metrics collector records nothing.
func (t *Timer) Stop() time.Duration {
	d := time.Since(t.start)
	if t.metrics != nil {
		t.metrics.ComposeDuration.WithLabelValues(t.stage).Observe(d.Seconds())
	}
	return d
}
