package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/GriffinCanCode/skydesk/internal/shared/id"
)

const (
	// RequestIDHeader carries the request id in and out.
	RequestIDHeader = "X-Request-ID"

	requestIDKey = "request_id"
)

// RequestLog tags each request with an id and logs it when done. An
// incoming X-Request-ID is reused so callers can correlate.
func RequestLog(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader(RequestIDHeader)
		if reqID == "" {
			reqID = id.NewRequestID().String()
		}
		c.Set(requestIDKey, reqID)
		c.Header(RequestIDHeader, reqID)

		c.Next()

		status := c.Writer.Status()
		level := zapcore.InfoLevel
		switch {
		case status >= 500:
			level = zapcore.ErrorLevel
		case status >= 400:
			level = zapcore.WarnLevel
		}

		if ce := logger.Check(level, "HTTP request"); ce != nil {
			fields := []zap.Field{
				zap.String("request_id", reqID),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Int("status", status),
				zap.Duration("latency", time.Since(start)),
				zap.String("client_ip", c.ClientIP()),
			}
			if len(c.Errors) > 0 {
				fields = append(fields, zap.String("errors", c.Errors.String()))
			}
			ce.Write(fields...)
		}
	}
}

// RequestID returns the id RequestLog assigned, or "" outside it.
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
