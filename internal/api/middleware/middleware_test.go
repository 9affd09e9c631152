package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestCORS(t *testing.T) {
	router := setupTestRouter()
	router.Use(CORS(DefaultCORSConfig()))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	tests := []struct {
		name           string
		method         string
		origin         string
		wantStatus     int
		wantCORSHeader bool
	}{
		{
			name:           "simple GET request with origin",
			method:         "GET",
			origin:         "http://localhost:3000",
			wantStatus:     http.StatusOK,
			wantCORSHeader: true,
		},
		{
			name:           "preflight OPTIONS request",
			method:         "OPTIONS",
			origin:         "http://localhost:3000",
			wantStatus:     http.StatusNoContent,
			wantCORSHeader: true,
		},
		{
			name:           "no origin header",
			method:         "GET",
			wantStatus:     http.StatusOK,
			wantCORSHeader: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/test", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCORSHeader {
				assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

func TestCORSConfigFor(t *testing.T) {
	cfg := CORSConfigFor([]string{"https://desk.example.com"})
	assert.Equal(t, []string{"https://desk.example.com"}, cfg.AllowOrigins)
	assert.True(t, cfg.AllowCredentials)
	assert.Contains(t, cfg.AllowMethods, "PUT")
	assert.Contains(t, cfg.AllowMethods, "DELETE")
	assert.Contains(t, cfg.ExposeHeaders, RequestIDHeader)

	cfg = CORSConfigFor([]string{"https://a.test", "*"})
	assert.Equal(t, []string{"*"}, cfg.AllowOrigins)
	assert.False(t, cfg.AllowCredentials)

	cfg = CORSConfigFor(nil)
	assert.Equal(t, []string{"*"}, cfg.AllowOrigins)
	assert.Equal(t, 12*time.Hour, cfg.MaxAge)

	router := setupTestRouter()
	router.Use(CORS(CORSConfigFor([]string{"https://desk.example.com"})))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRateLimit(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping rate limit test in short mode")
	}

	router := setupTestRouter()
	router.Use(RateLimit(RateLimitConfig{RequestsPerSecond: 2, Burst: 2}))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	// First 2 requests should succeed (burst capacity)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("GET", "/test", nil)
		req.RemoteAddr = "192.168.1.1:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, "Request %d should succeed", i+1)
	}

	req := httptest.NewRequest("GET", "/test", nil)
	req.RemoteAddr = "192.168.1.1:1234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "rate limit exceeded")
}

func TestRateLimitDifferentClients(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping rate limit test in short mode")
	}

	router := setupTestRouter()
	router.Use(RateLimit(RateLimitConfig{RequestsPerSecond: 1, Burst: 1}))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	send := func(addr string) int {
		req := httptest.NewRequest("GET", "/test", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("192.168.1.1:1234"))
	assert.Equal(t, http.StatusOK, send("192.168.1.2:1234"))
	assert.Equal(t, http.StatusTooManyRequests, send("192.168.1.1:1234"))
}

func TestGlobalRateLimit(t *testing.T) {
	router := setupTestRouter()
	router.Use(GlobalRateLimit(RateLimitConfig{RequestsPerSecond: 2, Burst: 2}))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	for i, addr := range []string{"10.0.0.1:1", "10.0.0.2:1"} {
		req := httptest.NewRequest("GET", "/test", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "Request %d should succeed", i+1)
	}

	req := httptest.NewRequest("GET", "/test", nil)
	req.RemoteAddr = "10.0.0.3:1"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestDefaultRateLimitConfig(t *testing.T) {
	cfg := DefaultRateLimitConfig()

	assert.Equal(t, 100, cfg.RequestsPerSecond)
	assert.Equal(t, 200, cfg.Burst)
	assert.Equal(t, 10*time.Minute, cfg.IdleTTL)
}

func TestGzip(t *testing.T) {
	router := setupTestRouter()
	router.Use(Gzip(DefaultGzipConfig()))
	payload := strings.Repeat("window ", 200)
	router.GET("/desktop", func(c *gin.Context) {
		c.String(http.StatusOK, payload)
	})
	router.GET("/stream", func(c *gin.Context) {
		c.String(http.StatusOK, "raw")
	})
	router.POST("/empty", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	t.Run("compressed when accepted", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/desktop", nil)
		req.Header.Set("Accept-Encoding", "gzip, deflate")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
		assert.Less(t, w.Body.Len(), len(payload))

		zr, err := gzip.NewReader(bytes.NewReader(w.Body.Bytes()))
		require.NoError(t, err)
		body, err := io.ReadAll(zr)
		require.NoError(t, err)
		assert.Equal(t, payload, string(body))
	})

	t.Run("plain when not accepted", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/desktop", nil))
		assert.Empty(t, w.Header().Get("Content-Encoding"))
		assert.Equal(t, payload, w.Body.String())
	})

	t.Run("excluded path", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/stream", nil)
		req.Header.Set("Accept-Encoding", "gzip")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Empty(t, w.Header().Get("Content-Encoding"))
		assert.Equal(t, "raw", w.Body.String())
	})

	t.Run("empty body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/empty", nil)
		req.Header.Set("Accept-Encoding", "gzip")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Header().Get("Content-Encoding"))
		assert.Zero(t, w.Body.Len())
	})
}

func TestRequestLog(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	router := setupTestRouter()
	router.Use(RequestLog(zap.New(core)))
	router.GET("/ok", func(c *gin.Context) {
		c.String(http.StatusOK, RequestID(c))
	})
	router.GET("/missing", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/ok", nil))
	generated := w.Header().Get(RequestIDHeader)
	require.NotEmpty(t, generated)
	assert.True(t, strings.HasPrefix(generated, "req_"))
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest("GET", "/missing", nil)
	req.Header.Set(RequestIDHeader, "caller-42")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "caller-42", w.Header().Get(RequestIDHeader))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "caller-42", entries[1].ContextMap()["request_id"])
	assert.Equal(t, int64(404), entries[1].ContextMap()["status"])
}
