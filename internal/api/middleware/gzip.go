package middleware

import (
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzip"
)

// GzipConfig tunes response compression.
type GzipConfig struct {
	Level int
	// ExcludePaths are route prefixes left uncompressed.
	ExcludePaths []string
}

// DefaultGzipConfig compresses everything but the WebSocket stream.
func DefaultGzipConfig() GzipConfig {
	return GzipConfig{
		Level:        gzip.BestSpeed,
		ExcludePaths: []string{"/stream"},
	}
}

// Gzip compresses response bodies for clients that accept it.
func Gzip(cfg GzipConfig) gin.HandlerFunc {
	pool := sync.Pool{
		New: func() interface{} {
			gz, err := gzip.NewWriterLevel(io.Discard, cfg.Level)
			if err != nil {
				gz = gzip.NewWriter(io.Discard)
			}
			return gz
		},
	}

	return func(c *gin.Context) {
		if !shouldCompress(c.Request, cfg.ExcludePaths) {
			c.Next()
			return
		}

		gz := pool.Get().(*gzip.Writer)
		defer pool.Put(gz)
		gz.Reset(c.Writer)

		c.Header("Content-Encoding", "gzip")
		c.Header("Vary", "Accept-Encoding")
		w := &gzipWriter{ResponseWriter: c.Writer, gz: gz}
		c.Writer = w

		c.Next()

		if !w.wrote {
			// Nothing was written; do not emit a bare gzip footer.
			h := w.ResponseWriter.Header()
			h.Del("Content-Encoding")
			h.Del("Vary")
			gz.Reset(io.Discard)
			return
		}
		gz.Close()
	}
}

func shouldCompress(req *http.Request, exclude []string) bool {
	if !strings.Contains(req.Header.Get("Accept-Encoding"), "gzip") {
		return false
	}
	if strings.EqualFold(req.Header.Get("Connection"), "upgrade") || req.Header.Get("Upgrade") != "" {
		return false
	}
	for _, prefix := range exclude {
		if strings.HasPrefix(req.URL.Path, prefix) {
			return false
		}
	}
	return true
}

type gzipWriter struct {
	gin.ResponseWriter
	gz    *gzip.Writer
	wrote bool
}

func (w *gzipWriter) WriteHeader(code int) {
	w.Header().Del("Content-Length")
	w.ResponseWriter.WriteHeader(code)
}

func (w *gzipWriter) Write(data []byte) (int, error) {
	w.Header().Del("Content-Length")
	w.wrote = true
	return w.gz.Write(data)
}

func (w *gzipWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}
