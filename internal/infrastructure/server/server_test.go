package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/skydesk/internal/domain/desktop"
	"github.com/GriffinCanCode/skydesk/internal/infrastructure/config"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.Logging.Development = true
	cfg.Logging.Level = "error"
	cfg.Desktop.Theme = "dark"
	cfg.Desktop.StackBase = 10

	srv, err := NewServer(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { srv.Shutdown(context.Background()) })
	return srv
}

func do(srv *Server, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestSettingsFromConfig(t *testing.T) {
	d := config.Default().Desktop
	d.SpawnX = 7

	s := Settings(d)
	assert.Equal(t, desktop.ThemeLight, s.Theme)
	assert.Equal(t, int64(1000), s.StackBase)
	assert.Equal(t, desktop.Size{Width: 800, Height: 600}, s.DefaultSize)
	assert.Equal(t, desktop.Point{X: 7, Y: 100}, s.SpawnOrigin)
	assert.Equal(t, 50, s.NotificationLimit)
}

func TestNewServerWiresDesktop(t *testing.T) {
	srv := newTestServer(t)

	st := srv.Store().Snapshot()
	assert.Equal(t, desktop.ThemeDark, st.Theme)
	assert.Equal(t, int64(10), st.StackCounter)

	w := do(srv, http.MethodPost, "/apps/terminal/launch")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, srv.Store().Snapshot().Windows, 1)
	assert.Equal(t, int64(11), srv.Store().Snapshot().StackCounter)
}

func TestMiddlewareChain(t *testing.T) {
	srv := newTestServer(t)

	w := do(srv, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("X-Request-ID"), "req_"))

	w = do(srv, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "skydesk_http_requests_total")
}

func TestBadCatalogDir(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Level = "error"
	cfg.Catalog.Dir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Catalog.Dir, "broken.yaml"),
		[]byte("apps: [{id: x, name: X, category: nonsense}]"), 0o644))

	_, err := NewServer(cfg)
	assert.Error(t, err)
}
