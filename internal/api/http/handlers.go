package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/skydesk/internal/domain/desktop"
	"github.com/GriffinCanCode/skydesk/internal/domain/surface"
	"github.com/GriffinCanCode/skydesk/internal/infrastructure/monitoring"
)

// Version is reported by the root endpoint
const Version = "1.0.0"

// Handlers contains all HTTP handlers
type Handlers struct {
	store      *desktop.Store
	launcher   *surface.Launcher
	taskbar    *surface.Taskbar
	chrome     *surface.Chrome
	compositor *surface.Compositor
	viewport   surface.Viewport
	metrics    *monitoring.Metrics
	sanitizer  *bluemonday.Policy
	logger     *zap.Logger
}

// Deps bundles what the handlers operate on
type Deps struct {
	Store      *desktop.Store
	Launcher   *surface.Launcher
	Taskbar    *surface.Taskbar
	Chrome     *surface.Chrome
	Compositor *surface.Compositor
	Viewport   surface.Viewport
	Metrics    *monitoring.Metrics
	Logger     *zap.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(d Deps) *Handlers {
	store := desktop.MustStore(d.Store, "http handlers")
	if d.Launcher == nil {
		d.Launcher = surface.NewLauncher(store, nil)
	}
	if d.Taskbar == nil {
		d.Taskbar = surface.NewTaskbar(store)
	}
	if d.Chrome == nil {
		d.Chrome = surface.NewChrome(store)
	}
	if d.Compositor == nil {
		d.Compositor = surface.NewCompositor(nil)
	}
	if !d.Viewport.Valid() {
		d.Viewport = surface.DefaultViewport()
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return &Handlers{
		store:      store,
		launcher:   d.Launcher,
		taskbar:    d.Taskbar,
		chrome:     d.Chrome,
		compositor: d.Compositor,
		viewport:   d.Viewport,
		metrics:    d.Metrics,
		sanitizer:  bluemonday.StrictPolicy(),
		logger:     d.Logger,
	}
}

// Register mounts every route on r
func (h *Handlers) Register(r gin.IRoutes) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.GET("/metrics/json", h.MetricsJSON)

	// Launcher
	r.GET("/apps", h.ListApps)
	r.POST("/apps/:id/launch", h.LaunchApp)

	// Desktop
	r.GET("/desktop", h.GetDesktop)
	r.GET("/desktop/scene", h.GetScene)
	r.POST("/theme/toggle", h.ToggleTheme)

	// Windows
	r.GET("/windows", h.ListWindows)
	r.GET("/windows/:id", h.GetWindow)
	r.POST("/windows/:id/focus", h.FocusWindow)
	r.POST("/windows/:id/minimize", h.MinimizeWindow)
	r.POST("/windows/:id/maximize", h.MaximizeWindow)
	r.PUT("/windows/:id/position", h.MoveWindow)
	r.PUT("/windows/:id/size", h.ResizeWindow)
	r.DELETE("/windows/:id", h.CloseWindow)

	// Taskbar
	r.GET("/taskbar", h.GetTaskbar)
	r.POST("/taskbar/:id/activate", h.ActivateWindow)

	// Notifications
	r.POST("/notifications", h.Notify)
	r.DELETE("/notifications/:id", h.DismissNotification)
}

// Root handles the liveness probe
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "SkyDesk Window Manager",
		"version": Version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	s := h.store.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"desktop":     s.Stats(),
		"catalog":     gin.H{"apps": h.launcher.Catalog().Len()},
		"subscribers": h.store.Subscribers(),
		"mounts":      h.compositor.Mounter().Len(),
	})
}

// MetricsJSON returns the metrics snapshot for dashboards
func (h *Handlers) MetricsJSON(c *gin.Context) {
	if h.metrics == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "metrics disabled"})
		return
	}
	c.JSON(http.StatusOK, h.metrics.Snapshot())
}
