package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/skydesk/internal/domain/catalog"
	"github.com/GriffinCanCode/skydesk/internal/domain/desktop"
	"github.com/GriffinCanCode/skydesk/internal/domain/surface"
	"github.com/GriffinCanCode/skydesk/internal/shared/utils"
)

// ListApps lists the catalog, optionally filtered by category
func (h *Handlers) ListApps(c *gin.Context) {
	var category *catalog.Category
	if raw := c.Query("category"); raw != "" {
		cat := catalog.Category(raw)
		if !cat.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category: " + raw})
			return
		}
		category = &cat
	}

	c.JSON(http.StatusOK, gin.H{
		"apps":   h.launcher.Apps(category),
		"groups": h.launcher.Grid(),
		"stats":  h.launcher.Catalog().Stats(),
	})
}

// LaunchApp opens a window for a catalog app. The body, if any, holds
// overrides for the new window.
func (h *Handlers) LaunchApp(c *gin.Context) {
	appID := c.Param("id")
	if err := utils.ValidateID(appID, "app_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var overrides *desktop.Overrides
	var body desktop.Overrides
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid overrides: " + err.Error()})
		return
	} else if err == nil {
		if err := validateOverrides(body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		overrides = &body
	}

	w, err := h.launcher.Launch(appID, overrides)
	if errors.Is(err, catalog.ErrUnknownApp) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
		return
	}
	if errors.Is(err, surface.ErrNotLaunched) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": err.Error()})
		return
	}
	if err != nil {
		h.logger.Error("Launch failed", zap.String("app_id", appID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	h.logger.Info("App launched", zap.String("app_id", appID), zap.String("window_id", w.ID))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"window":  w,
	})
}

func validateOverrides(o desktop.Overrides) error {
	if o.Title != nil {
		if err := utils.ValidateTitle(*o.Title); err != nil {
			return err
		}
	}
	if o.Position != nil {
		if err := utils.ValidateCoordinate(o.Position.X, "x"); err != nil {
			return err
		}
		if err := utils.ValidateCoordinate(o.Position.Y, "y"); err != nil {
			return err
		}
	}
	if o.Size != nil {
		if err := utils.ValidateDimension(o.Size.Width, "width"); err != nil {
			return err
		}
		if err := utils.ValidateDimension(o.Size.Height, "height"); err != nil {
			return err
		}
	}
	return utils.ValidateProps(o.Props)
}

// GetDesktop returns the raw desktop state
func (h *Handlers) GetDesktop(c *gin.Context) {
	s := h.store.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"state": s,
		"stats": s.Stats(),
	})
}

// GetScene composes the current state for a viewport. width, height and
// taskbar query parameters override the configured viewport.
func (h *Handlers) GetScene(c *gin.Context) {
	vp, err := h.viewportFrom(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.compositor.Compose(h.store.Snapshot(), vp))
}

func (h *Handlers) viewportFrom(c *gin.Context) (surface.Viewport, error) {
	vp := h.viewport
	for _, q := range []struct {
		name string
		dst  *int
	}{
		{"width", &vp.Width},
		{"height", &vp.Height},
		{"taskbar", &vp.TaskbarHeight},
	} {
		raw := c.Query(q.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return vp, errors.New(q.name + " must be an integer")
		}
		*q.dst = n
	}
	if !vp.Valid() {
		return vp, errors.New("viewport must leave room above the taskbar")
	}
	return vp, nil
}

// ToggleTheme flips the desktop theme
func (h *Handlers) ToggleTheme(c *gin.Context) {
	s := h.taskbar.ToggleTheme()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"theme":   s.Theme,
	})
}

// GetTaskbar returns the taskbar entries and tray
func (h *Handlers) GetTaskbar(c *gin.Context) {
	c.JSON(http.StatusOK, h.taskbar.View())
}

// ActivateWindow handles a taskbar press
func (h *Handlers) ActivateWindow(c *gin.Context) {
	windowID, ok := windowParam(c)
	if !ok {
		return
	}

	s, found := h.taskbar.Activate(windowID)
	resp := gin.H{
		"success":   found,
		"window_id": windowID,
	}
	if w, ok := s.Window(windowID); ok {
		resp["window"] = w
	}
	c.JSON(http.StatusOK, resp)
}

type notifyRequest struct {
	Message string        `json:"message" binding:"required"`
	Level   desktop.Level `json:"level"`
}

// Notify posts a notification. Markup is stripped from the message.
func (h *Handlers) Notify(c *gin.Context) {
	var req notifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg := h.sanitizer.Sanitize(req.Message)
	if err := utils.ValidateMessage(msg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	switch req.Level {
	case "", desktop.LevelInfo, desktop.LevelWarning, desktop.LevelError:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown level: " + string(req.Level)})
		return
	}

	s := h.store.Dispatch(desktop.Notify{Message: msg, Level: req.Level})
	resp := gin.H{"success": true}
	if n := len(s.Notifications); n > 0 {
		resp["notification"] = s.Notifications[n-1]
	}
	c.JSON(http.StatusOK, resp)
}

// DismissNotification removes a notification
func (h *Handlers) DismissNotification(c *gin.Context) {
	noteID := c.Param("id")
	if err := utils.ValidateID(noteID, "notification_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, changed := h.store.DispatchChanged(desktop.Dismiss{ID: noteID})
	c.JSON(http.StatusOK, gin.H{
		"success":         changed,
		"notification_id": noteID,
	})
}
