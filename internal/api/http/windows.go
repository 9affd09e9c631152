package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/skydesk/internal/domain/desktop"
	"github.com/GriffinCanCode/skydesk/internal/domain/surface"
	"github.com/GriffinCanCode/skydesk/internal/shared/utils"
)

// windowParam validates the :id parameter, answering 400 itself when it
// is malformed
func windowParam(c *gin.Context) (string, bool) {
	windowID := c.Param("id")
	if err := utils.ValidateID(windowID, "window_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return windowID, true
}

// respond reports the outcome of an intent aimed at one window. Unknown
// windows are a no-op, not an error.
func respond(c *gin.Context, s desktop.State, windowID string, changed bool) {
	resp := gin.H{
		"success":   changed,
		"window_id": windowID,
	}
	if w, ok := s.Window(windowID); ok {
		resp["window"] = w
	}
	c.JSON(http.StatusOK, resp)
}

// ListWindows lists windows back to front
func (h *Handlers) ListWindows(c *gin.Context) {
	s := h.store.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"windows":          s.Stacked(),
		"active_window_id": s.ActiveWindowID,
		"stats":            s.Stats(),
	})
}

// GetWindow returns one window
func (h *Handlers) GetWindow(c *gin.Context) {
	windowID, ok := windowParam(c)
	if !ok {
		return
	}

	w, found := h.store.Snapshot().Window(windowID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "window not found", "window_id": windowID})
		return
	}
	c.JSON(http.StatusOK, gin.H{"window": w})
}

// FocusWindow raises and activates a window
func (h *Handlers) FocusWindow(c *gin.Context) {
	windowID, ok := windowParam(c)
	if !ok {
		return
	}
	s, changed := h.store.DispatchChanged(desktop.Focus{ID: windowID})
	respond(c, s, windowID, changed)
}

// MinimizeWindow toggles minimized
func (h *Handlers) MinimizeWindow(c *gin.Context) {
	h.press(c, surface.ControlMinimize)
}

// MaximizeWindow toggles maximized
func (h *Handlers) MaximizeWindow(c *gin.Context) {
	h.press(c, surface.ControlMaximize)
}

// CloseWindow closes a window
func (h *Handlers) CloseWindow(c *gin.Context) {
	h.press(c, surface.ControlClose)
}

func (h *Handlers) press(c *gin.Context, control surface.Control) {
	windowID, ok := windowParam(c)
	if !ok {
		return
	}
	s, changed, err := h.chrome.PressControl(windowID, control)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	respond(c, s, windowID, changed)
}

type positionRequest struct {
	X *int `json:"x" binding:"required"`
	Y *int `json:"y" binding:"required"`
}

// MoveWindow sets a window's origin. y is clamped at the top edge.
func (h *Handlers) MoveWindow(c *gin.Context) {
	windowID, ok := windowParam(c)
	if !ok {
		return
	}

	var req positionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateCoordinate(*req.X, "x"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateCoordinate(*req.Y, "y"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s, changed := h.store.DispatchChanged(desktop.Move{ID: windowID, X: *req.X, Y: *req.Y})
	respond(c, s, windowID, changed)
}

type sizeRequest struct {
	Width  int `json:"width" binding:"required"`
	Height int `json:"height" binding:"required"`
}

// ResizeWindow sets a window's size
func (h *Handlers) ResizeWindow(c *gin.Context) {
	windowID, ok := windowParam(c)
	if !ok {
		return
	}

	var req sizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateDimension(req.Width, "width"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateDimension(req.Height, "height"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s, changed := h.store.DispatchChanged(desktop.Resize{ID: windowID, Width: req.Width, Height: req.Height})
	respond(c, s, windowID, changed)
}
