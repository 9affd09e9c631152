package pointer

import (
	"sync"

	"github.com/GriffinCanCode/skydesk/internal/domain/desktop"
)

// Phase is a controller's interaction state
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhaseResizing
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDragging:
		return "dragging"
	case PhaseResizing:
		return "resizing"
	default:
		return "unknown"
	}
}

// Region is the part of a window that received a pointer-down
type Region string

const (
	RegionTitleBar     Region = "titlebar"
	RegionBody         Region = "body"
	RegionControl      Region = "control"
	RegionResizeHandle Region = "resize_handle"
)

// Desktop is the slice of the store a controller needs
type Desktop interface {
	Dispatch(in desktop.Intent) desktop.State
	Snapshot() desktop.State
}

// Options tunes interactive behaviour
type Options struct {
	// MinSize is the smallest size a drag-resize will produce. The registry
	// itself accepts any size.
	MinSize desktop.Size
}

// DefaultOptions returns the stock interaction settings
func DefaultOptions() Options {
	return Options{MinSize: desktop.Size{Width: 200, Height: 150}}
}

// Controller drives drag-move and drag-resize for one window
type Controller struct {
	windowID string
	desk     Desktop
	bus      *Bus
	opts     Options

	mu        sync.Mutex
	phase     Phase
	offset    Point        // pointer minus window origin, while dragging
	press     Point        // pointer at press time, while resizing
	startSize desktop.Size // window size at press time, while resizing
	release   func()
}

// NewController creates an idle controller for windowID
func NewController(windowID string, desk Desktop, bus *Bus, opts Options) *Controller {
	return &Controller{
		windowID: windowID,
		desk:     desk,
		bus:      bus,
		opts:     opts,
	}
}

// WindowID returns the window this controller drives
func (c *Controller) WindowID() string {
	return c.windowID
}

// Phase returns the current interaction state
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Down starts an interaction if the press landed on the title bar or the
// resize handle. It reports whether an interaction started.
func (c *Controller) Down(region Region, p Point) bool {
	if region != RegionTitleBar && region != RegionResizeHandle {
		return false
	}

	w, ok := c.desk.Snapshot().Window(c.windowID)
	if !ok || w.Minimized {
		return false
	}

	c.mu.Lock()
	if c.phase != PhaseIdle {
		c.mu.Unlock()
		return false
	}

	switch region {
	case RegionTitleBar:
		origin := Point{X: w.Position.X, Y: w.Position.Y}
		if w.Maximized {
			origin = Point{}
		}
		c.offset = Point{X: p.X - origin.X, Y: p.Y - origin.Y}
		c.phase = PhaseDragging

	case RegionResizeHandle:
		// Maximized windows have no handle to grab.
		if w.Maximized {
			c.mu.Unlock()
			return false
		}
		c.press = p
		c.startSize = w.Size
		c.phase = PhaseResizing
	}
	c.release = c.bus.Attach(c)
	dragging := c.phase == PhaseDragging
	c.mu.Unlock()

	// Resizing deliberately skips focus: the press belongs to the handle only.
	if dragging {
		c.desk.Dispatch(desktop.Focus{ID: c.windowID})
	}
	return true
}

// PointerMove implements Listener
func (c *Controller) PointerMove(p Point) {
	c.mu.Lock()
	var in desktop.Intent
	switch c.phase {
	case PhaseDragging:
		in = desktop.Move{ID: c.windowID, X: p.X - c.offset.X, Y: p.Y - c.offset.Y}
	case PhaseResizing:
		in = desktop.Resize{
			ID:     c.windowID,
			Width:  max(c.startSize.Width+p.X-c.press.X, c.opts.MinSize.Width),
			Height: max(c.startSize.Height+p.Y-c.press.Y, c.opts.MinSize.Height),
		}
	}
	c.mu.Unlock()

	if in != nil {
		c.desk.Dispatch(in)
	}
}

// PointerUp implements Listener. A release anywhere ends the interaction.
func (c *Controller) PointerUp(Point) {
	c.end()
}

// Cancel abandons the interaction in progress, leaving the window where
// the last move put it
func (c *Controller) Cancel() {
	c.end()
}

// Close releases anything the controller still holds
func (c *Controller) Close() {
	c.end()
}

func (c *Controller) end() {
	c.mu.Lock()
	release := c.release
	c.release = nil
	c.phase = PhaseIdle
	c.offset, c.press = Point{}, Point{}
	c.startSize = desktop.Size{}
	c.mu.Unlock()

	if release != nil {
		release()
	}
}
