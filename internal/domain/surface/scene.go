package surface

import (
	"github.com/GriffinCanCode/skydesk/internal/domain/desktop"
)

// Viewport is the renderer's drawable area
type Viewport struct {
	Width         int `json:"width"`
	Height        int `json:"height"`
	TaskbarHeight int `json:"taskbar_height"`
}

// DefaultViewport is a 1080p screen with the stock taskbar
func DefaultViewport() Viewport {
	return Viewport{Width: 1920, Height: 1080, TaskbarHeight: 64}
}

// Valid reports whether the viewport has room for windows
func (v Viewport) Valid() bool {
	return v.Width > 0 && v.Height > v.TaskbarHeight && v.TaskbarHeight >= 0
}

// Work returns the area above the taskbar
func (v Viewport) Work() Rect {
	return Rect{Width: v.Width, Height: v.Height - v.TaskbarHeight}
}

// Rect is an on-screen rectangle
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Control is a title bar button
type Control string

const (
	ControlMinimize Control = "minimize"
	ControlMaximize Control = "maximize"
	ControlClose    Control = "close"
)

// Controls returns the chrome buttons in display order
func Controls() []Control {
	return []Control{ControlMinimize, ControlMaximize, ControlClose}
}

// WindowView is one rendered window
type WindowView struct {
	ID         string                 `json:"id"`
	AppID      string                 `json:"app_id"`
	Title      string                 `json:"title"`
	View       string                 `json:"view"`
	Props      map[string]interface{} `json:"props,omitempty"`
	Instance   string                 `json:"instance"`
	Frame      Rect                   `json:"frame"`
	StackOrder int64                  `json:"stack_order"`
	Active     bool                   `json:"active"`
	Maximized  bool                   `json:"maximized"`
	Resizable  bool                   `json:"resizable"`
	Controls   []Control              `json:"controls"`
}

// Scene is everything a renderer needs for one frame
type Scene struct {
	Version       uint64                 `json:"version"`
	Theme         desktop.Theme          `json:"theme"`
	Viewport      Viewport               `json:"viewport"`
	Windows       []WindowView           `json:"windows"`
	Taskbar       TaskbarView            `json:"taskbar"`
	Notifications []desktop.Notification `json:"notifications"`
}
