package ws

import (
	"errors"
	"fmt"

	"github.com/GriffinCanCode/skydesk/internal/domain/desktop"
	"github.com/GriffinCanCode/skydesk/internal/domain/pointer"
	"github.com/GriffinCanCode/skydesk/internal/domain/surface"
)

// Client message types
const (
	TypeIntent   = "intent"
	TypePointer  = "pointer"
	TypeViewport = "viewport"
	TypePing     = "ping"
)

// Server message types
const (
	TypeHello = "hello"
	TypeScene = "scene"
	TypePong  = "pong"
	TypeError = "error"
)

// KindActivate is the taskbar press, accepted alongside the registry kinds
const KindActivate desktop.Kind = "activate"

// Pointer actions
const (
	ActionDown   = "down"
	ActionMove   = "move"
	ActionUp     = "up"
	ActionCancel = "cancel"
)

var (
	ErrUnknownType   = errors.New("unknown message type")
	ErrUnknownKind   = errors.New("unknown intent kind")
	ErrUnknownAction = errors.New("unknown pointer action")
	ErrMissingBody   = errors.New("message body missing")
)

// ClientMessage is anything a renderer sends
type ClientMessage struct {
	Type     string            `json:"type"`
	Intent   *IntentMessage    `json:"intent,omitempty"`
	Pointer  *PointerMessage   `json:"pointer,omitempty"`
	Viewport *surface.Viewport `json:"viewport,omitempty"`
}

// IntentMessage is the wire form of an intent. Which fields matter
// depends on Kind.
type IntentMessage struct {
	Kind           desktop.Kind       `json:"kind"`
	WindowID       string             `json:"window_id,omitempty"`
	AppID          string             `json:"app_id,omitempty"`
	Overrides      *desktop.Overrides `json:"overrides,omitempty"`
	X              int                `json:"x,omitempty"`
	Y              int                `json:"y,omitempty"`
	Width          int                `json:"width,omitempty"`
	Height         int                `json:"height,omitempty"`
	Message        string             `json:"message,omitempty"`
	Level          desktop.Level      `json:"level,omitempty"`
	NotificationID string             `json:"notification_id,omitempty"`
}

// PointerMessage is a raw pointer event
type PointerMessage struct {
	Action   string         `json:"action"`
	WindowID string         `json:"window_id,omitempty"`
	Region   pointer.Region `json:"region,omitempty"`
	X        int            `json:"x"`
	Y        int            `json:"y"`
}

// Point returns the event position
func (p PointerMessage) Point() pointer.Point {
	return pointer.Point{X: p.X, Y: p.Y}
}

// ServerMessage is anything the server sends
type ServerMessage struct {
	Type      string         `json:"type"`
	ConnID    string         `json:"conn_id,omitempty"`
	Scene     *surface.Scene `json:"scene,omitempty"`
	Error     string         `json:"error,omitempty"`
	Timestamp int64          `json:"timestamp"`
}

// ToIntent converts the registry kinds. Open and activate go through the
// launcher and taskbar instead, and tick belongs to the server's clock.
// Those and any other kind return ErrUnknownKind, which connections ignore.
func (m IntentMessage) ToIntent() (desktop.Intent, error) {
	switch m.Kind {
	case desktop.KindClose:
		return desktop.Close{ID: m.WindowID}, nil
	case desktop.KindMinimize:
		return desktop.Minimize{ID: m.WindowID}, nil
	case desktop.KindMaximize:
		return desktop.Maximize{ID: m.WindowID}, nil
	case desktop.KindFocus:
		return desktop.Focus{ID: m.WindowID}, nil
	case desktop.KindMove:
		return desktop.Move{ID: m.WindowID, X: m.X, Y: m.Y}, nil
	case desktop.KindResize:
		return desktop.Resize{ID: m.WindowID, Width: m.Width, Height: m.Height}, nil
	case desktop.KindToggleTheme:
		return desktop.ToggleTheme{}, nil
	case desktop.KindNotify:
		return desktop.Notify{Message: m.Message, Level: m.Level}, nil
	case desktop.KindDismiss:
		return desktop.Dismiss{ID: m.NotificationID}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, m.Kind)
}
