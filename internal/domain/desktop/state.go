package desktop

import (
	"sort"
	"time"
)

// Theme is the desktop colour scheme
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggled returns the opposite theme
func (t Theme) Toggled() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Valid reports whether t is a known theme
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Level classifies a notification
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Point is a coordinate in desktop space
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size holds window dimensions
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ContentRef is the opaque handle to the view mounted inside a window: a
// view key resolved by the window surface plus the per-instance props given
// at open time. The registry never looks inside it.
type ContentRef struct {
	View  string                 `json:"view"`
	Props map[string]interface{} `json:"props,omitempty"`
}

// Window is one open instance of an application
type Window struct {
	ID         string     `json:"id"`
	AppID      string     `json:"app_id"`
	Title      string     `json:"title"`
	Content    ContentRef `json:"content"`
	Position   Point      `json:"position"`
	Size       Size       `json:"size"`
	Minimized  bool       `json:"minimized"`
	Maximized  bool       `json:"maximized"`
	StackOrder int64      `json:"stack_order"`
	OpenedAt   time.Time  `json:"opened_at"`
}

// Notification is a transient desktop message
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Level     Level     `json:"level"`
	CreatedAt time.Time `json:"created_at"`
}

// State is the whole desktop. Values are never mutated in place; every
// transition copies what it changes.
type State struct {
	Theme          Theme             `json:"theme"`
	Windows        map[string]Window `json:"windows"`
	ActiveWindowID string            `json:"active_window_id,omitempty"`
	StackCounter   int64             `json:"stack_counter"`
	ClockDisplay   string            `json:"clock_display"`
	Notifications  []Notification    `json:"notifications"`
	Version        uint64            `json:"version"`
}

// NewState returns an empty desktop
func NewState(theme Theme, stackBase int64) State {
	if !theme.Valid() {
		theme = ThemeLight
	}
	return State{
		Theme:         theme,
		Windows:       map[string]Window{},
		StackCounter:  stackBase,
		Notifications: []Notification{},
	}
}

// Window looks up a window by id
func (s State) Window(id string) (Window, bool) {
	w, ok := s.Windows[id]
	return w, ok
}

// Active returns the active window, if any
func (s State) Active() (Window, bool) {
	if s.ActiveWindowID == "" {
		return Window{}, false
	}
	return s.Window(s.ActiveWindowID)
}

// Stacked returns all windows back to front
func (s State) Stacked() []Window {
	out := make([]Window, 0, len(s.Windows))
	for _, w := range s.Windows {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StackOrder < out[j].StackOrder
	})
	return out
}

// withWindows returns a copy of s whose window map can be edited freely
func (s State) withWindows() State {
	windows := make(map[string]Window, len(s.Windows)+1)
	for k, v := range s.Windows {
		windows[k] = v
	}
	s.Windows = windows
	return s
}

// Stats summarizes the registry
type Stats struct {
	TotalWindows     int    `json:"total_windows"`
	VisibleWindows   int    `json:"visible_windows"`
	MinimizedWindows int    `json:"minimized_windows"`
	MaximizedWindows int    `json:"maximized_windows"`
	ActiveWindowID   string `json:"active_window_id,omitempty"`
	Theme            Theme  `json:"theme"`
	Version          uint64 `json:"version"`
}

// Stats returns registry statistics
func (s State) Stats() Stats {
	st := Stats{
		TotalWindows:   len(s.Windows),
		ActiveWindowID: s.ActiveWindowID,
		Theme:          s.Theme,
		Version:        s.Version,
	}
	for _, w := range s.Windows {
		if w.Minimized {
			st.MinimizedWindows++
		} else {
			st.VisibleWindows++
		}
		if w.Maximized {
			st.MaximizedWindows++
		}
	}
	return st
}
