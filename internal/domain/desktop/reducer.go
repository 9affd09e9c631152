package desktop

import (
	"time"

	"github.com/GriffinCanCode/skydesk/internal/shared/id"
)

// IDSource hands out identifiers that are never reused
type IDSource interface {
	NewWindowID(appID string) id.WindowID
	NewNotificationID() id.NotificationID
}

// Settings configures a Reducer
type Settings struct {
	Theme             Theme
	StackBase         int64
	DefaultSize       Size
	SpawnOrigin       Point
	SpawnSpread       Size
	NotificationLimit int
}

// DefaultSettings mirrors the stock desktop: 800x600 windows scattered in a
// 200x100 box at (100, 100), stack orders starting after 1000.
func DefaultSettings() Settings {
	return Settings{
		Theme:             ThemeLight,
		StackBase:         1000,
		DefaultSize:       Size{Width: 800, Height: 600},
		SpawnOrigin:       Point{X: 100, Y: 100},
		SpawnSpread:       Size{Width: 200, Height: 100},
		NotificationLimit: 50,
	}
}

// Reducer applies intents to desktop state
type Reducer struct {
	settings  Settings
	ids       IDSource
	placement Placement
	now       func() time.Time
}

// ReducerOption customizes a Reducer
type ReducerOption func(*Reducer)

// WithIDSource replaces the id generator
func WithIDSource(ids IDSource) ReducerOption {
	return func(r *Reducer) { r.ids = ids }
}

// WithPlacement replaces the placement policy for new windows
func WithPlacement(p Placement) ReducerOption {
	return func(r *Reducer) { r.placement = p }
}

// WithClock replaces the time source used for timestamps
func WithClock(now func() time.Time) ReducerOption {
	return func(r *Reducer) { r.now = now }
}

// NewReducer creates a reducer
func NewReducer(settings Settings, opts ...ReducerOption) *Reducer {
	r := &Reducer{
		settings:  settings,
		ids:       id.NewGenerator(),
		placement: NewRandomPlacement(settings.SpawnOrigin, settings.SpawnSpread),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Settings returns the reducer configuration
func (r *Reducer) Settings() Settings {
	return r.settings
}

// Initial returns the starting desktop
func (r *Reducer) Initial() State {
	return NewState(r.settings.Theme, r.settings.StackBase)
}

// Apply returns the state after in. The input state is left untouched.
// Intents aimed at windows that do not exist change nothing.
func (r *Reducer) Apply(s State, in Intent) State {
	next, changed := r.apply(s, in)
	if !changed {
		return s
	}
	next.Version = s.Version + 1
	return next
}

func (r *Reducer) apply(s State, in Intent) (State, bool) {
	switch v := in.(type) {
	case Open:
		return r.open(s, v), true

	case Close:
		if _, ok := s.Windows[v.ID]; !ok {
			return s, false
		}
		s = s.withWindows()
		delete(s.Windows, v.ID)
		if s.ActiveWindowID == v.ID {
			s.ActiveWindowID = ""
		}
		return s, true

	case Minimize:
		w, ok := s.Windows[v.ID]
		if !ok {
			return s, false
		}
		w.Minimized = !w.Minimized
		s = s.withWindows()
		s.Windows[v.ID] = w
		if w.Minimized && s.ActiveWindowID == v.ID {
			s.ActiveWindowID = ""
		}
		return s, true

	case Maximize:
		w, ok := s.Windows[v.ID]
		if !ok {
			return s, false
		}
		w.Maximized = !w.Maximized
		s = s.withWindows()
		s.Windows[v.ID] = w
		return s, true

	case Focus:
		w, ok := s.Windows[v.ID]
		if !ok || w.Minimized {
			return s, false
		}
		s.StackCounter++
		w.StackOrder = s.StackCounter
		s = s.withWindows()
		s.Windows[v.ID] = w
		s.ActiveWindowID = v.ID
		return s, true

	case Move:
		w, ok := s.Windows[v.ID]
		if !ok {
			return s, false
		}
		// Only the top edge is bounded; windows may leave the desktop sideways.
		w.Position = Point{X: v.X, Y: max(v.Y, 0)}
		s = s.withWindows()
		s.Windows[v.ID] = w
		return s, true

	case Resize:
		w, ok := s.Windows[v.ID]
		if !ok {
			return s, false
		}
		w.Size = Size{Width: v.Width, Height: v.Height}
		s = s.withWindows()
		s.Windows[v.ID] = w
		return s, true

	case ToggleTheme:
		s.Theme = s.Theme.Toggled()
		return s, true

	case Tick:
		if s.ClockDisplay == v.Display {
			return s, false
		}
		s.ClockDisplay = v.Display
		return s, true

	case Notify:
		return r.notify(s, v), true

	case Dismiss:
		for i, n := range s.Notifications {
			if n.ID == v.ID {
				notes := make([]Notification, 0, len(s.Notifications)-1)
				notes = append(notes, s.Notifications[:i]...)
				notes = append(notes, s.Notifications[i+1:]...)
				s.Notifications = notes
				return s, true
			}
		}
		return s, false
	}

	return s, false
}

func (r *Reducer) open(s State, v Open) State {
	view := v.App.View
	if view == "" {
		view = v.App.ID
	}
	w := Window{
		ID:       r.ids.NewWindowID(v.App.ID).String(),
		AppID:    v.App.ID,
		Title:    v.App.Name,
		Content:  ContentRef{View: view, Props: v.App.Props},
		Position: r.placement.Place(s),
		Size:     r.settings.DefaultSize,
		OpenedAt: r.now(),
	}
	if o := v.Overrides; o != nil {
		if o.Title != nil {
			w.Title = *o.Title
		}
		if o.Position != nil {
			w.Position = *o.Position
		}
		if o.Size != nil {
			w.Size = *o.Size
		}
		if o.Minimized != nil {
			w.Minimized = *o.Minimized
		}
		if o.Maximized != nil {
			w.Maximized = *o.Maximized
		}
		if o.Props != nil {
			w.Content.Props = o.Props
		}
	}

	s.StackCounter++
	w.StackOrder = s.StackCounter

	s = s.withWindows()
	s.Windows[w.ID] = w
	// Opening minimized behaves like open followed by minimize: the new
	// window is on top of the stack but nothing is active.
	if w.Minimized {
		s.ActiveWindowID = ""
	} else {
		s.ActiveWindowID = w.ID
	}
	return s
}

func (r *Reducer) notify(s State, v Notify) State {
	level := v.Level
	if level == "" {
		level = LevelInfo
	}
	n := Notification{
		ID:        r.ids.NewNotificationID().String(),
		Message:   v.Message,
		Level:     level,
		CreatedAt: r.now(),
	}

	notes := make([]Notification, 0, len(s.Notifications)+1)
	notes = append(notes, s.Notifications...)
	notes = append(notes, n)
	if limit := r.settings.NotificationLimit; limit > 0 && len(notes) > limit {
		notes = notes[len(notes)-limit:]
	}
	s.Notifications = notes
	return s
}
