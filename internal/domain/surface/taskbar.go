package surface

import (
	"github.com/GriffinCanCode/skydesk/internal/domain/desktop"
)

// Entry is one taskbar button
type Entry struct {
	WindowID  string `json:"window_id"`
	AppID     string `json:"app_id"`
	Title     string `json:"title"`
	Active    bool   `json:"active"`
	Minimized bool   `json:"minimized"`
}

// Tray is the right-hand side of the taskbar
type Tray struct {
	Theme         desktop.Theme `json:"theme"`
	Clock         string        `json:"clock"`
	Notifications int           `json:"notifications"`
}

// TaskbarView is the rendered taskbar
type TaskbarView struct {
	Entries []Entry `json:"entries"`
	Tray    Tray    `json:"tray"`
}

// Bar renders the taskbar for s. Entries follow stack order, minimized
// windows included.
func Bar(s desktop.State) TaskbarView {
	stacked := s.Stacked()
	entries := make([]Entry, 0, len(stacked))
	for _, w := range stacked {
		entries = append(entries, Entry{
			WindowID:  w.ID,
			AppID:     w.AppID,
			Title:     w.Title,
			Active:    s.ActiveWindowID == w.ID,
			Minimized: w.Minimized,
		})
	}
	return TaskbarView{
		Entries: entries,
		Tray: Tray{
			Theme:         s.Theme,
			Clock:         s.ClockDisplay,
			Notifications: len(s.Notifications),
		},
	}
}

// Taskbar handles taskbar presses
type Taskbar struct {
	store *desktop.Store
}

// NewTaskbar creates the taskbar surface
func NewTaskbar(store *desktop.Store) *Taskbar {
	return &Taskbar{store: desktop.MustStore(store, "taskbar")}
}

// View renders the current taskbar
func (t *Taskbar) View() TaskbarView {
	return Bar(t.store.Snapshot())
}

// Activate brings a window forward: a minimized window is restored first,
// then focused. It reports whether the window exists. The minimized check
// and the restore happen under the store lock, so concurrent presses on
// the same button cannot toggle it back down.
func (t *Taskbar) Activate(windowID string) (desktop.State, bool) {
	found := false
	s, _ := t.store.DispatchFunc(func(s desktop.State) []desktop.Intent {
		w, ok := s.Window(windowID)
		if !ok {
			return nil
		}
		found = true
		if w.Minimized {
			return []desktop.Intent{desktop.Minimize{ID: windowID}, desktop.Focus{ID: windowID}}
		}
		return []desktop.Intent{desktop.Focus{ID: windowID}}
	})
	return s, found
}

// ToggleTheme flips the desktop theme from the tray
func (t *Taskbar) ToggleTheme() desktop.State {
	return t.store.Dispatch(desktop.ToggleTheme{})
}
