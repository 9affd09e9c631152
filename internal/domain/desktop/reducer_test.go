package desktop

import (
	"fmt"
	"testing"
	"time"

	"github.com/GriffinCanCode/skydesk/internal/shared/id"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seqIDs hands out predictable ids: A1, A2, ... per app
type seqIDs struct {
	counts map[string]int
	notes  int
}

func newSeqIDs() *seqIDs { return &seqIDs{counts: map[string]int{}} }

func (s *seqIDs) NewWindowID(appID string) id.WindowID {
	s.counts[appID]++
	return id.WindowID(fmt.Sprintf("%s%d", appID, s.counts[appID]))
}

func (s *seqIDs) NewNotificationID() id.NotificationID {
	s.notes++
	return id.NotificationID(fmt.Sprintf("note%d", s.notes))
}

var fixedNow = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

func newTestReducer(opts ...ReducerOption) *Reducer {
	base := []ReducerOption{
		WithIDSource(newSeqIDs()),
		WithPlacement(FixedPlacement{X: 120, Y: 140}),
		WithClock(func() time.Time { return fixedNow }),
	}
	return NewReducer(DefaultSettings(), append(base, opts...)...)
}

func app(appID string) AppDescriptor {
	return AppDescriptor{ID: appID, Name: "App " + appID, View: appID + "-view"}
}

func applyAll(r *Reducer, s State, intents ...Intent) State {
	for _, in := range intents {
		s = r.Apply(s, in)
	}
	return s
}

func assertTopOfStack(t *testing.T, s State, windowID string) {
	t.Helper()
	top := s.Windows[windowID].StackOrder
	for wid, w := range s.Windows {
		if wid != windowID {
			assert.Less(t, w.StackOrder, top, "window %s should be below %s", wid, windowID)
		}
	}
}

func TestOpen(t *testing.T) {
	r := newTestReducer()
	s := r.Apply(r.Initial(), Open{App: app("A")})

	require.Len(t, s.Windows, 1)
	w, ok := s.Window("A1")
	require.True(t, ok)

	assert.Equal(t, "App A", w.Title)
	assert.Equal(t, "A", w.AppID)
	assert.Equal(t, ContentRef{View: "A-view"}, w.Content)
	assert.Equal(t, Point{X: 120, Y: 140}, w.Position)
	assert.Equal(t, Size{Width: 800, Height: 600}, w.Size)
	assert.Equal(t, int64(1001), w.StackOrder)
	assert.Equal(t, fixedNow, w.OpenedAt)
	assert.False(t, w.Minimized)
	assert.False(t, w.Maximized)
	assert.Equal(t, "A1", s.ActiveWindowID)
	assert.Equal(t, int64(1001), s.StackCounter)
	assert.Equal(t, uint64(1), s.Version)
}

func TestOpenDefaultsViewToAppID(t *testing.T) {
	r := newTestReducer()
	s := r.Apply(r.Initial(), Open{App: AppDescriptor{ID: "notepad", Name: "Notepad"}})

	assert.Equal(t, "notepad", s.Windows["notepad1"].Content.View)
}

func TestOpenWithOverrides(t *testing.T) {
	r := newTestReducer()
	title := "Pinned"
	maximized := true

	s := r.Apply(r.Initial(), Open{
		App: app("A"),
		Overrides: &Overrides{
			Title:     &title,
			Position:  &Point{X: 5, Y: 6},
			Size:      &Size{Width: 300, Height: 200},
			Maximized: &maximized,
			Props:     map[string]interface{}{"path": "/home"},
		},
	})

	w := s.Windows["A1"]
	assert.Equal(t, "Pinned", w.Title)
	assert.Equal(t, Point{X: 5, Y: 6}, w.Position)
	assert.Equal(t, Size{Width: 300, Height: 200}, w.Size)
	assert.True(t, w.Maximized)
	assert.Equal(t, "/home", w.Content.Props["path"])
	assert.Equal(t, "A1", s.ActiveWindowID)
}

func TestOpenMinimizedIsNotActive(t *testing.T) {
	r := newTestReducer()
	minimized := true

	s := applyAll(r, r.Initial(),
		Open{App: app("A")},
		Open{App: app("B"), Overrides: &Overrides{Minimized: &minimized}},
	)

	assert.True(t, s.Windows["B1"].Minimized)
	assert.Empty(t, s.ActiveWindowID)
}

func TestOpenPinnedPositionsAreDeterministic(t *testing.T) {
	r := newTestReducer()
	pos := Point{X: 10, Y: 10}

	s := applyAll(r, r.Initial(),
		Open{App: app("A"), Overrides: &Overrides{Position: &pos}},
		Open{App: app("A"), Overrides: &Overrides{Position: &pos}},
	)

	require.Len(t, s.Windows, 2)
	assert.Equal(t, s.Windows["A1"].Position, s.Windows["A2"].Position)
}

func TestOpenRandomPlacementAvoidsExactOverlap(t *testing.T) {
	r := NewReducer(DefaultSettings(), WithPlacement(NewSeededPlacement(Point{X: 100, Y: 100}, Size{Width: 200, Height: 100}, 42)))

	s := applyAll(r, r.Initial(), Open{App: app("A")}, Open{App: app("A")})
	require.Len(t, s.Windows, 2)

	var positions []Point
	for _, w := range s.Windows {
		assert.GreaterOrEqual(t, w.Position.X, 100)
		assert.Less(t, w.Position.X, 300)
		assert.GreaterOrEqual(t, w.Position.Y, 100)
		assert.Less(t, w.Position.Y, 200)
		positions = append(positions, w.Position)
	}
	assert.NotEqual(t, positions[0], positions[1])
}

func TestRapidOpensYieldUniqueIDs(t *testing.T) {
	r := NewReducer(DefaultSettings())
	s := r.Initial()

	for i := 0; i < 500; i++ {
		s = r.Apply(s, Open{App: app("calculator")})
	}

	assert.Len(t, s.Windows, 500)
	for wid, w := range s.Windows {
		assert.Equal(t, wid, w.ID)
	}
}

func TestClose(t *testing.T) {
	r := newTestReducer()
	s := applyAll(r, r.Initial(), Open{App: app("A")}, Open{App: app("B")})

	s = r.Apply(s, Close{ID: "B1"})
	assert.NotContains(t, s.Windows, "B1")
	assert.Empty(t, s.ActiveWindowID, "closing the active window clears focus")

	again := r.Apply(s, Close{ID: "B1"})
	assert.Equal(t, s, again, "closing twice is a no-op")
}

func TestCloseInactiveKeepsActive(t *testing.T) {
	r := newTestReducer()
	s := applyAll(r, r.Initial(), Open{App: app("A")}, Open{App: app("B")}, Close{ID: "A1"})

	assert.Equal(t, "B1", s.ActiveWindowID)
}

func TestMinimizeToggles(t *testing.T) {
	r := newTestReducer()
	s := r.Apply(r.Initial(), Open{App: app("A")})

	s = r.Apply(s, Minimize{ID: "A1"})
	assert.True(t, s.Windows["A1"].Minimized)
	assert.Empty(t, s.ActiveWindowID)

	s = r.Apply(s, Minimize{ID: "A1"})
	assert.False(t, s.Windows["A1"].Minimized)
	assert.Empty(t, s.ActiveWindowID, "un-minimizing does not re-activate")
}

func TestMinimizeInactiveKeepsActive(t *testing.T) {
	r := newTestReducer()
	s := applyAll(r, r.Initial(), Open{App: app("A")}, Open{App: app("B")}, Minimize{ID: "A1"})

	assert.True(t, s.Windows["A1"].Minimized)
	assert.Equal(t, "B1", s.ActiveWindowID)
}

func TestMaximizeTogglesWithoutTouchingGeometry(t *testing.T) {
	r := newTestReducer()
	s := applyAll(r, r.Initial(), Open{App: app("A")}, Move{ID: "A1", X: 40, Y: 50}, Resize{ID: "A1", Width: 320, Height: 240})

	s = r.Apply(s, Maximize{ID: "A1"})
	w := s.Windows["A1"]
	assert.True(t, w.Maximized)
	assert.Equal(t, Point{X: 40, Y: 50}, w.Position)
	assert.Equal(t, Size{Width: 320, Height: 240}, w.Size)

	s = r.Apply(s, Maximize{ID: "A1"})
	assert.False(t, s.Windows["A1"].Maximized)
}

func TestFocusRaisesToStrictMaximum(t *testing.T) {
	r := newTestReducer()
	s := applyAll(r, r.Initial(), Open{App: app("A")}, Open{App: app("B")}, Open{App: app("C")})

	for _, wid := range []string{"A1", "C1", "B1", "B1", "A1"} {
		s = r.Apply(s, Focus{ID: wid})
		assert.Equal(t, wid, s.ActiveWindowID)
		assertTopOfStack(t, s, wid)
	}
}

func TestFocusAlreadyActiveStillBumps(t *testing.T) {
	r := newTestReducer()
	s := r.Apply(r.Initial(), Open{App: app("A")})

	s = r.Apply(s, Focus{ID: "A1"})
	assert.Equal(t, int64(1002), s.Windows["A1"].StackOrder)
	assert.Equal(t, int64(1002), s.StackCounter)
}

func TestFocusMinimizedIsNoop(t *testing.T) {
	r := newTestReducer()
	s := applyAll(r, r.Initial(), Open{App: app("A")}, Minimize{ID: "A1"})

	after := r.Apply(s, Focus{ID: "A1"})
	assert.Equal(t, s, after)
	assert.Empty(t, after.ActiveWindowID)
}

func TestMoveClampsOnlyVertical(t *testing.T) {
	r := newTestReducer()
	s := r.Apply(r.Initial(), Open{App: app("A")})

	s = r.Apply(s, Move{ID: "A1", X: 10, Y: -50})
	assert.Equal(t, Point{X: 10, Y: 0}, s.Windows["A1"].Position)

	s = r.Apply(s, Move{ID: "A1", X: -50, Y: 10})
	assert.Equal(t, Point{X: -50, Y: 10}, s.Windows["A1"].Position)
}

func TestResizeIsUnclamped(t *testing.T) {
	r := newTestReducer()
	s := applyAll(r, r.Initial(), Open{App: app("A")}, Resize{ID: "A1", Width: 5, Height: -3})

	assert.Equal(t, Size{Width: 5, Height: -3}, s.Windows["A1"].Size)
}

func TestUnknownWindowIsNoop(t *testing.T) {
	r := newTestReducer()
	s := r.Apply(r.Initial(), Open{App: app("A")})

	for _, in := range []Intent{
		Close{ID: "nope"},
		Minimize{ID: "nope"},
		Maximize{ID: "nope"},
		Focus{ID: "nope"},
		Move{ID: "nope", X: 1, Y: 1},
		Resize{ID: "nope", Width: 1, Height: 1},
		Dismiss{ID: "nope"},
	} {
		t.Run(string(in.Kind()), func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Equal(t, s, r.Apply(s, in))
			})
		})
	}
}

func TestToggleThemeAndTick(t *testing.T) {
	r := newTestReducer()
	s := r.Initial()
	require.Equal(t, ThemeLight, s.Theme)

	s = r.Apply(s, ToggleTheme{})
	assert.Equal(t, ThemeDark, s.Theme)
	s = r.Apply(s, ToggleTheme{})
	assert.Equal(t, ThemeLight, s.Theme)

	s = r.Apply(s, Tick{Display: "09:30"})
	assert.Equal(t, "09:30", s.ClockDisplay)

	same := r.Apply(s, Tick{Display: "09:30"})
	assert.Equal(t, s.Version, same.Version, "an unchanged clock is not a new version")
}

func TestNotifyAndDismiss(t *testing.T) {
	settings := DefaultSettings()
	settings.NotificationLimit = 2
	r := NewReducer(settings, WithIDSource(newSeqIDs()), WithClock(func() time.Time { return fixedNow }))

	s := applyAll(r, r.Initial(),
		Notify{Message: "first"},
		Notify{Message: "second", Level: LevelWarning},
		Notify{Message: "third", Level: LevelError},
	)

	require.Len(t, s.Notifications, 2, "oldest notification is dropped past the limit")
	assert.Equal(t, "second", s.Notifications[0].Message)
	assert.Equal(t, LevelWarning, s.Notifications[0].Level)
	assert.Equal(t, "note3", s.Notifications[1].ID)

	s = r.Apply(s, Dismiss{ID: "note2"})
	require.Len(t, s.Notifications, 1)
	assert.Equal(t, "third", s.Notifications[0].Message)

	s = r.Apply(r.Initial(), Notify{Message: "plain"})
	assert.Equal(t, LevelInfo, s.Notifications[0].Level)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	r := newTestReducer()
	s := applyAll(r, r.Initial(), Open{App: app("A")}, Open{App: app("B")})
	before := s.Windows["A1"]

	_ = applyAll(r, s, Move{ID: "A1", X: 1, Y: 2}, Close{ID: "B1"}, Focus{ID: "A1"})

	assert.Equal(t, before, s.Windows["A1"])
	assert.Contains(t, s.Windows, "B1")
	assert.Equal(t, "B1", s.ActiveWindowID)
}

// The walkthrough from the window manager design notes.
func TestFocusMinimizeScenario(t *testing.T) {
	r := newTestReducer()
	s := r.Initial()

	s = r.Apply(s, Open{App: app("A")})
	assert.Equal(t, int64(1001), s.Windows["A1"].StackOrder)

	s = r.Apply(s, Open{App: app("B")})
	assert.Equal(t, int64(1002), s.Windows["B1"].StackOrder)
	assert.Equal(t, "B1", s.ActiveWindowID)

	s = r.Apply(s, Focus{ID: "A1"})
	assert.Equal(t, int64(1003), s.Windows["A1"].StackOrder)
	assert.Equal(t, "A1", s.ActiveWindowID)

	s = r.Apply(s, Minimize{ID: "A1"})
	assert.Empty(t, s.ActiveWindowID)
	assert.True(t, s.Windows["A1"].Minimized)

	s = r.Apply(s, Minimize{ID: "A1"})
	assert.False(t, s.Windows["A1"].Minimized)
	assert.Empty(t, s.ActiveWindowID)
}

func TestInvariantsHoldAcrossSequences(t *testing.T) {
	r := NewReducer(DefaultSettings(), WithPlacement(NewSeededPlacement(Point{}, Size{Width: 50, Height: 50}, 7)))
	s := r.Initial()

	ops := func(ids []string, i int) Intent {
		if len(ids) == 0 || i%7 == 0 {
			return Open{App: app("X")}
		}
		target := ids[i%len(ids)]
		switch i % 6 {
		case 0:
			return Close{ID: target}
		case 1:
			return Minimize{ID: target}
		case 2:
			return Focus{ID: target}
		case 3:
			return Move{ID: target, X: -i, Y: -i}
		case 4:
			return Maximize{ID: target}
		default:
			return Focus{ID: target}
		}
	}

	seen := map[string]struct{}{}
	for i := 0; i < 400; i++ {
		ids := make([]string, 0, len(s.Windows))
		for _, w := range s.Stacked() {
			ids = append(ids, w.ID)
		}
		s = r.Apply(s, ops(ids, i))

		for wid, w := range s.Windows {
			seen[wid] = struct{}{}
			assert.GreaterOrEqual(t, w.Position.Y, 0)
		}
		if active, ok := s.Active(); ok {
			assert.False(t, active.Minimized)
			assertTopOfStack(t, s, active.ID)
		} else {
			assert.Empty(t, s.ActiveWindowID)
		}
	}
	assert.NotEmpty(t, seen)
}

func TestStats(t *testing.T) {
	r := newTestReducer()
	s := applyAll(r, r.Initial(),
		Open{App: app("A")}, Open{App: app("B")}, Open{App: app("C")},
		Minimize{ID: "A1"}, Maximize{ID: "B1"},
	)

	st := s.Stats()
	assert.Equal(t, 3, st.TotalWindows)
	assert.Equal(t, 2, st.VisibleWindows)
	assert.Equal(t, 1, st.MinimizedWindows)
	assert.Equal(t, 1, st.MaximizedWindows)
	assert.Equal(t, "C1", st.ActiveWindowID)
}
