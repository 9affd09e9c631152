package pointer

import (
	"testing"

	"github.com/GriffinCanCode/skydesk/internal/domain/desktop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingListener struct {
	moves, ups int
}

func (r *recordingListener) PointerMove(Point) { r.moves++ }
func (r *recordingListener) PointerUp(Point)   { r.ups++ }

func TestBusAttachRelease(t *testing.T) {
	bus := NewBus()
	var counts []int
	bus.OnChange(func(n int) { counts = append(counts, n) })

	l := &recordingListener{}
	release := bus.Attach(l)
	bus.Move(Point{})
	bus.Up(Point{})
	release()
	release()
	bus.Move(Point{})

	assert.Equal(t, 1, l.moves)
	assert.Equal(t, 1, l.ups)
	assert.Equal(t, []int{1, 0}, counts)
	assert.Zero(t, bus.Listeners())
}

func TestTrackerRoutesToPressedWindow(t *testing.T) {
	store, first := newDesk(t)
	second := store.Dispatch(desktop.Open{
		App:       desktop.AppDescriptor{ID: "terminal"},
		Overrides: &desktop.Overrides{Position: &desktop.Point{X: 400, Y: 300}},
	}).ActiveWindowID
	tracker := NewTracker(store, NewBus(), DefaultOptions())

	require.True(t, tracker.Down(first, RegionTitleBar, Point{X: 110, Y: 105}))
	assert.Equal(t, []string{first}, tracker.Active())

	tracker.Move(Point{X: 210, Y: 205})
	tracker.Up(Point{X: 210, Y: 205})

	st := store.Snapshot()
	assert.Equal(t, desktop.Point{X: 200, Y: 200}, st.Windows[first].Position)
	assert.Equal(t, desktop.Point{X: 400, Y: 300}, st.Windows[second].Position)
	assert.Empty(t, tracker.Active())
	assert.Zero(t, tracker.Bus().Listeners())
}

func TestTrackerIgnoresUnknownWindow(t *testing.T) {
	store, _ := newDesk(t)
	tracker := NewTracker(store, NewBus(), DefaultOptions())

	assert.False(t, tracker.Down("ghost", RegionTitleBar, Point{}))
	assert.Empty(t, tracker.Active())
}

func TestTrackerPruneReleasesClosedWindows(t *testing.T) {
	store, wid := newDesk(t)
	tracker := NewTracker(store, NewBus(), DefaultOptions())

	require.True(t, tracker.Down(wid, RegionTitleBar, Point{X: 110, Y: 110}))
	store.Dispatch(desktop.Close{ID: wid})

	tracker.Prune(func(id string) bool {
		_, ok := store.Snapshot().Window(id)
		return ok
	})

	assert.Zero(t, tracker.Bus().Listeners())
	assert.Empty(t, tracker.Active())
}

func TestTrackerCloseReleasesEverything(t *testing.T) {
	store, wid := newDesk(t)
	tracker := NewTracker(store, NewBus(), DefaultOptions())

	require.True(t, tracker.Down(wid, RegionResizeHandle, Point{X: 900, Y: 700}))
	tracker.Close()

	assert.Zero(t, tracker.Bus().Listeners())
}

func TestTrackerCancel(t *testing.T) {
	store, wid := newDesk(t)
	tracker := NewTracker(store, NewBus(), DefaultOptions())

	require.True(t, tracker.Down(wid, RegionTitleBar, Point{X: 110, Y: 110}))
	tracker.Cancel()

	assert.Empty(t, tracker.Active())
	assert.Zero(t, tracker.Bus().Listeners())
}
