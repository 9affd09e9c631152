package pointer

import "sync"

// Tracker owns the per-window controllers for one pointing device
type Tracker struct {
	desk Desktop
	bus  *Bus
	opts Options

	mu          sync.Mutex
	controllers map[string]*Controller
}

// NewTracker creates a tracker for the device behind bus
func NewTracker(desk Desktop, bus *Bus, opts Options) *Tracker {
	return &Tracker{
		desk:        desk,
		bus:         bus,
		opts:        opts,
		controllers: make(map[string]*Controller),
	}
}

// Bus returns the device bus
func (t *Tracker) Bus() *Bus {
	return t.bus
}

// Controller returns the controller for windowID, creating it on first use
func (t *Tracker) Controller(windowID string) *Controller {
	t.mu.Lock()
	defer t.mu.Unlock()

	c, ok := t.controllers[windowID]
	if !ok {
		c = NewController(windowID, t.desk, t.bus, t.opts)
		t.controllers[windowID] = c
	}
	return c
}

// Down routes a press on windowID. Unknown windows are ignored.
func (t *Tracker) Down(windowID string, region Region, p Point) bool {
	if _, ok := t.desk.Snapshot().Window(windowID); !ok {
		return false
	}
	return t.Controller(windowID).Down(region, p)
}

// Move routes a device-wide pointer-move
func (t *Tracker) Move(p Point) {
	t.bus.Move(p)
}

// Up routes a device-wide pointer-up
func (t *Tracker) Up(p Point) {
	t.bus.Up(p)
}

// Cancel ends every interaction in progress
func (t *Tracker) Cancel() {
	for _, c := range t.all() {
		c.Cancel()
	}
}

// Active returns the ids of windows currently being dragged or resized
func (t *Tracker) Active() []string {
	var ids []string
	for _, c := range t.all() {
		if c.Phase() != PhaseIdle {
			ids = append(ids, c.WindowID())
		}
	}
	return ids
}

// Prune drops controllers whose windows are gone, releasing their listeners
func (t *Tracker) Prune(exists func(windowID string) bool) {
	t.mu.Lock()
	var gone []*Controller
	for wid, c := range t.controllers {
		if !exists(wid) {
			gone = append(gone, c)
			delete(t.controllers, wid)
		}
	}
	t.mu.Unlock()

	for _, c := range gone {
		c.Close()
	}
}

// Close releases every controller. Called when the device goes away.
func (t *Tracker) Close() {
	t.mu.Lock()
	all := t.controllers
	t.controllers = make(map[string]*Controller)
	t.mu.Unlock()

	for _, c := range all {
		c.Close()
	}
}

func (t *Tracker) all() []*Controller {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]*Controller, 0, len(t.controllers))
	for _, c := range t.controllers {
		out = append(out, c)
	}
	return out
}
