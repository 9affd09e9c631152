package pointer

import "sync"

// Point is a pointer position in desktop coordinates
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Listener receives device-wide pointer events while attached
type Listener interface {
	PointerMove(p Point)
	PointerUp(p Point)
}

// Bus fans pointer events out to the listeners currently attached to one
// pointing device
type Bus struct {
	mu        sync.Mutex
	listeners map[uint64]Listener
	next      uint64
	onChange  func(attached int)
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{listeners: make(map[uint64]Listener)}
}

// OnChange registers fn to be told the listener count after every attach
// and release. Used for metrics.
func (b *Bus) OnChange(fn func(attached int)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onChange = fn
}

// Attach adds l and returns the function that removes it. The release
// function is safe to call any number of times.
func (b *Bus) Attach(l Listener) (release func()) {
	b.mu.Lock()
	key := b.next
	b.next++
	b.listeners[key] = l
	count, notify := len(b.listeners), b.onChange
	b.mu.Unlock()

	if notify != nil {
		notify(count)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.listeners, key)
			count, notify := len(b.listeners), b.onChange
			b.mu.Unlock()

			if notify != nil {
				notify(count)
			}
		})
	}
}

// Listeners returns how many listeners are attached
func (b *Bus) Listeners() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}

// Move delivers a pointer-move to every attached listener
func (b *Bus) Move(p Point) {
	for _, l := range b.snapshot() {
		l.PointerMove(p)
	}
}

// Up delivers a pointer-up to every attached listener. Listeners usually
// release themselves in response.
func (b *Bus) Up(p Point) {
	for _, l := range b.snapshot() {
		l.PointerUp(p)
	}
}

// snapshot copies the listener set so callbacks may attach or release
// without deadlocking
func (b *Bus) snapshot() []Listener {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Listener, 0, len(b.listeners))
	for _, l := range b.listeners {
		out = append(out, l)
	}
	return out
}
