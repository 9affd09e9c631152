package desktop

import (
	"math/rand"
	"sync"
	"time"
)

// Placement chooses the origin of a newly opened window
type Placement interface {
	Place(s State) Point
}

// RandomPlacement scatters new windows inside a bounded box so that two
// windows opened back to back do not sit exactly on top of each other.
type RandomPlacement struct {
	origin Point
	spread Size

	mu  sync.Mutex // Protects rng
	rng *rand.Rand
}

// maxPlacementAttempts bounds the search for a free origin
const maxPlacementAttempts = 16

// NewRandomPlacement creates a placement seeded from the clock
func NewRandomPlacement(origin Point, spread Size) *RandomPlacement {
	return NewSeededPlacement(origin, spread, time.Now().UnixNano())
}

// NewSeededPlacement creates a reproducible placement
func NewSeededPlacement(origin Point, spread Size, seed int64) *RandomPlacement {
	return &RandomPlacement{
		origin: origin,
		spread: spread,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Place picks an origin in [origin, origin+spread) not already used by an
// open window. After a bounded number of collisions the last candidate wins.
func (p *RandomPlacement) Place(s State) Point {
	p.mu.Lock()
	defer p.mu.Unlock()

	var pt Point
	for attempt := 0; attempt < maxPlacementAttempts; attempt++ {
		pt = Point{
			X: p.origin.X + p.intn(p.spread.Width),
			Y: p.origin.Y + p.intn(p.spread.Height),
		}
		if !occupied(s, pt) {
			return pt
		}
	}
	return pt
}

func (p *RandomPlacement) intn(n int) int {
	if n <= 0 {
		return 0
	}
	return p.rng.Intn(n)
}

func occupied(s State, pt Point) bool {
	for _, w := range s.Windows {
		if w.Position == pt {
			return true
		}
	}
	return false
}

// FixedPlacement always returns the same origin
type FixedPlacement Point

// Place implements Placement
func (p FixedPlacement) Place(State) Point { return Point(p) }
