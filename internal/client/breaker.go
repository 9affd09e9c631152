package client

import (
	"errors"
	"sync"
	"time"
)

// ErrCircuitOpen is returned while the desktop server is considered down
var ErrCircuitOpen = errors.New("desktop server unavailable: circuit breaker open")

// BreakerState is the circuit breaker state
type BreakerState int

const (
	StateClosed BreakerState = iota
	StateHalfOpen
	StateOpen
)

func (s BreakerState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHalfOpen:
		return "half-open"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// breaker opens after a run of consecutive failures and lets a single probe
// through once the cooldown has passed
type breaker struct {
	threshold int
	cooldown  time.Duration
	now       func() time.Time

	mu       sync.Mutex
	state    BreakerState
	failures int
	openedAt time.Time
	probing  bool
}

func newBreaker(threshold int, cooldown time.Duration) *breaker {
	if threshold <= 0 {
		threshold = 5
	}
	if cooldown <= 0 {
		cooldown = 10 * time.Second
	}
	return &breaker{threshold: threshold, cooldown: cooldown, now: time.Now}
}

// allow reports whether a request may go out
func (b *breaker) allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.current() {
	case StateOpen:
		return ErrCircuitOpen
	case StateHalfOpen:
		if b.probing {
			return ErrCircuitOpen
		}
		b.probing = true
	}
	return nil
}

func (b *breaker) record(ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.probing = false
	if ok {
		b.state, b.failures = StateClosed, 0
		return
	}

	b.failures++
	if b.state == StateHalfOpen || b.failures >= b.threshold {
		b.state, b.openedAt = StateOpen, b.now()
	}
}

func (b *breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current()
}

// current must be called with mu held
func (b *breaker) current() BreakerState {
	if b.state == StateOpen && b.now().Sub(b.openedAt) >= b.cooldown {
		b.state = StateHalfOpen
	}
	return b.state
}
