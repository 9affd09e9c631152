package desktop

import (
	"sync"

	"go.uber.org/zap"
)

// Observer is told about every dispatched intent
type Observer interface {
	Observe(in Intent, before, after State)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(in Intent, before, after State)

// Observe implements Observer
func (f ObserverFunc) Observe(in Intent, before, after State) { f(in, before, after) }

// Store owns the desktop state for the lifetime of the process. All
// mutations go through Dispatch, which applies one intent at a time.
type Store struct {
	mu        sync.Mutex
	reducer   *Reducer
	state     State                  // Protected by mu
	subs      map[uint64]func(State) // Protected by mu
	nextSub   uint64                 // Protected by mu
	closed    bool                   // Protected by mu
	observers []Observer
	logger    *zap.Logger
}

// StoreOption customizes a Store
type StoreOption func(*Store)

// WithLogger attaches a logger
func WithLogger(logger *zap.Logger) StoreOption {
	return func(s *Store) { s.logger = logger }
}

// WithObserver registers an observer. Observers run synchronously after
// each dispatch, outside the store lock.
func WithObserver(o Observer) StoreOption {
	return func(s *Store) { s.observers = append(s.observers, o) }
}

// NewStore creates a store holding the reducer's initial state
func NewStore(reducer *Reducer, opts ...StoreOption) *Store {
	s := &Store{
		reducer: reducer,
		state:   reducer.Initial(),
		subs:    make(map[uint64]func(State)),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dispatch applies in and returns the resulting state. Subscribers are
// notified only when the state actually changed. Concurrent dispatches are
// serialized, but notifications may reach a subscriber out of order; use
// State.Version to discard stale ones.
func (s *Store) Dispatch(in Intent) State {
	st, _ := s.DispatchChanged(in)
	return st
}

// DispatchChanged is Dispatch that also reports whether in changed
// anything. The answer belongs to this dispatch alone, unlike comparing
// snapshots taken around it.
func (s *Store) DispatchChanged(in Intent) (State, bool) {
	return s.DispatchFunc(func(State) []Intent { return []Intent{in} })
}

// DispatchFunc calls plan with the current state and applies the intents it
// returns, all under one lock. Nothing else can dispatch between reading the
// state and applying the plan. Subscribers see only the final state. plan
// must not call back into the store.
func (s *Store) DispatchFunc(plan func(State) []Intent) (State, bool) {
	s.mu.Lock()
	if s.closed {
		st := s.state
		s.mu.Unlock()
		s.logger.Debug("Dispatch after close ignored")
		return st, false
	}

	start := s.state
	ins := plan(start)
	steps := make([]step, 0, len(ins))
	cur := start
	for _, in := range ins {
		if in == nil {
			continue
		}
		next := s.reducer.Apply(cur, in)
		steps = append(steps, step{in: in, before: cur, after: next})
		cur = next
	}
	s.state = cur
	changed := cur.Version != start.Version

	var subs []func(State)
	if changed {
		subs = make([]func(State), 0, len(s.subs))
		for _, fn := range s.subs {
			subs = append(subs, fn)
		}
	}
	s.mu.Unlock()

	for _, st := range steps {
		if ce := s.logger.Check(zap.DebugLevel, "Intent applied"); ce != nil {
			ce.Write(
				zap.String("intent", string(st.in.Kind())),
				zap.String("window_id", Target(st.in)),
				zap.Uint64("version", st.after.Version),
				zap.Bool("changed", st.after.Version != st.before.Version),
			)
		}
		for _, o := range s.observers {
			o.Observe(st.in, st.before, st.after)
		}
	}
	for _, fn := range subs {
		fn(cur)
	}
	return cur, changed
}

type step struct {
	in            Intent
	before, after State
}

// Snapshot returns the current state. The returned value shares maps with
// the store but is never mutated afterwards, so it is safe to read.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to receive every changed state. The returned
// function removes the subscription and may be called more than once.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return func() {}
	}

	key := s.nextSub
	s.nextSub++
	s.subs[key] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, key)
			s.mu.Unlock()
		})
	}
}

// Subscribers returns the number of live subscriptions
func (s *Store) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Settings returns the reducer configuration behind this store
func (s *Store) Settings() Settings {
	return s.reducer.Settings()
}

// Close drops all subscribers and makes further dispatches no-ops
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.subs = make(map[uint64]func(State))
}
