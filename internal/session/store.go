package session

import (
	"sync"

	"github.com/rs/zerolog"
)

// DispatchFunc applies an action to the store
type DispatchFunc func(Action)

// Middleware wraps dispatch, e.g. to trace actions before they reach the reducer
type Middleware func(next DispatchFunc) DispatchFunc

// Listener is called after every dispatch with the state before and after it
type Listener func(prev, next State)

// Store owns the single State value. The reducer runs under the store lock, so there
// is exactly one writer at a time; listeners run after the lock is released and may
// dispatch again.
type Store struct {
	mu        sync.Mutex
	state     State
	listeners map[int]Listener
	nextID    int
	dispatch  DispatchFunc
}

// NewStore creates a store holding the initial state
func NewStore(middleware ...Middleware) *Store {
	return NewStoreWithState(InitialState(), middleware...)
}

// NewStoreWithState creates a store holding the given state
func NewStoreWithState(initial State, middleware ...Middleware) *Store {
	s := &Store{
		state:     initial,
		listeners: make(map[int]Listener),
	}

	dispatch := s.apply
	for i := len(middleware) - 1; i >= 0; i-- {
		dispatch = middleware[i](dispatch)
	}
	s.dispatch = dispatch

	return s
}

// State returns a snapshot of the current state
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch runs the action through the middleware chain and the reducer
func (s *Store) Dispatch(a Action) {
	s.dispatch(a)
}

// Subscribe registers a listener and returns a func that removes it
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = l

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Store) apply(a Action) {
	s.mu.Lock()
	prev := s.state
	next := Reduce(prev, a)
	s.state = next

	listeners := make([]Listener, 0, len(s.listeners))
	for id := 0; id < s.nextID; id++ {
		if l, ok := s.listeners[id]; ok {
			listeners = append(listeners, l)
		}
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(prev, next)
	}
}

// LoggingMiddleware traces every dispatched action at debug level
func LoggingMiddleware(log zerolog.Logger) Middleware {
	return func(next DispatchFunc) DispatchFunc {
		return func(a Action) {
			ev := log.Debug().Str("action", a.Type)
			if a.RequestID != "" {
				ev = ev.Str("request_id", a.RequestID)
			}
			if a.Phase == Rejected {
				ev = ev.Str("error", a.Error)
			}
			ev.Msg("Dispatch")
			next(a)
		}
	}
}
