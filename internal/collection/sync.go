// Package collection implements the remote-collection contract every
// console page follows: fetch on load, and after any mutation refetch the
// whole collection instead of patching it locally. Centralizing it means
// the displayed list is always the result of a fresh fetch issued after
// the mutation resolved, so a client always sees at least its own latest
// write.
package collection

import (
	"context"
	"sync"
)

type State int

const (
	Idle State = iota
	Loading
	Loaded
	Failed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// Sync drives one remote collection. The zero state is Idle; Refresh
// moves through Loading to Loaded or Failed; Mutate runs a write and only
// after it resolves issues the refetch. A failed refresh keeps the last
// good items so the caller can fall back to a stale list.
type Sync[T any] struct {
	fetch func(context.Context) ([]T, error)

	mu      sync.Mutex
	state   State
	items   []T
	lastErr error
}

func New[T any](fetch func(context.Context) ([]T, error)) *Sync[T] {
	return &Sync[T]{fetch: fetch}
}

func (s *Sync[T]) Refresh(ctx context.Context) ([]T, error) {
	s.mu.Lock()
	s.state = Loading
	s.mu.Unlock()

	items, err := s.fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = Failed
		s.lastErr = err
		return s.items, err
	}
	s.state = Loaded
	s.items = items
	s.lastErr = nil
	return items, nil
}

// Mutate applies a write and refetches. A failed write never triggers a
// fetch; a succeeded write always does, even if the caller will discard
// the result.
func (s *Sync[T]) Mutate(ctx context.Context, write func(context.Context) error) ([]T, error) {
	if err := write(ctx); err != nil {
		s.mu.Lock()
		s.state = Failed
		s.lastErr = err
		s.mu.Unlock()
		return nil, err
	}
	return s.Refresh(ctx)
}

func (s *Sync[T]) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Items returns the last successfully fetched collection.
func (s *Sync[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items
}

func (s *Sync[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
