package server

import (
	"sync"

	"moonmash/internal/bracket"
)

// Store owns the one authoritative tournament state. Every mutation runs
// under mu against a copy and is committed only when it succeeds.
type Store struct {
	mu    sync.Mutex
	state bracket.State
}

func NewStore() *Store {
	return &Store{
		state: bracket.New(),
	}
}

func (s *Store) Snapshot() bracket.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Update hands update a private copy of the state. If update returns nil the
// copy replaces the state and the version advances; otherwise nothing changes.
func (s *Store) Update(update func(state *bracket.State) error) (bracket.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state.Clone()
	if err := update(&next); err != nil {
		return s.state.Clone(), err
	}
	next.Version = s.state.Version + 1
	s.state = next
	return s.state.Clone(), nil
}
