package mockdata

import (
	"sync"

	"github.com/nkripta/nkripta/internal/types"
)

// State is the last applied transition for a synthetic subscription.
// Reads overlay it onto freshly regenerated base data so a cancel followed
// by a read reflects "canceled", not a re-randomized "active".
type State struct {
	Status            types.SubscriptionStatus
	CancelAtPeriodEnd bool
}

// StateStore records transitions applied to synthetic subscriptions for the
// lifetime of the process. Injected so tests can reset it between cases.
type StateStore interface {
	Get(id string) (State, bool)
	Set(id string, state State)
	Reset()
}

// MemoryStateStore is the default StateStore. Cancel-then-read sequences for
// the same id may race across requests, so the map is mutex guarded.
type MemoryStateStore struct {
	mu     sync.RWMutex
	states map[string]State
}

func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{states: make(map[string]State)}
}

func (s *MemoryStateStore) Get(id string) (State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[id]
	return state, ok
}

func (s *MemoryStateStore) Set(id string, state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[id] = state
}

func (s *MemoryStateStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states = make(map[string]State)
}
