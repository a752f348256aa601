package memory

import (
	"context"
	"sync"

	"github.com/PabloGalante/fillyourcup/internal/domain"
)

// StateStore keeps saved states in process memory. Saved data is lost on exit.
type StateStore struct {
	mu     sync.RWMutex
	states map[domain.UserID]domain.State
}

func NewStateStore() *StateStore {
	return &StateStore{
		states: make(map[domain.UserID]domain.State),
	}
}

func (s *StateStore) LoadState(ctx context.Context, userID domain.UserID) (*domain.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.states[userID]
	if !ok {
		return nil, domain.ErrStateNotFound
	}

	out := st.Clone()
	return &out, nil
}

func (s *StateStore) SaveState(ctx context.Context, userID domain.UserID, state *domain.State) error {
	if state == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.states[userID] = state.Clone()
	return nil
}
