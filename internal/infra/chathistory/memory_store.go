package chathistory

import (
	"context"
	"sync"

	"github.com/yanqian/weather-companion/internal/domain/chat"
)

// MemoryStore keeps conversation history in process memory. Used for dev and
// as the fallback when no Valkey address is configured.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]chat.Turn
}

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string][]chat.Turn)}
}

func (s *MemoryStore) Append(_ context.Context, sessionID string, turns ...chat.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = append(s.sessions[sessionID], turns...)
	return nil
}

func (s *MemoryStore) Recent(_ context.Context, sessionID string, limit int) ([]chat.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	turns := s.sessions[sessionID]
	if limit > 0 && len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}
	out := make([]chat.Turn, len(turns))
	copy(out, turns)
	return out, nil
}

var _ chat.Store = (*MemoryStore)(nil)
