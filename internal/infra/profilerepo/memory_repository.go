package profilerepo

import (
	"context"
	"sync"

	"github.com/yanqian/weather-companion/internal/domain/advisor"
)

// MemoryRepository provides an in-memory profile store for tests/dev.
type MemoryRepository struct {
	mu       sync.RWMutex
	profiles map[string]advisor.Profile
}

// NewMemoryRepository constructs a new in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{profiles: make(map[string]advisor.Profile)}
}

// Put stores or replaces a profile.
func (r *MemoryRepository) Put(profile advisor.Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.UserID] = profile
}

// GetByUserID returns a profile by user id.
func (r *MemoryRepository) GetByUserID(_ context.Context, userID string) (advisor.Profile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.profiles[userID]
	return profile, ok, nil
}

var _ advisor.ProfileRepository = (*MemoryRepository)(nil)
