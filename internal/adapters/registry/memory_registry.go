package registry

import (
	"context"
	"sync"

	"github.com/synchealth/wellness-backend/internal/domain/entities"
	"github.com/synchealth/wellness-backend/pkg/errors"
)

// MemoryRegistry is an in-memory implementation of the member
// repository. The full roster is replaced atomically on every import
// or directory sync.
type MemoryRegistry struct {
	mu      sync.RWMutex
	members []entities.Member
	byID    map[string]int
}

// NewMemoryRegistry creates an empty member registry
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{byID: make(map[string]int)}
}

// ReplaceAll swaps the entire roster for the given members
func (r *MemoryRegistry) ReplaceAll(ctx context.Context, members []entities.Member) error {
	byID := make(map[string]int, len(members))
	copied := make([]entities.Member, len(members))
	copy(copied, members)
	for i, m := range copied {
		byID[m.ID] = i
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.members = copied
	r.byID = byID
	return nil
}

// List returns the current roster in insertion order
func (r *MemoryRegistry) List(ctx context.Context) ([]entities.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entities.Member, len(r.members))
	copy(out, r.members)
	return out, nil
}

// GetByID looks up a single member, returning a not-found error when
// the id is unknown
func (r *MemoryRegistry) GetByID(ctx context.Context, id string) (*entities.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byID[id]
	if !ok {
		return nil, errors.NewNotFoundError("member not found")
	}
	member := r.members[idx]
	return &member, nil
}

// Count returns the roster size
func (r *MemoryRegistry) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members), nil
}
