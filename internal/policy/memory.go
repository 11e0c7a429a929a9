package policy

import (
	"context"
	"sync"
	"time"
)

// MemoryRepository backs unit tests and standalone mode.
type MemoryRepository struct {
	mu      sync.Mutex
	current *Policy
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Upsert(ctx context.Context, policy *Policy) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	policy.UpdatedAt = time.Now()
	stored := *policy
	r.current = &stored
	return nil
}

func (r *MemoryRepository) Get(ctx context.Context) (*Policy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current == nil {
		return Default(), nil
	}
	copy := *r.current
	return &copy, nil
}
