package positions

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Position
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]Position),
	}
}

// Put stores/overwrites a position.
func (r *MemoryRepo) Put(pos Position) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[pos.ID] = pos
}

// Get returns a position by ID.
func (r *MemoryRepo) Get(positionID string) (Position, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pos, ok := r.data[positionID]
	return pos, ok
}

// UpdateSynthesis overwrites the synthesized fields present in the update.
func (r *MemoryRepo) UpdateSynthesis(ctx context.Context, positionID string, update SynthesisUpdate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	pos, ok := r.data[positionID]
	if !ok {
		return ErrNotFound
	}
	if update.Description != nil {
		pos.Description = *update.Description
	}
	if update.Questions != nil {
		pos.Phase2Questions = append([]Question(nil), update.Questions...)
	}
	pos.UpdatedAt = time.Now().UTC()
	r.data[positionID] = pos
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
