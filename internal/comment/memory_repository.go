package comment

import (
	"context"
	"slices"
	"sync"
	"time"
)

type memoryRepository struct {
	mu       sync.RWMutex
	comments []Comment
}

// NewMemoryRepository returns a Repository kept in process memory.
func NewMemoryRepository() Repository {
	return &memoryRepository{}
}

func (r *memoryRepository) Create(_ context.Context, c *Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c.ID = int64(len(r.comments)) + 1
	c.CreatedAt = time.Now().UTC()
	r.comments = append(r.comments, *c)
	return nil
}

func (r *memoryRepository) ListByItems(_ context.Context, itemIDs []int64) ([]*Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Comment
	for i := range r.comments {
		if slices.Contains(itemIDs, r.comments[i].ItemID) {
			c := r.comments[i]
			out = append(out, &c)
		}
	}
	return out, nil
}
