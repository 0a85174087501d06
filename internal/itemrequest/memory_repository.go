package itemrequest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
)

type memoryRepository struct {
	mu       sync.RWMutex
	requests map[int64]ItemRequest
	nextID   int64
}

// NewMemoryRepository returns a Repository kept in process memory.
func NewMemoryRepository() Repository {
	return &memoryRepository{requests: make(map[int64]ItemRequest)}
}

func (r *memoryRepository) Create(_ context.Context, req *ItemRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	req.ID = r.nextID
	req.CreatedAt = time.Now().UTC()
	r.requests[req.ID] = *req
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id int64) (*ItemRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	req, ok := r.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &req, nil
}

func (r *memoryRepository) List(_ context.Context, filter Filter) ([]*ItemRequest, error) {
	r.mu.RLock()
	var out []*ItemRequest
	for _, req := range r.requests {
		if filter.RequesterID != 0 && req.RequesterID != filter.RequesterID {
			continue
		}
		if filter.ExcludeRequesterID != 0 && req.RequesterID == filter.ExcludeRequesterID {
			continue
		}
		req := req
		out = append(out, &req)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return request.Apply(out, filter.Page), nil
}

func (r *memoryRepository) Exists(_ context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.requests[id]
	return ok, nil
}
