package item

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
)

type memoryRepository struct {
	mu     sync.RWMutex
	items  map[int64]Item
	nextID int64
}

// NewMemoryRepository returns a Repository kept in process memory.
func NewMemoryRepository() Repository {
	return &memoryRepository{items: make(map[int64]Item)}
}

func (r *memoryRepository) Create(_ context.Context, it *Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := time.Now().UTC()
	it.ID = r.nextID
	it.CreatedAt = now
	it.UpdatedAt = now
	r.items[it.ID] = *it
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id int64) (*Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	it, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &it, nil
}

func (r *memoryRepository) List(_ context.Context, filter Filter) ([]*Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	text := strings.ToLower(filter.Text)
	var items []*Item
	for _, it := range r.items {
		if filter.OwnerID != 0 && it.OwnerID != filter.OwnerID {
			continue
		}
		if text != "" &&
			!strings.Contains(strings.ToLower(it.Name), text) &&
			!strings.Contains(strings.ToLower(it.Description), text) {
			continue
		}
		if filter.OnlyAvail && !it.Available {
			continue
		}
		if filter.RequestIDs != nil && (it.RequestID == nil || !slices.Contains(filter.RequestIDs, *it.RequestID)) {
			continue
		}
		it := it
		items = append(items, &it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	return request.Apply(items, filter.Page), nil
}

func (r *memoryRepository) Update(_ context.Context, it *Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[it.ID]; !ok {
		return ErrNotFound
	}
	it.UpdatedAt = time.Now().UTC()
	r.items[it.ID] = *it
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}
