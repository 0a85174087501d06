package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
)

// SnapshotFunc resolves the item and booker fields of a stored booking at read
// time. It returns false once the item or the booker has been deleted, which
// hides the booking the same way the SQL cascade removes it.
type SnapshotFunc func(ctx context.Context, b *Booking) bool

type memoryRepository struct {
	mu       sync.RWMutex
	bookings map[int64]Booking
	nextID   int64
	snapshot SnapshotFunc
}

// NewMemoryRepository returns a Repository kept in process memory. snapshot may be
// nil, in which case the item and booker fields stored at creation are returned.
func NewMemoryRepository(snapshot SnapshotFunc) Repository {
	return &memoryRepository{
		bookings: make(map[int64]Booking),
		snapshot: snapshot,
	}
}

func (r *memoryRepository) Create(_ context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := time.Now().UTC()
	b.ID = r.nextID
	b.CreatedAt = now
	b.UpdatedAt = now
	r.bookings[b.ID] = *b
	return nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	r.mu.RLock()
	b, ok := r.bookings[id]
	r.mu.RUnlock()

	if !ok || !r.resolve(ctx, &b) {
		return nil, ErrNotFound
	}
	return &b, nil
}

func (r *memoryRepository) Find(ctx context.Context, c Criteria) ([]*Booking, error) {
	r.mu.RLock()
	all := make([]Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		all = append(all, b)
	}
	r.mu.RUnlock()

	var out []*Booking
	for i := range all {
		b := &all[i]
		if r.resolve(ctx, b) && c.Matches(b) {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return c.Less(out[i], out[j]) })

	return request.Apply(out, c.Page), nil
}

func (r *memoryRepository) UpdateStatusIfWaiting(ctx context.Context, id int64, status Status) (*Booking, error) {
	r.mu.Lock()
	b, ok := r.bookings[id]
	if !ok {
		r.mu.Unlock()
		return nil, ErrNotFound
	}
	if b.Status != StatusWaiting {
		r.mu.Unlock()
		return nil, ErrAlreadyDecided
	}
	b.Status = status
	b.UpdatedAt = time.Now().UTC()
	r.bookings[id] = b
	r.mu.Unlock()

	r.resolve(ctx, &b)
	return &b, nil
}

func (r *memoryRepository) resolve(ctx context.Context, b *Booking) bool {
	if r.snapshot == nil {
		return true
	}
	return r.snapshot(ctx, b)
}
