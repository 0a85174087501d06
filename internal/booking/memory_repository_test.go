package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepositorySnapshot(t *testing.T) {
	ctx := context.Background()
	deleted := map[int64]bool{}
	repo := NewMemoryRepository(func(_ context.Context, b *Booking) bool {
		if deleted[b.ItemID] {
			return false
		}
		b.ItemName = "Renamed"
		return true
	})

	kept := &Booking{Start: at(1), End: at(2), ItemID: 1, OwnerID: 9, BookerID: 2, Status: StatusWaiting}
	gone := &Booking{Start: at(3), End: at(4), ItemID: 2, OwnerID: 9, BookerID: 2, Status: StatusWaiting}
	require.NoError(t, repo.Create(ctx, kept))
	require.NoError(t, repo.Create(ctx, gone))

	t.Run("Resolves Current Fields", func(t *testing.T) {
		b, err := repo.GetByID(ctx, kept.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", b.ItemName)
	})

	t.Run("Deleted Item Hides Bookings", func(t *testing.T) {
		deleted[2] = true

		_, err := repo.GetByID(ctx, gone.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		list, err := repo.Find(ctx, Criteria{Subject: SubjectOwner, SubjectID: 9})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, kept.ID, list[0].ID)
	})
}
