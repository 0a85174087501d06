package itemrequest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
	"github.com/nekogravitycat/shareit-backend/internal/user"
)

type env struct {
	svc   Service
	items item.Service
	alice int64
	bob   int64
	carol int64
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()

	users := user.NewService(user.NewMemoryRepository())
	repo := NewMemoryRepository()
	items := item.NewService(item.NewMemoryRepository(), users, repo)

	e := &env{svc: NewService(repo, users, items), items: items}
	for _, u := range []struct {
		id   *int64
		name string
	}{{&e.alice, "alice"}, {&e.bob, "bob"}, {&e.carol, "carol"}} {
		created, err := users.Create(ctx, user.CreateRequest{Name: u.name, Email: u.name + "@example.com"})
		require.NoError(t, err)
		*u.id = created.ID
	}
	return e
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	t.Run("Success", func(t *testing.T) {
		req, err := e.svc.Create(ctx, e.alice, "  Need a ladder  ")
		require.NoError(t, err)
		assert.Equal(t, "Need a ladder", req.Description)
		assert.Equal(t, e.alice, req.RequesterID)
	})

	t.Run("Blank Description", func(t *testing.T) {
		_, err := e.svc.Create(ctx, e.alice, " ")
		assert.ErrorIs(t, err, ErrEmptyDescription)
	})

	t.Run("Unknown Requester", func(t *testing.T) {
		_, err := e.svc.Create(ctx, 999, "Need a ladder")
		assert.ErrorIs(t, err, user.ErrNotFound)
	})
}

func TestListings(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	first, err := e.svc.Create(ctx, e.alice, "Need a ladder")
	require.NoError(t, err)
	second, err := e.svc.Create(ctx, e.alice, "Need a saw")
	require.NoError(t, err)
	bobs, err := e.svc.Create(ctx, e.bob, "Need a tent")
	require.NoError(t, err)

	available := true
	answer, err := e.items.Create(ctx, e.carol, item.CreateRequest{
		Name: "Ladder", Description: "Aluminium ladder", Available: &available, RequestID: &first.ID,
	})
	require.NoError(t, err)

	t.Run("Own Newest First With Items", func(t *testing.T) {
		own, err := e.svc.ListOwn(ctx, e.alice)
		require.NoError(t, err)
		require.Len(t, own, 2)
		assert.Equal(t, second.ID, own[0].ID)
		assert.Empty(t, own[0].Items)
		assert.Equal(t, first.ID, own[1].ID)
		require.Len(t, own[1].Items, 1)
		assert.Equal(t, answer.ID, own[1].Items[0].ID)
	})

	t.Run("Others Exclude Caller", func(t *testing.T) {
		others, err := e.svc.ListOthers(ctx, e.alice, request.Page{})
		require.NoError(t, err)
		require.Len(t, others, 1)
		assert.Equal(t, bobs.ID, others[0].ID)

		others, err = e.svc.ListOthers(ctx, e.carol, request.NewPage(1, 1))
		require.NoError(t, err)
		require.Len(t, others, 1)
		assert.Equal(t, second.ID, others[0].ID)
	})

	t.Run("Others Invalid Page", func(t *testing.T) {
		_, err := e.svc.ListOthers(ctx, e.carol, request.NewPage(0, 0))
		assert.ErrorIs(t, err, request.ErrInvalidPage)
	})

	t.Run("Get By Anyone", func(t *testing.T) {
		got, err := e.svc.Get(ctx, e.bob, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "Need a ladder", got.Description)
		assert.Len(t, got.Items, 1)

		_, err = e.svc.Get(ctx, e.bob, 999)
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = e.svc.Get(ctx, 999, first.ID)
		assert.ErrorIs(t, err, user.ErrNotFound)
	})

	t.Run("Item For Unknown Request", func(t *testing.T) {
		missing := int64(999)
		_, err := e.items.Create(ctx, e.carol, item.CreateRequest{
			Name: "Saw", Description: "Hand saw", Available: &available, RequestID: &missing,
		})
		assert.ErrorIs(t, err, item.ErrRequestNotFound)
	})
}
