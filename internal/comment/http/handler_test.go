package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/shareit-backend/internal/auth"
	"github.com/nekogravitycat/shareit-backend/internal/comment"
	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/user"
)

type finishedFor int64

func (f finishedFor) HasCompleted(_ context.Context, bookerID, _ int64) (bool, error) {
	return bookerID == int64(f), nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	users := user.NewService(user.NewMemoryRepository())
	items := item.NewService(item.NewMemoryRepository(), users, nil)

	owner, err := users.Create(ctx, user.CreateRequest{Name: "Owner", Email: "owner@example.com"})
	require.NoError(t, err)
	_, err = users.Create(ctx, user.CreateRequest{Name: "Author", Email: "author@example.com"})
	require.NoError(t, err)

	available := true
	_, err = items.Create(ctx, owner.ID, item.CreateRequest{Name: "Ladder", Description: "Tall ladder", Available: &available})
	require.NoError(t, err)

	svc := comment.NewService(comment.NewMemoryRepository(), users, items, finishedFor(2))

	r := gin.New()
	RegisterRoutes(&r.RouterGroup, NewHandler(svc), auth.UserRequired())
	return r
}

func post(r *gin.Engine, path, userID string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(body)
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(auth.UserIDHeader, userID)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateComment(t *testing.T) {
	r := newTestRouter(t)

	t.Run("Success", func(t *testing.T) {
		w := post(r, "/items/1/comment", "2", CreateCommentRequest{Text: "Solid ladder"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp CommentResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Solid ladder", resp.Text)
		assert.Equal(t, "Author", resp.AuthorName)
	})

	t.Run("No Finished Booking", func(t *testing.T) {
		w := post(r, "/items/1/comment", "1", CreateCommentRequest{Text: "Mine"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "has not finished a booking")
	})

	t.Run("Empty Text", func(t *testing.T) {
		w := post(r, "/items/1/comment", "2", CreateCommentRequest{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Unknown Item", func(t *testing.T) {
		w := post(r, "/items/9/comment", "2", CreateCommentRequest{Text: "Hello"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
