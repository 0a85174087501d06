package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/shareit-backend/internal/auth"
	"github.com/nekogravitycat/shareit-backend/internal/booking"
	"github.com/nekogravitycat/shareit-backend/internal/clock"
	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/user"
)

var now = time.Date(2030, 6, 15, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	router   *gin.Engine
	ownerID  int64
	bookerID int64
	otherID  int64
	itemID   int64
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	users := user.NewService(user.NewMemoryRepository())
	items := item.NewService(item.NewMemoryRepository(), users, nil)
	svc := booking.NewService(booking.NewMemoryRepository(nil), users, items, clock.NewFixed(now), booking.Options{})

	owner, err := users.Create(ctx, user.CreateRequest{Name: "Owner", Email: "owner@example.com"})
	require.NoError(t, err)
	booker, err := users.Create(ctx, user.CreateRequest{Name: "Booker", Email: "booker@example.com"})
	require.NoError(t, err)
	other, err := users.Create(ctx, user.CreateRequest{Name: "Other", Email: "other@example.com"})
	require.NoError(t, err)

	available := true
	it, err := items.Create(ctx, owner.ID, item.CreateRequest{Name: "Tent", Description: "Two person tent", Available: &available})
	require.NoError(t, err)

	r := gin.New()
	RegisterRoutes(&r.RouterGroup, NewHandler(svc), auth.UserRequired())

	return &testEnv{router: r, ownerID: owner.ID, bookerID: booker.ID, otherID: other.ID, itemID: it.ID}
}

func (e *testEnv) do(method, path string, userID int64, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set(auth.UserIDHeader, fmt.Sprint(userID))
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) create(t *testing.T, start, end string) BookingResponse {
	t.Helper()
	w := e.do(http.MethodPost, "/bookings", e.bookerID, map[string]any{"itemId": e.itemID, "start": start, "end": end})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestBookingRoutes(t *testing.T) {
	e := newTestEnv(t)

	var created BookingResponse

	t.Run("Create", func(t *testing.T) {
		created = e.create(t, "2030-06-16T10:00:00", "2030-06-17T10:00:00Z")
		assert.Equal(t, "WAITING", created.Status)
		assert.Equal(t, e.itemID, created.Item.ID)
		assert.Equal(t, "Tent", created.Item.Name)
		assert.Equal(t, e.bookerID, created.Booker.ID)
		assert.Equal(t, time.Date(2030, 6, 16, 10, 0, 0, 0, time.UTC), created.Start)
	})

	t.Run("Missing Header", func(t *testing.T) {
		w := e.do(http.MethodGet, "/bookings", 0, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Create Rejects Bad Dates", func(t *testing.T) {
		w := e.do(http.MethodPost, "/bookings", e.bookerID, map[string]any{"itemId": e.itemID, "start": "2030-06-17T10:00:00", "end": "2030-06-17T10:00:00"})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = e.do(http.MethodPost, "/bookings", e.bookerID, map[string]any{"itemId": e.itemID, "end": "2030-06-17T10:00:00"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "start is required")
	})

	t.Run("Create Unknown Item", func(t *testing.T) {
		w := e.do(http.MethodPost, "/bookings", e.bookerID, map[string]any{"itemId": 999, "start": "2030-06-16T10:00:00", "end": "2030-06-17T10:00:00"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Owner Cannot Book Own Item", func(t *testing.T) {
		w := e.do(http.MethodPost, "/bookings", e.ownerID, map[string]any{"itemId": e.itemID, "start": "2030-06-16T10:00:00", "end": "2030-06-17T10:00:00"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Get Visibility", func(t *testing.T) {
		path := fmt.Sprintf("/bookings/%d", created.ID)
		assert.Equal(t, http.StatusOK, e.do(http.MethodGet, path, e.bookerID, nil).Code)
		assert.Equal(t, http.StatusOK, e.do(http.MethodGet, path, e.ownerID, nil).Code)
		assert.Equal(t, http.StatusNotFound, e.do(http.MethodGet, path, e.otherID, nil).Code)
	})

	t.Run("Decide Requires Approved", func(t *testing.T) {
		path := fmt.Sprintf("/bookings/%d", created.ID)
		assert.Equal(t, http.StatusBadRequest, e.do(http.MethodPatch, path, e.ownerID, nil).Code)
		assert.Equal(t, http.StatusBadRequest, e.do(http.MethodPatch, path+"?approved=maybe", e.ownerID, nil).Code)
	})

	t.Run("Non Owner Cannot Decide", func(t *testing.T) {
		path := fmt.Sprintf("/bookings/%d?approved=true", created.ID)
		assert.Equal(t, http.StatusNotFound, e.do(http.MethodPatch, path, e.bookerID, nil).Code)
	})

	t.Run("Owner Approves Once", func(t *testing.T) {
		path := fmt.Sprintf("/bookings/%d?approved=true", created.ID)
		w := e.do(http.MethodPatch, path, e.ownerID, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "APPROVED", resp.Status)

		w = e.do(http.MethodPatch, path, e.ownerID, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBookingLists(t *testing.T) {
	e := newTestEnv(t)

	first := e.create(t, "2030-06-16T10:00:00", "2030-06-16T12:00:00")
	second := e.create(t, "2030-06-18T10:00:00", "2030-06-18T12:00:00")
	third := e.create(t, "2030-06-20T10:00:00", "2030-06-20T12:00:00")

	decode := func(t *testing.T, w *httptest.ResponseRecorder) []int64 {
		t.Helper()
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var resp []BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		ids := make([]int64, len(resp))
		for i, b := range resp {
			ids[i] = b.ID
		}
		return ids
	}

	t.Run("Default State Is All", func(t *testing.T) {
		ids := decode(t, e.do(http.MethodGet, "/bookings", e.bookerID, nil))
		assert.Equal(t, []int64{third.ID, second.ID, first.ID}, ids)
	})

	t.Run("Owner View", func(t *testing.T) {
		ids := decode(t, e.do(http.MethodGet, "/bookings/owner?state=waiting", e.ownerID, nil))
		assert.Equal(t, []int64{first.ID, second.ID, third.ID}, ids)
	})

	t.Run("Paged", func(t *testing.T) {
		ids := decode(t, e.do(http.MethodGet, "/bookings?state=ALL&from=1&size=1", e.bookerID, nil))
		assert.Equal(t, []int64{second.ID}, ids)
	})

	t.Run("Empty List Is Array", func(t *testing.T) {
		w := e.do(http.MethodGet, "/bookings?state=REJECTED", e.bookerID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})

	t.Run("Unknown State", func(t *testing.T) {
		w := e.do(http.MethodGet, "/bookings?state=UNSUPPORTED_STATUS", 999, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Unknown state: UNSUPPORTED_STATUS"}`, w.Body.String())
	})

	t.Run("Invalid Page", func(t *testing.T) {
		w := e.do(http.MethodGet, "/bookings?from=-1&size=10", e.bookerID, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = e.do(http.MethodGet, "/bookings?from=x&size=10", e.bookerID, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Unknown User", func(t *testing.T) {
		w := e.do(http.MethodGet, "/bookings/owner", 999, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
