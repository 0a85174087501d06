package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/shareit-backend/internal/api"
	"github.com/nekogravitycat/shareit-backend/internal/auth"
	"github.com/nekogravitycat/shareit-backend/internal/booking"
	"github.com/nekogravitycat/shareit-backend/internal/clock"
	"github.com/nekogravitycat/shareit-backend/internal/config"
)

type capturePublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *capturePublisher) Publish(_ context.Context, ev booking.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev.Type)
	return nil
}

type client struct {
	t      *testing.T
	router *gin.Engine
}

func (c client) do(method, path string, userID int64, body any) *httptest.ResponseRecorder {
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
	c.router.ServeHTTP(w, req)
	return w
}

func (c client) id(w *httptest.ResponseRecorder) int64 {
	c.t.Helper()
	require.Contains(c.t, []int{http.StatusOK, http.StatusCreated}, w.Code, w.Body.String())
	var body struct {
		ID int64 `json:"id"`
	}
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.ID
}

func TestContainerEndToEnd(t *testing.T) {
	gin.SetMode(gin.TestMode)
	publisher := &capturePublisher{}
	container := NewContainer(Config{
		StorageDriver: config.StorageMemory,
		Publisher:     publisher,
		Clock:         clock.NewFixed(time.Date(2030, 6, 15, 12, 0, 0, 0, time.UTC)),
	})
	c := client{t: t, router: container.Router}

	owner := c.id(c.do(http.MethodPost, "/users", 0, map[string]string{"name": "Owner", "email": "owner@example.com"}))
	booker := c.id(c.do(http.MethodPost, "/users", 0, map[string]string{"name": "Booker", "email": "booker@example.com"}))
	third := c.id(c.do(http.MethodPost, "/users", 0, map[string]string{"name": "Third", "email": "third@example.com"}))

	requestID := c.id(c.do(http.MethodPost, "/requests", booker, map[string]string{"description": "Looking for a drill"}))
	itemID := c.id(c.do(http.MethodPost, "/items", owner, map[string]any{
		"name": "Drill", "description": "Cordless drill", "available": true, "requestId": requestID,
	}))

	bookingID := c.id(c.do(http.MethodPost, "/bookings", booker, map[string]any{
		"itemId": itemID, "start": "2030-06-16T12:00:00", "end": "2030-06-17T12:00:00",
	}))

	w := c.do(http.MethodPatch, fmt.Sprintf("/bookings/%d?approved=true", bookingID), owner, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"status":"APPROVED"`)

	path := fmt.Sprintf("/bookings/%d", bookingID)
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, path, booker, nil).Code)
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, path, owner, nil).Code)
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, path, third, nil).Code)

	t.Run("Item Name Change Shows On Booking", func(t *testing.T) {
		w := c.do(http.MethodPatch, fmt.Sprintf("/items/%d", itemID), owner, map[string]string{"name": "Hammer drill"})
		require.Equal(t, http.StatusOK, w.Code)

		w = c.do(http.MethodGet, path, booker, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"name":"Hammer drill"`)
	})

	t.Run("Future Booking Listed", func(t *testing.T) {
		w := c.do(http.MethodGet, "/bookings/owner?state=FUTURE", owner, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var list []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		assert.Len(t, list, 1)
	})

	t.Run("Request Shows Answer", func(t *testing.T) {
		w := c.do(http.MethodGet, "/requests", booker, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"name":"Hammer drill"`)
	})

	t.Run("Comment Requires Finished Booking", func(t *testing.T) {
		w := c.do(http.MethodPost, fmt.Sprintf("/items/%d/comment", itemID), booker, map[string]string{"text": "Great"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Request Id Echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set(api.RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		c.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "abc-123", w.Header().Get(api.RequestIDHeader))
	})

	assert.Equal(t, []string{booking.EventCreated, booking.EventApproved}, publisher.events)
}

func TestContainerMemoryDeletes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	container := NewContainer(Config{
		StorageDriver: config.StorageMemory,
		Clock:         clock.NewFixed(time.Date(2030, 6, 15, 12, 0, 0, 0, time.UTC)),
	})
	c := client{t: t, router: container.Router}

	owner := c.id(c.do(http.MethodPost, "/users", 0, map[string]string{"name": "Owner", "email": "owner@example.com"}))
	booker := c.id(c.do(http.MethodPost, "/users", 0, map[string]string{"name": "Booker", "email": "booker@example.com"}))

	newItem := func(name string) int64 {
		return c.id(c.do(http.MethodPost, "/items", owner, map[string]any{
			"name": name, "description": name + " for rent", "available": true,
		}))
	}
	book := func(itemID int64) int64 {
		return c.id(c.do(http.MethodPost, "/bookings", booker, map[string]any{
			"itemId": itemID, "start": "2030-06-16T12:00:00", "end": "2030-06-17T12:00:00",
		}))
	}
	ownerBookings := func(query string) []map[string]any {
		w := c.do(http.MethodGet, "/bookings/owner"+query, owner, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var list []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		return list
	}

	drill, saw := newItem("Drill"), newItem("Saw")
	drillBooking := book(drill)
	book(saw)

	t.Run("Huge Page Size", func(t *testing.T) {
		assert.Len(t, ownerBookings("?from=1&size=9223372036854775807"), 1)
	})

	t.Run("Item Delete Removes Its Bookings", func(t *testing.T) {
		w := c.do(http.MethodDelete, fmt.Sprintf("/items/%d", drill), owner, nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = c.do(http.MethodGet, fmt.Sprintf("/bookings/%d", drillBooking), booker, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Len(t, ownerBookings(""), 1)
	})

	t.Run("Booker Delete Removes Their Bookings", func(t *testing.T) {
		w := c.do(http.MethodDelete, fmt.Sprintf("/users/%d", booker), 0, nil)
		require.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, ownerBookings(""))
	})
}
