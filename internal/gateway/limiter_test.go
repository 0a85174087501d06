package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nekogravitycat/shareit-backend/internal/auth"
)

func TestMemoryLimiter(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLimiter(0.001, 2)

	for i := 0; i < 2; i++ {
		ok, err := l.Allow(ctx, "user:1")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, _ := l.Allow(ctx, "user:1")
	assert.False(t, ok, "burst exhausted")

	ok, _ = l.Allow(ctx, "user:2")
	assert.True(t, ok, "buckets are per caller")
}

func TestMemoryLimiterDefaultBurst(t *testing.T) {
	l := NewMemoryLimiter(1, 0)
	assert.Equal(t, 5, l.burst)
}

func TestRedisLimiter(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	ctx := context.Background()
	l := NewRedisLimiter(client, 3, time.Minute)

	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, "user:7")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := l.Allow(ctx, "user:7")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, time.Minute, s.TTL("shareit:rate_limit:user:7"))

	s.FastForward(time.Minute + time.Second)
	ok, err = l.Allow(ctx, "user:7")
	require.NoError(t, err)
	assert.True(t, ok, "window resets after expiry")

	s.Close()
	_, err = l.Allow(ctx, "user:7")
	assert.Error(t, err)
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(l Limiter) *gin.Engine {
		r := gin.New()
		r.Use(RateLimit(l, zap.NewNop()))
		r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
		return r
	}

	call := func(r *gin.Engine, userID string) int {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		if userID != "" {
			req.Header.Set(auth.UserIDHeader, userID)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	t.Run("Per Caller", func(t *testing.T) {
		r := newRouter(NewMemoryLimiter(0.001, 1))
		assert.Equal(t, http.StatusOK, call(r, "1"))
		assert.Equal(t, http.StatusTooManyRequests, call(r, "1"))
		assert.Equal(t, http.StatusOK, call(r, "2"))
		assert.Equal(t, http.StatusOK, call(r, ""))
		assert.Equal(t, http.StatusTooManyRequests, call(r, ""))
	})

	t.Run("Fails Open", func(t *testing.T) {
		r := newRouter(failingLimiter{})
		assert.Equal(t, http.StatusOK, call(r, "1"))
	})
}
