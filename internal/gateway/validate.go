package gateway

import (
	"bytes"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/nekogravitycat/shareit-backend/internal/booking"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/response"
)

const (
	defaultFrom = 0
	defaultSize = 10
)

// Paging fills in from=0 and size=10 when absent and rejects negative
// offsets or non-positive sizes. The normalized query is forwarded.
func Paging() gin.HandlerFunc {
	return func(c *gin.Context) {
		q := c.Request.URL.Query()

		from, ok := queryInt(q.Get("from"), defaultFrom)
		if !ok {
			abortBadRequest(c, "from must be an integer")
			return
		}
		size, ok := queryInt(q.Get("size"), defaultSize)
		if !ok {
			abortBadRequest(c, "size must be an integer")
			return
		}
		if err := request.NewPage(from, size).Validate(); err != nil {
			c.Abort()
			response.Error(c, err)
			return
		}

		q.Set("from", strconv.Itoa(from))
		q.Set("size", strconv.Itoa(size))
		c.Request.URL.RawQuery = q.Encode()
		c.Next()
	}
}

func queryInt(raw string, def int) (int, bool) {
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	return v, err == nil
}

// State rejects unknown booking state keywords before they reach the backend.
func State() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := booking.ParseState(c.Query("state")); err != nil {
			c.Abort()
			response.Error(c, err)
			return
		}
		c.Next()
	}
}

// Approved requires the approved query parameter to be a boolean.
func Approved() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := strconv.ParseBool(c.Query("approved")); err != nil {
			abortBadRequest(c, "approved must be true or false")
			return
		}
		c.Next()
	}
}

// JSONBody validates the request body against T's binding tags and the given
// checks. The body is restored so it can be forwarded unchanged.
func JSONBody[T any](checks ...func(*T) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			abortBadRequest(c, "failed to read request body")
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		var v T
		if err := binding.JSON.BindBody(body, &v); err != nil {
			c.Abort()
			response.BadRequest(c, "invalid request body", err)
			return
		}
		for _, check := range checks {
			if err := check(&v); err != nil {
				c.Abort()
				response.Error(c, err)
				return
			}
		}
		c.Next()
	}
}

func abortBadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": message})
}
