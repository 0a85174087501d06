package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// List writes items as a JSON array. A nil slice is written as [] rather than null.
func List[T any](c *gin.Context, items []T) {
	if items == nil {
		items = make([]T, 0)
	}
	c.JSON(http.StatusOK, items)
}
