package comment

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

var (
	ErrEmptyText    = apperror.New(http.StatusBadRequest, "text cannot be empty")
	ErrNotCompleted = apperror.New(http.StatusBadRequest, "user has not finished a booking of this item")
)

// Comment is feedback left on an item by a user who has finished booking it.
type Comment struct {
	ID         int64
	Text       string
	ItemID     int64
	AuthorID   int64
	AuthorName string
	CreatedAt  time.Time
}
