package itemrequest

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "item request not found")
	ErrEmptyDescription = apperror.New(http.StatusBadRequest, "description cannot be empty")
)

// ItemRequest is a user's public ask for an item nobody has listed yet.
type ItemRequest struct {
	ID          int64
	Description string
	RequesterID int64
	CreatedAt   time.Time
}

// WithItems is a request together with the items offered in response to it.
type WithItems struct {
	*ItemRequest
	Items []*item.Item
}

// Filter selects requests, newest first.
type Filter struct {
	RequesterID        int64
	ExcludeRequesterID int64
	Page               request.Page
}
