package item

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "item not found")
	ErrNotOwner          = apperror.New(http.StatusNotFound, "item not found among the caller's items")
	ErrEmptyName         = apperror.New(http.StatusBadRequest, "name cannot be empty")
	ErrEmptyDescription  = apperror.New(http.StatusBadRequest, "description cannot be empty")
	ErrAvailableRequired = apperror.New(http.StatusBadRequest, "available must be set")
	ErrRequestNotFound   = apperror.New(http.StatusNotFound, "item request not found")
)

// Item is a thing a user lends out. Only available items can be booked.
type Item struct {
	ID          int64
	Name        string
	Description string
	Available   bool
	OwnerID     int64
	RequestID   *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Filter defines parameters for listing items. Results are ordered by id.
type Filter struct {
	OwnerID    int64
	Text       string // case-insensitive match on name or description
	OnlyAvail  bool
	RequestIDs []int64
	Page       request.Page
}
