package booking

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

// Error kinds. Concrete errors below wrap one of these so callers can match
// on the kind with errors.Is.
var (
	ErrInvalidDates    = apperror.New(http.StatusBadRequest, "invalid booking dates")
	ErrInvalidArgument = apperror.New(http.StatusBadRequest, "invalid argument")
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "booking not found")
	ErrItemUnavailable   = apperror.New(http.StatusBadRequest, "item is not available for booking")
	ErrInvalidBooker     = apperror.New(http.StatusBadRequest, "owner cannot book their own item")
	ErrAlreadyDecided    = apperror.New(http.StatusBadRequest, "booking has already been decided")
	ErrAccessDenied      = apperror.New(http.StatusNotFound, "booking is not available to this user")
	ErrNotItemOwner      = apperror.Wrap(ErrAccessDenied, http.StatusNotFound, "only the item owner can decide on a booking")
	ErrUnknownState      = apperror.Wrap(ErrInvalidArgument, http.StatusBadRequest, "Unknown state")
	ErrInvalidPagination = apperror.Wrap(ErrInvalidArgument, http.StatusBadRequest, "invalid pagination: from must be >= 0 and size must be > 0")

	ErrStartRequired  = apperror.Wrap(ErrInvalidDates, http.StatusBadRequest, "start is required")
	ErrEndRequired    = apperror.Wrap(ErrInvalidDates, http.StatusBadRequest, "end is required")
	ErrStartInPast    = apperror.Wrap(ErrInvalidDates, http.StatusBadRequest, "start cannot be in the past")
	ErrEndInPast      = apperror.Wrap(ErrInvalidDates, http.StatusBadRequest, "end cannot be in the past")
	ErrStartEqualsEnd = apperror.Wrap(ErrInvalidDates, http.StatusBadRequest, "start and end cannot be equal")
	ErrStartAfterEnd  = apperror.Wrap(ErrInvalidDates, http.StatusBadRequest, "start must be before end")
)

// Booking is a request by a booker to use an item for [Start, End).
// Item and booker fields are a snapshot taken when the booking is loaded.
type Booking struct {
	ID         int64
	Start      time.Time
	End        time.Time
	ItemID     int64
	ItemName   string
	OwnerID    int64
	BookerID   int64
	BookerName string
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
