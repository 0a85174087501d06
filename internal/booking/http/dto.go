package http

import (
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/booking"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
)

// CreateBookingRequest is the body of POST /bookings. Dates are checked by the service.
type CreateBookingRequest struct {
	ItemID int64              `json:"itemId" binding:"required,gt=0"`
	Start  *request.Timestamp `json:"start"`
	End    *request.Timestamp `json:"end"`
}

// DecideRequest carries the owner's verdict from the query string.
type DecideRequest struct {
	Approved *bool `form:"approved" binding:"required"`
}

type ItemTag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BookerTag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BookingResponse struct {
	ID     int64     `json:"id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Status string    `json:"status"`
	Item   ItemTag   `json:"item"`
	Booker BookerTag `json:"booker"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: string(b.Status),
		Item: ItemTag{
			ID:   b.ItemID,
			Name: b.ItemName,
		},
		Booker: BookerTag{
			ID:   b.BookerID,
			Name: b.BookerName,
		},
	}
}

func newBookingResponses(bookings []*booking.Booking) []BookingResponse {
	out := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		out[i] = NewBookingResponse(b)
	}
	return out
}
