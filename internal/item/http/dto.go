package http

import (
	"github.com/nekogravitycat/shareit-backend/internal/booking"
	"github.com/nekogravitycat/shareit-backend/internal/comment"
	commentHttp "github.com/nekogravitycat/shareit-backend/internal/comment/http"
	"github.com/nekogravitycat/shareit-backend/internal/item"
)

type CreateItemRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description" binding:"required,max=1024"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *int64 `json:"requestId" binding:"omitempty,gt=0"`
}

type UpdateItemRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Description *string `json:"description" binding:"omitempty,max=1024"`
	Available   *bool   `json:"available"`
}

type ItemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   *int64 `json:"requestId"`
}

func NewItemResponse(it *item.Item) ItemResponse {
	return ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		RequestID:   it.RequestID,
	}
}

// BookingTag is the short form of a booking shown on an item.
type BookingTag struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

func newBookingTag(b *booking.Booking) *BookingTag {
	if b == nil {
		return nil
	}
	return &BookingTag{ID: b.ID, BookerID: b.BookerID}
}

// ItemDetailResponse is the item as seen on GET; bookings are only filled in for the owner.
type ItemDetailResponse struct {
	ItemResponse
	LastBooking *BookingTag                   `json:"lastBooking"`
	NextBooking *BookingTag                   `json:"nextBooking"`
	Comments    []commentHttp.CommentResponse `json:"comments"`
}

func NewItemDetailResponse(it *item.Item, last, next *booking.Booking, comments []*comment.Comment) ItemDetailResponse {
	return ItemDetailResponse{
		ItemResponse: NewItemResponse(it),
		LastBooking:  newBookingTag(last),
		NextBooking:  newBookingTag(next),
		Comments:     commentHttp.NewCommentResponses(comments),
	}
}
