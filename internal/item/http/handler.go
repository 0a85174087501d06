package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/shareit-backend/internal/auth"
	"github.com/nekogravitycat/shareit-backend/internal/booking"
	"github.com/nekogravitycat/shareit-backend/internal/comment"
	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/response"
)

type Handler struct {
	service        item.Service
	bookingService booking.Service
	commentService comment.Service
}

func NewHandler(service item.Service, bookingService booking.Service, commentService comment.Service) *Handler {
	return &Handler{
		service:        service,
		bookingService: bookingService,
		commentService: commentService,
	}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	it, err := h.service.Create(c.Request.Context(), auth.GetUserID(c), item.CreateRequest{
		Name:        body.Name,
		Description: body.Description,
		Available:   body.Available,
		RequestID:   body.RequestID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewItemResponse(it))
}

// Update patches an item. Only the owner may change it.
func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var body UpdateItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	it, err := h.service.Update(c.Request.Context(), auth.GetUserID(c), uri.ID, item.UpdateRequest{
		Name:        body.Name,
		Description: body.Description,
		Available:   body.Available,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewItemResponse(it))
}

// Get returns the item with its comments. Last and next bookings are
// included only when the caller owns the item.
func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	ctx := c.Request.Context()
	it, err := h.service.GetByID(ctx, uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	var last, next *booking.Booking
	if it.OwnerID == auth.GetUserID(c) {
		last, next, err = h.bookingService.LastAndNext(ctx, it.ID)
		if err != nil {
			response.Error(c, err)
			return
		}
	}

	comments, err := h.commentService.ListByItem(ctx, it.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewItemDetailResponse(it, last, next, comments))
}

// List returns the caller's items in id order, each in its detailed form.
func (h *Handler) List(c *gin.Context) {
	var page request.Page
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, "invalid pagination", err)
		return
	}

	ctx := c.Request.Context()
	items, err := h.service.ListByOwner(ctx, auth.GetUserID(c), page)
	if err != nil {
		response.Error(c, err)
		return
	}

	ids := make([]int64, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	comments, err := h.commentService.ListByItems(ctx, ids)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]ItemDetailResponse, len(items))
	for i, it := range items {
		last, next, err := h.bookingService.LastAndNext(ctx, it.ID)
		if err != nil {
			response.Error(c, err)
			return
		}
		out[i] = NewItemDetailResponse(it, last, next, comments[it.ID])
	}
	response.List(c, out)
}

// Search finds available items by text in the name or description.
func (h *Handler) Search(c *gin.Context) {
	var page request.Page
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, "invalid pagination", err)
		return
	}

	items, err := h.service.Search(c.Request.Context(), c.Query("text"), page)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]ItemResponse, len(items))
	for i, it := range items {
		out[i] = NewItemResponse(it)
	}
	response.List(c, out)
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), auth.GetUserID(c), uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
