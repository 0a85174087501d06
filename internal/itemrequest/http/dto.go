package http

import (
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/itemrequest"
)

type CreateItemRequestRequest struct {
	Description string `json:"description" binding:"required,max=1024"`
}

// AnswerResponse is an item offered in response to a request.
type AnswerResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   *int64 `json:"requestId"`
	OwnerID     int64  `json:"ownerId"`
}

type ItemRequestResponse struct {
	ID          int64            `json:"id"`
	Description string           `json:"description"`
	RequesterID int64            `json:"requesterId"`
	Created     time.Time        `json:"created"`
	Items       []AnswerResponse `json:"items"`
}

func NewItemRequestResponse(req *itemrequest.ItemRequest, items []*item.Item) ItemRequestResponse {
	answers := make([]AnswerResponse, len(items))
	for i, it := range items {
		answers[i] = AnswerResponse{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			Available:   it.Available,
			RequestID:   it.RequestID,
			OwnerID:     it.OwnerID,
		}
	}
	return ItemRequestResponse{
		ID:          req.ID,
		Description: req.Description,
		RequesterID: req.RequesterID,
		Created:     req.CreatedAt,
		Items:       answers,
	}
}

func newItemRequestResponses(reqs []*itemrequest.WithItems) []ItemRequestResponse {
	out := make([]ItemRequestResponse, len(reqs))
	for i, req := range reqs {
		out[i] = NewItemRequestResponse(req.ItemRequest, req.Items)
	}
	return out
}
