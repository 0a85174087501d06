package itemrequest

import (
	"context"
	"strings"

	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
	"github.com/nekogravitycat/shareit-backend/internal/user"
)

// ItemLister returns the items created in answer to the given requests.
type ItemLister interface {
	ListByRequests(ctx context.Context, requestIDs []int64) ([]*item.Item, error)
}

type Service interface {
	Create(ctx context.Context, requesterID int64, description string) (*ItemRequest, error)
	// ListOwn returns the caller's requests, newest first.
	ListOwn(ctx context.Context, requesterID int64) ([]*WithItems, error)
	// ListOthers returns everyone else's requests, newest first.
	ListOthers(ctx context.Context, userID int64, page request.Page) ([]*WithItems, error)
	Get(ctx context.Context, userID, id int64) (*WithItems, error)
}

type service struct {
	repo        Repository
	userService user.Service
	items       ItemLister
}

func NewService(repo Repository, userService user.Service, items ItemLister) Service {
	return &service{
		repo:        repo,
		userService: userService,
		items:       items,
	}
}

func (s *service) Create(ctx context.Context, requesterID int64, description string) (*ItemRequest, error) {
	if _, err := s.userService.GetByID(ctx, requesterID); err != nil {
		return nil, err
	}

	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrEmptyDescription
	}

	req := &ItemRequest{
		Description: description,
		RequesterID: requesterID,
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *service) ListOwn(ctx context.Context, requesterID int64) ([]*WithItems, error) {
	if _, err := s.userService.GetByID(ctx, requesterID); err != nil {
		return nil, err
	}

	reqs, err := s.repo.List(ctx, Filter{RequesterID: requesterID})
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, reqs)
}

func (s *service) ListOthers(ctx context.Context, userID int64, page request.Page) ([]*WithItems, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.userService.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	reqs, err := s.repo.List(ctx, Filter{ExcludeRequesterID: userID, Page: page})
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, reqs)
}

func (s *service) Get(ctx context.Context, userID, id int64) (*WithItems, error) {
	if _, err := s.userService.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	out, err := s.withItems(ctx, []*ItemRequest{req})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// withItems attaches answering items with a single lookup.
func (s *service) withItems(ctx context.Context, reqs []*ItemRequest) ([]*WithItems, error) {
	ids := make([]int64, len(reqs))
	for i, req := range reqs {
		ids[i] = req.ID
	}

	items, err := s.items.ListByRequests(ctx, ids)
	if err != nil {
		return nil, err
	}

	byRequest := make(map[int64][]*item.Item, len(reqs))
	for _, it := range items {
		if it.RequestID != nil {
			byRequest[*it.RequestID] = append(byRequest[*it.RequestID], it)
		}
	}

	out := make([]*WithItems, len(reqs))
	for i, req := range reqs {
		out[i] = &WithItems{ItemRequest: req, Items: byRequest[req.ID]}
	}
	return out, nil
}
