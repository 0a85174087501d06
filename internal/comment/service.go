package comment

import (
	"context"
	"strings"

	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/user"
)

// UserDirectory looks up users by id.
type UserDirectory interface {
	GetByID(ctx context.Context, id int64) (*user.User, error)
}

// ItemDirectory looks up items by id.
type ItemDirectory interface {
	GetByID(ctx context.Context, id int64) (*item.Item, error)
}

// BookingHistory answers whether a user has finished a booking of an item.
type BookingHistory interface {
	HasCompleted(ctx context.Context, bookerID, itemID int64) (bool, error)
}

type Service interface {
	Add(ctx context.Context, authorID, itemID int64, text string) (*Comment, error)
	ListByItem(ctx context.Context, itemID int64) ([]*Comment, error)
	// ListByItems groups comments by item id.
	ListByItems(ctx context.Context, itemIDs []int64) (map[int64][]*Comment, error)
}

type service struct {
	repo     Repository
	users    UserDirectory
	items    ItemDirectory
	bookings BookingHistory
}

func NewService(repo Repository, users UserDirectory, items ItemDirectory, bookings BookingHistory) Service {
	return &service{
		repo:     repo,
		users:    users,
		items:    items,
		bookings: bookings,
	}
}

// Add stores a comment. The author must have an approved booking of the item that already ended.
func (s *service) Add(ctx context.Context, authorID, itemID int64, text string) (*Comment, error) {
	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.items.GetByID(ctx, itemID); err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	done, err := s.bookings.HasCompleted(ctx, authorID, itemID)
	if err != nil {
		return nil, err
	}
	if !done {
		return nil, ErrNotCompleted
	}

	c := &Comment{
		Text:       text,
		ItemID:     itemID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) ListByItem(ctx context.Context, itemID int64) ([]*Comment, error) {
	return s.repo.ListByItems(ctx, []int64{itemID})
}

func (s *service) ListByItems(ctx context.Context, itemIDs []int64) (map[int64][]*Comment, error) {
	out := make(map[int64][]*Comment, len(itemIDs))
	if len(itemIDs) == 0 {
		return out, nil
	}

	comments, err := s.repo.ListByItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	for _, c := range comments {
		out[c.ItemID] = append(out[c.ItemID], c)
	}
	return out, nil
}
