package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/nekogravitycat/shareit-backend/internal/clock"
	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
	"github.com/nekogravitycat/shareit-backend/internal/user"
)

type CreateRequest struct {
	ItemID int64
	Start  *time.Time
	End    *time.Time
}

// UserDirectory looks up users by id.
type UserDirectory interface {
	GetByID(ctx context.Context, id int64) (*user.User, error)
}

// ItemDirectory looks up items by id.
type ItemDirectory interface {
	GetByID(ctx context.Context, id int64) (*item.Item, error)
}

// Options holds optional collaborators and policy switches.
type Options struct {
	AllowSelfBooking bool
	Publisher        Publisher
	Observer         Observer
	Logger           *zap.Logger
}

type Service interface {
	Create(ctx context.Context, bookerID int64, req CreateRequest) (*Booking, error)
	Get(ctx context.Context, userID, bookingID int64) (*Booking, error)
	Decide(ctx context.Context, ownerID, bookingID int64, approved bool) (*Booking, error)
	ListByBooker(ctx context.Context, bookerID int64, state State, page request.Page) ([]*Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, state State, page request.Page) ([]*Booking, error)

	// LastAndNext returns the latest started approved booking and the earliest
	// upcoming waiting or approved booking of an item. Either may be nil.
	LastAndNext(ctx context.Context, itemID int64) (last, next *Booking, err error)

	// HasCompleted reports whether the user has an approved booking of the item that already ended.
	HasCompleted(ctx context.Context, bookerID, itemID int64) (bool, error)
}

type service struct {
	repo             Repository
	users            UserDirectory
	items            ItemDirectory
	clock            clock.Clock
	allowSelfBooking bool
	publisher        Publisher
	observer         Observer
	logger           *zap.Logger
}

func NewService(repo Repository, users UserDirectory, items ItemDirectory, clk clock.Clock, opts Options) Service {
	s := &service{
		repo:             repo,
		users:            users,
		items:            items,
		clock:            clk,
		allowSelfBooking: opts.AllowSelfBooking,
		publisher:        opts.Publisher,
		observer:         opts.Observer,
		logger:           opts.Logger,
	}
	if s.publisher == nil {
		s.publisher = nopPublisher{}
	}
	if s.observer == nil {
		s.observer = nopObserver{}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// Create validates a booking request and stores it as WAITING.
// Checks run in a fixed order and the first failure is returned.
func (s *service) Create(ctx context.Context, bookerID int64, req CreateRequest) (*Booking, error) {
	// 1. Item exists and can be booked
	it, err := s.items.GetByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if !it.Available {
		return nil, ErrItemUnavailable
	}
	if !s.allowSelfBooking && it.OwnerID == bookerID {
		return nil, ErrInvalidBooker
	}

	// 2. Booker exists
	booker, err := s.users.GetByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}

	// 3. Dates
	if err := ValidateDates(req.Start, req.End, s.clock.Now()); err != nil {
		return nil, err
	}

	b := &Booking{
		Start:      req.Start.UTC(),
		End:        req.End.UTC(),
		ItemID:     it.ID,
		ItemName:   it.Name,
		OwnerID:    it.OwnerID,
		BookerID:   booker.ID,
		BookerName: booker.Name,
		Status:     StatusWaiting,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.logger.Info("booking created",
		zap.Int64("booking_id", b.ID),
		zap.Int64("item_id", b.ItemID),
		zap.Int64("booker_id", b.BookerID),
	)
	s.observer.ObserveStatus(b.Status)
	s.publishEvent(ctx, EventCreated, b)

	return b, nil
}

// ValidateDates applies the date rules of a new booking relative to now.
func ValidateDates(start, end *time.Time, now time.Time) error {
	switch {
	case start == nil:
		return ErrStartRequired
	case end == nil:
		return ErrEndRequired
	case start.Before(now):
		return ErrStartInPast
	case end.Before(now):
		return ErrEndInPast
	case start.Equal(*end):
		return ErrStartEqualsEnd
	case start.After(*end):
		return ErrStartAfterEnd
	}
	return nil
}

// Get returns a booking to its booker or to the owner of the booked item.
func (s *service) Get(ctx context.Context, userID, bookingID int64) (*Booking, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.BookerID != userID && b.OwnerID != userID {
		return nil, ErrAccessDenied
	}
	return b, nil
}

// Decide approves or rejects a WAITING booking on behalf of the item owner.
func (s *service) Decide(ctx context.Context, ownerID, bookingID int64, approved bool) (*Booking, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	target := Decision(approved)
	if !b.Status.CanTransitionTo(target) {
		return nil, ErrAlreadyDecided
	}
	if b.OwnerID != ownerID {
		return nil, ErrNotItemOwner
	}

	// A concurrent decision between the read above and this update loses here.
	updated, err := s.repo.UpdateStatusIfWaiting(ctx, bookingID, target)
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking decided",
		zap.Int64("booking_id", updated.ID),
		zap.String("status", string(updated.Status)),
		zap.Int64("owner_id", ownerID),
	)
	s.observer.ObserveStatus(updated.Status)
	if approved {
		s.publishEvent(ctx, EventApproved, updated)
	} else {
		s.publishEvent(ctx, EventRejected, updated)
	}

	return updated, nil
}

func (s *service) ListByBooker(ctx context.Context, bookerID int64, state State, page request.Page) ([]*Booking, error) {
	return s.list(ctx, SubjectBooker, bookerID, state, page)
}

func (s *service) ListByOwner(ctx context.Context, ownerID int64, state State, page request.Page) ([]*Booking, error) {
	return s.list(ctx, SubjectOwner, ownerID, state, page)
}

func (s *service) list(ctx context.Context, subject Subject, subjectID int64, state State, page request.Page) ([]*Booking, error) {
	criteria, err := Classify(subject, subjectID, state, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := page.Validate(); err != nil {
		return nil, ErrInvalidPagination
	}
	criteria.Page = page

	if _, err := s.users.GetByID(ctx, subjectID); err != nil {
		return nil, err
	}

	return s.repo.Find(ctx, criteria)
}

func (s *service) LastAndNext(ctx context.Context, itemID int64) (*Booking, *Booking, error) {
	now := s.clock.Now()
	first := request.NewPage(0, 1)

	last, err := s.first(ctx, Criteria{
		ItemID:      itemID,
		Statuses:    []Status{StatusApproved},
		StartBefore: &now,
		Order:       OrderStartDesc,
		Page:        first,
	})
	if err != nil {
		return nil, nil, err
	}

	next, err := s.first(ctx, Criteria{
		ItemID:     itemID,
		Statuses:   []Status{StatusWaiting, StatusApproved},
		StartAfter: &now,
		Order:      OrderStartAsc,
		Page:       first,
	})
	if err != nil {
		return nil, nil, err
	}

	return last, next, nil
}

func (s *service) HasCompleted(ctx context.Context, bookerID, itemID int64) (bool, error) {
	now := s.clock.Now()
	b, err := s.first(ctx, Criteria{
		Subject:   SubjectBooker,
		SubjectID: bookerID,
		ItemID:    itemID,
		Statuses:  []Status{StatusApproved},
		EndBefore: &now,
		Order:     OrderIDAsc,
		Page:      request.NewPage(0, 1),
	})
	if err != nil {
		return false, err
	}
	return b != nil, nil
}

func (s *service) first(ctx context.Context, c Criteria) (*Booking, error) {
	bookings, err := s.repo.Find(ctx, c)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, nil
	}
	return bookings[0], nil
}

func (s *service) publishEvent(ctx context.Context, eventType string, b *Booking) {
	if err := s.publisher.Publish(ctx, newEvent(eventType, b, s.clock.Now())); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("event_type", eventType),
			zap.Int64("booking_id", b.ID),
			zap.Error(err),
		)
	}
}
