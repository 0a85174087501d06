package booking

import (
	"context"
	"time"
)

const (
	EventCreated  = "booking.created"
	EventApproved = "booking.approved"
	EventRejected = "booking.rejected"
)

// Event describes a booking lifecycle change for downstream consumers.
type Event struct {
	Type       string    `json:"type"`
	BookingID  int64     `json:"bookingId"`
	ItemID     int64     `json:"itemId"`
	OwnerID    int64     `json:"ownerId"`
	BookerID   int64     `json:"bookerId"`
	Status     Status    `json:"status"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher delivers booking events. Delivery is best effort.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Observer is notified of every status a booking enters.
type Observer interface {
	ObserveStatus(status Status)
}

func newEvent(eventType string, b *Booking, at time.Time) Event {
	return Event{
		Type:       eventType,
		BookingID:  b.ID,
		ItemID:     b.ItemID,
		OwnerID:    b.OwnerID,
		BookerID:   b.BookerID,
		Status:     b.Status,
		Start:      b.Start,
		End:        b.End,
		OccurredAt: at,
	}
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, Event) error { return nil }

type nopObserver struct{}

func (nopObserver) ObserveStatus(Status) {}
