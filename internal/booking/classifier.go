package booking

import (
	"slices"
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
)

// Subject selects which side of the booking the subject id is matched on.
type Subject int

const (
	SubjectAny Subject = iota
	SubjectBooker
	SubjectOwner
)

// Order of a query result.
type Order int

const (
	OrderStartDesc Order = iota
	OrderIDAsc
	OrderStartAsc
)

// Criteria is a storage-independent booking query. Time bounds are strict.
type Criteria struct {
	Subject     Subject
	SubjectID   int64
	ItemID      int64
	Statuses    []Status
	StartBefore *time.Time
	StartAfter  *time.Time
	EndBefore   *time.Time
	EndAfter    *time.Time
	Order       Order
	Page        request.Page
}

// Classify translates a state keyword into criteria evaluated against now.
//
//	ALL       no filter                                       start DESC
//	CURRENT   APPROVED|REJECTED and start < now < end         id ASC
//	PAST      APPROVED and end < now                          start DESC
//	FUTURE    WAITING|APPROVED and start > now                start DESC
//	WAITING   WAITING                                         id ASC
//	REJECTED  REJECTED                                        id ASC
func Classify(subject Subject, subjectID int64, state State, now time.Time) (Criteria, error) {
	c := Criteria{Subject: subject, SubjectID: subjectID}

	switch state {
	case StateAll:
		c.Order = OrderStartDesc
	case StateCurrent:
		c.Statuses = []Status{StatusApproved, StatusRejected}
		c.StartBefore = &now
		c.EndAfter = &now
		c.Order = OrderIDAsc
	case StatePast:
		c.Statuses = []Status{StatusApproved}
		c.EndBefore = &now
		c.Order = OrderStartDesc
	case StateFuture:
		c.Statuses = []Status{StatusWaiting, StatusApproved}
		c.StartAfter = &now
		c.Order = OrderStartDesc
	case StateWaiting:
		c.Statuses = []Status{StatusWaiting}
		c.Order = OrderIDAsc
	case StateRejected:
		c.Statuses = []Status{StatusRejected}
		c.Order = OrderIDAsc
	default:
		return Criteria{}, ErrUnknownState
	}

	return c, nil
}

// Matches evaluates the criteria against a single booking, ignoring order and paging.
func (c Criteria) Matches(b *Booking) bool {
	switch c.Subject {
	case SubjectBooker:
		if b.BookerID != c.SubjectID {
			return false
		}
	case SubjectOwner:
		if b.OwnerID != c.SubjectID {
			return false
		}
	}
	if c.ItemID != 0 && b.ItemID != c.ItemID {
		return false
	}
	if len(c.Statuses) > 0 && !slices.Contains(c.Statuses, b.Status) {
		return false
	}
	if c.StartBefore != nil && !b.Start.Before(*c.StartBefore) {
		return false
	}
	if c.StartAfter != nil && !b.Start.After(*c.StartAfter) {
		return false
	}
	if c.EndBefore != nil && !b.End.Before(*c.EndBefore) {
		return false
	}
	if c.EndAfter != nil && !b.End.After(*c.EndAfter) {
		return false
	}
	return true
}

// Less reports whether a sorts before b under the criteria order.
// Equal start times fall back to id so results are deterministic.
func (c Criteria) Less(a, b *Booking) bool {
	switch c.Order {
	case OrderStartDesc:
		if !a.Start.Equal(b.Start) {
			return a.Start.After(b.Start)
		}
	case OrderStartAsc:
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
	}
	return a.ID < b.ID
}

// statusStrings converts statuses for SQL parameters.
func statusStrings(statuses []Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
