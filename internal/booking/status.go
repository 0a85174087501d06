package booking

import (
	"net/http"
	"strings"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

// Status is the decision state of a booking.
type Status string

const (
	StatusWaiting   Status = "WAITING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

// validTransitions lists the statuses reachable from each status.
// CANCELLED is a valid stored value but nothing transitions into it.
var validTransitions = map[Status][]Status{
	StatusWaiting: {StatusApproved, StatusRejected},
}

// CanTransitionTo reports whether s may move to target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusWaiting, StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// Decision maps the owner's approve flag to the resulting status.
func Decision(approved bool) Status {
	if approved {
		return StatusApproved
	}
	return StatusRejected
}

// State selects a temporal or status bucket of bookings.
type State int

const (
	StateAll State = iota
	StateCurrent
	StatePast
	StateFuture
	StateWaiting
	StateRejected
)

var stateNames = map[State]string{
	StateAll:      "ALL",
	StateCurrent:  "CURRENT",
	StatePast:     "PAST",
	StateFuture:   "FUTURE",
	StateWaiting:  "WAITING",
	StateRejected: "REJECTED",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsValid reports whether s is one of the declared states.
func (s State) IsValid() bool {
	_, ok := stateNames[s]
	return ok
}

// ParseState parses a state keyword. An empty keyword means ALL.
// Matching ignores case; anything else fails with ErrUnknownState.
func ParseState(raw string) (State, error) {
	keyword := strings.ToUpper(strings.TrimSpace(raw))
	if keyword == "" {
		return StateAll, nil
	}
	for state, name := range stateNames {
		if name == keyword {
			return state, nil
		}
	}
	return 0, apperror.Wrap(ErrUnknownState, http.StatusBadRequest, "Unknown state: "+raw)
}
