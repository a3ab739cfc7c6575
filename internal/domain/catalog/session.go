package catalog

import (
	"errors"
	"time"
)

var (
	ErrSessionNotFound = errors.New("catalog: session not found")
	ErrSessionInverted = errors.New("catalog: session end precedes start")
)

type SessionID string

// Session is a concrete dated occurrence of a Stay with finite seats.
type Session struct {
	ID        SessionID
	StayID    StayID
	StartDate time.Time
	EndDate   time.Time
	SeatsLeft int
	// SeatsTotal is not exposed publicly; zero means unknown.
	SeatsTotal int
}

// Full reports whether no seats remain; full sessions are not selectable for
// new bookings.
func (s Session) Full() bool {
	return s.SeatsLeft <= 0
}

func (s Session) Validate() error {
	if s.EndDate.Before(s.StartDate) {
		return ErrSessionInverted
	}
	return nil
}

// DurationDays counts the stay length the way the tariff does: the day span
// between start and end, inclusive of the start day.
func (s Session) DurationDays() int {
	return int(s.EndDate.Sub(s.StartDate).Hours()/24 + 0.5)
}

// DedupSessions removes strict duplicates, keeping the first occurrence of
// each (start,end) pair. Data imports occasionally produce several rows for
// one real session.
func DedupSessions(sessions []Session) []Session {
	type key struct {
		start, end int64
	}
	seen := make(map[key]struct{}, len(sessions))
	out := make([]Session, 0, len(sessions))
	for _, s := range sessions {
		k := key{start: s.StartDate.Unix(), end: s.EndDate.Unix()}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}

// FindSession returns the session with the given id from the slice.
func FindSession(sessions []Session, id SessionID) (Session, bool) {
	for _, s := range sessions {
		if s.ID == id {
			return s, true
		}
	}
	return Session{}, false
}
