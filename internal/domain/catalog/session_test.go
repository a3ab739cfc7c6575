package catalog

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDedupSessionsKeepsFirst(t *testing.T) {
	sessions := []Session{
		{ID: "A", StartDate: day(2026, 7, 1), EndDate: day(2026, 7, 8), SeatsLeft: 4},
		{ID: "B", StartDate: day(2026, 7, 1), EndDate: day(2026, 7, 8), SeatsLeft: 9},
		{ID: "C", StartDate: day(2026, 7, 10), EndDate: day(2026, 7, 17), SeatsLeft: 2},
	}
	got := DedupSessions(sessions)
	if len(got) != 2 {
		t.Fatalf("DedupSessions kept %d sessions, want 2", len(got))
	}
	if got[0].ID != "A" {
		t.Errorf("first duplicate kept = %s, want A (input order)", got[0].ID)
	}
	if got[1].ID != "C" {
		t.Errorf("unique session lost, got %s", got[1].ID)
	}
}

func TestDedupSessionsDistinctPairs(t *testing.T) {
	// same start, different end: both survive
	sessions := []Session{
		{ID: "A", StartDate: day(2026, 7, 1), EndDate: day(2026, 7, 8)},
		{ID: "B", StartDate: day(2026, 7, 1), EndDate: day(2026, 7, 14)},
	}
	if got := DedupSessions(sessions); len(got) != 2 {
		t.Fatalf("DedupSessions kept %d sessions, want 2", len(got))
	}
}

func TestSessionFull(t *testing.T) {
	if (Session{SeatsLeft: 1}).Full() {
		t.Error("session with a seat reported full")
	}
	if !(Session{SeatsLeft: 0}).Full() {
		t.Error("session with zero seats not reported full")
	}
}

func TestSessionDurationDays(t *testing.T) {
	s := Session{StartDate: day(2026, 7, 8), EndDate: day(2026, 7, 21)}
	if got := s.DurationDays(); got != 13 {
		t.Errorf("DurationDays = %d, want 13", got)
	}
}

func TestStayValidate(t *testing.T) {
	stay := Stay{Title: "Cap sur l'Atlantique", AgeMin: 10, AgeMax: 17, DurationDays: 7}
	if err := stay.Validate(); err != nil {
		t.Fatalf("Validate returned %v for a valid stay", err)
	}
	stay.AgeMin = 18
	if err := stay.Validate(); err != ErrInvalidAgeRange {
		t.Errorf("Validate = %v, want ErrInvalidAgeRange", err)
	}
}
