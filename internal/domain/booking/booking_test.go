package booking

import (
	"testing"
	"time"
)

func validParams() CreateParams {
	return CreateParams{
		ID:            "req-1",
		StayID:        "stay-1",
		SessionID:     "sess-1",
		DepartureCity: "Paris",
		Requester: Requester{
			Organisation: "MECS Les Tilleuls",
			Name:         "Claire Morel",
			Email:        "claire@tilleuls.fr",
			Phone:        "0601020304",
		},
		Minor:     Minor{FirstName: "Léo", BirthDate: "2014-03-10"},
		Consent:   true,
		CreatedAt: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestNewRequest(t *testing.T) {
	req, err := NewRequest(validParams())
	if err != nil {
		t.Fatal(err)
	}
	if req.Status != StatusReceived {
		t.Errorf("Status = %s, want %s", req.Status, StatusReceived)
	}
	evs := req.PendingEvents()
	if len(evs) != 1 || evs[0].EventName() != "booking.request_submitted" {
		t.Errorf("unexpected pending events: %+v", evs)
	}
}

func TestNewRequestValidation(t *testing.T) {
	p := validParams()
	p.SessionID = ""
	if _, err := NewRequest(p); err != ErrSessionRequired {
		t.Errorf("missing session: %v, want ErrSessionRequired", err)
	}

	p = validParams()
	p.Requester.Email = " "
	if _, err := NewRequest(p); err != ErrContactRequired {
		t.Errorf("missing email: %v, want ErrContactRequired", err)
	}

	p = validParams()
	p.Minor.BirthDate = ""
	if _, err := NewRequest(p); err != ErrMinorRequired {
		t.Errorf("missing birth date: %v, want ErrMinorRequired", err)
	}

	p = validParams()
	p.Consent = false
	if _, err := NewRequest(p); err != ErrConsentRequired {
		t.Errorf("missing consent: %v, want ErrConsentRequired", err)
	}
}

func TestStatusTransitions(t *testing.T) {
	req, _ := NewRequest(validParams())
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	if err := req.Confirm(now); err != nil {
		t.Fatal(err)
	}
	if err := req.Confirm(now); err != ErrInvalidTransition {
		t.Errorf("double confirm: %v, want ErrInvalidTransition", err)
	}
	if err := req.Cancel("désistement", now); err != nil {
		t.Fatal(err)
	}
	if err := req.Cancel("again", now); err != ErrInvalidTransition {
		t.Errorf("cancel after cancel: %v, want ErrInvalidTransition", err)
	}
}
