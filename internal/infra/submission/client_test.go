package submission

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domainbooking "gedsejours/internal/domain/booking"
	domaincatalog "gedsejours/internal/domain/catalog"
	"gedsejours/internal/infra/storage/memory"
)

func sampleRequest() *domainbooking.Request {
	total := 846
	return &domainbooking.Request{
		ID:            "cmd-1",
		StayID:        "stay-1",
		SessionID:     "sess-1",
		DepartureCity: "Paris",
		Option:        "ULTIME",
		Requester: domainbooking.Requester{
			Organisation: "ASE Nord",
			Name:         "Julie Martin",
			Email:        "julie@example.org",
			Phone:        "0601020304",
		},
		Minor:       domainbooking.Minor{FirstName: "Théo", BirthDate: "2014-03-10"},
		Consent:     true,
		QuotedTotal: &total,
		Status:      domainbooking.StatusReceived,
	}
}

func TestSubmitReturnsIssuedID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body["stay_id"] != "stay-1" || body["consent"] != true {
			t.Errorf("unexpected payload: %v", body)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"request_id": "REQ-001"}`))
	}))
	defer srv.Close()

	client := &Client{HTTP: srv.Client(), Endpoint: srv.URL}
	id, err := client.Submit(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if id != "REQ-001" {
		t.Errorf("id = %q, want REQ-001", id)
	}
}

func TestSubmitSurfacesRejectionVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"code": "session_full", "message": "Cette session est complète."}`))
	}))
	defer srv.Close()

	client := &Client{HTTP: srv.Client(), Endpoint: srv.URL}
	_, err := client.Submit(context.Background(), sampleRequest())
	var subErr *domainbooking.SubmissionError
	if !errors.As(err, &subErr) {
		t.Fatalf("error type = %T, want *SubmissionError", err)
	}
	if subErr.Message != "Cette session est complète." {
		t.Errorf("message = %q, want the collaborator text verbatim", subErr.Message)
	}
	if subErr.Code != "session_full" {
		t.Errorf("code = %q", subErr.Code)
	}
}

func TestSubmitPlainErrorOnUnstructuredFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway timeout", http.StatusGatewayTimeout)
	}))
	defer srv.Close()

	client := &Client{HTTP: srv.Client(), Endpoint: srv.URL}
	_, err := client.Submit(context.Background(), sampleRequest())
	if err == nil {
		t.Fatal("Submit succeeded on a 504")
	}
	var subErr *domainbooking.SubmissionError
	if errors.As(err, &subErr) {
		t.Fatal("unstructured failure must not map to a SubmissionError")
	}
}

func TestLocalSubmitterChecksSeats(t *testing.T) {
	stays := memory.NewStayRepository().WithNow(func() time.Time {
		return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	})
	stay := &domaincatalog.Stay{ID: "stay-1", Title: "Vacances", DurationDays: 7, AgeMin: 6, AgeMax: 17, Published: true}
	sessions := []domaincatalog.Session{
		{ID: "sess-1", StayID: "stay-1", StartDate: time.Date(2026, 7, 8, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC), SeatsLeft: 0},
	}
	if err := stays.Save(context.Background(), stay, sessions); err != nil {
		t.Fatalf("seed stay: %v", err)
	}

	s := &LocalSubmitter{Stays: stays}
	_, err := s.Submit(context.Background(), sampleRequest())
	var subErr *domainbooking.SubmissionError
	if !errors.As(err, &subErr) {
		t.Fatalf("error type = %T, want *SubmissionError for a full session", err)
	}
	if subErr.Code != "session_full" {
		t.Errorf("code = %q, want session_full", subErr.Code)
	}

	if _, err := (&LocalSubmitter{}).Submit(context.Background(), sampleRequest()); err == nil {
		t.Fatal("Submit succeeded without a catalog repository")
	}
}
