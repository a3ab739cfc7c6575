package bookingflow

import (
	"testing"
	"time"

	"gedsejours/internal/domain/booking"
	"gedsejours/internal/domain/catalog"
	"gedsejours/internal/domain/departures"
	"gedsejours/internal/domain/pricing"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testStay() catalog.Stay {
	return catalog.Stay{
		ID:           "stay-1",
		Title:        "Cap sur l'Atlantique",
		AgeMin:       10,
		AgeMax:       17,
		DurationDays: 7,
		Published:    true,
	}
}

func testSessions() []catalog.Session {
	return []catalog.Session{
		{ID: "A", StayID: "stay-1", StartDate: day(2026, 7, 1), EndDate: day(2026, 7, 8), SeatsLeft: 4},
		{ID: "B", StayID: "stay-1", StartDate: day(2026, 7, 1), EndDate: day(2026, 7, 8), SeatsLeft: 9},
		{ID: "C", StayID: "stay-1", StartDate: day(2026, 7, 10), EndDate: day(2026, 7, 17), SeatsLeft: 0},
	}
}

func testCities() []departures.City {
	return []departures.City{
		{Name: "Sans transport", ExtraEur: 0},
		{Name: "Paris", ExtraEur: 12},
		{Name: "Lyon", ExtraEur: 12},
	}
}

func testParams() Params {
	return Params{
		Stay:          testStay(),
		Sessions:      testSessions(),
		Cities:        testCities(),
		SessionPrices: map[catalog.SessionID]int{"A": 615},
		Calculator:    pricing.NewCalculator(pricing.DefaultConfig()),
	}
}

func requester() booking.Requester {
	return booking.Requester{
		Organisation: "MECS Les Tilleuls",
		Name:         "Claire Morel",
		Email:        "claire@tilleuls.fr",
		Phone:        "0601020304",
	}
}

func TestNewDedupsSessions(t *testing.T) {
	f, err := New(testParams())
	if err != nil {
		t.Fatal(err)
	}
	got := f.Sessions()
	if len(got) != 2 {
		t.Fatalf("Sessions() kept %d entries, want 2 after dedup", len(got))
	}
	if got[0].ID != "A" {
		t.Errorf("first session = %s, want A (first occurrence wins)", got[0].ID)
	}
}

func TestEntryPointPreselection(t *testing.T) {
	p := testParams()
	f, err := New(p)
	if err != nil {
		t.Fatal(err)
	}
	if f.State() != StateSelectSession {
		t.Errorf("no preselection: state = %s, want %s", f.State(), StateSelectSession)
	}

	p.PreselectedSessionID = "A"
	f, err = New(p)
	if err != nil {
		t.Fatal(err)
	}
	if f.State() != StateSelectCity {
		t.Errorf("session preselected: state = %s, want %s", f.State(), StateSelectCity)
	}

	p.PreselectedCity = "Paris"
	f, err = New(p)
	if err != nil {
		t.Fatal(err)
	}
	if f.State() != StateRequesterInfo {
		t.Errorf("session+city preselected: state = %s, want %s", f.State(), StateRequesterInfo)
	}
}

func TestChooseSessionRejectsFull(t *testing.T) {
	f, _ := New(testParams())
	if err := f.ChooseSession("C"); err != ErrSessionFull {
		t.Errorf("ChooseSession(full) = %v, want ErrSessionFull", err)
	}
	if err := f.ChooseSession("nope"); err != ErrUnknownSession {
		t.Errorf("ChooseSession(unknown) = %v, want ErrUnknownSession", err)
	}
	if f.State() != StateSelectSession {
		t.Errorf("state advanced on rejected selection: %s", f.State())
	}
}

func TestChooseCityGate(t *testing.T) {
	f, _ := New(testParams())
	if err := f.ChooseSession("A"); err != nil {
		t.Fatal(err)
	}
	if err := f.ChooseCity(""); err != ErrCityRequired {
		t.Errorf("ChooseCity(empty) = %v, want ErrCityRequired", err)
	}
	if err := f.ChooseCity("Berlin"); err != ErrUnknownCity {
		t.Errorf("ChooseCity(unknown) = %v, want ErrUnknownCity", err)
	}
	// the synthetic no-transport entry is a valid selection
	if err := f.ChooseCity("Sans transport"); err != nil {
		t.Fatalf("ChooseCity(Sans transport) = %v", err)
	}
	if f.State() != StateRequesterInfo {
		t.Errorf("state = %s, want %s", f.State(), StateRequesterInfo)
	}
}

func TestRequesterGate(t *testing.T) {
	f, _ := New(testParams())
	_ = f.ChooseSession("A")
	_ = f.ChooseCity("Paris")
	r := requester()
	r.Phone = ""
	if err := f.SetRequester(r); err != ErrIncompleteContact {
		t.Errorf("SetRequester(partial) = %v, want ErrIncompleteContact", err)
	}
	if err := f.SetRequester(requester()); err != nil {
		t.Fatalf("SetRequester = %v", err)
	}
	if f.State() != StateMinorInfo {
		t.Errorf("state = %s, want %s", f.State(), StateMinorInfo)
	}
}

func TestMinorGateEligibility(t *testing.T) {
	f, _ := New(testParams())
	_ = f.ChooseSession("A")
	_ = f.ChooseCity("Paris")
	_ = f.SetRequester(requester())

	// six years old at departure: rejected in place with a message
	if err := f.SetMinor("Léo", "2020-01-01", true); err != ErrIneligible {
		t.Fatalf("SetMinor(too young) = %v, want ErrIneligible", err)
	}
	if f.State() != StateMinorInfo {
		t.Errorf("eligibility failure moved state to %s", f.State())
	}
	if f.Message() == "" {
		t.Error("eligibility failure must leave an in-place message")
	}

	if err := f.SetMinor("Léo", "2014-03-10", false); err != ErrConsentRequired {
		t.Errorf("SetMinor(no consent) = %v, want ErrConsentRequired", err)
	}
	if err := f.SetMinor("Léo", "2014-03-10", true); err != nil {
		t.Fatalf("SetMinor = %v", err)
	}
	if f.State() != StateReviewAndOptions {
		t.Errorf("state = %s, want %s", f.State(), StateReviewAndOptions)
	}
	if f.Message() != "" {
		t.Errorf("message not cleared after valid step: %q", f.Message())
	}
}

func advanceToReview(t *testing.T, f *Flow) {
	t.Helper()
	if err := f.ChooseSession("A"); err != nil {
		t.Fatal(err)
	}
	if err := f.ChooseCity("Paris"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetRequester(requester()); err != nil {
		t.Fatal(err)
	}
	if err := f.SetMinor("Léo", "2014-03-10", true); err != nil {
		t.Fatal(err)
	}
}

func TestPreviewIsPromoFree(t *testing.T) {
	f, _ := New(testParams())
	advanceToReview(t, f)
	if err := f.ChooseOption(pricing.OptionZen); err != nil {
		t.Fatal(err)
	}
	b := f.Preview()
	if b.Total == nil {
		t.Fatal("Preview total nil with a priced session selected")
	}
	// 615 + 12 + 49, no promo applied live
	if *b.Total != 676 {
		t.Errorf("Preview total = %d, want 676", *b.Total)
	}
}

func TestBackKeepsLaterData(t *testing.T) {
	f, _ := New(testParams())
	advanceToReview(t, f)
	f.Back()
	if f.State() != StateMinorInfo {
		t.Fatalf("Back from review gave %s", f.State())
	}
	f.Back()
	f.Back()
	if f.State() != StateSelectCity {
		t.Fatalf("state = %s, want %s", f.State(), StateSelectCity)
	}
	// forward again without re-entering requester data
	if err := f.ChooseCity("Lyon"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetRequester(requester()); err != nil {
		t.Fatal(err)
	}
	if err := f.SetMinor("Léo", "2014-03-10", true); err != nil {
		t.Fatal(err)
	}
	if f.State() != StateReviewAndOptions {
		t.Errorf("state = %s after round trip, want review", f.State())
	}
	// Back below the entry state is a no-op
	g, _ := New(testParams())
	g.Back()
	if g.State() != StateSelectSession {
		t.Errorf("Back at entry moved state to %s", g.State())
	}
}

func TestFinalizeBuildsRequest(t *testing.T) {
	f, _ := New(testParams())
	advanceToReview(t, f)
	_ = f.ChooseOption(pricing.OptionUltime)

	req, err := f.Finalize("req-1", day(2026, 1, 15))
	if err != nil {
		t.Fatal(err)
	}
	if req.SessionID != "A" || req.DepartureCity != "Paris" {
		t.Errorf("request selections wrong: %+v", req)
	}
	if req.Option != pricing.OptionUltime {
		t.Errorf("Option = %s, want ULTIME", req.Option)
	}
	// full tariff with promo: round((615+180+12)*0.95) = 767, plus option 79
	if req.QuotedTotal == nil || *req.QuotedTotal != 846 {
		t.Errorf("QuotedTotal = %v, want 846", req.QuotedTotal)
	}
	if len(req.PendingEvents()) != 1 {
		t.Errorf("expected one submitted event, got %d", len(req.PendingEvents()))
	}
}

func TestSubmissionFailureKeepsState(t *testing.T) {
	f, _ := New(testParams())
	advanceToReview(t, f)

	f.RejectSubmission("Plus de places disponibles sur cette session")
	if f.State() != StateReviewAndOptions {
		t.Fatalf("rejection moved state to %s", f.State())
	}
	if f.Message() != "Plus de places disponibles sur cette session" {
		t.Errorf("collaborator message altered: %q", f.Message())
	}
	// data retained, manual retry possible
	if _, err := f.Finalize("req-2", day(2026, 1, 15)); err != nil {
		t.Fatalf("Finalize after rejection = %v", err)
	}

	if err := f.Complete("bk_123"); err != nil {
		t.Fatal(err)
	}
	if f.State() != StateSuccess {
		t.Fatalf("state = %s, want %s", f.State(), StateSuccess)
	}
	if f.RequestID() != "bk_123" {
		t.Errorf("RequestID = %s, want bk_123", f.RequestID())
	}
}

func TestWrongStateEvents(t *testing.T) {
	f, _ := New(testParams())
	if err := f.ChooseCity("Paris"); err != ErrWrongState {
		t.Errorf("ChooseCity before session = %v, want ErrWrongState", err)
	}
	if err := f.ChooseOption(pricing.OptionZen); err != ErrWrongState {
		t.Errorf("ChooseOption before review = %v, want ErrWrongState", err)
	}
	if _, err := f.Finalize("x", day(2026, 1, 1)); err != ErrNotFinalized {
		t.Errorf("Finalize before review = %v, want ErrNotFinalized", err)
	}
}
