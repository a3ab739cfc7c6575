package enrichment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestEnrichDecodesCitiesAndPrices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stays/stay-1" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"cities": [
				{"name": "Sans transport", "extra_eur": 0},
				{"name": "Paris - Gare de Lyon", "extra_eur": 12}
			],
			"session_prices": [
				{"session_id": "sess-1", "base_price": 615},
				{"session_id": "sess-2", "base_price": 615, "promo_price": 584}
			]
		}`))
	}))
	defer srv.Close()

	client := &Client{HTTP: srv.Client(), Endpoint: srv.URL}
	got, err := client.Enrich(context.Background(), "stay-1")
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	if len(got.Cities) != 2 {
		t.Fatalf("cities = %d, want 2", len(got.Cities))
	}
	if got.Cities[1].ExtraEur != 12 {
		t.Errorf("Paris extra = %d, want 12", got.Cities[1].ExtraEur)
	}
	entry, ok := got.SessionPrices["sess-2"]
	if !ok || entry.PromoPrice == nil || *entry.PromoPrice != 584 {
		t.Errorf("sess-2 promo price = %+v, want 584", entry)
	}
	if min := got.MinPrice(); min == nil || *min != 584 {
		t.Errorf("MinPrice = %v, want 584 (promo preferred)", min)
	}
	prices := got.BasePrices()
	if prices["sess-1"] != 615 {
		t.Errorf("base price sess-1 = %d, want 615", prices["sess-1"])
	}
}

func TestEnrichPropagatesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broken", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := &Client{HTTP: srv.Client(), Endpoint: srv.URL}
	if _, err := client.Enrich(context.Background(), "stay-1"); err == nil {
		t.Fatal("Enrich succeeded on a 502")
	}
}

func TestEnrichRequiresConfiguration(t *testing.T) {
	client := &Client{}
	if _, err := client.Enrich(context.Background(), "stay-1"); err == nil {
		t.Fatal("Enrich succeeded without an http client")
	}
}
