// Package enrichment fetches the data the catalog import does not carry:
// departure cities with their transport extras and raw per-session prices.
// The collaborator owns this data; callers treat a failed lookup as "price on
// request" rather than an error.
package enrichment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"gedsejours/internal/app/ports"
	domaincatalog "gedsejours/internal/domain/catalog"
	domaindepartures "gedsejours/internal/domain/departures"
	domainpricing "gedsejours/internal/domain/pricing"
)

type Client struct {
	HTTP     *http.Client
	Endpoint string
	Logger   *slog.Logger
}

type cityPayload struct {
	Name     string `json:"name"`
	ExtraEur int    `json:"extra_eur"`
}

type sessionPricePayload struct {
	SessionID  string `json:"session_id"`
	BasePrice  *int   `json:"base_price"`
	PromoPrice *int   `json:"promo_price"`
}

type enrichResponse struct {
	Cities        []cityPayload         `json:"cities"`
	SessionPrices []sessionPricePayload `json:"session_prices"`
}

// Enrich looks up the collaborator data for one stay.
func (c *Client) Enrich(ctx context.Context, stayID domaincatalog.StayID) (ports.StayEnrichment, error) {
	var zero ports.StayEnrichment
	if c == nil || c.HTTP == nil {
		return zero, errors.New("enrichment: http client not configured")
	}
	if c.Endpoint == "" {
		return zero, errors.New("enrichment: endpoint not configured")
	}

	endpoint := fmt.Sprintf("%s/stays/%s", c.Endpoint, url.PathEscape(string(stayID)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return zero, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.logError("enrichment request failed", stayID, err)
		return zero, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		err := fmt.Errorf("enrichment returned status %d: %s", resp.StatusCode, string(snippet))
		c.logError("enrichment returned error", stayID, err)
		return zero, err
	}

	var payload enrichResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logError("enrichment decode failed", stayID, err)
		return zero, err
	}

	out := ports.StayEnrichment{
		Cities:        make([]domaindepartures.City, 0, len(payload.Cities)),
		SessionPrices: make(map[domaincatalog.SessionID]domainpricing.SessionPriceEntry, len(payload.SessionPrices)),
	}
	for _, city := range payload.Cities {
		out.Cities = append(out.Cities, domaindepartures.City{Name: city.Name, ExtraEur: city.ExtraEur})
	}
	for _, price := range payload.SessionPrices {
		out.SessionPrices[domaincatalog.SessionID(price.SessionID)] = domainpricing.SessionPriceEntry{
			BasePrice:  price.BasePrice,
			PromoPrice: price.PromoPrice,
		}
	}
	return out, nil
}

func (c *Client) logError(msg string, stayID domaincatalog.StayID, err error) {
	if c.Logger == nil {
		return
	}
	c.Logger.Error(msg, "stay_id", stayID, "error", err)
}

var _ ports.EnrichmentPort = (*Client)(nil)
