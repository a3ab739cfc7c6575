package ports

import (
	"context"

	domaincatalog "gedsejours/internal/domain/catalog"
	domaindepartures "gedsejours/internal/domain/departures"
	domainpricing "gedsejours/internal/domain/pricing"
)

// StayEnrichment is the per-stay data owned by the external enrichment
// collaborator: departure cities and raw per-session prices.
type StayEnrichment struct {
	Cities        []domaindepartures.City
	SessionPrices map[domaincatalog.SessionID]domainpricing.SessionPriceEntry
}

// EnrichmentPort looks up enrichment data for one stay. Implementations may
// fail; callers degrade to a price-on-request rendering.
type EnrichmentPort interface {
	Enrich(ctx context.Context, stayID domaincatalog.StayID) (StayEnrichment, error)
}

// BasePrices projects the entries down to the per-session base amounts the
// tariff computes from. Entries without a base price are skipped.
func (e StayEnrichment) BasePrices() map[domaincatalog.SessionID]int {
	out := make(map[domaincatalog.SessionID]int, len(e.SessionPrices))
	for id, entry := range e.SessionPrices {
		if entry.BasePrice == nil {
			continue
		}
		out[id] = *entry.BasePrice
	}
	return out
}

// MinPrice derives the lowest advertised price across all entries.
func (e StayEnrichment) MinPrice() *int {
	entries := make([]domainpricing.SessionPriceEntry, 0, len(e.SessionPrices))
	for _, entry := range e.SessionPrices {
		entries = append(entries, entry)
	}
	return domainpricing.MinSessionPrice(entries)
}
