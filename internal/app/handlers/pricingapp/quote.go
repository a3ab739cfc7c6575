// Package pricingapp exposes the tariff engine as a read-side operation: one
// query computes the live breakdown plus the final promo-applied amount for a
// concrete selection.
package pricingapp

import (
	"context"

	"gedsejours/internal/app/dto"
	"gedsejours/internal/app/handlers/support"
	"gedsejours/internal/app/ports"
	"gedsejours/internal/app/queries"
	"gedsejours/internal/app/uow"
	domaincatalog "gedsejours/internal/domain/catalog"
	domaindepartures "gedsejours/internal/domain/departures"
	domainpricing "gedsejours/internal/domain/pricing"
)

const quoteKey = "pricing.quote"

// QuoteQuery prices one selection on a stay. SessionID, City and Option are
// each optional; absent parts degrade the breakdown instead of failing.
type QuoteQuery struct {
	StayID    string
	SessionID string
	City      string
	Option    string
}

func (q QuoteQuery) Key() string { return quoteKey }

type QuoteHandler struct {
	UoWFactory uow.UoWFactory
	Enrichment ports.EnrichmentPort
	Calculator domainpricing.Calculator
}

func (h *QuoteHandler) Handle(ctx context.Context, q QuoteQuery) (dto.Quote, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.Quote{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	stay, sessions, err := unit.Stays().ByID(ctx, domaincatalog.StayID(q.StayID))
	if err != nil {
		return dto.Quote{}, err
	}
	sessions = domaincatalog.DedupSessions(sessions)

	option := domainpricing.OptionType(q.Option)
	if !option.Valid() {
		return dto.Quote{}, domainpricing.ErrUnknownOption
	}

	enrichment := ports.StayEnrichment{}
	if h.Enrichment != nil {
		if e, enrichErr := h.Enrichment.Enrich(ctx, stay.ID); enrichErr == nil {
			enrichment = e
		}
	}
	cities := domaindepartures.FilterStandard(enrichment.Cities, domaindepartures.StandardCities())

	var sessionPrice *int
	if q.SessionID != "" {
		session, ok := domaincatalog.FindSession(sessions, domaincatalog.SessionID(q.SessionID))
		if !ok {
			return dto.Quote{}, domaincatalog.ErrSessionNotFound
		}
		if base, known := enrichment.BasePrices()[session.ID]; known {
			v := base
			sessionPrice = &v
		}
	}

	breakdown := h.Calculator.ComposeBreakdown(domainpricing.BreakdownParams{
		SessionPrice:    sessionPrice,
		CityExtra:       domaindepartures.Extra(cities, q.City),
		Option:          option,
		MinSessionPrice: enrichment.MinPrice(),
	})

	quote := dto.Quote{Breakdown: dto.MapBreakdown(breakdown)}
	if sessionPrice != nil {
		total := h.Calculator.Compute(*sessionPrice, stay.DurationDays, q.City, true) +
			h.Calculator.OptionPrice(option)
		quote.FinalTotal = &total
	}
	return quote, nil
}

var _ queries.Handler[QuoteQuery, dto.Quote] = (*QuoteHandler)(nil)
