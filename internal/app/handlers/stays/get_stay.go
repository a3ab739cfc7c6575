package stays

import (
	"context"
	"errors"

	"gedsejours/internal/app/dto"
	"gedsejours/internal/app/handlers/support"
	"gedsejours/internal/app/ports"
	"gedsejours/internal/app/queries"
	"gedsejours/internal/app/uow"
	domaincatalog "gedsejours/internal/domain/catalog"
	domaindepartures "gedsejours/internal/domain/departures"
)

const getStayKey = "stays.get"

// GetStayQuery loads one published stay with its sessions, departure cities
// and per-session prices. Ref is looked up as an id first, then as a slug.
type GetStayQuery struct {
	Ref string
}

func (q GetStayQuery) Key() string { return getStayKey }

// GetStayHandler resolves the stay detail DTO. Enrichment is optional;
// without it the stay renders price on request with the standard city list.
type GetStayHandler struct {
	UoWFactory uow.UoWFactory
	Enrichment ports.EnrichmentPort
}

func (h *GetStayHandler) Handle(ctx context.Context, q GetStayQuery) (dto.StayDetail, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.StayDetail{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	stay, sessions, err := unit.Stays().ByID(ctx, domaincatalog.StayID(q.Ref))
	if errors.Is(err, domaincatalog.ErrStayNotFound) {
		stay, sessions, err = unit.Stays().BySlug(ctx, q.Ref)
	}
	if err != nil {
		return dto.StayDetail{}, err
	}
	if !stay.Published {
		return dto.StayDetail{}, domaincatalog.ErrStayUnpublished
	}

	sessions = domaincatalog.DedupSessions(sessions)

	enrichment := ports.StayEnrichment{}
	if h.Enrichment != nil {
		// Enrichment failures degrade to price on request rather than a 5xx.
		if e, enrichErr := h.Enrichment.Enrich(ctx, stay.ID); enrichErr == nil {
			enrichment = e
		}
	}
	cities := domaindepartures.FilterStandard(enrichment.Cities, domaindepartures.StandardCities())
	if len(cities) == 0 {
		cities = []domaindepartures.City{domaindepartures.SansTransport()}
	}
	domaindepartures.Sort(cities)

	return dto.MapStayDetail(stay, sessions, cities, enrichment.SessionPrices, enrichment.MinPrice()), nil
}

var _ queries.Handler[GetStayQuery, dto.StayDetail] = (*GetStayHandler)(nil)
