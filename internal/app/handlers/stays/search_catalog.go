package stays

import (
	"context"

	"gedsejours/internal/app/dto"
	"gedsejours/internal/app/handlers/support"
	"gedsejours/internal/app/queries"
	"gedsejours/internal/app/uow"
	domaincatalog "gedsejours/internal/domain/catalog"
)

const searchCatalogKey = "stays.catalog"

// SearchCatalogQuery describes the catalog filters.
type SearchCatalogQuery struct {
	Period string
	Theme  string
}

func (q SearchCatalogQuery) Key() string { return searchCatalogKey }

// SearchCatalogHandler lists published stays matching the filters.
type SearchCatalogHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *SearchCatalogHandler) Handle(ctx context.Context, q SearchCatalogQuery) (dto.StayCatalog, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.StayCatalog{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	stays, err := unit.Stays().Search(ctx, domaincatalog.SearchParams{
		Period:        q.Period,
		Theme:         q.Theme,
		OnlyPublished: true,
	})
	if err != nil {
		return dto.StayCatalog{}, err
	}
	return dto.MapStayCatalog(stays), nil
}

var _ queries.Handler[SearchCatalogQuery, dto.StayCatalog] = (*SearchCatalogHandler)(nil)
