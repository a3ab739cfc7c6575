package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"gedsejours/internal/app/dto"
	pricingapp "gedsejours/internal/app/handlers/pricingapp"
	stayapp "gedsejours/internal/app/handlers/stays"
	"gedsejours/internal/app/queries"
	domaincatalog "gedsejours/internal/domain/catalog"
	domainpricing "gedsejours/internal/domain/pricing"
)

// StayHandler wires catalog and quote queries to HTTP.
type StayHandler struct {
	Queries queries.Bus
}

// Catalog responds with the published stays matching the filters.
func (h StayHandler) Catalog(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "stay handler unavailable"})
		return
	}
	query := stayapp.SearchCatalogQuery{
		Period: c.Query("period"),
		Theme:  c.Query("theme"),
	}
	result, err := queries.Ask[stayapp.SearchCatalogQuery, dto.StayCatalog](c.Request.Context(), h.Queries, query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get responds with one stay page payload; the path segment is an id or slug.
func (h StayHandler) Get(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "stay handler unavailable"})
		return
	}
	ref := c.Param("id")
	if ref == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "stay reference is required"})
		return
	}
	result, err := queries.Ask[stayapp.GetStayQuery, dto.StayDetail](c.Request.Context(), h.Queries, stayapp.GetStayQuery{Ref: ref})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domaincatalog.ErrStayNotFound) || errors.Is(err, domaincatalog.ErrStayUnpublished) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Quote responds with the live breakdown plus the final amount for a
// selection described by query parameters.
func (h StayHandler) Quote(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "stay handler unavailable"})
		return
	}
	query := pricingapp.QuoteQuery{
		StayID:    c.Param("id"),
		SessionID: c.Query("session_id"),
		City:      c.Query("city"),
		Option:    c.Query("option"),
	}
	result, err := queries.Ask[pricingapp.QuoteQuery, dto.Quote](c.Request.Context(), h.Queries, query)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, domaincatalog.ErrStayNotFound):
			status = http.StatusNotFound
		case errors.Is(err, domaincatalog.ErrSessionNotFound), errors.Is(err, domainpricing.ErrUnknownOption):
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ StayHTTP = StayHandler{}
