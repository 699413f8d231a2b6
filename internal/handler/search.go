package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/ticketstore/internal/aggregator"
	"github.com/dharmasatrya/ticketstore/internal/filter"
	"github.com/dharmasatrya/ticketstore/internal/models"
)

type SearchHandler struct {
	aggregator *aggregator.Aggregator
	location   *time.Location
}

func NewSearchHandler(agg *aggregator.Aggregator, loc *time.Location) *SearchHandler {
	return &SearchHandler{
		aggregator: agg,
		location:   loc,
	}
}

// Search lists tickets across catalogs: GET /api/tickets?type=flight,bus&...
func (h *SearchHandler) Search(c echo.Context) error {
	startTime := time.Now()
	ctx := c.Request().Context()

	q, errs := parseListingQuery(c)
	kinds, typeErrs := parseTicketTypes(c.QueryParam("type"))
	errs = append(errs, typeErrs...)
	if len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid query parameters.",
			Errors:  errs,
		})
	}

	result, err := h.aggregator.Search(ctx, kinds)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to search tickets: " + err.Error(),
		})
	}

	filtered := filter.Apply(result.Tickets, q.Filters, q.SortBy, q.SortOrder, h.location)

	return c.JSON(http.StatusOK, models.SearchResponse{
		Metadata: models.SearchMetadata{
			TotalResults:      len(filtered),
			CatalogsQueried:   result.CatalogsQueried,
			CatalogsSucceeded: result.CatalogsSucceeded,
			CatalogsFailed:    result.CatalogsFailed,
			FailedCatalogs:    result.FailedCatalogs,
			SearchTimeMs:      time.Since(startTime).Milliseconds(),
			CacheHit:          result.CacheHit,
		},
		Tickets: filtered,
	})
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
