package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/ticketstore/internal/cache"
	"github.com/dharmasatrya/ticketstore/internal/catalog"
	"github.com/dharmasatrya/ticketstore/internal/filter"
	"github.com/dharmasatrya/ticketstore/internal/models"
)

type TicketHandler struct {
	catalogs map[models.TicketType]catalog.Catalog
	cache    cache.Cache
	location *time.Location
}

func NewTicketHandler(catalogs []catalog.Catalog, c cache.Cache, loc *time.Location) *TicketHandler {
	byType := make(map[models.TicketType]catalog.Catalog, len(catalogs))
	for _, cat := range catalogs {
		byType[cat.Type()] = cat
	}
	if c == nil {
		c = cache.NewNoOpCache()
	}
	return &TicketHandler{
		catalogs: byType,
		cache:    c,
		location: loc,
	}
}

// List serves the whole catalog of kind, optionally filtered and sorted.
func (h *TicketHandler) List(kind models.TicketType) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		q, errs := parseListingQuery(c)
		if len(errs) > 0 {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Message: "Invalid query parameters.",
				Errors:  errs,
			})
		}

		cat, ok := h.catalogs[kind]
		if !ok {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{
				Message: fmt.Sprintf("No %s catalog configured.", kind),
			})
		}

		tickets, found := h.cache.Get(ctx, kind)
		if !found {
			var err error
			tickets, err = cat.List(ctx)
			if err != nil {
				log.Printf("Listing %s failed: %v", cat.Name(), err)
				return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
					Message: "Failed to load tickets.",
				})
			}
			_ = h.cache.Set(ctx, kind, tickets)
		}

		return c.JSON(http.StatusOK, filter.Apply(tickets, q.Filters, q.SortBy, q.SortOrder, h.location))
	}
}

// Get serves one ticket of kind by the :id path parameter.
func (h *TicketHandler) Get(kind models.TicketType) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")

		cat, ok := h.catalogs[kind]
		if !ok {
			return c.JSON(http.StatusNotFound, notFound(kind, id))
		}

		ticket, err := cat.Get(c.Request().Context(), id)
		if errors.Is(err, catalog.ErrTicketNotFound) {
			return c.JSON(http.StatusNotFound, notFound(kind, id))
		}
		if err != nil {
			log.Printf("Loading %s %s failed: %v", kind, id, err)
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Message: "Failed to load ticket.",
			})
		}

		return c.JSON(http.StatusOK, ticket)
	}
}

func notFound(kind models.TicketType, id string) models.ErrorResponse {
	return models.ErrorResponse{
		Message: fmt.Sprintf("%s with ID %s not found.", kind.Label(), id),
	}
}
