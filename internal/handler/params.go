package handler

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/ticketstore/internal/filter"
	"github.com/dharmasatrya/ticketstore/internal/models"
	"github.com/dharmasatrya/ticketstore/internal/timezone"
)

type listingQuery struct {
	Filters   *models.TicketFilters
	SortBy    string
	SortOrder string
}

func parseListingQuery(c echo.Context) (listingQuery, []models.FieldError) {
	var errs []models.FieldError
	q := listingQuery{
		Filters: &models.TicketFilters{
			Origin:      c.QueryParam("origin"),
			Destination: c.QueryParam("destination"),
			Company:     c.QueryParam("company"),
		},
		SortBy:    c.QueryParam("sort_by"),
		SortOrder: c.QueryParam("sort_order"),
	}

	floatParam := func(name string) *float64 {
		raw := c.QueryParam(name)
		if raw == "" {
			return nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			errs = append(errs, models.FieldError{Field: name, Message: "must be a number"})
			return nil
		}
		return &v
	}
	clockParam := func(name string) *string {
		raw := c.QueryParam(name)
		if raw == "" {
			return nil
		}
		if _, err := timezone.ParseClock(raw); err != nil {
			errs = append(errs, models.FieldError{Field: name, Message: "must be a time of day in HH:MM"})
			return nil
		}
		return &raw
	}

	q.Filters.PriceMin = floatParam("price_min")
	q.Filters.PriceMax = floatParam("price_max")
	q.Filters.DepartureAfter = clockParam("departure_after")
	q.Filters.DepartureBefore = clockParam("departure_before")

	if raw := c.QueryParam("max_duration"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			errs = append(errs, models.FieldError{Field: "max_duration", Message: "must be a non-negative number of minutes"})
		} else {
			q.Filters.MaxDuration = &v
		}
	}

	if !filter.ValidSort(q.SortBy) {
		errs = append(errs, models.FieldError{Field: "sort_by", Message: "must be one of price, departure, arrival, duration, best_value"})
	}
	switch strings.ToLower(q.SortOrder) {
	case "", "asc", "desc":
	default:
		errs = append(errs, models.FieldError{Field: "sort_order", Message: "must be asc or desc"})
	}

	return q, errs
}

func parseTicketTypes(raw string) ([]models.TicketType, []models.FieldError) {
	if raw == "" {
		return nil, nil
	}
	var kinds []models.TicketType
	for _, part := range strings.Split(raw, ",") {
		kind, err := models.ParseTicketType(strings.TrimSpace(part))
		if err != nil {
			return nil, []models.FieldError{{Field: "type", Message: err.Error()}}
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}
