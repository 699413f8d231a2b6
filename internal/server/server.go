package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/dharmasatrya/ticketstore/internal/aggregator"
	"github.com/dharmasatrya/ticketstore/internal/booking"
	"github.com/dharmasatrya/ticketstore/internal/cache"
	"github.com/dharmasatrya/ticketstore/internal/catalog"
	"github.com/dharmasatrya/ticketstore/internal/handler"
	"github.com/dharmasatrya/ticketstore/internal/models"
	"github.com/dharmasatrya/ticketstore/internal/ratelimit"
)

type Deps struct {
	Catalogs       []catalog.Catalog
	Cache          cache.Cache
	Aggregator     *aggregator.Aggregator
	Booking        *booking.Service
	BookingLimiter *ratelimit.KeyedLimiter
	Location       *time.Location
	// RequestLog enables echo's access log middleware.
	RequestLog bool
}

// New builds the storefront API:
//
//	POST /api/booking
//	GET  /api/flights, /api/trains, /api/buses
//	GET  /api/flights/:id, /api/trains/:id, /api/buses/:id
//	GET  /api/tickets
//	GET  /health
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	if d.RequestLog {
		e.Use(middleware.Logger())
	}
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	if d.Cache == nil {
		d.Cache = cache.NewNoOpCache()
	}
	if d.Aggregator == nil {
		d.Aggregator = aggregator.NewAggregator(d.Catalogs, aggregator.Config{
			Timeout: 2 * time.Second,
			Cache:   d.Cache,
		})
	}

	tickets := handler.NewTicketHandler(d.Catalogs, d.Cache, d.Location)
	search := handler.NewSearchHandler(d.Aggregator, d.Location)
	bookings := handler.NewBookingHandler(d.Booking)

	api := e.Group("/api")

	bookingMiddleware := []echo.MiddlewareFunc{handler.AllowMethods(http.MethodPost)}
	if d.BookingLimiter != nil {
		bookingMiddleware = append(bookingMiddleware, handler.RateLimit(d.BookingLimiter))
	}
	api.Any("/booking", bookings.Create, bookingMiddleware...)

	getOnly := handler.AllowMethods(http.MethodGet)
	for _, kind := range models.TicketTypes {
		path := "/" + kind.Collection()
		api.Any(path, tickets.List(kind), getOnly)
		api.Any(path+"/:id", tickets.Get(kind), getOnly)
	}
	api.Any("/tickets", search.Search, getOnly)

	e.GET("/health", handler.HealthHandler)

	return e
}
