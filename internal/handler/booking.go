package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/ticketstore/internal/booking"
	"github.com/dharmasatrya/ticketstore/internal/models"
)

type BookingHandler struct {
	service *booking.Service
}

func NewBookingHandler(service *booking.Service) *BookingHandler {
	return &BookingHandler{service: service}
}

// Create handles POST /api/booking.
func (h *BookingHandler) Create(c echo.Context) error {
	var req models.BookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: booking.MessageInvalidData,
			Errors:  []models.FieldError{bindFieldError(err)},
		})
	}

	resp, err := h.service.Book(c.Request().Context(), req)

	var invalid *booking.InvalidRequestError
	switch {
	case err == nil:
		return c.JSON(http.StatusCreated, resp)
	case errors.As(err, &invalid):
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: booking.MessageInvalidData,
			Errors:  invalid.Fields,
		})
	case errors.Is(err, booking.ErrSimulatedFailure):
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: booking.MessageSimulatedFailed,
		})
	default:
		log.Printf("Error processing booking request: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "An unexpected server error occurred.",
		})
	}
}

// bindFieldError names the offending JSON field when the body decoded
// but a value had the wrong type, e.g. a fractional quantity.
func bindFieldError(err error) models.FieldError {
	var ute *json.UnmarshalTypeError
	if he, ok := err.(*echo.HTTPError); ok && he.Internal != nil {
		if errors.As(he.Internal, &ute) && ute.Field != "" {
			return models.FieldError{Field: ute.Field, Message: fieldTypeMessage(ute.Field)}
		}
	}
	if errors.As(err, &ute) && ute.Field != "" {
		return models.FieldError{Field: ute.Field, Message: fieldTypeMessage(ute.Field)}
	}
	return models.FieldError{Field: "body", Message: "Request body must be a JSON booking object."}
}

func fieldTypeMessage(field string) string {
	if field == "quantity" {
		return models.ErrQuantityRange.Error()
	}
	return "Field " + field + " has an invalid type."
}
