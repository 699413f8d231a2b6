package models

import (
	"regexp"
	"strings"
)

const (
	MinQuantity = 1
	MaxQuantity = 10
)

// BookingRequest is the wire payload for POST /api/booking.
type BookingRequest struct {
	TicketID    string     `json:"ticketId"`
	TicketType  TicketType `json:"ticketType"`
	CompanyName string     `json:"companyName"`
	Origin      string     `json:"origin"`
	Destination string     `json:"destination"`
	Quantity    int        `json:"quantity"`
	UserName    string     `json:"userName"`
	UserEmail   string     `json:"userEmail"`
	TotalPrice  float64    `json:"totalPrice"`
}

// NewBookingRequest projects a ticket selection into the wire payload.
func NewBookingRequest(t Ticket, quantity int, userName, userEmail string) BookingRequest {
	return BookingRequest{
		TicketID:    t.ID,
		TicketType:  t.Type,
		CompanyName: t.CompanyName,
		Origin:      t.Origin,
		Destination: t.Destination,
		Quantity:    quantity,
		UserName:    userName,
		UserEmail:   userEmail,
		TotalPrice:  t.Price * float64(quantity),
	}
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is a field-level message.
type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrTicketIDRequired ValidationError = "Ticket ID is required."
	ErrQuantityRange    ValidationError = "Ticket quantity must be between 1 and 10."
	ErrUserNameRequired ValidationError = "User name is required."
	ErrUserEmailInvalid ValidationError = "User email is invalid."
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s has a basic local@domain.tld shape.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// Validate returns every violation in field order; nil means valid.
func (r BookingRequest) Validate() []FieldError {
	var errs []FieldError
	if r.TicketID == "" {
		errs = append(errs, FieldError{Field: "ticketId", Message: ErrTicketIDRequired.Error()})
	}
	if r.Quantity < MinQuantity || r.Quantity > MaxQuantity {
		errs = append(errs, FieldError{Field: "quantity", Message: ErrQuantityRange.Error()})
	}
	if strings.TrimSpace(r.UserName) == "" {
		errs = append(errs, FieldError{Field: "userName", Message: ErrUserNameRequired.Error()})
	}
	if !ValidEmail(r.UserEmail) {
		errs = append(errs, FieldError{Field: "userEmail", Message: ErrUserEmailInvalid.Error()})
	}
	return errs
}
