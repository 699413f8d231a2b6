package models

import (
	"errors"
	"fmt"
	"time"
)

type TicketType string

const (
	TicketTypeFlight TicketType = "flight"
	TicketTypeTrain  TicketType = "train"
	TicketTypeBus    TicketType = "bus"
)

// TicketTypes lists every variant in display order.
var TicketTypes = []TicketType{TicketTypeFlight, TicketTypeTrain, TicketTypeBus}

func ParseTicketType(s string) (TicketType, error) {
	switch TicketType(s) {
	case TicketTypeFlight, TicketTypeTrain, TicketTypeBus:
		return TicketType(s), nil
	}
	return "", fmt.Errorf("unknown ticket type %q", s)
}

// Label is the capitalized variant name used in user-facing messages.
func (t TicketType) Label() string {
	switch t {
	case TicketTypeFlight:
		return "Flight"
	case TicketTypeTrain:
		return "Train"
	case TicketTypeBus:
		return "Bus"
	}
	return string(t)
}

// Collection is the plural path segment serving this variant.
func (t TicketType) Collection() string {
	if t == TicketTypeBus {
		return "buses"
	}
	return string(t) + "s"
}

// Ticket is a bookable leg. Type decides which of the variant fields are set.
type Ticket struct {
	ID              string     `json:"id"`
	Type            TicketType `json:"type"`
	Origin          string     `json:"origin"`
	Destination     string     `json:"destination"`
	DepartureTime   time.Time  `json:"departureTime"`
	ArrivalTime     time.Time  `json:"arrivalTime"`
	Price           float64    `json:"price"`
	Currency        string     `json:"currency"`
	CompanyName     string     `json:"companyName"`
	FormattedPrice  string     `json:"formattedPrice,omitempty"`
	DurationMinutes int        `json:"durationMinutes,omitempty"`
	BestValueScore  float64    `json:"bestValueScore,omitempty"`

	// flight
	FlightNumber string `json:"flightNumber,omitempty"`
	Gate         string `json:"gate,omitempty"`

	// train
	TrainNumber string `json:"trainNumber,omitempty"`
	SeatClass   string `json:"seatClass,omitempty"`

	// bus
	BusType  string `json:"busType,omitempty"`
	Platform string `json:"platform,omitempty"`
}

var (
	ErrTicketMissingID   = errors.New("ticket id is required")
	ErrTicketBadPrice    = errors.New("ticket price must be positive")
	ErrTicketBadSchedule = errors.New("ticket arrival must not be before departure")
)

// Validate checks the common fields and that only the fields of the tagged
// variant are populated.
func (t Ticket) Validate() error {
	if t.ID == "" {
		return ErrTicketMissingID
	}
	if t.Price <= 0 {
		return ErrTicketBadPrice
	}
	if t.ArrivalTime.Before(t.DepartureTime) {
		return ErrTicketBadSchedule
	}

	hasFlight := t.FlightNumber != "" || t.Gate != ""
	hasTrain := t.TrainNumber != "" || t.SeatClass != ""
	hasBus := t.BusType != "" || t.Platform != ""

	switch t.Type {
	case TicketTypeFlight:
		if t.FlightNumber == "" || hasTrain || hasBus {
			return fmt.Errorf("ticket %s: flight must carry only flight fields", t.ID)
		}
	case TicketTypeTrain:
		if t.TrainNumber == "" || t.SeatClass == "" || hasFlight || hasBus {
			return fmt.Errorf("ticket %s: train must carry only train fields", t.ID)
		}
	case TicketTypeBus:
		if t.BusType == "" || hasFlight || hasTrain {
			return fmt.Errorf("ticket %s: bus must carry only bus fields", t.ID)
		}
	default:
		return fmt.Errorf("ticket %s: unknown type %q", t.ID, t.Type)
	}
	return nil
}

// Duration is the scheduled travel time.
func (t Ticket) Duration() time.Duration {
	return t.ArrivalTime.Sub(t.DepartureTime)
}
