package catalog

import (
	"encoding/json"

	"github.com/dharmasatrya/ticketstore/internal/catalog/data"
	"github.com/dharmasatrya/ticketstore/internal/models"
)

type flightsFile struct {
	Flights []flightFixture `json:"flights"`
}

type flightFixture struct {
	ID              string           `json:"id"`
	Origin          string           `json:"origin"`
	Destination     string           `json:"destination"`
	Departs         fixtureDeparture `json:"departs"`
	DurationMinutes int              `json:"duration_minutes"`
	Fare            fixtureFare      `json:"fare"`
	Airline         string           `json:"airline"`
	FlightNumber    string           `json:"flight_number"`
	Gate            string           `json:"gate"`
}

type FlightCatalog struct {
	fixtureSet
}

func NewFlightCatalog(opts Options) (*FlightCatalog, error) {
	return newFlightCatalog(data.FlightsData, opts)
}

func newFlightCatalog(raw []byte, opts Options) (*FlightCatalog, error) {
	opts = opts.withDefaults()

	var file flightsFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, NewCatalogError("flights", err)
	}

	c := &FlightCatalog{fixtureSet{name: "flights", latency: opts.Latency}}
	for _, f := range file.Flights {
		t, err := c.normalize(f, opts)
		if err != nil {
			return nil, NewCatalogError(c.name, err)
		}
		c.tickets = append(c.tickets, t)
	}
	return c, nil
}

func (c *FlightCatalog) Type() models.TicketType {
	return models.TicketTypeFlight
}

func (c *FlightCatalog) normalize(f flightFixture, opts Options) (models.Ticket, error) {
	dep, arr, err := schedule(opts, f.Departs, f.DurationMinutes)
	if err != nil {
		return models.Ticket{}, err
	}

	return finish(models.Ticket{
		ID:            f.ID,
		Type:          models.TicketTypeFlight,
		Origin:        f.Origin,
		Destination:   f.Destination,
		DepartureTime: dep,
		ArrivalTime:   arr,
		Price:         f.Fare.Amount,
		Currency:      f.Fare.Currency,
		CompanyName:   f.Airline,
		FlightNumber:  f.FlightNumber,
		Gate:          f.Gate,
	})
}
