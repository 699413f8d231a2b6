package catalog

import (
	"encoding/json"

	"github.com/dharmasatrya/ticketstore/internal/catalog/data"
	"github.com/dharmasatrya/ticketstore/internal/models"
)

type busesFile struct {
	Buses []busFixture `json:"buses"`
}

type busFixture struct {
	ID              string           `json:"id"`
	Origin          busStop          `json:"origin"`
	Destination     busStop          `json:"destination"`
	Departs         fixtureDeparture `json:"departs"`
	DurationMinutes int              `json:"duration_minutes"`
	Fare            fixtureFare      `json:"fare"`
	Company         string           `json:"company"`
	BusType         string           `json:"bus_type"`
	Platform        string           `json:"platform"`
}

type busStop struct {
	City     string `json:"city"`
	Terminal string `json:"terminal"`
}

// String renders "City (Terminal)".
func (s busStop) String() string {
	if s.Terminal == "" {
		return s.City
	}
	return s.City + " (" + s.Terminal + ")"
}

type BusCatalog struct {
	fixtureSet
}

func NewBusCatalog(opts Options) (*BusCatalog, error) {
	opts = opts.withDefaults()

	var file busesFile
	if err := json.Unmarshal(data.BusesData, &file); err != nil {
		return nil, NewCatalogError("buses", err)
	}

	c := &BusCatalog{fixtureSet{name: "buses", latency: opts.Latency}}
	for _, f := range file.Buses {
		t, err := c.normalize(f, opts)
		if err != nil {
			return nil, NewCatalogError(c.name, err)
		}
		c.tickets = append(c.tickets, t)
	}
	return c, nil
}

func (c *BusCatalog) Type() models.TicketType {
	return models.TicketTypeBus
}

func (c *BusCatalog) normalize(f busFixture, opts Options) (models.Ticket, error) {
	dep, arr, err := schedule(opts, f.Departs, f.DurationMinutes)
	if err != nil {
		return models.Ticket{}, err
	}

	return finish(models.Ticket{
		ID:            f.ID,
		Type:          models.TicketTypeBus,
		Origin:        f.Origin.String(),
		Destination:   f.Destination.String(),
		DepartureTime: dep,
		ArrivalTime:   arr,
		Price:         f.Fare.Amount,
		Currency:      f.Fare.Currency,
		CompanyName:   f.Company,
		BusType:       f.BusType,
		Platform:      f.Platform,
	})
}
