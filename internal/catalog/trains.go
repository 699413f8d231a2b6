package catalog

import (
	"encoding/json"

	"github.com/dharmasatrya/ticketstore/internal/catalog/data"
	"github.com/dharmasatrya/ticketstore/internal/models"
)

type trainsFile struct {
	Trains []trainFixture `json:"trains"`
}

type trainFixture struct {
	ID              string           `json:"id"`
	From            string           `json:"from"`
	To              string           `json:"to"`
	Departs         fixtureDeparture `json:"departs"`
	DurationMinutes int              `json:"duration_minutes"`
	Fare            fixtureFare      `json:"fare"`
	Operator        string           `json:"operator"`
	TrainNumber     string           `json:"train_number"`
	SeatClass       string           `json:"seat_class"`
}

type TrainCatalog struct {
	fixtureSet
}

func NewTrainCatalog(opts Options) (*TrainCatalog, error) {
	opts = opts.withDefaults()

	var file trainsFile
	if err := json.Unmarshal(data.TrainsData, &file); err != nil {
		return nil, NewCatalogError("trains", err)
	}

	c := &TrainCatalog{fixtureSet{name: "trains", latency: opts.Latency}}
	for _, f := range file.Trains {
		t, err := c.normalize(f, opts)
		if err != nil {
			return nil, NewCatalogError(c.name, err)
		}
		c.tickets = append(c.tickets, t)
	}
	return c, nil
}

func (c *TrainCatalog) Type() models.TicketType {
	return models.TicketTypeTrain
}

func (c *TrainCatalog) normalize(f trainFixture, opts Options) (models.Ticket, error) {
	dep, arr, err := schedule(opts, f.Departs, f.DurationMinutes)
	if err != nil {
		return models.Ticket{}, err
	}

	return finish(models.Ticket{
		ID:            f.ID,
		Type:          models.TicketTypeTrain,
		Origin:        f.From,
		Destination:   f.To,
		DepartureTime: dep,
		ArrivalTime:   arr,
		Price:         f.Fare.Amount,
		Currency:      f.Fare.Currency,
		CompanyName:   f.Operator,
		TrainNumber:   f.TrainNumber,
		SeatClass:     f.SeatClass,
	})
}
