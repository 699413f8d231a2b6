package catalog

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/dharmasatrya/ticketstore/internal/models"
	"github.com/dharmasatrya/ticketstore/internal/timezone"
	"github.com/dharmasatrya/ticketstore/pkg/currency"
)

// Catalog serves the fixture tickets of one variant.
type Catalog interface {
	Name() string
	Type() models.TicketType
	List(ctx context.Context) ([]models.Ticket, error)
	Get(ctx context.Context, id string) (models.Ticket, error)
}

var ErrTicketNotFound = errors.New("ticket not found")

type CatalogError struct {
	Catalog string
	Err     error
}

func (e *CatalogError) Error() string {
	return e.Catalog + ": " + e.Err.Error()
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}

func NewCatalogError(catalog string, err error) *CatalogError {
	return &CatalogError{
		Catalog: catalog,
		Err:     err,
	}
}

type Options struct {
	// Now anchors the relative fixture schedule. Defaults to time.Now.
	Now func() time.Time
	// Location is the zone fixture clock times are written in.
	Location *time.Location
	// Latency returns the simulated lookup delay. Defaults to 50-100ms.
	Latency func() time.Duration
}

func (o Options) withDefaults() Options {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Location == nil {
		o.Location = timezone.IRST
	}
	if o.Latency == nil {
		o.Latency = func() time.Duration {
			return time.Duration(50+rand.Intn(50)) * time.Millisecond
		}
	}
	return o
}

// NoLatency disables the simulated lookup delay.
func NoLatency() time.Duration { return 0 }

type fixtureDeparture struct {
	Days int    `json:"days"`
	At   string `json:"at"`
}

type fixtureFare struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// fixtureSet holds normalized tickets in fixture order.
type fixtureSet struct {
	name    string
	tickets []models.Ticket
	latency func() time.Duration
}

func (s *fixtureSet) Name() string {
	return s.name
}

func (s *fixtureSet) List(ctx context.Context) ([]models.Ticket, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	out := make([]models.Ticket, len(s.tickets))
	copy(out, s.tickets)
	return out, nil
}

func (s *fixtureSet) Get(ctx context.Context, id string) (models.Ticket, error) {
	if err := s.wait(ctx); err != nil {
		return models.Ticket{}, err
	}
	for _, t := range s.tickets {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Ticket{}, ErrTicketNotFound
}

func (s *fixtureSet) wait(ctx context.Context) error {
	delay := s.latency()
	if delay <= 0 {
		if err := ctx.Err(); err != nil {
			return NewCatalogError(s.name, err)
		}
		return nil
	}
	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return NewCatalogError(s.name, ctx.Err())
	}
}

// schedule resolves a fixture departure and duration into absolute times.
func schedule(opts Options, dep fixtureDeparture, durationMinutes int) (time.Time, time.Time, error) {
	departure, err := timezone.Resolve(opts.Now(), dep.Days, dep.At, opts.Location)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	departure = departure.UTC()
	arrival := departure.Add(time.Duration(durationMinutes) * time.Minute)
	return departure, arrival, nil
}

func finish(t models.Ticket) (models.Ticket, error) {
	t.FormattedPrice = currency.Format(t.Price, t.Currency)
	t.DurationMinutes = int(t.Duration().Minutes())
	if err := t.Validate(); err != nil {
		return models.Ticket{}, err
	}
	return t, nil
}
