package aggregator

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/dharmasatrya/ticketstore/internal/cache"
	"github.com/dharmasatrya/ticketstore/internal/catalog"
	"github.com/dharmasatrya/ticketstore/internal/models"
	"github.com/dharmasatrya/ticketstore/internal/ratelimit"
)

type Config struct {
	Timeout     time.Duration
	MaxRetries  int
	RetryDelays []time.Duration
	RateLimiter *ratelimit.KeyedLimiter
	Cache       cache.Cache
}

type Aggregator struct {
	catalogs []catalog.Catalog
	config   Config
}

type Result struct {
	Tickets           []models.Ticket
	CatalogsQueried   int
	CatalogsSucceeded int
	CatalogsFailed    int
	FailedCatalogs    []string
	CacheHit          bool
}

func NewAggregator(catalogs []catalog.Catalog, config Config) *Aggregator {
	if config.Cache == nil {
		config.Cache = cache.NewNoOpCache()
	}
	return &Aggregator{
		catalogs: catalogs,
		config:   config,
	}
}

// Search lists every catalog whose type is in kinds (all when kinds is
// empty) concurrently. A failing catalog is reported in the result, not
// returned as an error. Tickets keep catalog order.
func (a *Aggregator) Search(ctx context.Context, kinds []models.TicketType) (*Result, error) {
	searchCtx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()

	selected := a.selectCatalogs(kinds)
	result := &Result{
		Tickets:         make([]models.Ticket, 0),
		CatalogsQueried: len(selected),
		CacheHit:        len(selected) > 0,
	}

	type catalogResult struct {
		catalog  string
		tickets  []models.Ticket
		cacheHit bool
		err      error
	}

	results := make([]catalogResult, len(selected))
	var wg sync.WaitGroup

	for i, c := range selected {
		wg.Add(1)
		go func(i int, c catalog.Catalog) {
			defer wg.Done()

			if cached, found := a.config.Cache.Get(searchCtx, c.Type()); found {
				results[i] = catalogResult{catalog: c.Name(), tickets: cached, cacheHit: true}
				return
			}

			if a.config.RateLimiter != nil {
				if err := a.config.RateLimiter.Wait(searchCtx, c.Name()); err != nil {
					results[i] = catalogResult{catalog: c.Name(), err: err}
					return
				}
			}

			tickets, err := a.listWithRetry(searchCtx, c)
			if err == nil {
				if setErr := a.config.Cache.Set(searchCtx, c.Type(), tickets); setErr != nil {
					log.Printf("Cache write for %s failed: %v", c.Name(), setErr)
				}
			}
			results[i] = catalogResult{catalog: c.Name(), tickets: tickets, err: err}
		}(i, c)
	}

	wg.Wait()

	for _, cr := range results {
		if cr.err != nil {
			log.Printf("Catalog %s failed: %v", cr.catalog, cr.err)
			result.CatalogsFailed++
			result.FailedCatalogs = append(result.FailedCatalogs, cr.catalog)
			result.CacheHit = false
			continue
		}
		result.CatalogsSucceeded++
		result.Tickets = append(result.Tickets, cr.tickets...)
		if !cr.cacheHit {
			result.CacheHit = false
		}
	}

	return result, nil
}

func (a *Aggregator) selectCatalogs(kinds []models.TicketType) []catalog.Catalog {
	if len(kinds) == 0 {
		return a.catalogs
	}
	want := make(map[models.TicketType]bool, len(kinds))
	for _, k := range kinds {
		want[k] = true
	}
	var selected []catalog.Catalog
	for _, c := range a.catalogs {
		if want[c.Type()] {
			selected = append(selected, c)
		}
	}
	return selected
}

func (a *Aggregator) listWithRetry(ctx context.Context, c catalog.Catalog) ([]models.Ticket, error) {
	var lastErr error

	for attempt := 0; attempt <= a.config.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if attempt > 0 && len(a.config.RetryDelays) > 0 {
			delayIdx := attempt - 1
			if delayIdx >= len(a.config.RetryDelays) {
				delayIdx = len(a.config.RetryDelays) - 1
			}
			delay := a.config.RetryDelays[delayIdx]

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		tickets, err := c.List(ctx)
		if err == nil {
			return tickets, nil
		}

		lastErr = err
		log.Printf("Catalog %s attempt %d failed: %v", c.Name(), attempt+1, err)
	}

	return nil, lastErr
}
