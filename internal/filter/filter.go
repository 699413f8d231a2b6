package filter

import (
	"sort"
	"strings"
	"time"

	"github.com/dharmasatrya/ticketstore/internal/models"
	"github.com/dharmasatrya/ticketstore/internal/ranking"
	"github.com/dharmasatrya/ticketstore/internal/timezone"
)

// Apply filters and sorts tickets. An empty sortBy keeps the input order.
// Clock-time filters are evaluated in loc.
func Apply(tickets []models.Ticket, filters *models.TicketFilters, sortBy, sortOrder string, loc *time.Location) []models.Ticket {
	if loc == nil {
		loc = timezone.IRST
	}

	filtered := applyFilters(tickets, filters, loc)

	if strings.EqualFold(sortBy, "best_value") {
		filtered = ranking.CalculateScores(filtered)
	}

	return applySort(filtered, sortBy, sortOrder)
}

func applyFilters(tickets []models.Ticket, filters *models.TicketFilters, loc *time.Location) []models.Ticket {
	result := make([]models.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if filters.Empty() || matchesFilters(t, filters, loc) {
			result = append(result, t)
		}
	}
	return result
}

func matchesFilters(t models.Ticket, filters *models.TicketFilters, loc *time.Location) bool {
	if filters.Origin != "" && !containsFold(t.Origin, filters.Origin) {
		return false
	}
	if filters.Destination != "" && !containsFold(t.Destination, filters.Destination) {
		return false
	}
	if filters.Company != "" && !containsFold(t.CompanyName, filters.Company) {
		return false
	}

	if filters.PriceMin != nil && t.Price < *filters.PriceMin {
		return false
	}
	if filters.PriceMax != nil && t.Price > *filters.PriceMax {
		return false
	}

	if filters.DepartureAfter != nil {
		minTime, err := timezone.ParseClock(*filters.DepartureAfter)
		if err == nil && timezone.MinuteOfDay(t.DepartureTime, loc) < minTime {
			return false
		}
	}
	if filters.DepartureBefore != nil {
		maxTime, err := timezone.ParseClock(*filters.DepartureBefore)
		if err == nil && timezone.MinuteOfDay(t.DepartureTime, loc) > maxTime {
			return false
		}
	}

	if filters.MaxDuration != nil && t.Duration().Minutes() > float64(*filters.MaxDuration) {
		return false
	}

	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func applySort(tickets []models.Ticket, sortBy, sortOrder string) []models.Ticket {
	if len(tickets) == 0 {
		return tickets
	}

	ascending := strings.ToLower(sortOrder) != "desc"

	var less func(a, b models.Ticket) bool
	switch strings.ToLower(sortBy) {
	case "price":
		less = func(a, b models.Ticket) bool { return a.Price < b.Price }
	case "departure":
		less = func(a, b models.Ticket) bool { return a.DepartureTime.Before(b.DepartureTime) }
	case "arrival":
		less = func(a, b models.Ticket) bool { return a.ArrivalTime.Before(b.ArrivalTime) }
	case "duration":
		less = func(a, b models.Ticket) bool { return a.Duration() < b.Duration() }
	case "best_value":
		less = func(a, b models.Ticket) bool { return a.BestValueScore < b.BestValueScore }
	default:
		return tickets
	}

	sort.SliceStable(tickets, func(i, j int) bool {
		if ascending {
			return less(tickets[i], tickets[j])
		}
		return less(tickets[j], tickets[i])
	})

	return tickets
}

// ValidSort reports whether sortBy names a supported order. Empty is valid.
func ValidSort(sortBy string) bool {
	switch strings.ToLower(sortBy) {
	case "", "price", "departure", "arrival", "duration", "best_value":
		return true
	}
	return false
}
