package ranking

import (
	"math"

	"github.com/dharmasatrya/ticketstore/internal/models"
)

const (
	PriceWeight    = 0.6
	DurationWeight = 0.4
)

func CalculateScores(tickets []models.Ticket) []models.Ticket {
	if len(tickets) == 0 {
		return tickets
	}

	maxPrice := findMaxPrice(tickets)
	maxDuration := findMaxDuration(tickets)

	result := make([]models.Ticket, len(tickets))
	for i, t := range tickets {
		result[i] = t
		result[i].BestValueScore = CalculateBestValue(t, maxPrice, maxDuration)
	}

	return result
}

// Lower score = better value
func CalculateBestValue(ticket models.Ticket, maxPrice, maxDuration float64) float64 {
	priceScore := 0.0
	if maxPrice > 0 {
		priceScore = (ticket.Price / maxPrice) * 100
	}

	durationScore := 0.0
	if maxDuration > 0 {
		durationScore = (ticket.Duration().Minutes() / maxDuration) * 100
	}

	score := (priceScore * PriceWeight) + (durationScore * DurationWeight)

	return math.Round(score*100) / 100
}

func findMaxPrice(tickets []models.Ticket) float64 {
	maxPrice := 0.0
	for _, t := range tickets {
		if t.Price > maxPrice {
			maxPrice = t.Price
		}
	}
	return maxPrice
}

func findMaxDuration(tickets []models.Ticket) float64 {
	maxDuration := 0.0
	for _, t := range tickets {
		dur := t.Duration().Minutes()
		if dur > maxDuration {
			maxDuration = dur
		}
	}
	return maxDuration
}
