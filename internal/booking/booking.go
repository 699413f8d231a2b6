// Package booking implements the mock booking submission endpoint logic:
// request validation, simulated processing latency, a random failure draw
// and booking identifier generation.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dharmasatrya/ticketstore/internal/models"
)

const (
	MessageInvalidData     = "Invalid submitted data."
	MessageBooked          = "Your booking has been successfully registered."
	MessageSimulatedFailed = "Internal server error while processing booking. Please try again later."
)

var ErrSimulatedFailure = errors.New("simulated booking processing error")

// InvalidRequestError carries every field violation of a rejected request.
type InvalidRequestError struct {
	Fields []models.FieldError
}

func (e *InvalidRequestError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "invalid booking request: " + strings.Join(parts, "; ")
}

// RandomSource yields draws in [0, 1).
type RandomSource interface {
	Float64() float64
}

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

// NewRandomSource returns a goroutine-safe source seeded from the clock.
func NewRandomSource() RandomSource {
	return &lockedRand{r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

type Config struct {
	// Delay simulates the time taken to process a booking.
	Delay time.Duration
	// FailureRate is the probability of a simulated server error.
	FailureRate float64
}

func DefaultConfig() Config {
	return Config{
		Delay:       1500 * time.Millisecond,
		FailureRate: 0.05,
	}
}

type Service struct {
	config Config
	random RandomSource
	now    func() time.Time
}

type Option func(*Service)

func WithRandomSource(r RandomSource) Option {
	return func(s *Service) { s.random = r }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(config Config, opts ...Option) *Service {
	s := &Service{
		config: config,
		random: NewRandomSource(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Book validates req, waits out the processing delay, then either fails
// with ErrSimulatedFailure or returns a confirmation. Validation failures
// return *InvalidRequestError without any delay.
func (s *Service) Book(ctx context.Context, req models.BookingRequest) (*models.BookingResponse, error) {
	if fields := req.Validate(); len(fields) > 0 {
		return nil, &InvalidRequestError{Fields: fields}
	}

	log.Printf("Received booking for ticket %s (%s) x%d", req.TicketID, req.TicketType, req.Quantity)

	if s.config.Delay > 0 {
		select {
		case <-time.After(s.config.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if s.random.Float64() < s.config.FailureRate {
		log.Printf("Simulated booking processing error for ticket %s", req.TicketID)
		return nil, ErrSimulatedFailure
	}

	id := NewBookingID(s.now())
	log.Printf("Booking successful. Booking ID: %s", id)

	return &models.BookingResponse{
		Message:        MessageBooked,
		BookingID:      id,
		BookingDetails: req,
	}, nil
}

// NewBookingID returns "BKNG-<unix millis>-<5 random uppercase chars>".
func NewBookingID(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:5])
	return fmt.Sprintf("BKNG-%d-%s", now.UnixMilli(), suffix)
}
