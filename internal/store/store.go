// Package store holds the in-progress booking attempt of one session and
// drives its submission against the booking endpoint.
//
//	idle ──submit──► loading ──ok──► succeeded
//	  ▲                 │
//	  │                 └──error──► failed
//	  └── SetTicketForBooking / ResetBookingState
//
// An incomplete attempt goes straight from any settled status to failed
// without a request.
package store

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/dharmasatrya/ticketstore/internal/client"
	"github.com/dharmasatrya/ticketstore/internal/models"
)

type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Terminal reports whether s is succeeded or failed.
func (s Status) Terminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

const (
	MessageIncomplete = "Booking information is incomplete for server submission."

	failurePrefix      = "Error in booking registration: "
	messageUnreachable = "unable to reach booking service"
)

var ErrSubmissionInProgress = errors.New("booking submission already in progress")

type UserInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// State is a snapshot of the booking attempt.
type State struct {
	Ticket    *models.Ticket `json:"ticket"`
	Quantity  int            `json:"quantity"`
	UserInfo  *UserInfo      `json:"userInfo"`
	Status    Status         `json:"status"`
	Error     string         `json:"error,omitempty"`
	BookingID string         `json:"bookingId,omitempty"`
}

func initialState() State {
	return State{
		Quantity: 1,
		Status:   StatusIdle,
	}
}

// Submitter sends a booking request to the booking endpoint.
type Submitter interface {
	SubmitBooking(ctx context.Context, req models.BookingRequest) (*models.BookingResponse, error)
}

type Store struct {
	submitter Submitter

	mu    sync.Mutex
	state State
	// attempt increments whenever the current attempt is replaced, so a
	// response for a replaced attempt can be recognized and dropped.
	attempt   uint64
	listeners map[int]func(State)
	nextID    int
}

func New(submitter Submitter) *Store {
	return &Store{
		submitter: submitter,
		state:     initialState(),
		listeners: make(map[int]func(State)),
	}
}

func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe registers fn to receive a snapshot after every change. The
// returned func removes it.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// SetTicketForBooking starts a new attempt for ticket. Any previous attempt,
// including one still in flight, is discarded.
func (s *Store) SetTicketForBooking(ticket models.Ticket, quantity int) {
	s.update(func(st *State) {
		st.Ticket = &ticket
		st.Quantity = quantity
		st.Status = StatusIdle
		st.Error = ""
		st.BookingID = ""
		s.attempt++
	})
}

// UpdateUserInfo replaces the user info wholesale.
func (s *Store) UpdateUserInfo(info UserInfo) {
	s.update(func(st *State) {
		st.UserInfo = &info
	})
}

func (s *Store) ResetBookingState() {
	s.update(func(st *State) {
		*st = initialState()
		s.attempt++
	})
}

// SubmitBooking sends the current attempt and records the outcome in the
// state. It returns ErrSubmissionInProgress, leaving the state untouched,
// when a submission is already loading; every other outcome, including
// transport failures, is reported through Status and Error only.
func (s *Store) SubmitBooking(ctx context.Context) error {
	s.mu.Lock()
	if s.state.Status == StatusLoading {
		s.mu.Unlock()
		return ErrSubmissionInProgress
	}

	st := s.state
	if st.Ticket == nil || st.UserInfo == nil || st.Quantity < 1 {
		s.state.Status = StatusFailed
		s.state.Error = MessageIncomplete
		s.state.BookingID = ""
		s.unlockAndNotify()
		return nil
	}

	req := models.NewBookingRequest(*st.Ticket, st.Quantity, st.UserInfo.Name, st.UserInfo.Email)
	s.state.Status = StatusLoading
	s.state.Error = ""
	s.state.BookingID = ""
	s.attempt++
	attempt := s.attempt
	s.unlockAndNotify()

	resp, err := s.submitter.SubmitBooking(ctx, req)

	s.mu.Lock()
	if s.attempt != attempt {
		s.mu.Unlock()
		log.Printf("Store: dropping response for replaced booking attempt on ticket %s", req.TicketID)
		return nil
	}

	if err == nil && resp == nil {
		err = errors.New("empty booking response")
	}
	if err != nil {
		log.Printf("Store: booking submission failed: %v", err)
		s.state.Status = StatusFailed
		s.state.Error = failureMessage(err)
	} else {
		log.Printf("Store: booking successful, id %s", resp.BookingID)
		s.state.Status = StatusSucceeded
		s.state.Error = ""
		s.state.BookingID = resp.BookingID
	}
	s.unlockAndNotify()
	return nil
}

func (s *Store) update(fn func(*State)) {
	s.mu.Lock()
	fn(&s.state)
	s.unlockAndNotify()
}

// unlockAndNotify releases s.mu and then delivers the new snapshot.
func (s *Store) unlockAndNotify() {
	snapshot := s.state.clone()
	listeners := make([]func(State), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
}

func failureMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return failurePrefix + apiErr.Error()
	}
	return failurePrefix + messageUnreachable
}

func (st State) clone() State {
	out := st
	if st.Ticket != nil {
		t := *st.Ticket
		out.Ticket = &t
	}
	if st.UserInfo != nil {
		u := *st.UserInfo
		out.UserInfo = &u
	}
	return out
}
