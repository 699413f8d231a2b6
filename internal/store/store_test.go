package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/ticketstore/internal/client"
	"github.com/dharmasatrya/ticketstore/internal/models"
)

type fakeSubmitter struct {
	mu       sync.Mutex
	requests []models.BookingRequest

	resp *models.BookingResponse
	err  error
	// release, when set, blocks each call until a value is received
	release chan struct{}
	started chan struct{}
}

func (f *fakeSubmitter) SubmitBooking(ctx context.Context, req models.BookingRequest) (*models.BookingResponse, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	return f.resp, f.err
}

func (f *fakeSubmitter) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func succeeding() *fakeSubmitter {
	return &fakeSubmitter{resp: &models.BookingResponse{BookingID: "BKNG-1-ABCDE"}}
}

func flightTicket() models.Ticket {
	dep := time.Date(2026, 6, 1, 5, 0, 0, 0, time.UTC)
	return models.Ticket{
		ID:            "f123",
		Type:          models.TicketTypeFlight,
		Origin:        "Tehran (THR)",
		Destination:   "Mashhad (MHD)",
		DepartureTime: dep,
		ArrivalTime:   dep.Add(2 * time.Hour),
		Price:         1500000,
		Currency:      "Toman",
		CompanyName:   "Iran Air",
		FlightNumber:  "IR456",
	}
}

var ada = UserInfo{Name: "Ada", Email: "ada@example.com"}

func TestInitialState(t *testing.T) {
	s := New(succeeding())
	assert.Equal(t, State{Quantity: 1, Status: StatusIdle}, s.Snapshot())
}

func TestSubmitWithoutTicketFailsLocally(t *testing.T) {
	sub := succeeding()
	s := New(sub)
	s.UpdateUserInfo(ada)

	require.NoError(t, s.SubmitBooking(context.Background()))

	st := s.Snapshot()
	assert.Equal(t, StatusFailed, st.Status)
	assert.Equal(t, MessageIncomplete, st.Error)
	assert.Zero(t, sub.calls())
}

func TestSubmitWithoutUserInfoFailsLocally(t *testing.T) {
	sub := succeeding()
	s := New(sub)
	s.SetTicketForBooking(flightTicket(), 2)

	require.NoError(t, s.SubmitBooking(context.Background()))

	st := s.Snapshot()
	assert.Equal(t, StatusFailed, st.Status)
	assert.Contains(t, st.Error, "incomplete")
	assert.Zero(t, sub.calls())
}

func TestSubmitWithZeroQuantityFailsLocally(t *testing.T) {
	sub := succeeding()
	s := New(sub)
	s.SetTicketForBooking(flightTicket(), 0)
	s.UpdateUserInfo(ada)

	require.NoError(t, s.SubmitBooking(context.Background()))

	assert.Equal(t, StatusFailed, s.Snapshot().Status)
	assert.Zero(t, sub.calls())
}

func TestSubmitSuccess(t *testing.T) {
	sub := succeeding()
	s := New(sub)
	s.SetTicketForBooking(flightTicket(), 2)
	s.UpdateUserInfo(ada)

	require.NoError(t, s.SubmitBooking(context.Background()))

	st := s.Snapshot()
	assert.Equal(t, StatusSucceeded, st.Status)
	assert.Empty(t, st.Error)
	assert.Equal(t, "BKNG-1-ABCDE", st.BookingID)

	require.Equal(t, 1, sub.calls())
	assert.Equal(t, models.BookingRequest{
		TicketID:    "f123",
		TicketType:  models.TicketTypeFlight,
		CompanyName: "Iran Air",
		Origin:      "Tehran (THR)",
		Destination: "Mashhad (MHD)",
		Quantity:    2,
		UserName:    "Ada",
		UserEmail:   "ada@example.com",
		TotalPrice:  3000000,
	}, sub.requests[0])
}

func TestSubmitFailureMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "server message",
			err:  &client.APIError{StatusCode: 500, Message: "Internal server error while processing booking. Please try again later."},
			want: "Error in booking registration: Internal server error while processing booking. Please try again later.",
		},
		{
			name: "validation errors",
			err: &client.APIError{StatusCode: 400, Message: "Invalid submitted data.", Errors: []models.FieldError{
				{Field: "quantity", Message: "Ticket quantity must be between 1 and 10."},
			}},
			want: "Error in booking registration: Invalid submitted data. Ticket quantity must be between 1 and 10.",
		},
		{
			name: "no message",
			err:  &client.APIError{StatusCode: 502},
			want: "Error in booking registration: Server responded with 502",
		},
		{
			name: "transport failure",
			err:  &client.TransportError{Op: "POST /api/booking", Err: errors.New("connection refused")},
			want: "Error in booking registration: unable to reach booking service",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(&fakeSubmitter{err: tt.err})
			s.SetTicketForBooking(flightTicket(), 1)
			s.UpdateUserInfo(ada)

			require.NoError(t, s.SubmitBooking(context.Background()))

			st := s.Snapshot()
			assert.Equal(t, StatusFailed, st.Status)
			assert.Equal(t, tt.want, st.Error)
		})
	}
}

func TestResubmitAfterFailureRevalidates(t *testing.T) {
	sub := &fakeSubmitter{err: &client.APIError{StatusCode: 500, Message: "boom"}}
	s := New(sub)
	s.SetTicketForBooking(flightTicket(), 1)
	s.UpdateUserInfo(ada)
	require.NoError(t, s.SubmitBooking(context.Background()))
	require.Equal(t, StatusFailed, s.Snapshot().Status)

	sub.err = nil
	sub.resp = &models.BookingResponse{BookingID: "BKNG-2-XYZ12"}
	require.NoError(t, s.SubmitBooking(context.Background()))

	st := s.Snapshot()
	assert.Equal(t, StatusSucceeded, st.Status)
	assert.Empty(t, st.Error)
	assert.Equal(t, 2, sub.calls())
}

func TestSetTicketResetsStatus(t *testing.T) {
	s := New(succeeding())
	s.SetTicketForBooking(flightTicket(), 1)
	s.UpdateUserInfo(ada)
	require.NoError(t, s.SubmitBooking(context.Background()))
	require.Equal(t, StatusSucceeded, s.Snapshot().Status)

	next := flightTicket()
	next.ID = "f456"
	s.SetTicketForBooking(next, 3)

	st := s.Snapshot()
	assert.Equal(t, StatusIdle, st.Status)
	assert.Empty(t, st.Error)
	assert.Empty(t, st.BookingID)
	assert.Equal(t, "f456", st.Ticket.ID)
	assert.Equal(t, 3, st.Quantity)
	assert.Equal(t, &ada, st.UserInfo, "user info survives a ticket change")
}

func TestSetTicketClearsFailure(t *testing.T) {
	s := New(succeeding())
	require.NoError(t, s.SubmitBooking(context.Background()))
	require.Equal(t, StatusFailed, s.Snapshot().Status)

	s.SetTicketForBooking(flightTicket(), 1)
	st := s.Snapshot()
	assert.Equal(t, StatusIdle, st.Status)
	assert.Empty(t, st.Error)
}

func TestResetIsIdempotent(t *testing.T) {
	s := New(succeeding())
	s.SetTicketForBooking(flightTicket(), 4)
	s.UpdateUserInfo(ada)
	require.NoError(t, s.SubmitBooking(context.Background()))

	s.ResetBookingState()
	once := s.Snapshot()
	s.ResetBookingState()
	twice := s.Snapshot()

	assert.Equal(t, once, twice)
	assert.Equal(t, State{Quantity: 1, Status: StatusIdle}, twice)
}

func TestSubmitWhileLoadingIsRejected(t *testing.T) {
	sub := succeeding()
	sub.release = make(chan struct{})
	sub.started = make(chan struct{}, 1)
	s := New(sub)
	s.SetTicketForBooking(flightTicket(), 1)
	s.UpdateUserInfo(ada)

	done := make(chan error, 1)
	go func() { done <- s.SubmitBooking(context.Background()) }()
	<-sub.started

	assert.Equal(t, StatusLoading, s.Snapshot().Status)
	assert.ErrorIs(t, s.SubmitBooking(context.Background()), ErrSubmissionInProgress)

	close(sub.release)
	require.NoError(t, <-done)

	assert.Equal(t, StatusSucceeded, s.Snapshot().Status)
	assert.Equal(t, 1, sub.calls())
}

func TestResponseForReplacedAttemptIsDropped(t *testing.T) {
	sub := succeeding()
	sub.release = make(chan struct{})
	sub.started = make(chan struct{}, 1)
	s := New(sub)
	s.SetTicketForBooking(flightTicket(), 1)
	s.UpdateUserInfo(ada)

	done := make(chan error, 1)
	go func() { done <- s.SubmitBooking(context.Background()) }()
	<-sub.started

	next := flightTicket()
	next.ID = "f789"
	s.SetTicketForBooking(next, 2)

	close(sub.release)
	require.NoError(t, <-done)

	st := s.Snapshot()
	assert.Equal(t, StatusIdle, st.Status)
	assert.Equal(t, "f789", st.Ticket.ID)
	assert.Empty(t, st.BookingID)
}

func TestSnapshotIsACopy(t *testing.T) {
	s := New(succeeding())
	s.SetTicketForBooking(flightTicket(), 1)
	s.UpdateUserInfo(ada)

	st := s.Snapshot()
	st.Ticket.Price = 1
	st.UserInfo.Name = "Mallory"

	again := s.Snapshot()
	assert.Equal(t, 1500000.0, again.Ticket.Price)
	assert.Equal(t, "Ada", again.UserInfo.Name)
}

func TestSubscribe(t *testing.T) {
	s := New(succeeding())

	var statuses []Status
	unsubscribe := s.Subscribe(func(st State) { statuses = append(statuses, st.Status) })

	s.SetTicketForBooking(flightTicket(), 1)
	s.UpdateUserInfo(ada)
	require.NoError(t, s.SubmitBooking(context.Background()))

	assert.Equal(t, []Status{StatusIdle, StatusIdle, StatusLoading, StatusSucceeded}, statuses)

	unsubscribe()
	s.ResetBookingState()
	assert.Len(t, statuses, 4)
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, StatusSucceeded.Terminal())
	assert.True(t, StatusFailed.Terminal())
	assert.False(t, StatusIdle.Terminal())
	assert.False(t, StatusLoading.Terminal())
}
