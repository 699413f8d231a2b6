package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/ticketstore/internal/models"
	"github.com/dharmasatrya/ticketstore/internal/timezone"
)

var fixedNow = time.Date(2026, 5, 10, 6, 0, 0, 0, time.UTC)

func testOptions() Options {
	return Options{
		Now:     func() time.Time { return fixedNow },
		Latency: NoLatency,
	}
}

func TestNewAll(t *testing.T) {
	catalogs, err := NewAll(testOptions())
	require.NoError(t, err)
	require.Len(t, catalogs, 3)

	wantTypes := []models.TicketType{models.TicketTypeFlight, models.TicketTypeTrain, models.TicketTypeBus}
	for i, c := range catalogs {
		assert.Equal(t, wantTypes[i], c.Type())

		tickets, err := c.List(context.Background())
		require.NoError(t, err)
		assert.NotEmpty(t, tickets, c.Name())
		for _, tk := range tickets {
			assert.Equal(t, c.Type(), tk.Type)
			assert.NoError(t, tk.Validate())
		}
	}
}

func TestFlightCatalogGet(t *testing.T) {
	c, err := NewFlightCatalog(testOptions())
	require.NoError(t, err)

	got, err := c.Get(context.Background(), "f123")
	require.NoError(t, err)

	assert.Equal(t, "Tehran (THR)", got.Origin)
	assert.Equal(t, "Mashhad (MHD)", got.Destination)
	assert.Equal(t, 1500000.0, got.Price)
	assert.Equal(t, "Toman", got.Currency)
	assert.Equal(t, "Iran Air", got.CompanyName)
	assert.Equal(t, "IR456", got.FlightNumber)
	assert.Equal(t, "A5", got.Gate)
	assert.Equal(t, "1,500,000 Toman", got.FormattedPrice)
	assert.Equal(t, 120, got.DurationMinutes)

	wantDeparture := time.Date(2026, 5, 12, 8, 30, 0, 0, timezone.IRST)
	assert.True(t, wantDeparture.Equal(got.DepartureTime))
	assert.Equal(t, time.UTC, got.DepartureTime.Location())
	assert.Equal(t, 2*time.Hour, got.Duration())
}

func TestFlightWithoutGate(t *testing.T) {
	c, err := NewFlightCatalog(testOptions())
	require.NoError(t, err)

	got, err := c.Get(context.Background(), "f456")
	require.NoError(t, err)
	assert.Empty(t, got.Gate)
}

func TestGetUnknownID(t *testing.T) {
	c, err := NewTrainCatalog(testOptions())
	require.NoError(t, err)

	_, err = c.Get(context.Background(), "t0000")
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestTrainAndBusNormalization(t *testing.T) {
	trains, err := NewTrainCatalog(testOptions())
	require.NoError(t, err)
	train, err := trains.Get(context.Background(), "t789")
	require.NoError(t, err)
	assert.Equal(t, "Tehran", train.Origin)
	assert.Equal(t, "Yazd", train.Destination)
	assert.Equal(t, "T101", train.TrainNumber)
	assert.Equal(t, "4-Bed Special", train.SeatClass)
	assert.Empty(t, train.FlightNumber)

	buses, err := NewBusCatalog(testOptions())
	require.NoError(t, err)
	bus, err := buses.Get(context.Background(), "b101")
	require.NoError(t, err)
	assert.Equal(t, "Isfahan (Kaveh Terminal)", bus.Origin)
	assert.Equal(t, "Shiraz (Karandish Terminal)", bus.Destination)
	assert.Equal(t, "VIP 25-Seater", bus.BusType)
	assert.Equal(t, "7", bus.Platform)

	noPlatform, err := buses.Get(context.Background(), "b202")
	require.NoError(t, err)
	assert.Empty(t, noPlatform.Platform)
}

func TestListReturnsCopy(t *testing.T) {
	c, err := NewBusCatalog(testOptions())
	require.NoError(t, err)

	first, err := c.List(context.Background())
	require.NoError(t, err)
	first[0].Price = 1

	second, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 350000.0, second[0].Price)
}

func TestListHonorsContext(t *testing.T) {
	opts := testOptions()
	opts.Latency = func() time.Duration { return time.Second }
	c, err := NewFlightCatalog(opts)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = c.List(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))

	var catErr *CatalogError
	require.ErrorAs(t, err, &catErr)
	assert.Equal(t, "flights", catErr.Catalog)
}

func TestMalformedFixtures(t *testing.T) {
	_, err := newFlightCatalog([]byte(`{"flights": [`), testOptions())
	assert.Error(t, err)

	bad := []byte(`{"flights": [{"id": "f1", "departs": {"days": 1, "at": "08:00"}, "duration_minutes": 60, "fare": {"amount": 0, "currency": "Toman"}, "flight_number": "X1"}]}`)
	_, err = newFlightCatalog(bad, testOptions())
	assert.ErrorIs(t, err, models.ErrTicketBadPrice)
}
