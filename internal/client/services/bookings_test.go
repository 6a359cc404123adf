package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/booking-calendar/internal/client/api"
	"github.com/example/booking-calendar/internal/client/models"
	"github.com/example/booking-calendar/internal/logging"
)

func newBookingService(gw *fakeGateway) *BookingService {
	return NewBookingService(gw, logging.NewDiscardLogger())
}

func someBooking(id int) models.Booking {
	return models.Booking{
		ID:         id,
		PartyID:    1,
		PartyName:  "Familie Weber",
		PartyColor: "#3b82f6",
		StartDate:  "2024-01-10",
		EndDate:    "2024-01-14",
	}
}

func TestLoadPartiesReplacesCollection(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{PartiesRet: []models.Party{{ID: 1, Name: "Familie Weber", Color: "#3b82f6"}}}
	svc := newBookingService(gw)

	require.NoError(t, svc.LoadParties(ctx))
	require.Len(t, svc.Parties(), 1)

	party, ok := svc.PartyByID(1)
	require.True(t, ok)
	assert.Equal(t, "Familie Weber", party.Name)

	_, ok = svc.PartyByID(99)
	assert.False(t, ok)

	gw.PartiesRet = nil
	require.NoError(t, svc.LoadParties(ctx))
	assert.Empty(t, svc.Parties())
}

func TestLoadBookingsPropagatesError(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{BookingsErr: api.ErrUnavailable}
	svc := newBookingService(gw)

	err := svc.LoadBookings(ctx)
	assert.ErrorIs(t, err, api.ErrUnavailable)
	assert.Empty(t, svc.Bookings())
}

func TestBookingsReturnsACopy(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{BookingsRet: []models.Booking{someBooking(1)}}
	svc := newBookingService(gw)
	require.NoError(t, svc.LoadBookings(ctx))

	got := svc.Bookings()
	got[0].ID = 999
	assert.Equal(t, 1, svc.Bookings()[0].ID)
}

func TestCreateBookingReloadsBeforeReturning(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{
		CreateRet:   someBooking(5),
		BookingsRet: []models.Booking{someBooking(5)},
	}
	svc := newBookingService(gw)

	created, err := svc.CreateBooking(ctx, models.BookingCreate{PartyID: 1, StartDate: "2024-01-10", EndDate: "2024-01-14"})
	require.NoError(t, err)
	assert.Equal(t, 5, created.ID)

	// The reload happened as part of the create call, so the collection
	// already reflects the change.
	assert.Equal(t, []string{"create", "bookings"}, gw.Calls)
	require.Len(t, svc.Bookings(), 1)
	assert.Equal(t, 5, svc.Bookings()[0].ID)
}

func TestCreateBookingSurfacesServerDetail(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{CreateErr: &api.RequestError{Status: 409, Detail: "Es gibt bereits eine Buchung in diesem Zeitraum"}}
	svc := newBookingService(gw)

	_, err := svc.CreateBooking(ctx, models.BookingCreate{PartyID: 1})
	require.Error(t, err)
	assert.Equal(t, "Es gibt bereits eine Buchung in diesem Zeitraum", err.Error())
	// No reload after a failed mutation.
	assert.Equal(t, []string{"create"}, gw.Calls)
}

func TestMutationFallbackMessages(t *testing.T) {
	ctx := context.Background()

	t.Run("create", func(t *testing.T) {
		gw := &fakeGateway{CreateErr: &api.RequestError{Status: 500}}
		svc := newBookingService(gw)
		_, err := svc.CreateBooking(ctx, models.BookingCreate{PartyID: 1})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Fehler beim Speichern")
	})

	t.Run("update", func(t *testing.T) {
		gw := &fakeGateway{UpdateErr: &api.RequestError{Status: 500}}
		svc := newBookingService(gw)
		_, err := svc.UpdateBooking(ctx, 1, models.BookingCreate{PartyID: 1})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Fehler beim Aktualisieren")
	})

	t.Run("delete", func(t *testing.T) {
		gw := &fakeGateway{DeleteErr: &api.RequestError{Status: 500}}
		svc := newBookingService(gw)
		err := svc.DeleteBooking(ctx, 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Fehler beim Löschen")
	})
}

func TestUpdateBookingReloads(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{
		UpdateRet:   someBooking(5),
		BookingsRet: []models.Booking{someBooking(5)},
	}
	svc := newBookingService(gw)

	updated, err := svc.UpdateBooking(ctx, 5, models.BookingCreate{PartyID: 1, StartDate: "2024-01-10", EndDate: "2024-01-14"})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.ID)
	assert.Equal(t, 5, gw.LastUpdateID)
	assert.Equal(t, []string{"update", "bookings"}, gw.Calls)
}

func TestDeleteBookingReloads(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{BookingsRet: nil}
	svc := newBookingService(gw)

	require.NoError(t, svc.DeleteBooking(ctx, 8))
	assert.Equal(t, 8, gw.LastDeleteID)
	assert.Equal(t, []string{"delete", "bookings"}, gw.Calls)
}

func TestCreateBookingFailedReloadPropagates(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{
		CreateRet:   someBooking(5),
		BookingsErr: api.ErrUnavailable,
	}
	svc := newBookingService(gw)

	_, err := svc.CreateBooking(ctx, models.BookingCreate{PartyID: 1})
	assert.ErrorIs(t, err, api.ErrUnavailable)
}
