package ics

import (
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/booking-calendar/internal/client/models"
)

func TestExportProducesOneEventPerBooking(t *testing.T) {
	note := "Skiurlaub"
	bookings := []models.Booking{
		{ID: 1, PartyName: "Familie Weber", StartDate: "2024-01-10", EndDate: "2024-01-14", Note: &note},
		{ID: 2, PartyName: "Familie Schmidt", StartDate: "2024-02-01", EndDate: "2024-02-01"},
	}

	document := Export(bookings, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))

	parsed, err := ical.ParseCalendar(strings.NewReader(document))
	require.NoError(t, err)
	events := parsed.Events()
	require.Len(t, events, 2)

	first := events[0]
	assert.Equal(t, "booking-1@booking-calendar", first.GetProperty(ical.ComponentPropertyUniqueId).Value)
	assert.Equal(t, "Familie Weber", first.GetProperty(ical.ComponentPropertySummary).Value)
	assert.Equal(t, "Skiurlaub", first.GetProperty(ical.ComponentPropertyDescription).Value)

	// All-day events: DTEND is exclusive, hence one day past the inclusive
	// booking end date.
	assert.Equal(t, "20240110", first.GetProperty(ical.ComponentPropertyDtStart).Value)
	assert.Equal(t, "20240115", first.GetProperty(ical.ComponentPropertyDtEnd).Value)

	second := events[1]
	assert.Equal(t, "20240201", second.GetProperty(ical.ComponentPropertyDtStart).Value)
	assert.Equal(t, "20240202", second.GetProperty(ical.ComponentPropertyDtEnd).Value)
	assert.Nil(t, second.GetProperty(ical.ComponentPropertyDescription))
}

func TestExportSkipsMalformedDates(t *testing.T) {
	bookings := []models.Booking{
		{ID: 1, PartyName: "Familie Weber", StartDate: "not-a-date", EndDate: "2024-01-14"},
	}

	document := Export(bookings, time.Now())

	parsed, err := ical.ParseCalendar(strings.NewReader(document))
	require.NoError(t, err)
	assert.Empty(t, parsed.Events())
}

func TestExportEmptyCollection(t *testing.T) {
	document := Export(nil, time.Now())
	assert.Contains(t, document, "BEGIN:VCALENDAR")
	assert.Contains(t, document, "END:VCALENDAR")
}
