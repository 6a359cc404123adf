// Package ics renders the booking collection as an iCalendar document, so
// bookings can be imported into external calendar applications.
package ics

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/example/booking-calendar/internal/client/models"
)

const dateLayout = "2006-01-02"

// Export serializes bookings into an iCalendar document with one all-day
// event per booking. Bookings whose dates fail to parse are skipped; the
// collection comes from the backend, which guarantees valid ISO dates, so a
// skip indicates a server bug rather than user input.
func Export(bookings []models.Booking, now time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//booking-calendar//DE")

	for _, b := range bookings {
		start, err := time.Parse(dateLayout, b.StartDate)
		if err != nil {
			continue
		}
		end, err := time.Parse(dateLayout, b.EndDate)
		if err != nil {
			continue
		}

		event := cal.AddEvent(fmt.Sprintf("booking-%d@booking-calendar", b.ID))
		event.SetDtStampTime(now)
		event.SetSummary(b.PartyName)
		if b.Note != nil && *b.Note != "" {
			event.SetDescription(*b.Note)
		}
		event.SetAllDayStartAt(start)
		// DTEND is exclusive for all-day events, while booking end dates are
		// inclusive.
		event.SetAllDayEndAt(end.AddDate(0, 0, 1))
	}

	return cal.Serialize()
}
