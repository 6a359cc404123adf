package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/example/booking-calendar/internal/ics"
)

// ExportCalendar writes the booking collection as an iCalendar file.
func (a *App) ExportCalendar(ctx context.Context) error {
	path, err := GetSimpleText(a.reader, "-Dateiname (z.B. buchungen.ics)")
	if err != nil {
		a.toasts.Error(err.Error())
		return err
	}
	if path == "" {
		path = "buchungen.ics"
	}

	if err := a.bookings.LoadBookings(ctx); err != nil {
		a.toasts.Error(err.Error())
		return err
	}

	document := ics.Export(a.bookings.Bookings(), time.Now())
	if err := os.WriteFile(path, []byte(document), 0o644); err != nil {
		a.toasts.Error(err.Error())
		return err
	}

	a.toasts.Success(fmt.Sprintf("Exportiert nach %s", path))
	return nil
}
