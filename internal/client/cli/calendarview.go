package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/booking-calendar/internal/calendar"
)

// ShowCalendar renders the displayed month as a text grid. Each cell shows
// the day number, a dot per booking active on that day, and today in
// brackets. Days of adjacent months are shown dimmed with a leading space.
func (a *App) ShowCalendar(ctx context.Context) error {
	if err := a.bookings.LoadBookings(ctx); err != nil {
		a.toasts.Error(err.Error())
	}

	days := a.view.Days()

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%30s\n", a.view.MonthYearDisplay()))
	for _, wd := range calendar.Weekdays {
		b.WriteString(fmt.Sprintf("%8s", wd))
	}
	b.WriteByte('\n')

	for week := 0; week < len(days)/7; week++ {
		for i := 0; i < 7; i++ {
			day := days[week*7+i]
			b.WriteString(formatCell(day))
		}
		b.WriteByte('\n')
	}

	printlnFn(b.String())
	return nil
}

func formatCell(day calendar.Day) string {
	num := fmt.Sprintf("%d", day.DayNumber)
	if day.IsToday {
		num = "[" + num + "]"
	}
	if !day.IsCurrentMonth {
		num = "·" + num
	}
	if n := len(day.Bookings); n > 0 {
		num += strings.Repeat("*", min(n, 3))
	}
	return fmt.Sprintf("%8s", num)
}

func (a *App) NextMonth(ctx context.Context) error {
	a.view.NextMonth()
	return a.ShowCalendar(ctx)
}

func (a *App) PreviousMonth(ctx context.Context) error {
	a.view.PreviousMonth()
	return a.ShowCalendar(ctx)
}

func (a *App) GoToToday(ctx context.Context) error {
	a.view.GoToToday()
	return a.ShowCalendar(ctx)
}
