// Package calendar computes the month-grid view of the booking collection:
// a fixed 42-cell, Monday-start grid with adjacent-month padding, each day
// annotated with the bookings active on it.
package calendar

import (
	"fmt"
	"time"

	"github.com/example/booking-calendar/internal/client/models"
)

// Weekdays are the grid's column headers, Monday first.
var Weekdays = [7]string{"Mo", "Di", "Mi", "Do", "Fr", "Sa", "So"}

// MonthNames is the lookup table for the month/year display label.
var MonthNames = [12]string{
	"Januar", "Februar", "März", "April", "Mai", "Juni",
	"Juli", "August", "September", "Oktober", "November", "Dezember",
}

// Position describes where a day falls within a booking's date range.
type Position string

const (
	PositionStart  Position = "start"
	PositionMiddle Position = "middle"
	PositionEnd    Position = "end"
	PositionSingle Position = "single"
)

// DayBooking is one booking's appearance on one day of the grid.
type DayBooking struct {
	ID        int
	Color     string
	PartyName string
	Position  Position
}

// Day is a single grid cell.
type Day struct {
	// Date is the cell's date as a zero-padded ISO string (YYYY-MM-DD).
	Date string

	// DayNumber is the day of month, for rendering.
	DayNumber int

	// IsCurrentMonth is true only for cells within the reference month.
	IsCurrentMonth bool

	// IsToday marks the cell matching today's date, at most one per grid.
	IsToday bool

	// Bookings active on this day, in source-collection order.
	Bookings []DayBooking
}

// GridSize is the fixed cell count of a month grid: six weeks of seven days.
const GridSize = 6 * 7

const dateLayout = "2006-01-02"

// BuildMonth produces the 42-cell grid for the month containing reference.
// The grid starts on the Monday on or before the 1st and is padded with
// leading previous-month and trailing next-month days. today determines the
// IsToday cell; time of day is ignored on both inputs.
//
// Bookings appear on every day within their inclusive start/end range.
// Comparison is lexicographic on the ISO strings, which is equivalent to
// date order for zero-padded dates. The function is pure and deterministic
// given its inputs.
func BuildMonth(reference, today time.Time, bookings []models.Booking) []Day {
	year, month, _ := reference.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, reference.Location())

	// time.Weekday counts from Sunday; shift so Monday is 0.
	offset := (int(first.Weekday()) + 6) % 7
	start := first.AddDate(0, 0, -offset)

	todayStr := today.Format(dateLayout)

	days := make([]Day, 0, GridSize)
	for i := 0; i < GridSize; i++ {
		date := start.AddDate(0, 0, i)
		dateStr := date.Format(dateLayout)
		days = append(days, Day{
			Date:           dateStr,
			DayNumber:      date.Day(),
			IsCurrentMonth: date.Month() == month && date.Year() == year,
			IsToday:        dateStr == todayStr,
			Bookings:       bookingsForDate(dateStr, bookings),
		})
	}
	return days
}

// bookingsForDate filters the collection down to the bookings covering date,
// keeping source order, and labels each with its position within the range.
func bookingsForDate(date string, bookings []models.Booking) []DayBooking {
	var out []DayBooking
	for _, b := range bookings {
		if date < b.StartDate || date > b.EndDate {
			continue
		}
		position := PositionMiddle
		switch {
		case b.StartDate == date && b.EndDate == date:
			position = PositionSingle
		case b.StartDate == date:
			position = PositionStart
		case b.EndDate == date:
			position = PositionEnd
		}
		out = append(out, DayBooking{
			ID:        b.ID,
			Color:     b.PartyColor,
			PartyName: b.PartyName,
			Position:  position,
		})
	}
	return out
}

// BookingSource provides the current booking collection. *services.BookingService
// satisfies it.
type BookingSource interface {
	Bookings() []models.Booking
}

// View tracks the currently displayed month and rebuilds the grid on demand.
// It is not safe for concurrent use; it belongs to the presentation loop.
type View struct {
	source  BookingSource
	now     func() time.Time
	current time.Time
}

// NewView creates a View showing the month of now(). A nil now defaults to
// time.Now.
func NewView(source BookingSource, now func() time.Time) *View {
	if now == nil {
		now = time.Now
	}
	return &View{source: source, now: now, current: now()}
}

// Days rebuilds and returns the grid for the displayed month. The rebuild is
// full each time; at 42 cells there is nothing worth caching.
func (v *View) Days() []Day {
	return BuildMonth(v.current, v.now(), v.source.Bookings())
}

// MonthYearDisplay returns the localized label, e.g. "Januar 2024".
func (v *View) MonthYearDisplay() string {
	return fmt.Sprintf("%s %d", MonthNames[v.current.Month()-1], v.current.Year())
}

// PreviousMonth moves the view to the 1st of the previous month.
func (v *View) PreviousMonth() {
	year, month, _ := v.current.Date()
	v.current = time.Date(year, month-1, 1, 0, 0, 0, 0, v.current.Location())
}

// NextMonth moves the view to the 1st of the next month.
func (v *View) NextMonth() {
	year, month, _ := v.current.Date()
	v.current = time.Date(year, month+1, 1, 0, 0, 0, 0, v.current.Location())
}

// GoToToday resets the view to the current date.
func (v *View) GoToToday() {
	v.current = v.now()
}

// Reference returns the date the view is currently anchored on.
func (v *View) Reference() time.Time {
	return v.current
}
