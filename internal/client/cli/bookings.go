package cli

import (
	"context"
	"fmt"

	"github.com/example/booking-calendar/internal/client/models"
)

func (a *App) ListBookings(ctx context.Context) error {
	bookings := a.bookings.Bookings()
	if len(bookings) == 0 {
		printlnFn("Keine Buchungen")
		return nil
	}
	for _, b := range bookings {
		marker := " "
		if a.session.CanModifyBooking(b.PartyID) {
			marker = "*"
		}
		note := ""
		if b.Note != nil && *b.Note != "" {
			note = " — " + *b.Note
		}
		printlnFn(fmt.Sprintf("%s [%3d] %s – %s  %s%s", marker, b.ID, b.StartDate, b.EndDate, b.PartyName, note))
	}
	return nil
}

// promptBooking gathers the fields of a BookingCreate. partyID defaults to
// the user's own party; admins are asked which party to book for.
func (a *App) promptBooking(ctx context.Context) (models.BookingCreate, error) {
	var bc models.BookingCreate

	user := a.session.CurrentUser()
	if user != nil && user.PartyID != nil {
		bc.PartyID = *user.PartyID
	} else {
		for _, p := range a.bookings.Parties() {
			printlnFn(fmt.Sprintf("  [%d] %s", p.ID, p.Name))
		}
		partyID, err := GetInt(a.reader, "-Familie (ID)")
		if err != nil {
			return bc, err
		}
		bc.PartyID = partyID
	}

	start, err := GetDate(a.reader, "-Anreise (JJJJ-MM-TT)")
	if err != nil {
		return bc, err
	}
	end, err := GetDate(a.reader, "-Abreise (JJJJ-MM-TT)")
	if err != nil {
		return bc, err
	}
	if end < start {
		return bc, fmt.Errorf("Abreise liegt vor Anreise")
	}
	bc.StartDate = start
	bc.EndDate = end

	note, err := GetSimpleText(a.reader, "-Notiz (optional)")
	if err != nil {
		return bc, err
	}
	if note != "" {
		bc.Note = &note
	}
	return bc, nil
}

func (a *App) AddBooking(ctx context.Context) error {
	bc, err := a.promptBooking(ctx)
	if err != nil {
		a.toasts.Error(err.Error())
		return err
	}

	if !a.session.CanModifyBooking(bc.PartyID) {
		a.toasts.Error("Sie können nur Buchungen für Ihre eigene Familie erstellen")
		return nil
	}

	if _, err := a.bookings.CreateBooking(ctx, bc); err != nil {
		a.toasts.Error(err.Error())
		return err
	}
	a.toasts.Success("Buchung gespeichert")
	return nil
}

func (a *App) EditBooking(ctx context.Context) error {
	id, err := GetInt(a.reader, "-Buchung (ID)")
	if err != nil {
		a.toasts.Error(err.Error())
		return err
	}

	if existing, ok := a.findBooking(id); ok && !a.session.CanModifyBooking(existing.PartyID) {
		a.toasts.Error("Sie können nur Ihre eigenen Buchungen bearbeiten")
		return nil
	}

	bc, err := a.promptBooking(ctx)
	if err != nil {
		a.toasts.Error(err.Error())
		return err
	}

	if _, err := a.bookings.UpdateBooking(ctx, id, bc); err != nil {
		a.toasts.Error(err.Error())
		return err
	}
	a.toasts.Success("Buchung aktualisiert")
	return nil
}

func (a *App) DeleteBooking(ctx context.Context) error {
	id, err := GetInt(a.reader, "-Buchung (ID)")
	if err != nil {
		a.toasts.Error(err.Error())
		return err
	}

	if existing, ok := a.findBooking(id); ok && !a.session.CanModifyBooking(existing.PartyID) {
		a.toasts.Error("Sie können nur Ihre eigenen Buchungen löschen")
		return nil
	}

	if err := a.bookings.DeleteBooking(ctx, id); err != nil {
		a.toasts.Error(err.Error())
		return err
	}
	a.toasts.Success("Buchung gelöscht")
	return nil
}

func (a *App) findBooking(id int) (models.Booking, bool) {
	for _, b := range a.bookings.Bookings() {
		if b.ID == id {
			return b, true
		}
	}
	return models.Booking{}, false
}
