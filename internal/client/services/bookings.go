package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/example/booking-calendar/internal/client/api"
	"github.com/example/booking-calendar/internal/client/models"
	"github.com/example/booking-calendar/internal/logging"
)

// Fallback messages, one per mutating operation, used when the server
// rejects a request without a detail message. They mirror the backend's
// German UI wording.
const (
	createFallbackMessage = "Fehler beim Speichern"
	updateFallbackMessage = "Fehler beim Aktualisieren"
	deleteFallbackMessage = "Fehler beim Löschen"
)

// BookingService holds the in-memory party and booking collections and
// performs CRUD calls against the backend. Every mutation re-fetches the
// full booking collection before returning, so a caller observing the
// completion of a mutating call always sees the server's state.
type BookingService struct {
	client api.Client
	logger logging.Logger

	mu       sync.RWMutex
	parties  []models.Party
	bookings []models.Booking
}

// NewBookingService constructs a BookingService bound to the given API client.
func NewBookingService(client api.Client, logger logging.Logger) *BookingService {
	return &BookingService{client: client, logger: logger}
}

// LoadParties fetches the full party collection and replaces the in-memory copy.
func (s *BookingService) LoadParties(ctx context.Context) error {
	parties, err := s.client.Parties(ctx)
	if err != nil {
		s.logger.Error(ctx, "failed to load parties", "error", err)
		return err
	}

	s.mu.Lock()
	s.parties = parties
	s.mu.Unlock()
	return nil
}

// LoadBookings fetches the full booking collection and replaces the in-memory copy.
func (s *BookingService) LoadBookings(ctx context.Context) error {
	bookings, err := s.client.Bookings(ctx)
	if err != nil {
		s.logger.Error(ctx, "failed to load bookings", "error", err)
		return err
	}

	s.mu.Lock()
	s.bookings = bookings
	s.mu.Unlock()
	return nil
}

// Parties returns a copy of the party collection.
func (s *BookingService) Parties() []models.Party {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Party, len(s.parties))
	copy(out, s.parties)
	return out
}

// Bookings returns a copy of the booking collection, in server order.
func (s *BookingService) Bookings() []models.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Booking, len(s.bookings))
	copy(out, s.bookings)
	return out
}

// PartyByID looks a party up in the loaded collection.
func (s *BookingService) PartyByID(id int) (models.Party, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.parties {
		if p.ID == id {
			return p, true
		}
	}
	return models.Party{}, false
}

// CreateBooking creates a booking and reloads the collection before
// returning, so the returned state already includes the new booking.
func (s *BookingService) CreateBooking(ctx context.Context, booking models.BookingCreate) (models.Booking, error) {
	created, err := s.client.CreateBooking(ctx, booking)
	if err != nil {
		s.logger.Error(ctx, "failed to create booking", "party_id", booking.PartyID, "error", err)
		return models.Booking{}, userError(err, createFallbackMessage)
	}
	if err := s.LoadBookings(ctx); err != nil {
		return models.Booking{}, err
	}
	return created, nil
}

// UpdateBooking updates the booking with the given id and reloads the
// collection before returning.
func (s *BookingService) UpdateBooking(ctx context.Context, id int, booking models.BookingCreate) (models.Booking, error) {
	updated, err := s.client.UpdateBooking(ctx, id, booking)
	if err != nil {
		s.logger.Error(ctx, "failed to update booking", "id", id, "error", err)
		return models.Booking{}, userError(err, updateFallbackMessage)
	}
	if err := s.LoadBookings(ctx); err != nil {
		return models.Booking{}, err
	}
	return updated, nil
}

// DeleteBooking deletes the booking with the given id and reloads the
// collection before returning.
func (s *BookingService) DeleteBooking(ctx context.Context, id int) error {
	if err := s.client.DeleteBooking(ctx, id); err != nil {
		s.logger.Error(ctx, "failed to delete booking", "id", id, "error", err)
		return userError(err, deleteFallbackMessage)
	}
	return s.LoadBookings(ctx)
}

// userError keeps err as is when the server supplied a detail message
// (err.Error() already reads well for users), otherwise prefixes the
// operation's fallback message.
func userError(err error, fallback string) error {
	if api.Detail(err) != "" {
		return err
	}
	return fmt.Errorf("%s: %w", fallback, err)
}
