// Package api implements the client for the booking backend's HTTP/JSON
// interface. It owns the wire format (routes, bearer header, {"detail"}
// error bodies) and maps transport and HTTP failures onto typed errors;
// all business rules live in the services package on top of it.
package api

import (
	"context"

	"github.com/example/booking-calendar/internal/client/models"
)

// Client is the surface of the booking backend as seen by the services.
//
// The concrete client holds the session token internally (SetToken /
// ClearToken); every call except Login and Health attaches it as a bearer
// authorization header when present.
type Client interface {
	// Login exchanges credentials for a token and user profile.
	Login(ctx context.Context, username, password string) (models.LoginResult, error)

	// Logout revokes the current session server-side. Best effort.
	Logout(ctx context.Context) error

	// Me returns the profile belonging to the held token.
	Me(ctx context.Context) (models.User, error)

	// Parties fetches the full party collection.
	Parties(ctx context.Context) ([]models.Party, error)

	// Bookings fetches the full booking collection.
	Bookings(ctx context.Context) ([]models.Booking, error)

	CreateBooking(ctx context.Context, booking models.BookingCreate) (models.Booking, error)
	UpdateBooking(ctx context.Context, id int, booking models.BookingCreate) (models.Booking, error)
	DeleteBooking(ctx context.Context, id int) error

	// Health probes server liveness.
	Health(ctx context.Context) error

	// SetToken installs the bearer token attached to subsequent requests.
	SetToken(token string)

	// ClearToken drops the held bearer token.
	ClearToken()
}
