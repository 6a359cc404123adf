package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/example/booking-calendar/internal/client/api"
	"github.com/example/booking-calendar/internal/client/models"
	"github.com/example/booking-calendar/internal/client/repositories/metadata"
	"github.com/example/booking-calendar/internal/logging"
)

// ---- helpers ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func intPtr(v int) *int { return &v }

// ---- fake gateway ----

// fakeGateway implements api.Client for unit tests of both services.
type fakeGateway struct {
	LoginRet models.LoginResult
	LoginErr error

	LogoutErr error

	MeRet models.User
	MeErr error

	PartiesRet []models.Party
	PartiesErr error

	BookingsRet []models.Booking
	BookingsErr error

	CreateRet models.Booking
	CreateErr error

	UpdateRet models.Booking
	UpdateErr error

	DeleteErr error

	HealthErr error

	// recorded state
	Token string
	Calls []string

	LastLoginUser string
	LastCreate    models.BookingCreate
	LastUpdateID  int
	LastDeleteID  int
}

func (f *fakeGateway) Login(ctx context.Context, username, password string) (models.LoginResult, error) {
	f.Calls = append(f.Calls, "login")
	f.LastLoginUser = username
	return f.LoginRet, f.LoginErr
}

func (f *fakeGateway) Logout(ctx context.Context) error {
	f.Calls = append(f.Calls, "logout")
	return f.LogoutErr
}

func (f *fakeGateway) Me(ctx context.Context) (models.User, error) {
	f.Calls = append(f.Calls, "me")
	return f.MeRet, f.MeErr
}

func (f *fakeGateway) Parties(ctx context.Context) ([]models.Party, error) {
	f.Calls = append(f.Calls, "parties")
	return f.PartiesRet, f.PartiesErr
}

func (f *fakeGateway) Bookings(ctx context.Context) ([]models.Booking, error) {
	f.Calls = append(f.Calls, "bookings")
	return f.BookingsRet, f.BookingsErr
}

func (f *fakeGateway) CreateBooking(ctx context.Context, booking models.BookingCreate) (models.Booking, error) {
	f.Calls = append(f.Calls, "create")
	f.LastCreate = booking
	return f.CreateRet, f.CreateErr
}

func (f *fakeGateway) UpdateBooking(ctx context.Context, id int, booking models.BookingCreate) (models.Booking, error) {
	f.Calls = append(f.Calls, "update")
	f.LastUpdateID = id
	return f.UpdateRet, f.UpdateErr
}

func (f *fakeGateway) DeleteBooking(ctx context.Context, id int) error {
	f.Calls = append(f.Calls, "delete")
	f.LastDeleteID = id
	return f.DeleteErr
}

func (f *fakeGateway) Health(ctx context.Context) error { return f.HealthErr }

func (f *fakeGateway) SetToken(token string) { f.Token = token }

func (f *fakeGateway) ClearToken() { f.Token = "" }

func newSessionService(t *testing.T, gw *fakeGateway) (*SessionService, metadata.Repository) {
	t.Helper()
	store := metadata.NewSQLiteRepository(setupDB(t))
	return NewSessionService(gw, store, logging.NewDiscardLogger()), store
}

// ---- tests ----

func TestLoginSuccessStoresAndPersistsToken(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{
		LoginRet: models.LoginResult{
			Token:   "tok-123",
			User:    models.User{PartyID: intPtr(1), Username: "weber"},
			Message: "Willkommen",
		},
	}
	svc, store := newSessionService(t, gw)

	result, err := svc.Login(ctx, "weber", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Willkommen", result.Message)

	assert.True(t, svc.IsAuthenticated())
	assert.Equal(t, "weber", svc.CurrentUser().Username)
	assert.Equal(t, "tok-123", gw.Token)
	assert.Equal(t, map[string]string{"Authorization": "Bearer tok-123"}, svc.AuthHeaders())

	// A fresh read of durable storage returns the same token string.
	persisted, err := store.Get(ctx, metadata.KeySessionToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", persisted)
}

func TestLoginFailureUsesServerDetail(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{LoginErr: &api.AuthError{Detail: "Ungültiger Benutzername oder Passwort"}}
	svc, _ := newSessionService(t, gw)

	_, err := svc.Login(ctx, "weber", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Ungültiger Benutzername oder Passwort", err.Error())
	assert.False(t, svc.IsAuthenticated())
	assert.Empty(t, svc.AuthHeaders())
}

func TestLoginFailureFallsBackToGenericMessage(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{LoginErr: &api.AuthError{}}
	svc, _ := newSessionService(t, gw)

	_, err := svc.Login(ctx, "weber", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Login fehlgeschlagen", err.Error())
}

func TestLogoutClearsEverythingAndIsIdempotent(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{
		LoginRet: models.LoginResult{Token: "tok", User: models.User{Username: "weber", PartyID: intPtr(1)}},
	}
	svc, store := newSessionService(t, gw)

	_, err := svc.Login(ctx, "weber", "secret")
	require.NoError(t, err)

	svc.Logout(ctx)
	assert.False(t, svc.IsAuthenticated())
	assert.Nil(t, svc.CurrentUser())
	assert.Empty(t, svc.AuthHeaders())
	assert.Empty(t, gw.Token)

	persisted, err := store.Get(ctx, metadata.KeySessionToken)
	require.NoError(t, err)
	assert.Empty(t, persisted)

	// Second logout is a no-op, and the server is not contacted again.
	calls := len(gw.Calls)
	svc.Logout(ctx)
	assert.False(t, svc.IsAuthenticated())
	for _, c := range gw.Calls[calls:] {
		assert.NotEqual(t, "logout", c)
	}
}

func TestLogoutIgnoresServerFailure(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{
		LoginRet:  models.LoginResult{Token: "tok", User: models.User{Username: "weber", PartyID: intPtr(1)}},
		LogoutErr: api.ErrUnavailable,
	}
	svc, _ := newSessionService(t, gw)

	_, err := svc.Login(ctx, "weber", "secret")
	require.NoError(t, err)

	svc.Logout(ctx)
	assert.False(t, svc.IsAuthenticated())
}

func TestVerifySessionWithoutTokenSkipsNetwork(t *testing.T) {
	gw := &fakeGateway{}
	svc, _ := newSessionService(t, gw)

	assert.False(t, svc.VerifySession(context.Background()))
	assert.Empty(t, gw.Calls)
}

func TestVerifySessionReplacesUserOnSuccess(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{
		LoginRet: models.LoginResult{Token: "tok", User: models.User{Username: "weber", PartyID: intPtr(1)}},
		MeRet:    models.User{Username: "weber-renamed", PartyID: intPtr(1)},
	}
	svc, _ := newSessionService(t, gw)

	_, err := svc.Login(ctx, "weber", "secret")
	require.NoError(t, err)

	assert.True(t, svc.VerifySession(ctx))
	assert.Equal(t, "weber-renamed", svc.CurrentUser().Username)
}

func TestVerifySessionFailureForcesLogout(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{
		LoginRet: models.LoginResult{Token: "tok", User: models.User{Username: "weber", PartyID: intPtr(1)}},
		MeErr:    &api.AuthError{Detail: "token expired"},
	}
	svc, store := newSessionService(t, gw)

	_, err := svc.Login(ctx, "weber", "secret")
	require.NoError(t, err)

	assert.False(t, svc.VerifySession(ctx))
	assert.False(t, svc.IsAuthenticated())
	assert.Empty(t, svc.AuthHeaders())

	persisted, err := store.Get(ctx, metadata.KeySessionToken)
	require.NoError(t, err)
	assert.Empty(t, persisted)
}

func TestRestoreSession(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{MeRet: models.User{Username: "weber", PartyID: intPtr(1)}}
	svc, store := newSessionService(t, gw)

	// Nothing persisted: no restore, no network.
	assert.False(t, svc.RestoreSession(ctx))
	assert.Empty(t, gw.Calls)

	require.NoError(t, store.Set(ctx, metadata.KeySessionToken, "tok-42"))
	assert.True(t, svc.RestoreSession(ctx))
	assert.True(t, svc.IsAuthenticated())
	assert.Equal(t, "tok-42", gw.Token)
	assert.Equal(t, map[string]string{"Authorization": "Bearer tok-42"}, svc.AuthHeaders())
}

func TestCanModifyBooking(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		user    models.User
		partyID int
		want    bool
	}{
		{"admin may modify any party", models.User{IsAdmin: true, Username: "admin"}, 1, true},
		{"admin may modify other party", models.User{IsAdmin: true, Username: "admin"}, 999, true},
		{"member may modify own party", models.User{PartyID: intPtr(1), Username: "weber"}, 1, true},
		{"member may not modify other party", models.User{PartyID: intPtr(1), Username: "weber"}, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &fakeGateway{LoginRet: models.LoginResult{Token: "tok", User: tt.user}}
			svc, _ := newSessionService(t, gw)

			_, err := svc.Login(ctx, tt.user.Username, "secret")
			require.NoError(t, err)

			assert.Equal(t, tt.want, svc.CanModifyBooking(tt.partyID))
		})
	}
}

func TestCanModifyBookingWhenLoggedOut(t *testing.T) {
	svc, _ := newSessionService(t, &fakeGateway{})
	assert.False(t, svc.CanModifyBooking(1))
	assert.False(t, svc.IsAdmin())
}
