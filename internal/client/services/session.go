// Package services contains the application services of the booking client:
// the session service (authentication lifecycle and authorization decisions)
// and the booking service (party/booking collections and their CRUD calls).
package services

import (
	"context"
	"errors"
	"sync"

	"github.com/example/booking-calendar/internal/client/api"
	"github.com/example/booking-calendar/internal/client/models"
	"github.com/example/booking-calendar/internal/client/repositories/metadata"
	"github.com/example/booking-calendar/internal/logging"
)

// loginFallbackMessage is shown when the server rejects a login without
// providing a detail message of its own.
const loginFallbackMessage = "Login fehlgeschlagen"

// SessionService owns the authentication lifecycle: it holds the current
// token/user pair, persists the token across restarts, and answers
// authorization questions.
//
// The token and user are always written together under the mutex so no
// reader can observe a token paired with a stale user.
type SessionService struct {
	client api.Client
	store  metadata.Repository
	logger logging.Logger

	mu    sync.RWMutex
	token string
	user  *models.User
}

// NewSessionService constructs a SessionService bound to the given API
// client and durable store.
func NewSessionService(client api.Client, store metadata.Repository, logger logging.Logger) *SessionService {
	return &SessionService{client: client, store: store, logger: logger}
}

// Login authenticates against the backend. On success the returned token and
// user are stored in memory, the token is installed on the API client and
// persisted durably, and the full login payload is returned. On rejection the
// error is an *api.AuthError carrying the server's message, or
// loginFallbackMessage when the server provided none.
func (s *SessionService) Login(ctx context.Context, username, password string) (models.LoginResult, error) {
	result, err := s.client.Login(ctx, username, password)
	if err != nil {
		var authErr *api.AuthError
		if errors.As(err, &authErr) && authErr.Detail == "" {
			err = &api.AuthError{Detail: loginFallbackMessage}
		}
		s.logger.Error(ctx, "login failed", "username", username, "error", err)
		return models.LoginResult{}, err
	}

	user := result.User
	s.mu.Lock()
	s.token = result.Token
	s.user = &user
	s.mu.Unlock()
	s.client.SetToken(result.Token)

	if err := s.store.Set(ctx, metadata.KeySessionToken, result.Token); err != nil {
		// The in-memory session is valid either way; losing persistence only
		// costs a re-login after restart.
		s.logger.Warn(ctx, "failed to persist session token", "error", err)
	}

	s.logger.Info(ctx, "login succeeded", "username", user.Username, "is_admin", user.IsAdmin)
	return result, nil
}

// Logout clears the in-memory session and removes the persisted token.
// The server-side session is revoked best effort. Never fails; calling it
// without an active session is a no-op.
func (s *SessionService) Logout(ctx context.Context) {
	s.mu.Lock()
	hadToken := s.token != ""
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if hadToken {
		if err := s.client.Logout(ctx); err != nil {
			s.logger.Warn(ctx, "server-side logout failed", "error", err)
		}
	}
	s.client.ClearToken()

	if err := s.store.Delete(ctx, metadata.KeySessionToken); err != nil {
		s.logger.Warn(ctx, "failed to remove persisted session token", "error", err)
	}
}

// VerifySession checks the held token against the backend. Without a token it
// returns false immediately. On success the in-memory user is replaced with
// the returned profile. Any failure, transport or rejection, forces a logout:
// an invalid or expired token must not be retained.
func (s *SessionService) VerifySession(ctx context.Context) bool {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()
	if token == "" {
		return false
	}

	user, err := s.client.Me(ctx)
	if err != nil {
		s.logger.Warn(ctx, "session verification failed", "error", err)
		s.Logout(ctx)
		return false
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	return true
}

// RestoreSession loads a previously persisted token at startup and verifies
// it. Returns true when a valid session was restored.
func (s *SessionService) RestoreSession(ctx context.Context) bool {
	token, err := s.store.Get(ctx, metadata.KeySessionToken)
	if err != nil {
		s.logger.Warn(ctx, "failed to read persisted session token", "error", err)
		return false
	}
	if token == "" {
		return false
	}

	s.mu.Lock()
	s.token = token
	s.user = nil
	s.mu.Unlock()
	s.client.SetToken(token)

	return s.VerifySession(ctx)
}

// AuthHeaders returns the headers to attach to authenticated requests:
// empty when no token is held, otherwise exactly the bearer authorization
// header. Pure, never fails.
func (s *SessionService) AuthHeaders() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return map[string]string{}
	}
	return map[string]string{"Authorization": "Bearer " + s.token}
}

// IsAuthenticated reports whether a verified user is present. A persisted
// token alone does not count until VerifySession has confirmed it.
func (s *SessionService) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// IsAdmin reports whether the current user has administrator rights.
func (s *SessionService) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.IsAdmin
}

// CurrentUser returns a copy of the current user, or nil when logged out.
func (s *SessionService) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

// CanModifyBooking is the sole access-control rule of the client: admins may
// modify any booking, everyone else only bookings of their own party. The
// backend enforces the same rule; this check is a UX convenience, not a
// security boundary.
func (s *SessionService) CanModifyBooking(partyID int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return false
	}
	if s.user.IsAdmin {
		return true
	}
	return s.user.PartyID != nil && *s.user.PartyID == partyID
}
