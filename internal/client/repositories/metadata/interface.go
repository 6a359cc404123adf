// Package metadata persists small client-side key/value settings, most
// importantly the session token, so they survive process restarts.
package metadata

import "context"

// Repository is a durable string key/value store.
//
// Get returns ("", nil) for a missing key so callers can treat absence as
// "not set" without error plumbing.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// KeySessionToken is the durable storage key for the bearer token issued at
// login. It is read at startup, written on login, and removed on logout.
const KeySessionToken = "session_token"
