package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/example/booking-calendar/internal/client/models"
	"github.com/example/booking-calendar/internal/logging"
)

// HTTPClient talks JSON over HTTP to the booking backend. The session token
// lives on the struct, guarded by a mutex so that a login finishing on one
// goroutine is visible to requests issued from another.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger

	mu    sync.RWMutex
	token string
}

// NewHTTPClient builds a client for the backend at baseURL (scheme://host[:port],
// no trailing slash required). The underlying http.Client carries no timeout;
// callers bound requests through ctx if they need to.
func NewHTTPClient(baseURL string, logger logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		logger:  logger,
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *HTTPClient) ClearToken() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

func (c *HTTPClient) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// errorBody is the backend's uniform error envelope.
type errorBody struct {
	Detail string `json:"detail"`
}

// do issues a single request. A non-nil body is JSON-encoded. withAuth
// attaches the bearer header when a token is held. The response body is
// decoded into out when out is non-nil and the status is 2xx.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any, withAuth bool) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if withAuth {
		if token := c.currentToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error(ctx, "request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.logger.Debug(ctx, "request completed", "method", method, "path", path, "request_id", requestID, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.mapStatusError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
		}
	}
	return nil
}

// mapStatusError converts a non-2xx response into a typed error, decoding the
// {"detail"} envelope when present. 401s become AuthError so callers can
// distinguish an expired session from an ordinary rejection.
func (c *HTTPClient) mapStatusError(resp *http.Response) error {
	var eb errorBody
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	_ = json.Unmarshal(raw, &eb)

	if resp.StatusCode == http.StatusUnauthorized {
		return &AuthError{Detail: eb.Detail}
	}
	return &RequestError{Status: resp.StatusCode, Detail: eb.Detail}
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (models.LoginResult, error) {
	payload := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{Username: username, Password: password}

	var result models.LoginResult
	err := c.do(ctx, http.MethodPost, "/api/auth/login", payload, &result, false)
	if err != nil {
		// Login rejections arrive as 401 or 422 depending on the backend's
		// validation path; both mean bad credentials to the caller.
		var reqErr *RequestError
		if errors.As(err, &reqErr) {
			return models.LoginResult{}, &AuthError{Detail: reqErr.Detail}
		}
		return models.LoginResult{}, err
	}
	return result, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, true)
}

func (c *HTTPClient) Me(ctx context.Context) (models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &user, true)
	return user, err
}

func (c *HTTPClient) Parties(ctx context.Context) ([]models.Party, error) {
	var parties []models.Party
	err := c.do(ctx, http.MethodGet, "/api/parties", nil, &parties, true)
	return parties, err
}

func (c *HTTPClient) Bookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := c.do(ctx, http.MethodGet, "/api/bookings", nil, &bookings, true)
	return bookings, err
}

func (c *HTTPClient) CreateBooking(ctx context.Context, booking models.BookingCreate) (models.Booking, error) {
	var created models.Booking
	err := c.do(ctx, http.MethodPost, "/api/bookings", booking, &created, true)
	return created, err
}

func (c *HTTPClient) UpdateBooking(ctx context.Context, id int, booking models.BookingCreate) (models.Booking, error) {
	var updated models.Booking
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/bookings/%d", id), booking, &updated, true)
	return updated, err
}

func (c *HTTPClient) DeleteBooking(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/bookings/%d", id), nil, nil, true)
}

func (c *HTTPClient) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, false)
}
