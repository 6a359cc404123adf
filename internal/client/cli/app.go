// Package cli implements the interactive terminal frontend of the booking
// calendar: a small REPL over the session and booking services plus a text
// rendering of the month grid.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/example/booking-calendar/internal/calendar"
	"github.com/example/booking-calendar/internal/client/api"
	"github.com/example/booking-calendar/internal/client/config"
	"github.com/example/booking-calendar/internal/client/repositories/metadata"
	"github.com/example/booking-calendar/internal/client/services"
	"github.com/example/booking-calendar/internal/client/storage"
	"github.com/example/booking-calendar/internal/logging"
	"github.com/example/booking-calendar/internal/toast"
)

type App struct {
	config   *config.Config
	gateway  api.Client
	session  *services.SessionService
	bookings *services.BookingService
	view     *calendar.View
	toasts   *toast.Notifier
	logger   logging.Logger
	reader   *bufio.Reader

	mu     sync.Mutex
	online bool
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	db, err := storage.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	gateway := api.NewHTTPClient(cfg.ServerEndpointAddr, logger)
	session := services.NewSessionService(gateway, metadata.NewSQLiteRepository(db), logger)
	bookings := services.NewBookingService(gateway, logger)

	return &App{
		config:   cfg,
		gateway:  gateway,
		session:  session,
		bookings: bookings,
		view:     calendar.NewView(bookings, nil),
		toasts:   toast.New(),
		logger:   logger,
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores a persisted session if one exists, starts the reachability
// watcher, and enters the REPL until EOF or exit.
func (a *App) Run(ctx context.Context) {
	if a.session.RestoreSession(ctx) {
		user := a.session.CurrentUser()
		fmt.Printf("Angemeldet als %s\n", user.Username)
		a.reloadAll(ctx)
	}

	go a.startOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) getStatus() string {
	s := ""
	if user := a.session.CurrentUser(); user != nil {
		s = user.Username + " "
	}
	a.mu.Lock()
	if a.online {
		s += "online"
	} else {
		s += "offline"
	}
	a.mu.Unlock()
	return fmt.Sprintf("(%s)", s)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// reloadAll fetches parties and bookings after login/restore so the calendar
// has data to show.
func (a *App) reloadAll(ctx context.Context) {
	if err := a.bookings.LoadParties(ctx); err != nil {
		a.toasts.Error(err.Error())
	}
	if err := a.bookings.LoadBookings(ctx); err != nil {
		a.toasts.Error(err.Error())
	}
}

// flushToasts drains accumulated notifications and prints them. Called after
// every command so feedback appears where the user is looking.
func (a *App) flushToasts() {
	for _, t := range a.toasts.Drain() {
		switch t.Type {
		case toast.TypeError:
			fmt.Printf("FEHLER: %s\n", t.Message)
		default:
			fmt.Println(t.Message)
		}
	}
}

// startOnlineStatusWatcher periodically probes the backend's health endpoint
// and records reachability for the prompt.
func (a *App) startOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	probe := func() {
		probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := a.gateway.Health(probeCtx)
		cancel()

		a.mu.Lock()
		a.online = err == nil
		a.mu.Unlock()
	}

	probe()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			probe()
		case <-ctx.Done():
			return
		}
	}
}
