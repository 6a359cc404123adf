package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	ShowCalendar(ctx context.Context) error
	NextMonth(ctx context.Context) error
	PreviousMonth(ctx context.Context) error
	GoToToday(ctx context.Context) error
	ListBookings(ctx context.Context) error
	AddBooking(ctx context.Context) error
	EditBooking(ctx context.Context) error
	DeleteBooking(ctx context.Context) error
	ExportCalendar(ctx context.Context) error
	flushToasts()
}

// runREPL starts a simple read–eval–print loop for the booking-calendar CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers route
// their own feedback through the toast notifier, which is flushed after each
// command. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("cal %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: cal, next, prev, today, (l)ist, add, edit, delete, export, whoami, logout, exit")
			} else {
				printlnFn("Available commands: login, cal, next, prev, today, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "cal":
			_ = a.ShowCalendar(ctx)

		case "next":
			_ = a.NextMonth(ctx)

		case "prev":
			_ = a.PreviousMonth(ctx)

		case "today":
			_ = a.GoToToday(ctx)

		case "l", "list":
			_ = a.ListBookings(ctx)

		case "add":
			_ = a.AddBooking(ctx)

		case "edit":
			_ = a.EditBooking(ctx)

		case "delete":
			_ = a.DeleteBooking(ctx)

		case "export":
			_ = a.ExportCalendar(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		a.flushToasts()
	}
}
