// Package toast implements a transient user-facing message queue. Each toast
// lives for a fixed time and is removed by its own timer; any number of
// toasts may be visible at once.
package toast

import (
	"sync"
	"time"
)

// Type classifies a toast for presentation.
type Type string

const (
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypeInfo    Type = "info"
)

// DefaultTTL is how long a toast stays visible.
const DefaultTTL = 3 * time.Second

// Toast is a single transient message.
type Toast struct {
	// ID is unique per notifier, derived from the creation timestamp.
	ID      int64
	Type    Type
	Message string
}

// Timer is the cancellable handle returned by the scheduling hook.
// *time.Timer satisfies it.
type Timer interface {
	Stop() bool
}

// Notifier holds the ordered toast sequence. The zero value is not usable;
// construct with New.
type Notifier struct {
	ttl       time.Duration
	now       func() time.Time
	afterFunc func(d time.Duration, f func()) Timer

	mu     sync.Mutex
	toasts []Toast
	timers map[int64]Timer
	lastID int64
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithTTL overrides the toast lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(n *Notifier) { n.ttl = ttl }
}

// WithClock injects the time source used for IDs. Tests use a fixed clock.
func WithClock(now func() time.Time) Option {
	return func(n *Notifier) { n.now = now }
}

// WithScheduler injects the expiry scheduling hook. Tests use a fake that
// fires callbacks on demand instead of sleeping.
func WithScheduler(afterFunc func(d time.Duration, f func()) Timer) Option {
	return func(n *Notifier) { n.afterFunc = afterFunc }
}

// New constructs a Notifier. Without options it uses real time and
// time.AfterFunc with the default 3s lifetime.
func New(opts ...Option) *Notifier {
	n := &Notifier{
		ttl: DefaultTTL,
		now: time.Now,
		afterFunc: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
		timers: make(map[int64]Timer),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Show appends a toast and schedules its removal after the configured
// lifetime. Returns the toast's ID.
func (n *Notifier) Show(message string, typ Type) int64 {
	n.mu.Lock()
	id := n.now().UnixMilli()
	// Two toasts within the same millisecond would collide; nudge forward.
	if id <= n.lastID {
		id = n.lastID + 1
	}
	n.lastID = id
	n.toasts = append(n.toasts, Toast{ID: id, Type: typ, Message: message})
	n.mu.Unlock()

	timer := n.afterFunc(n.ttl, func() { n.remove(id) })

	n.mu.Lock()
	// The timer may already have fired and removed the toast.
	if n.contains(id) {
		n.timers[id] = timer
	}
	n.mu.Unlock()
	return id
}

// Success shows a success toast.
func (n *Notifier) Success(message string) int64 {
	return n.Show(message, TypeSuccess)
}

// Error shows an error toast.
func (n *Notifier) Error(message string) int64 {
	return n.Show(message, TypeError)
}

// Info shows an info toast.
func (n *Notifier) Info(message string) int64 {
	return n.Show(message, TypeInfo)
}

// Dismiss removes a toast before its timer expires. Unknown IDs are ignored.
func (n *Notifier) Dismiss(id int64) {
	n.mu.Lock()
	if timer, ok := n.timers[id]; ok {
		timer.Stop()
	}
	n.mu.Unlock()
	n.remove(id)
}

// Toasts returns the currently visible toasts in creation order.
func (n *Notifier) Toasts() []Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Toast, len(n.toasts))
	copy(out, n.toasts)
	return out
}

// Drain removes and returns all visible toasts, stopping their timers.
// The CLI uses it to flush accumulated messages after each command.
func (n *Notifier) Drain() []Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.toasts
	n.toasts = nil
	for id, timer := range n.timers {
		timer.Stop()
		delete(n.timers, id)
	}
	return out
}

func (n *Notifier) remove(id int64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.timers, id)
	for i, t := range n.toasts {
		if t.ID == id {
			n.toasts = append(n.toasts[:i], n.toasts[i+1:]...)
			return
		}
	}
}

// contains reports whether id is still visible. Caller holds the mutex.
func (n *Notifier) contains(id int64) bool {
	for _, t := range n.toasts {
		if t.ID == id {
			return true
		}
	}
	return false
}
