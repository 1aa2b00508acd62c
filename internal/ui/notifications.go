package ui

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Notification types.
const (
	TypeInfo    = "info"
	TypeSuccess = "success"
	TypeWarning = "warning"
	TypeError   = "error"
)

// DefaultNotificationTimeout is how long a notification stays visible unless
// the notifier or the notification overrides it.
const DefaultNotificationTimeout = 3 * time.Second

// Notification is a transient message shown to the user.
type Notification struct {
	ID      string
	Message string
	Type    string
	Timeout time.Duration
}

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type clockScheduler struct{}

func (clockScheduler) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// NotifierOption configures a Notifier.
type NotifierOption func(*Notifier)

// WithScheduler replaces the wall-clock scheduler used for expiry.
func WithScheduler(s Scheduler) NotifierOption {
	return func(n *Notifier) {
		if s != nil {
			n.scheduler = s
		}
	}
}

// WithDefaultTimeout sets the timeout applied to notifications without one.
func WithDefaultTimeout(d time.Duration) NotifierOption {
	return func(n *Notifier) {
		if d > 0 {
			n.defaultTimeout = d
		}
	}
}

// Notifier owns a queue of notifications, each removed after its timeout.
// It is safe for concurrent use.
type Notifier struct {
	mu             sync.Mutex
	items          []Notification
	timers         map[string]Timer
	scheduler      Scheduler
	defaultTimeout time.Duration
	closed         bool
}

// NewNotifier builds an empty notifier.
func NewNotifier(opts ...NotifierOption) *Notifier {
	n := &Notifier{
		timers:         make(map[string]Timer),
		scheduler:      clockScheduler{},
		defaultTimeout: DefaultNotificationTimeout,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Notify queues note and schedules its removal. Type defaults to info and a
// non-positive Timeout to the notifier default. It returns the assigned id,
// or "" when the notifier is closed.
func (n *Notifier) Notify(note Notification) string {
	if note.Type == "" {
		note.Type = TypeInfo
	}
	if note.Timeout <= 0 {
		note.Timeout = n.defaultTimeout
	}
	note.ID = uuid.NewString()

	id := note.ID

	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return ""
	}
	n.items = append(n.items, note)
	n.mu.Unlock()

	// Scheduled outside the lock: the callback may run before AfterFunc returns.
	timer := n.scheduler.AfterFunc(note.Timeout, func() { n.remove(id) })

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed || n.indexOf(id) < 0 {
		timer.Stop()
		return id
	}
	n.timers[id] = timer
	return id
}

// List returns the current notifications in the order they were added.
func (n *Notifier) List() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Notification, len(n.items))
	copy(out, n.items)
	return out
}

// Dismiss removes the notification with id before its timeout fires.
func (n *Notifier) Dismiss(id string) bool {
	n.mu.Lock()
	if t, ok := n.timers[id]; ok {
		t.Stop()
	}
	n.mu.Unlock()
	return n.remove(id)
}

// Close cancels all pending expiries and drops queued notifications.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for id, t := range n.timers {
		t.Stop()
		delete(n.timers, id)
	}
	n.items = nil
	n.closed = true
}

func (n *Notifier) remove(id string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.timers, id)
	i := n.indexOf(id)
	if i < 0 {
		return false
	}
	n.items = append(n.items[:i], n.items[i+1:]...)
	return true
}

// indexOf must be called with mu held.
func (n *Notifier) indexOf(id string) int {
	for i, item := range n.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
