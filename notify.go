package wijjit

import (
	"time"

	"github.com/mattn/go-runewidth"
)

// Severity ranks a notification.
type Severity uint8

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// Default lifetimes per severity. Errors stick around longer.
const (
	infoLifetime    = 3 * time.Second
	warningLifetime = 5 * time.Second
	errorLifetime   = 8 * time.Second
)

// Notification is one queued toast.
type Notification struct {
	Message  string
	Severity Severity
	Expires  time.Time
}

// NotificationManager queues toast notifications stacked in the top-right
// corner. Escape dismisses the oldest first; expired toasts drop on the
// next tick. Positions are computed at render time from the buffer size,
// so a terminal resize repositions them for free.
type NotificationManager struct {
	items      []*Notification
	maxVisible int
	now        func() time.Time
}

// NewNotificationManager creates an empty notification queue.
func NewNotificationManager() *NotificationManager {
	return &NotificationManager{maxVisible: 5, now: time.Now}
}

// Notify queues a message with the default lifetime for its severity.
func (n *NotificationManager) Notify(msg string, sev Severity) {
	lifetime := infoLifetime
	switch sev {
	case SeverityWarning:
		lifetime = warningLifetime
	case SeverityError:
		lifetime = errorLifetime
	}
	n.NotifyFor(msg, sev, lifetime)
}

// NotifyFor queues a message with an explicit lifetime.
func (n *NotificationManager) NotifyFor(msg string, sev Severity, lifetime time.Duration) {
	n.items = append(n.items, &Notification{
		Message:  msg,
		Severity: sev,
		Expires:  n.now().Add(lifetime),
	})
}

// Info queues an informational toast.
func (n *NotificationManager) Info(msg string) { n.Notify(msg, SeverityInfo) }

// Warn queues a warning toast.
func (n *NotificationManager) Warn(msg string) { n.Notify(msg, SeverityWarning) }

// Error queues an error toast.
func (n *NotificationManager) Error(msg string) { n.Notify(msg, SeverityError) }

// HasNotifications reports whether any toast is queued.
func (n *NotificationManager) HasNotifications() bool { return len(n.items) > 0 }

// Count returns the number of queued toasts.
func (n *NotificationManager) Count() int { return len(n.items) }

// DismissOldest removes the oldest toast. Returns false on an empty queue.
func (n *NotificationManager) DismissOldest() bool {
	if len(n.items) == 0 {
		return false
	}
	n.items = n.items[1:]
	return true
}

// DismissAll clears the queue.
func (n *NotificationManager) DismissAll() {
	n.items = nil
}

// ExpireStale drops toasts whose lifetime has passed. Returns true when
// anything was removed, so the caller knows to redraw.
func (n *NotificationManager) ExpireStale() bool {
	now := n.now()
	kept := n.items[:0]
	for _, item := range n.items {
		if item.Expires.After(now) {
			kept = append(kept, item)
		}
	}
	removed := len(kept) != len(n.items)
	n.items = kept
	return removed
}

// NextExpiry returns when the soonest toast expires, or false when the
// queue is empty. The event loop uses it to bound its input wait.
func (n *NotificationManager) NextExpiry() (time.Time, bool) {
	if len(n.items) == 0 {
		return time.Time{}, false
	}
	soonest := n.items[0].Expires
	for _, item := range n.items[1:] {
		if item.Expires.Before(soonest) {
			soonest = item.Expires
		}
	}
	return soonest, true
}

func (n *NotificationManager) style(sev Severity, theme *Theme) Style {
	switch sev {
	case SeverityWarning:
		return theme.NotifyWarning
	case SeverityError:
		return theme.NotifyError
	default:
		return theme.NotifyInfo
	}
}

// Render paints newest-on-top toasts in the top-right corner, at most
// maxVisible at a time.
func (n *NotificationManager) Render(buf *Buffer) {
	theme := CurrentTheme()
	y := 0
	start := maxInt(0, len(n.items)-n.maxVisible)
	for i := len(n.items) - 1; i >= start; i-- {
		item := n.items[i]
		text := " " + item.Message + " "
		w := minInt(runewidth.StringWidth(text), buf.Width())
		x := buf.Width() - w
		buf.WriteStringClipped(x, y, text, n.style(item.Severity, theme), w)
		y++
		if y >= buf.Height() {
			break
		}
	}
}
