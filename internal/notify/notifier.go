// Package notify shows transient status messages in a single slot.
package notify

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/liliang-cn/askdesk/internal/domain"
)

// DefaultDismissAfter is how long non-error messages stay visible
const DefaultDismissAfter = 4 * time.Second

// Display renders the notification slot
type Display interface {
	ShowNotification(n domain.Notification)
	ClearNotification()
}

// Notifier holds at most one message; a new message replaces the current
// one. Non-error messages clear themselves after the dismiss delay, errors
// stay until Clear or another message replaces them.
type Notifier struct {
	display      Display
	dismissAfter time.Duration
	logger       *zap.Logger

	mu      sync.Mutex
	seq     uint64
	current *domain.Notification
	timer   *time.Timer
}

// New creates a Notifier
func New(display Display, dismissAfter time.Duration, logger *zap.Logger) *Notifier {
	if dismissAfter <= 0 {
		dismissAfter = DefaultDismissAfter
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{
		display:      display,
		dismissAfter: dismissAfter,
		logger:       logger,
	}
}

// Show replaces the current message
func (n *Notifier) Show(text string, isError bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.stopTimer()
	n.seq++
	msg := domain.Notification{Text: text, Error: isError}
	n.current = &msg
	n.display.ShowNotification(msg)

	if isError {
		n.logger.Debug("Error notification shown", zap.String("text", text))
		return
	}
	seq := n.seq
	n.timer = time.AfterFunc(n.dismissAfter, func() { n.dismiss(seq) })
}

// Clear removes the current message, if any
func (n *Notifier) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.stopTimer()
	n.seq++
	n.clear()
}

// Current returns the visible message
func (n *Notifier) Current() (domain.Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.current == nil {
		return domain.Notification{}, false
	}
	return *n.current, true
}

// dismiss clears the slot only if it still holds the message seq refers to
func (n *Notifier) dismiss(seq uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if seq != n.seq {
		return
	}
	n.timer = nil
	n.clear()
}

func (n *Notifier) clear() {
	if n.current == nil {
		return
	}
	n.current = nil
	n.display.ClearNotification()
}

func (n *Notifier) stopTimer() {
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}
