// Package submit implements the per-form submission state machine.
//
// A Runner owns one form's state, its trigger control and a mailbox of
// events. Events run one at a time on the goroutine that called Run, so
// handlers never need their own locking. The disabled trigger is the only
// guard against a second submission while one is in flight.
package submit

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/liliang-cn/askdesk/internal/domain"
	"github.com/liliang-cn/askdesk/internal/remote"
)

const mailboxSize = 64

// Call performs the remote operation for one submission
type Call[R any] func(ctx context.Context) (R, error)

// Handler supplies the form-specific parts of a submission.
// Both methods run on the runner's goroutine.
type Handler[R any] interface {
	// Begin validates the current input and prepares the pending view.
	// A nil Call rejects the submission and leaves the state unchanged.
	Begin() Call[R]
	// Settle renders the outcome and reports whether it counts as success.
	Settle(res R, err error) bool
}

// TriggerFunc renders the trigger control
type TriggerFunc func(label string, enabled bool)

// Config describes one form
type Config struct {
	Name      string
	Label     string
	BusyLabel string
	Render    TriggerFunc
	Logger    *zap.Logger
}

// Runner drives one form through Idle, Pending, Succeeded and Failed
type Runner[R any] struct {
	name      string
	label     string
	busyLabel string
	render    TriggerFunc
	handler   Handler[R]
	logger    *zap.Logger

	inbox   chan func()
	stopped chan struct{}
	settled chan domain.SubmissionState

	// owned by the Run goroutine
	ctx      context.Context
	state    domain.SubmissionState
	disabled bool
	current  string
}

// NewRunner creates a Runner for handler
func NewRunner[R any](cfg Config, handler Handler[R]) *Runner[R] {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	render := cfg.Render
	if render == nil {
		render = func(string, bool) {}
	}
	return &Runner[R]{
		name:      cfg.Name,
		label:     cfg.Label,
		busyLabel: cfg.BusyLabel,
		render:    render,
		handler:   handler,
		logger:    logger.With(zap.String("form", cfg.Name)),
		inbox:     make(chan func(), mailboxSize),
		stopped:   make(chan struct{}),
		settled:   make(chan domain.SubmissionState, 1),
		ctx:       context.Background(),
		state:     domain.StateIdle,
		current:   cfg.Label,
	}
}

// Run processes events until ctx is done
func (r *Runner[R]) Run(ctx context.Context) error {
	defer close(r.stopped)

	r.ctx = ctx
	r.render(r.current, !r.disabled)

	for {
		select {
		case <-ctx.Done():
			return nil
		case fn := <-r.inbox:
			fn()
		}
	}
}

// Post queues fn to run on the runner's goroutine. It reports false once
// the runner has stopped.
func (r *Runner[R]) Post(fn func()) bool {
	select {
	case <-r.stopped:
		return false
	default:
	}
	select {
	case r.inbox <- fn:
		return true
	case <-r.stopped:
		return false
	}
}

// Do runs fn on the runner's goroutine and waits for it to finish.
// Once Do reports false the runner has stopped and its fields are no
// longer written, so the caller may read them directly.
func (r *Runner[R]) Do(fn func()) bool {
	done := make(chan struct{})
	if !r.Post(func() {
		fn()
		close(done)
	}) {
		return false
	}
	select {
	case <-done:
		return true
	case <-r.stopped:
		return false
	}
}

// Submit raises a user submission. It is ignored while the trigger is disabled.
func (r *Runner[R]) Submit() {
	r.Post(r.submit)
}

// State returns the current state, or the last one reached once Run has
// returned
func (r *Runner[R]) State() domain.SubmissionState {
	var s domain.SubmissionState
	if !r.Do(func() { s = r.state }) {
		return r.state
	}
	return s
}

// Trigger returns the trigger label and whether it is enabled
func (r *Runner[R]) Trigger() (label string, enabled bool) {
	if !r.Do(func() {
		label, enabled = r.current, !r.disabled
	}) {
		return r.current, !r.disabled
	}
	return label, enabled
}

// Settled delivers the state reached by the most recent settlement.
// Only the latest unread value is kept.
func (r *Runner[R]) Settled() <-chan domain.SubmissionState {
	return r.settled
}

func (r *Runner[R]) submit() {
	if r.disabled {
		r.logger.Debug("Submission ignored while pending")
		return
	}

	call := r.handler.Begin()
	if call == nil {
		return
	}

	id := uuid.NewString()
	r.transition(domain.StatePending, id)
	r.disabled = true
	r.current = r.busyLabel
	r.render(r.current, false)

	ctx := remote.WithRequestID(r.ctx, id)
	go func() {
		res, err := call(ctx)
		r.Post(func() { r.settle(id, res, err) })
	}()
}

func (r *Runner[R]) settle(id string, res R, err error) {
	next := domain.StateFailed
	if r.handler.Settle(res, err) {
		next = domain.StateSucceeded
	}
	r.transition(next, id)

	r.disabled = false
	r.current = r.label
	r.render(r.current, true)

	select {
	case <-r.settled:
	default:
	}
	r.settled <- next
}

func (r *Runner[R]) transition(next domain.SubmissionState, id string) {
	r.logger.Info("Submission state changed",
		zap.String("request_id", id),
		zap.Stringer("from", r.state),
		zap.Stringer("to", next),
	)
	r.state = next
}
