// Package progress rotates status phrases while a query is in flight.
package progress

import (
	"sync"
	"time"
)

// DefaultInterval is the time between phrases
const DefaultInterval = 2 * time.Second

// Phrases shown in order while a query is pending
var Phrases = []string{
	"Processing your request...",
	"Analyzing document content...",
	"Extracting relevant information...",
	"Preparing detailed response...",
}

// Display renders the progress line
type Display interface {
	SetProgress(text string, visible bool)
}

// Rotator cycles through Phrases between Start and Stop
type Rotator struct {
	display  Display
	interval time.Duration
	phrases  []string

	mu    sync.Mutex
	index int
	stop  chan struct{}
}

// New creates a Rotator
func New(display Display, interval time.Duration) *Rotator {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Rotator{
		display:  display,
		interval: interval,
		phrases:  Phrases,
	}
}

// Start shows the first phrase and begins rotating. Calling Start while
// running does nothing.
func (r *Rotator) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stop != nil {
		return
	}
	r.index = 0
	r.stop = make(chan struct{})
	r.display.SetProgress(r.phrases[0], true)
	go r.loop(r.stop)
}

// Stop hides the progress line and resets to the first phrase
func (r *Rotator) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stop == nil {
		return
	}
	close(r.stop)
	r.stop = nil
	r.index = 0
	r.display.SetProgress("", false)
}

// Current returns the visible phrase and whether the rotator is running
func (r *Rotator) Current() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stop == nil {
		return "", false
	}
	return r.phrases[r.index], true
}

func (r *Rotator) loop(stop chan struct{}) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			r.advance(stop)
		}
	}
}

func (r *Rotator) advance(stop chan struct{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// a tick racing with Stop belongs to a finished rotation
	if r.stop != stop {
		return
	}
	r.index = (r.index + 1) % len(r.phrases)
	r.display.SetProgress(r.phrases[r.index], true)
}
