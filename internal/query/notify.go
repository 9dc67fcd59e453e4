package query

import (
	"sync"
	"time"
)

// DefaultNotifyDuration is how long a message stays visible unless the
// caller asks otherwise
const DefaultNotifyDuration = 3 * time.Second

// Notifier is a single-slot transient message store. Only one message is
// visible at a time: a newer Show preempts the current message and restarts
// the dismissal timer. The timer is the only way the slot clears.
type Notifier struct {
	mu       sync.Mutex
	clock    Clock
	duration time.Duration
	msg      string
	visible  bool
	gen      uint64
	timer    Timer
}

// NewNotifier creates a Notifier with the given default display duration
func NewNotifier(duration time.Duration, clock Clock) *Notifier {
	if duration <= 0 {
		duration = DefaultNotifyDuration
	}
	return &Notifier{clock: clock, duration: duration}
}

// Show replaces the visible message and restarts the dismissal timer
func (n *Notifier) Show(message string) {
	n.ShowFor(message, n.duration)
}

// ShowFor is Show with an explicit display duration
func (n *Notifier) ShowFor(message string, d time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.gen++
	gen := n.gen
	if n.timer != nil {
		n.timer.Stop()
	}
	n.msg = message
	n.visible = true
	n.timer = n.clock.AfterFunc(d, func() {
		n.dismiss(gen)
	})
}

func (n *Notifier) dismiss(gen uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if gen != n.gen {
		return
	}
	n.msg = ""
	n.visible = false
	n.timer = nil
}

// Current returns the visible message, if any
func (n *Notifier) Current() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.msg, n.visible
}
