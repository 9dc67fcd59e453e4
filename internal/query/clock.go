// Package query implements the interaction primitives every view repeats:
// latest-request-wins remote fetches, debounced cancellable search and a
// single-slot transient notification channel.
package query

import "time"

// Clock abstracts timer creation so debounce windows and notification
// dismissal can be driven deterministically in tests
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a stoppable pending callback
type Timer interface {
	Stop() bool
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return realTimer{time.AfterFunc(d, f)}
}

type realTimer struct {
	t *time.Timer
}

func (rt realTimer) Stop() bool {
	return rt.t.Stop()
}

// RealClock returns a Clock backed by the runtime timers
func RealClock() Clock {
	return realClock{}
}
