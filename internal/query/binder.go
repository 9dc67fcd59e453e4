package query

import (
	"context"
	"errors"
	"sync"
)

// State is the fetch lifecycle of a Binder. The three remote states are
// mutually exclusive; Idle only exists before the first Load.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateError
	StateSuccess
)

// IsLoading reports whether a fetch is outstanding
func (s State) IsLoading() bool { return s == StateLoading }

// IsError reports whether the last fetch cycle ended in a failure
func (s State) IsError() bool { return s == StateError }

// IsSuccess reports whether data is available
func (s State) IsSuccess() bool { return s == StateSuccess }

// Snapshot is a point-in-time view of a Binder
type Snapshot[T any] struct {
	State State
	Data  T
	Err   string
}

// Binder binds a remote fetch to local state with latest-request-wins
// semantics: a stale response can never overwrite state produced by a newer
// Load, regardless of arrival order. Superseded fetches are cancelled, not
// merely ignored.
type Binder[T any] struct {
	mu     sync.Mutex
	gen    uint64
	state  State
	data   T
	errMsg string
	cancel context.CancelFunc
}

// NewBinder creates an idle Binder
func NewBinder[T any]() *Binder[T] {
	return &Binder[T]{}
}

// Load starts a fetch, cancelling any fetch still in flight. The result is
// applied only if no newer Load happened in the meantime. Exactly one fetch
// runs per Load call; there is no retry.
func (b *Binder[T]) Load(ctx context.Context, fetch func(context.Context) (T, error)) {
	b.mu.Lock()
	b.gen++
	gen := b.gen
	if b.cancel != nil {
		b.cancel()
	}
	fctx, cancel := context.WithCancel(ctx)
	b.cancel = cancel
	b.state = StateLoading
	b.errMsg = ""
	b.mu.Unlock()

	go func() {
		data, err := fetch(fctx)

		b.mu.Lock()
		defer b.mu.Unlock()
		if gen != b.gen {
			return
		}
		b.cancel = nil
		if err != nil {
			// Cancellation means this fetch was superseded or torn down;
			// it is never a user-visible error.
			if errors.Is(err, context.Canceled) {
				return
			}
			b.state = StateError
			b.errMsg = err.Error()
			return
		}
		b.state = StateSuccess
		b.data = data
	}()
}

// Cancel aborts any in-flight fetch without changing published state.
// Used on teardown so nothing updates state after the consumer is gone.
func (b *Binder[T]) Cancel() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.gen++
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
}

// Snapshot returns the current state, data and error message
func (b *Binder[T]) Snapshot() Snapshot[T] {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Snapshot[T]{State: b.state, Data: b.data, Err: b.errMsg}
}
