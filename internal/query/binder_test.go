package query

import (
	"context"
	"errors"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("Condition not reached in time")
}

func TestBinderLoadSuccess(t *testing.T) {
	b := NewBinder[[]string]()

	if b.Snapshot().State != StateIdle {
		t.Fatal("New binder should be idle")
	}

	b.Load(context.Background(), func(ctx context.Context) ([]string, error) {
		return []string{"Heat", "Ronin"}, nil
	})

	waitFor(t, func() bool { return b.Snapshot().State == StateSuccess })
	if got := b.Snapshot().Data; len(got) != 2 || got[0] != "Heat" {
		t.Errorf("Unexpected data: %v", got)
	}
}

func TestBinderLoadError(t *testing.T) {
	b := NewBinder[[]string]()

	b.Load(context.Background(), func(ctx context.Context) ([]string, error) {
		return nil, errors.New("backend unreachable")
	})

	waitFor(t, func() bool { return b.Snapshot().State == StateError })
	if snap := b.Snapshot(); snap.Err != "backend unreachable" {
		t.Errorf("Unexpected error message: %q", snap.Err)
	}
}

func TestBinderStaleResponseNeverOverwrites(t *testing.T) {
	b := NewBinder[string]()

	firstStarted := make(chan context.Context, 1)
	releaseFirst := make(chan struct{})

	b.Load(context.Background(), func(ctx context.Context) (string, error) {
		firstStarted <- ctx
		<-releaseFirst
		return "stale", nil
	})

	ctx1 := <-firstStarted

	b.Load(context.Background(), func(ctx context.Context) (string, error) {
		return "fresh", nil
	})

	// The superseded fetch is cancelled, not just ignored
	select {
	case <-ctx1.Done():
	case <-time.After(time.Second):
		t.Fatal("Superseded fetch was not cancelled")
	}

	waitFor(t, func() bool {
		snap := b.Snapshot()
		return snap.State == StateSuccess && snap.Data == "fresh"
	})

	// Let the stale fetch complete; its result must be dropped no matter
	// when it arrives
	close(releaseFirst)
	time.Sleep(20 * time.Millisecond)

	if snap := b.Snapshot(); snap.Data != "fresh" {
		t.Fatalf("Stale response overwrote newer state: %q", snap.Data)
	}
}

func TestBinderCancelSuppressesResult(t *testing.T) {
	b := NewBinder[string]()

	started := make(chan struct{})
	b.Load(context.Background(), func(ctx context.Context) (string, error) {
		close(started)
		<-ctx.Done()
		return "", ctx.Err()
	})

	<-started
	b.Cancel()
	time.Sleep(20 * time.Millisecond)

	// Cancellation is deliberate: no error state is published
	if snap := b.Snapshot(); snap.State == StateError {
		t.Fatalf("Teardown cancellation surfaced as error: %q", snap.Err)
	}
}
