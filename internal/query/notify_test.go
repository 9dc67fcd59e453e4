package query

import (
	"testing"
	"time"
)

func TestNotifierShowsAndDismisses(t *testing.T) {
	clock := NewManualClock()
	n := NewNotifier(3*time.Second, clock)

	n.Show("Rating saved")

	msg, visible := n.Current()
	if !visible || msg != "Rating saved" {
		t.Fatalf("Expected visible message, got %q visible=%v", msg, visible)
	}

	clock.Advance(2 * time.Second)
	if _, visible := n.Current(); !visible {
		t.Fatal("Message dismissed before its duration elapsed")
	}

	clock.Advance(time.Second)
	if msg, visible := n.Current(); visible {
		t.Fatalf("Message %q still visible after duration elapsed", msg)
	}
}

func TestNotifierNewerMessagePreempts(t *testing.T) {
	clock := NewManualClock()
	n := NewNotifier(3*time.Second, clock)

	n.Show("A")
	clock.Advance(2 * time.Second)
	n.Show("B")

	msg, visible := n.Current()
	if !visible || msg != "B" {
		t.Fatalf("Expected B to replace A immediately, got %q visible=%v", msg, visible)
	}

	// A's original timer would have expired here; B's restarted timer must
	// keep the slot occupied
	clock.Advance(1500 * time.Millisecond)
	msg, visible = n.Current()
	if !visible || msg != "B" {
		t.Fatalf("Dismissal timer did not restart from B, got %q visible=%v", msg, visible)
	}

	clock.Advance(2 * time.Second)
	if _, visible := n.Current(); visible {
		t.Fatal("B still visible after its full duration")
	}
}

func TestNotifierCustomDuration(t *testing.T) {
	clock := NewManualClock()
	n := NewNotifier(3*time.Second, clock)

	n.ShowFor("quick", time.Second)
	clock.Advance(time.Second)
	if _, visible := n.Current(); visible {
		t.Fatal("Custom duration was not honored")
	}
}
