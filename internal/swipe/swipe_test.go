package swipe

import (
	"testing"
	"time"
)

// testClock drives the recognizer deterministically.
type testClock struct {
	t time.Time
}

func (c *testClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestRecognizer() (*Recognizer, *testClock) {
	clock := &testClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	r := NewRecognizer()
	r.now = func() time.Time { return clock.t }
	return r, clock
}

func TestSubThresholdReleaseSpringsBack(t *testing.T) {
	r, clock := newTestRecognizer()

	r.Begin(40)
	clock.advance(500 * time.Millisecond)
	r.Move(37) // 3 cells over half a second, slow and short

	if dir := r.End(); dir != DirectionNone {
		t.Fatalf("direction = %s, want none for a sub-threshold release", dir)
	}
	if r.Settling() {
		t.Error("spring back must not lock the recognizer")
	}
	if r.Offset() != 0 {
		t.Errorf("offset = %d after release, want 0", r.Offset())
	}
}

func TestDistanceCommitLeftAdvances(t *testing.T) {
	r, clock := newTestRecognizer()

	r.Begin(40)
	clock.advance(time.Second)
	r.Move(30) // 10 cells left, slowly

	if dir := r.End(); dir != DirectionForward {
		t.Fatalf("direction = %s, want forward", dir)
	}
	if !r.Settling() {
		t.Error("commit must lock until Settle")
	}
}

func TestDistanceCommitRightRetreats(t *testing.T) {
	r, clock := newTestRecognizer()

	r.Begin(40)
	clock.advance(time.Second)
	r.Move(50)

	if dir := r.End(); dir != DirectionBackward {
		t.Fatalf("direction = %s, want backward", dir)
	}
}

func TestVelocityCommitBeatsShortDistance(t *testing.T) {
	r, clock := newTestRecognizer()

	r.Begin(40)
	clock.advance(50 * time.Millisecond)
	r.Move(36) // 4 cells in 50ms = 80 cells/s, well past the speed threshold

	if dir := r.End(); dir != DirectionForward {
		t.Fatalf("direction = %s, want forward on a fast flick", dir)
	}
}

func TestCommitLocksUntilSettle(t *testing.T) {
	r, clock := newTestRecognizer()

	r.Begin(40)
	clock.advance(time.Second)
	r.Move(25)
	if dir := r.End(); dir != DirectionForward {
		t.Fatalf("setup commit failed: %s", dir)
	}

	// A gesture arriving during the transition must be swallowed whole.
	r.Begin(40)
	clock.advance(time.Second)
	if off := r.Move(20); off != 0 {
		t.Errorf("move while settling produced offset %d", off)
	}
	if dir := r.End(); dir != DirectionNone {
		t.Errorf("end while settling committed %s", dir)
	}

	r.Settle()
	r.Begin(40)
	clock.advance(time.Second)
	r.Move(25)
	if dir := r.End(); dir != DirectionForward {
		t.Errorf("direction = %s after settle, want forward", dir)
	}
}

func TestMoveNeverCommits(t *testing.T) {
	r, clock := newTestRecognizer()

	r.Begin(40)
	for i := 1; i <= 30; i++ {
		clock.advance(10 * time.Millisecond)
		r.Move(40 - i)
	}
	if r.Settling() {
		t.Fatal("moves alone must never commit a transition")
	}
	if !r.Dragging() {
		t.Fatal("drag should still be in progress")
	}
}

func TestCancelAbortsDrag(t *testing.T) {
	r, clock := newTestRecognizer()

	r.Begin(40)
	clock.advance(time.Second)
	r.Move(20)
	r.Cancel()

	if r.Dragging() {
		t.Error("cancel left the drag active")
	}
	if dir := r.End(); dir != DirectionNone {
		t.Errorf("end after cancel committed %s", dir)
	}
}

func TestProgressClamps(t *testing.T) {
	r, clock := newTestRecognizer()

	r.Begin(40)
	clock.advance(100 * time.Millisecond)
	r.Move(36)
	if p := r.Progress(); p != 0.5 {
		t.Errorf("progress = %v at half the distance threshold, want 0.5", p)
	}
	clock.advance(100 * time.Millisecond)
	r.Move(0)
	if p := r.Progress(); p != 1 {
		t.Errorf("progress = %v past the threshold, want clamped to 1", p)
	}
}
