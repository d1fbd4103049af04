// Package swipe implements the drag-gesture state machine that turns
// pointer movement into card navigation. It is pure state: the caller
// feeds it begin/move/end events and renders from the transient offset;
// the recognizer decides when a release commits a direction.
package swipe

import "time"

// Commit thresholds, in terminal cells. A release commits when either the
// horizontal offset or the instantaneous release velocity crosses its
// threshold; anything below both springs back with no state change.
const (
	CommitDistance = 8    // cells
	CommitVelocity = 30.0 // cells per second
)

// Direction is the outcome of a completed gesture.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionForward            // dragged left, next card
	DirectionBackward           // dragged right, previous card
)

func (d Direction) String() string {
	switch d {
	case DirectionForward:
		return "forward"
	case DirectionBackward:
		return "backward"
	default:
		return "none"
	}
}

type state int

const (
	stateIdle state = iota
	stateDragging
	stateCommitted // locked until Settle
)

// Recognizer tracks one pointer drag at a time. After a commit it stays
// locked until Settle is called, so a single gesture can never advance
// twice while the transition animation plays.
//
// Not safe for concurrent use; it lives on the UI event loop.
type Recognizer struct {
	state  state
	origin int
	last   int
	prev   int
	lastAt time.Time
	prevAt time.Time

	now func() time.Time
}

// NewRecognizer returns an idle recognizer.
func NewRecognizer() *Recognizer {
	return &Recognizer{now: time.Now}
}

// Begin starts tracking a drag at the given column. Ignored while a
// committed transition is still settling.
func (r *Recognizer) Begin(x int) {
	if r.state == stateCommitted {
		return
	}
	t := r.now()
	r.state = stateDragging
	r.origin = x
	r.last = x
	r.prev = x
	r.lastAt = t
	r.prevAt = t
}

// Move updates the drag position and returns the transient offset for
// rendering. Moves never mutate committed state.
func (r *Recognizer) Move(x int) int {
	if r.state != stateDragging {
		return 0
	}
	r.prev = r.last
	r.prevAt = r.lastAt
	r.last = x
	r.lastAt = r.now()
	return r.Offset()
}

// End completes the gesture. It returns the committed direction, or
// DirectionNone for a sub-threshold release (spring back). On a commit
// the recognizer locks until Settle.
func (r *Recognizer) End() Direction {
	if r.state != stateDragging {
		return DirectionNone
	}
	offset := r.Offset()
	velocity := r.releaseVelocity()
	r.state = stateIdle

	committed := abs(offset) > CommitDistance || absf(velocity) > CommitVelocity
	if !committed || offset == 0 {
		return DirectionNone
	}
	r.state = stateCommitted
	if offset < 0 {
		return DirectionForward
	}
	return DirectionBackward
}

// Settle unlocks the recognizer after the transition animation finishes.
func (r *Recognizer) Settle() {
	if r.state == stateCommitted {
		r.state = stateIdle
	}
}

// Cancel aborts an in-progress drag without committing.
func (r *Recognizer) Cancel() {
	if r.state == stateDragging {
		r.state = stateIdle
	}
}

// Offset is the current horizontal displacement in cells, zero when no
// drag is in progress.
func (r *Recognizer) Offset() int {
	if r.state != stateDragging {
		return 0
	}
	return r.last - r.origin
}

// Dragging reports whether a drag is in progress.
func (r *Recognizer) Dragging() bool {
	return r.state == stateDragging
}

// Settling reports whether a committed transition is still locking out
// new gestures.
func (r *Recognizer) Settling() bool {
	return r.state == stateCommitted
}

// Progress is the fraction of the distance threshold covered, clamped to
// [0, 1], for styling the card while dragging.
func (r *Recognizer) Progress() float64 {
	p := float64(abs(r.Offset())) / float64(CommitDistance)
	if p > 1 {
		return 1
	}
	return p
}

// releaseVelocity is the instantaneous speed over the final movement
// sample, signed like the offset.
func (r *Recognizer) releaseVelocity() float64 {
	dt := r.lastAt.Sub(r.prevAt).Seconds()
	if dt <= 0 {
		return 0
	}
	return float64(r.last-r.prev) / dt
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func absf(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
