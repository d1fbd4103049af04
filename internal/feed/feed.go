// Package feed implements the controller at the heart of the application.
//
// The controller owns the visible card list, the active tab and filter, the
// swipe cursor with its undo history, and the shuffle cache (the last full
// fetch, randomly permuted, reused across tab switches to avoid refetching).
// It mediates between the content repository and the presentation layer.
//
// # Concurrency
//
// State transitions (Advance, Retreat, SelectTab from cache) are cheap and
// synchronous. Fetching operations block and are meant to run off the UI
// loop; the controller serializes state access with a mutex and releases it
// around network calls. Overlapping fetches are resolved by a request
// generation counter: a response is applied only if no newer list-replacing
// operation was issued while it was in flight, so a slow fetch can never
// clobber a fresher one.
package feed

import "quoteswipe/internal/model"

// FilterState identifies the active view plus the optional mood or author
// value narrowing the random-family tabs.
type FilterState struct {
	Tab   model.Tab
	Value string
}

// Narrowed reports whether a mood/author narrowing is active.
func (f FilterState) Narrowed() bool {
	return f.Value != "" && (f.Tab == model.TabMood || f.Tab == model.TabAuthor)
}

// Cursor is the swipe position and its undo stack. Forward swipes push the
// departed index; backward swipes pop it. The history never survives a
// list replacement.
type Cursor struct {
	Index   int
	history []int
}

// advance moves forward one card, recording the departed index.
// No-op at the end of the list; there is no wraparound.
func (c *Cursor) advance(size int) bool {
	if c.Index >= size-1 {
		return false
	}
	c.history = append(c.history, c.Index)
	c.Index++
	return true
}

// retreat pops back to the most recently departed index. No-op when the
// history is empty: you cannot retreat past the first card shown.
func (c *Cursor) retreat() bool {
	if len(c.history) == 0 {
		return false
	}
	c.Index = c.history[len(c.history)-1]
	c.history = c.history[:len(c.history)-1]
	return true
}

func (c *Cursor) reset() {
	c.Index = 0
	c.history = c.history[:0]
}

// HistoryLen returns the undo depth.
func (c *Cursor) HistoryLen() int {
	return len(c.history)
}

// View is a render snapshot handed to the presentation layer.
type View struct {
	Tab        model.Tab
	Mode       model.ViewMode
	Filter     FilterState
	Items      []model.Item
	Index      int
	CanRetreat bool
}

// Current returns the card under the cursor.
func (v View) Current() (model.Item, bool) {
	if v.Index < 0 || v.Index >= len(v.Items) {
		return model.Item{}, false
	}
	return v.Items[v.Index], true
}
