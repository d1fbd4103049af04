// Package usage tracks recency and frequency of free-text field values so
// the forms can order their quick-select suggestions. Ranking affects
// presentation only; it never filters anything.
package usage

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"quoteswipe/internal/store"
)

// Categories of tracked values.
const (
	CategoryAuthors = "authors"
	CategoryTags    = "tags"
)

// MaxRecords caps how many records a category retains. Past the cap the
// least-used records are evicted first.
const MaxRecords = 100

// recencyWindow is how close two timestamps must be to count as "used at
// the same time", at which point use count breaks the tie.
const recencyWindow = 24 * time.Hour

// Tracker persists usage counters in the store.
type Tracker struct {
	store *store.Store
	now   func() time.Time
}

// NewTracker creates a Tracker backed by st.
func NewTracker(st *store.Store) *Tracker {
	return &Tracker{store: st, now: time.Now}
}

// Record notes one use of value in category. Blank values are ignored.
func (t *Tracker) Record(category, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	if err := t.store.Touch(category, value, t.now()); err != nil {
		return fmt.Errorf("record usage: %w", err)
	}
	return t.evictPastCap(category)
}

// RecordAll records every value in order, skipping blanks.
func (t *Tracker) RecordAll(category string, values []string) error {
	for _, v := range values {
		if err := t.Record(category, v); err != nil {
			return err
		}
	}
	return nil
}

// evictPastCap drops the least-used records (ties broken by oldest
// timestamp) until the category is back at the cap.
func (t *Tracker) evictPastCap(category string) error {
	records, err := t.store.Records(category)
	if err != nil {
		return err
	}
	if len(records) <= MaxRecords {
		return nil
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].Count != records[j].Count {
			return records[i].Count < records[j].Count
		}
		return records[i].LastUsed.Before(records[j].LastUsed)
	})

	excess := records[:len(records)-MaxRecords]
	values := make([]string, len(excess))
	for i, r := range excess {
		values[i] = r.Value
	}
	return t.store.DeleteValues(category, values)
}

// Rank orders items by usage: tracked values first, most recently used
// leading, with untracked values appended in their original order. Two
// uses within the recency window compare by descending use count instead.
func (t *Tracker) Rank(category string, items []string) ([]string, error) {
	records, err := t.store.Records(category)
	if err != nil {
		return nil, fmt.Errorf("rank by usage: %w", err)
	}

	byValue := make(map[string]store.UsageRecord, len(records))
	for _, r := range records {
		byValue[r.Value] = r
	}

	type trackedItem struct {
		value string
		rec   store.UsageRecord
	}
	var tracked []trackedItem
	var untracked []string
	for _, item := range items {
		if rec, ok := byValue[item]; ok {
			tracked = append(tracked, trackedItem{item, rec})
		} else {
			untracked = append(untracked, item)
		}
	}

	sort.SliceStable(tracked, func(i, j int) bool {
		a, b := tracked[i].rec, tracked[j].rec
		diff := a.LastUsed.Sub(b.LastUsed)
		if diff < 0 {
			diff = -diff
		}
		if diff < recencyWindow {
			return a.Count > b.Count
		}
		return a.LastUsed.After(b.LastUsed)
	})

	out := make([]string, 0, len(items))
	for _, ti := range tracked {
		out = append(out, ti.value)
	}
	out = append(out, untracked...)
	return out, nil
}

// Recents returns every tracked value in a category in rank order.
func (t *Tracker) Recents(category string) ([]string, error) {
	records, err := t.store.Records(category)
	if err != nil {
		return nil, fmt.Errorf("list recents: %w", err)
	}

	values := make([]string, len(records))
	for i, r := range records {
		values[i] = r.Value
	}
	return t.Rank(category, values)
}

// Clear removes all usage data in a category.
func (t *Tracker) Clear(category string) error {
	return t.store.ClearCategory(category)
}
