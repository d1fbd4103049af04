package usage

import (
	"fmt"
	"testing"
	"time"

	"quoteswipe/internal/store"
)

func newTrackerTest(t *testing.T) (*Tracker, *time.Time) {
	t.Helper()
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	clock := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	tr := NewTracker(st)
	tr.now = func() time.Time { return clock }
	return tr, &clock
}

func TestRecordAndRank(t *testing.T) {
	tr, clock := newTrackerTest(t)

	// "focus" used twice, "calm" once, same day: count breaks the tie.
	tr.Record(CategoryTags, "focus")
	tr.Record(CategoryTags, "calm")
	*clock = clock.Add(time.Hour)
	tr.Record(CategoryTags, "focus")

	got, err := tr.Rank(CategoryTags, []string{"calm", "focus", "untracked-a", "untracked-b"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"focus", "calm", "untracked-a", "untracked-b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rank = %v, want %v", got, want)
		}
	}
}

func TestRankRecencyBeatsCountOutsideWindow(t *testing.T) {
	tr, clock := newTrackerTest(t)

	// "old" used many times, long ago; "new" used once, just now.
	for i := 0; i < 5; i++ {
		tr.Record(CategoryAuthors, "old")
	}
	*clock = clock.Add(48 * time.Hour)
	tr.Record(CategoryAuthors, "new")

	got, err := tr.Rank(CategoryAuthors, []string{"old", "new"})
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != "new" {
		t.Errorf("rank = %v, want new first (recency outside window wins)", got)
	}
}

func TestRankIdempotent(t *testing.T) {
	tr, clock := newTrackerTest(t)

	tr.Record(CategoryTags, "a")
	*clock = clock.Add(time.Minute)
	tr.Record(CategoryTags, "b")
	*clock = clock.Add(time.Minute)
	tr.Record(CategoryTags, "b")

	input := []string{"z", "a", "b", "y"}
	first, err := tr.Rank(CategoryTags, input)
	if err != nil {
		t.Fatal(err)
	}
	second, err := tr.Rank(CategoryTags, input)
	if err != nil {
		t.Fatal(err)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("rank not idempotent: %v vs %v", first, second)
		}
	}
}

func TestRecordIgnoresBlank(t *testing.T) {
	tr, _ := newTrackerTest(t)

	tr.Record(CategoryTags, "   ")
	tr.Record(CategoryTags, "")

	recents, err := tr.Recents(CategoryTags)
	if err != nil {
		t.Fatal(err)
	}
	if len(recents) != 0 {
		t.Errorf("blank values were recorded: %v", recents)
	}
}

func TestRecordTrims(t *testing.T) {
	tr, _ := newTrackerTest(t)

	tr.Record(CategoryAuthors, "  Munger  ")
	recents, err := tr.Recents(CategoryAuthors)
	if err != nil {
		t.Fatal(err)
	}
	if len(recents) != 1 || recents[0] != "Munger" {
		t.Errorf("recents = %v, want [Munger]", recents)
	}
}

func TestCapEvictsLeastUsed(t *testing.T) {
	tr, clock := newTrackerTest(t)

	// Fill to the cap, giving each value a distinct count profile.
	for i := 0; i < MaxRecords; i++ {
		v := fmt.Sprintf("tag-%03d", i)
		tr.Record(CategoryTags, v)
		if i == 0 {
			// tag-000 gets extra uses so it survives eviction.
			tr.Record(CategoryTags, v)
			tr.Record(CategoryTags, v)
		}
		*clock = clock.Add(time.Second)
	}

	// One more pushes past the cap; the single-use oldest record goes.
	tr.Record(CategoryTags, "overflow")

	recents, err := tr.Recents(CategoryTags)
	if err != nil {
		t.Fatal(err)
	}
	if len(recents) != MaxRecords {
		t.Fatalf("got %d records, want cap %d", len(recents), MaxRecords)
	}

	seen := map[string]bool{}
	for _, v := range recents {
		seen[v] = true
	}
	if !seen["tag-000"] {
		t.Error("multi-use record was evicted before single-use ones")
	}
	if !seen["overflow"] {
		t.Error("newest record missing after eviction")
	}
	if seen["tag-001"] {
		t.Error("oldest single-use record should have been evicted")
	}
}

func TestClear(t *testing.T) {
	tr, _ := newTrackerTest(t)

	tr.Record(CategoryTags, "x")
	tr.Record(CategoryAuthors, "y")
	if err := tr.Clear(CategoryTags); err != nil {
		t.Fatal(err)
	}

	tags, _ := tr.Recents(CategoryTags)
	authors, _ := tr.Recents(CategoryAuthors)
	if len(tags) != 0 {
		t.Errorf("tags not cleared: %v", tags)
	}
	if len(authors) != 1 {
		t.Errorf("clear leaked into authors: %v", authors)
	}
}
