package store

import (
	"testing"
	"time"
)

func TestOpen(t *testing.T) {
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer st.Close()

	// Verify the table exists by querying it
	var name string
	err = st.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='usage_records'").Scan(&name)
	if err != nil {
		t.Fatalf("usage_records table not created: %v", err)
	}
	if name != "usage_records" {
		t.Errorf("expected table name 'usage_records', got %q", name)
	}
}

func TestTouchUpserts(t *testing.T) {
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer st.Close()

	t0 := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	if err := st.Touch("authors", "Munger", t0); err != nil {
		t.Fatal(err)
	}
	if err := st.Touch("authors", "Munger", t0.Add(time.Hour)); err != nil {
		t.Fatal(err)
	}
	if err := st.Touch("authors", "Jobs", t0); err != nil {
		t.Fatal(err)
	}

	records, err := st.Records("authors")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	byValue := map[string]UsageRecord{}
	for _, r := range records {
		byValue[r.Value] = r
	}
	if byValue["Munger"].Count != 2 {
		t.Errorf("Munger count = %d, want 2", byValue["Munger"].Count)
	}
	if !byValue["Munger"].LastUsed.Equal(t0.Add(time.Hour)) {
		t.Errorf("Munger timestamp not refreshed: %v", byValue["Munger"].LastUsed)
	}
	if byValue["Jobs"].Count != 1 {
		t.Errorf("Jobs count = %d, want 1", byValue["Jobs"].Count)
	}
}

func TestCategoriesIsolated(t *testing.T) {
	st, err := Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	now := time.Now()
	st.Touch("authors", "shared-name", now)
	st.Touch("tags", "shared-name", now)
	st.Touch("tags", "focus", now)

	authors, _ := st.Records("authors")
	tags, _ := st.Records("tags")
	if len(authors) != 1 || len(tags) != 2 {
		t.Errorf("authors=%d tags=%d, want 1 and 2", len(authors), len(tags))
	}

	if err := st.ClearCategory("tags"); err != nil {
		t.Fatal(err)
	}
	tags, _ = st.Records("tags")
	authors, _ = st.Records("authors")
	if len(tags) != 0 || len(authors) != 1 {
		t.Errorf("clear leaked across categories: authors=%d tags=%d", len(authors), len(tags))
	}
}

func TestDeleteValues(t *testing.T) {
	st, err := Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	now := time.Now()
	for _, v := range []string{"a", "b", "c"} {
		st.Touch("tags", v, now)
	}
	if err := st.DeleteValues("tags", []string{"a", "c"}); err != nil {
		t.Fatal(err)
	}

	records, _ := st.Records("tags")
	if len(records) != 1 || records[0].Value != "b" {
		t.Errorf("records after delete = %v", records)
	}

	counts, err := st.CategoryCounts()
	if err != nil {
		t.Fatal(err)
	}
	if counts["tags"] != 1 {
		t.Errorf("CategoryCounts[tags] = %d, want 1", counts["tags"])
	}
}
