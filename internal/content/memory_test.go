package content

import (
	"context"
	"errors"
	"testing"
	"time"

	"quoteswipe/internal/model"
)

func testItems() []model.Item {
	day := func(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC) }
	return []model.Item{
		{ID: "pub1", Text: "public one", Author: "Ada Lovelace", Moods: []string{"excited"}, CreatedAt: day(1), UserID: model.SystemUser, Public: true},
		{ID: "pub2", Text: "public two", Author: "Alan Turing", Moods: []string{"reflection", "deep-work"}, CreatedAt: day(2), UserID: model.SystemUser, Public: true},
		{ID: "own1", Text: "mine", Author: "Ada Lovelace", Moods: []string{"excited"}, CreatedAt: day(3), UserID: "u1", Public: false},
		{ID: "other", Text: "theirs", Author: "Grace Hopper", Moods: []string{"innovation"}, CreatedAt: day(4), UserID: "u2", Public: false},
	}
}

func TestMemoryListVisible(t *testing.T) {
	repo := NewMemory(testItems())
	ctx := context.Background()

	// Anonymous callers receive only public items.
	anon, err := repo.ListVisible(ctx, "", true)
	if err != nil {
		t.Fatalf("ListVisible failed: %v", err)
	}
	if len(anon) != 2 {
		t.Fatalf("anonymous got %d items, want 2", len(anon))
	}
	for _, it := range anon {
		if !it.Public {
			t.Errorf("anonymous caller received private item %s", it.ID)
		}
	}

	// Signed-in callers see public plus their own, newest first.
	mine, err := repo.ListVisible(ctx, "u1", true)
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 3 {
		t.Fatalf("u1 got %d items, want 3", len(mine))
	}
	if mine[0].ID != "own1" {
		t.Errorf("expected newest-first ordering, first = %s", mine[0].ID)
	}

	// includePublic=false narrows to owned items only.
	ownOnly, err := repo.ListVisible(ctx, "u1", false)
	if err != nil {
		t.Fatal(err)
	}
	if len(ownOnly) != 1 || ownOnly[0].ID != "own1" {
		t.Errorf("ownOnly = %v", ownOnly)
	}
}

func TestMemoryListByMoodAndAuthor(t *testing.T) {
	repo := NewMemory(testItems())
	ctx := context.Background()

	excited, err := repo.ListByMood(ctx, "excited", "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(excited) != 2 {
		t.Fatalf("excited for u1 = %d items, want 2", len(excited))
	}

	// Author match is case-insensitive substring.
	ada, err := repo.ListByAuthor(ctx, "ada", "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(ada) != 2 {
		t.Fatalf("author 'ada' = %d items, want 2", len(ada))
	}

	// Private items stay hidden from other callers.
	adaAnon, err := repo.ListByAuthor(ctx, "ada", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(adaAnon) != 1 || adaAnon[0].ID != "pub1" {
		t.Errorf("anonymous author search = %v", adaAnon)
	}
}

func TestMemoryUpdateAuthorization(t *testing.T) {
	repo := NewMemory(testItems())
	ctx := context.Background()
	text := "edited"

	// Owner can edit.
	got, err := repo.Update(ctx, "own1", "u1", Patch{Text: &text}, "u1@example.com")
	if err != nil {
		t.Fatalf("owner edit failed: %v", err)
	}
	if got.Text != "edited" {
		t.Errorf("Text = %q", got.Text)
	}

	// Non-owner cannot edit someone else's item.
	if _, err := repo.Update(ctx, "other", "u1", Patch{Text: &text}, "u1@example.com"); err == nil {
		t.Fatal("expected authorization error")
	}

	// System items require the trusted domain.
	var authErr *AuthorizationError
	_, err = repo.Update(ctx, "pub1", "u1", Patch{Text: &text}, "u1@example.com")
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthorizationError, got %v", err)
	}
	// The item is unchanged after the denial.
	items, _ := repo.ListVisible(ctx, "", true)
	for _, it := range items {
		if it.ID == "pub1" && it.Text != "public one" {
			t.Errorf("denied edit mutated the item: %q", it.Text)
		}
	}

	if _, err := repo.Update(ctx, "pub1", "u1", Patch{Text: &text}, "admin@gmail.com"); err != nil {
		t.Errorf("trusted-domain edit of system item failed: %v", err)
	}

	if _, err := repo.Update(ctx, "missing", "u1", Patch{Text: &text}, ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRemoveAndClear(t *testing.T) {
	repo := NewMemory(testItems())
	ctx := context.Background()

	if err := repo.Remove(ctx, "own1", "u2", "u2@example.com"); err == nil {
		t.Fatal("expected authorization error removing another user's item")
	}
	if err := repo.Remove(ctx, "own1", "u1", "u1@example.com"); err != nil {
		t.Fatalf("owner remove failed: %v", err)
	}
	if err := repo.Remove(ctx, "own1", "u1", ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("double remove: expected ErrNotFound, got %v", err)
	}

	if err := repo.ClearAllFor(ctx, "u2"); err != nil {
		t.Fatal(err)
	}
	left, _ := repo.ListVisible(ctx, "u2", false)
	if len(left) != 0 {
		t.Errorf("ClearAllFor left %d items", len(left))
	}
}

func TestMemoryDistinct(t *testing.T) {
	repo := NewMemory(testItems())
	ctx := context.Background()

	authors, err := repo.DistinctAuthors(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Ada Lovelace", "Alan Turing"}
	if len(authors) != len(want) {
		t.Fatalf("authors = %v", authors)
	}
	for i := range want {
		if authors[i] != want[i] {
			t.Errorf("authors[%d] = %q, want %q", i, authors[i], want[i])
		}
	}

	// Fixed moods are excluded from the tag list.
	tags, err := repo.DistinctTags(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(tags) != 1 || tags[0] != "deep-work" {
		t.Errorf("tags = %v, want [deep-work]", tags)
	}
}

func TestMemoryCreateAssignsIdentity(t *testing.T) {
	repo := NewMemory(nil)
	ctx := context.Background()

	created, err := repo.Create(ctx, model.Item{Text: "hello", Moods: []string{"excited"}}, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if created.ID == "" {
		t.Error("Create did not assign an ID")
	}
	if created.UserID != "u1" {
		t.Errorf("UserID = %q, want u1", created.UserID)
	}
	if created.Variant != model.VariantQuote {
		t.Errorf("Variant = %q, want quote default", created.Variant)
	}
	if created.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestMemoryListOwnedBy(t *testing.T) {
	repo := NewMemory(testItems())
	ctx := context.Background()

	owned, err := repo.ListOwnedBy(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	for _, it := range owned {
		if it.UserID != "u1" {
			t.Errorf("item %s owned by %q, want u1 only", it.ID, it.UserID)
		}
	}
	if len(owned) != 1 {
		t.Errorf("owned = %d items, want 1", len(owned))
	}
}
