package model

import (
	"errors"
	"testing"
)

func TestVariantOrDefault(t *testing.T) {
	legacy := Item{ID: "a"}
	if legacy.VariantOrDefault() != VariantQuote {
		t.Errorf("empty variant should resolve to quote, got %q", legacy.VariantOrDefault())
	}
	if !legacy.Is(VariantQuote) {
		t.Error("legacy item should match quote variant")
	}

	p := Item{ID: "b", Variant: VariantParadigm}
	if p.Is(VariantQuote) {
		t.Error("paradigm item must not match quote variant")
	}
}

func TestFilterByVariant(t *testing.T) {
	items := []Item{
		{ID: "1"}, // legacy quote
		{ID: "2", Variant: VariantQuote},
		{ID: "3", Variant: VariantVitality},
		{ID: "4", Variant: VariantParadigm},
	}

	quotes := FilterByVariant(items, VariantQuote)
	if len(quotes) != 2 {
		t.Fatalf("got %d quotes, want 2", len(quotes))
	}
	if quotes[0].ID != "1" || quotes[1].ID != "2" {
		t.Errorf("filter must preserve order, got %v", quotes)
	}

	if got := FilterByVariant(items, VariantVitality); len(got) != 1 || got[0].ID != "3" {
		t.Errorf("vitality filter = %v", got)
	}
}

func TestAuthorMatches(t *testing.T) {
	it := Item{ID: "a", Author: "Alice Smith"}

	if !it.AuthorMatches("alice") {
		t.Error("match should ignore case")
	}
	if !it.AuthorMatches("Smith") {
		t.Error("match should accept substrings")
	}
	if it.AuthorMatches("Bob") {
		t.Error("unrelated needle must not match")
	}
	if !it.AuthorMatches("") {
		t.Error("empty needle matches every author")
	}
}

func TestVisibleTo(t *testing.T) {
	private := Item{ID: "p", UserID: "u1", Public: false}
	public := Item{ID: "q", UserID: "u1", Public: true}

	if private.VisibleTo("") {
		t.Error("anonymous caller must not see private items")
	}
	if !public.VisibleTo("") {
		t.Error("anonymous caller should see public items")
	}
	if !private.VisibleTo("u1") {
		t.Error("owner should see own private items")
	}
	if private.VisibleTo("u2") {
		t.Error("other users must not see private items")
	}
}

func TestDraftValidateCollectsAllViolations(t *testing.T) {
	long := make([]byte, MaxTextLen+1)
	for i := range long {
		long[i] = 'x'
	}

	d := Draft{Text: string(long), Author: string(long[:MaxAuthorLen+1])}
	err := d.Validate()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	// Over-length text, over-length author, missing labels: three rules at once.
	if len(verr.Violations) != 3 {
		t.Errorf("got %d violations, want 3: %v", len(verr.Violations), verr.Violations)
	}
}

func TestDraftValidateVitality(t *testing.T) {
	d := Draft{Text: "breathe", Variant: VariantVitality}
	err := d.Validate()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Violations) != 1 || verr.Violations[0] != "Please add at least one tag" {
		t.Errorf("violations = %v", verr.Violations)
	}

	d.Tags = []string{"calm"}
	if err := d.Validate(); err != nil {
		t.Errorf("valid vitality draft rejected: %v", err)
	}
}

func TestParadigmDraftValidate(t *testing.T) {
	// The canonical empty submission yields exactly two errors.
	d := ParadigmDraft{}
	err := d.Validate()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := []string{"Theory name cannot be empty", "Please add at least one foundation"}
	if len(verr.Violations) != 2 {
		t.Fatalf("got %d violations, want 2: %v", len(verr.Violations), verr.Violations)
	}
	for i, w := range want {
		if verr.Violations[i] != w {
			t.Errorf("violation[%d] = %q, want %q", i, verr.Violations[i], w)
		}
	}

	d = ParadigmDraft{
		Theory: "First Principles",
		Foundations: []Foundation{
			{Title: "Decompose"},
			{Title: "   "},
		},
	}
	err = d.Validate()
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Violations) != 1 || verr.Violations[0] != "Foundation 2: Title cannot be empty" {
		t.Errorf("violations = %v", verr.Violations)
	}

	d.Foundations[1].Title = "Reassemble"
	if err := d.Validate(); err != nil {
		t.Errorf("valid paradigm draft rejected: %v", err)
	}
}

func TestSeedAllPublicSystemQuotes(t *testing.T) {
	seed := Seed()
	if len(seed) == 0 {
		t.Fatal("seed set is empty")
	}
	ids := map[string]bool{}
	for _, it := range seed {
		if !it.Public {
			t.Errorf("seed item %s is not public", it.ID)
		}
		if it.UserID != SystemUser {
			t.Errorf("seed item %s owner = %q, want system", it.ID, it.UserID)
		}
		if !it.Is(VariantQuote) {
			t.Errorf("seed item %s is not a quote", it.ID)
		}
		if ids[it.ID] {
			t.Errorf("duplicate seed id %s", it.ID)
		}
		ids[it.ID] = true
	}
}
