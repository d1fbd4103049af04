package ui

import (
	"testing"

	"quoteswipe/internal/model"
)

func TestQuoteFormDraft(t *testing.T) {
	f := newQuoteForm(80, model.VariantQuote, nil, nil)
	f.text.SetValue("Stay hungry, stay foolish.")
	f.author.SetValue("Steve Jobs")
	f.tags.SetValue("commencement, stanford")
	f.moodOn["excited"] = true

	d := f.draft()
	if d.Text != "Stay hungry, stay foolish." || d.Author != "Steve Jobs" {
		t.Errorf("draft = %+v", d)
	}
	if len(d.Moods) != 1 || d.Moods[0] != "excited" {
		t.Errorf("moods = %v", d.Moods)
	}
	if len(d.Tags) != 2 || d.Tags[0] != "commencement" || d.Tags[1] != "stanford" {
		t.Errorf("tags = %v", d.Tags)
	}
	if err := d.Validate(); err != nil {
		t.Errorf("draft should validate: %v", err)
	}
}

func TestQuoteFormPrefillSplitsMoodsAndTags(t *testing.T) {
	f := newQuoteForm(80, model.VariantQuote, nil, nil)
	f.prefill(model.Item{
		ID:     "q1",
		Text:   "body",
		Author: "A",
		Moods:  []string{"reflection", "stoicism", "marcus"},
		Public: false,
	})

	if f.editID != "q1" {
		t.Errorf("editID = %q", f.editID)
	}
	if !f.moodOn["reflection"] {
		t.Error("fixed mood not toggled on")
	}
	if got := f.tags.Value(); got != "stoicism, marcus" {
		t.Errorf("tags input = %q", got)
	}
	if f.public {
		t.Error("public flag not prefilled")
	}

	// Round trip: the draft carries the same label set.
	labels := f.draft().Labels()
	if len(labels) != 3 {
		t.Errorf("labels = %v, want 3 entries", labels)
	}
}

func TestVitalityFormSkipsMoodRow(t *testing.T) {
	f := newQuoteForm(80, model.VariantVitality, nil, nil)
	for _, fl := range f.fields() {
		if fl == fieldMoods {
			t.Fatal("vitality form should not offer fixed moods")
		}
	}
	d := f.draft()
	if d.Variant != model.VariantVitality {
		t.Errorf("variant = %s", d.Variant)
	}
}

func TestAppendTagDeduplicates(t *testing.T) {
	f := newQuoteForm(80, model.VariantQuote, nil, nil)
	appendTag(&f.tags, "stoic")
	appendTag(&f.tags, "calm")
	appendTag(&f.tags, "stoic")

	if got := f.tags.Value(); got != "stoic, calm" {
		t.Errorf("tags = %q, want no duplicate", got)
	}
}

func TestParadigmFormDraftSkipsBlankRows(t *testing.T) {
	f := newParadigmForm(80)
	f.theory.SetValue("Inversion")
	f.foundations[0].title.SetValue("Think backwards")
	f.foundations = append(f.foundations, newFoundationEntry()) // left blank

	d := f.draft()
	if d.Theory != "Inversion" {
		t.Errorf("theory = %q", d.Theory)
	}
	if len(d.Foundations) != 1 {
		t.Fatalf("foundations = %d, want blank row skipped", len(d.Foundations))
	}
	if err := d.Validate(); err != nil {
		t.Errorf("draft should validate: %v", err)
	}
}

func TestParadigmFormPrefillRoundTrip(t *testing.T) {
	f := newParadigmForm(80)
	f.prefill(model.Item{
		ID:     "p1",
		Theory: "Compounding",
		Public: true,
		Foundations: []model.Foundation{
			{ID: "f-1", Code: "F1", Title: "Start early", Description: "time in market"},
			{ID: "f-2", Code: "F2", Title: "Reinvest"},
		},
	})

	d := f.draft()
	if len(d.Foundations) != 2 {
		t.Fatalf("foundations = %d, want 2", len(d.Foundations))
	}
	if d.Foundations[0].ID != "f-1" || d.Foundations[0].Description != "time in market" {
		t.Errorf("foundation[0] = %+v", d.Foundations[0])
	}
}
