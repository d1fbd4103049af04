// Package model defines the content records shared across the application.
package model

import (
	"strings"
	"time"
)

// Variant discriminates the three kinds of content cards.
type Variant string

const (
	VariantQuote    Variant = "quote"
	VariantVitality Variant = "vitality"
	VariantParadigm Variant = "paradigm"
)

// SystemUser owns the built-in seed content.
const SystemUser = "system"

// Tab identifies the top-level view selector.
type Tab string

const (
	TabRandom   Tab = "random"
	TabMood     Tab = "mood"
	TabAuthor   Tab = "author"
	TabVitality Tab = "vitality"
	TabParadigm Tab = "paradigm"
)

// ViewMode selects which tab family is visible.
type ViewMode string

const (
	ModeDefault     ViewMode = "default"     // random / mood / author
	ModeAlternative ViewMode = "alternative" // vitality / paradigm
)

// Variant returns the content variant a tab displays. The random-family
// tabs all show plain quotes.
func (t Tab) Variant() Variant {
	switch t {
	case TabVitality:
		return VariantVitality
	case TabParadigm:
		return VariantParadigm
	default:
		return VariantQuote
	}
}

// FixedMoods are the built-in mood labels offered as toggles. Anything
// else attached to an item is a free-form custom tag.
var FixedMoods = []string{"excited", "innovation", "not-my-day", "reflection"}

// IsFixedMood reports whether s is one of the built-in mood labels.
func IsFixedMood(s string) bool {
	for _, m := range FixedMoods {
		if m == s {
			return true
		}
	}
	return false
}

// Foundation is a structured sub-entry within a paradigm item.
type Foundation struct {
	ID          string   `json:"id"`
	Code        string   `json:"code"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Examples    []string `json:"examples,omitempty"`
}

// Item is one unit of displayable content. Theory and Foundations are
// populated only when Variant is paradigm; an empty Variant decodes as
// quote for compatibility with records written before variants existed.
type Item struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Author    string    `json:"author,omitempty"`
	Moods     []string  `json:"moods,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UserID    string    `json:"user_id,omitempty"`
	Public    bool      `json:"is_public"`
	Variant   Variant   `json:"type,omitempty"`

	Theory      string       `json:"theory,omitempty"`
	Foundations []Foundation `json:"foundations,omitempty"`
}

// VariantOrDefault resolves the legacy empty variant to quote.
func (it Item) VariantOrDefault() Variant {
	if it.Variant == "" {
		return VariantQuote
	}
	return it.Variant
}

// Is reports whether the item belongs to the given variant, treating the
// legacy empty variant as quote.
func (it Item) Is(v Variant) bool {
	return it.VariantOrDefault() == v
}

// HasMood reports whether the item carries the given mood label.
func (it Item) HasMood(mood string) bool {
	for _, m := range it.Moods {
		if m == mood {
			return true
		}
	}
	return false
}

// AuthorMatches reports whether the item's author contains the needle,
// case-insensitively. Every author narrowing in the app uses this rule.
func (it Item) AuthorMatches(needle string) bool {
	return strings.Contains(strings.ToLower(it.Author), strings.ToLower(needle))
}

// VisibleTo reports whether a caller may see this item. Anonymous callers
// (empty userID) see only public items.
func (it Item) VisibleTo(userID string) bool {
	if it.Public {
		return true
	}
	return userID != "" && it.UserID == userID
}

// FilterByVariant returns the items matching the variant, preserving order.
func FilterByVariant(items []Item, v Variant) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Is(v) {
			out = append(out, it)
		}
	}
	return out
}
