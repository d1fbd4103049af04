package model

import (
	"fmt"
	"strings"
)

// Limits enforced before any submission reaches the repository.
const (
	MaxTextLen   = 500
	MaxAuthorLen = 100
	MaxTheoryLen = 200
)

// ValidationError collects every violated rule for a submission so the UI
// can display them together.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

// Draft carries a quote or vitality submission from a form.
type Draft struct {
	Text    string
	Author  string
	Moods   []string // fixed mood toggles
	Tags    []string // free-form custom tags
	Public  bool
	Variant Variant // quote or vitality
}

// Labels returns the combined mood/tag set stored on the item.
func (d Draft) Labels() []string {
	labels := make([]string, 0, len(d.Moods)+len(d.Tags))
	labels = append(labels, d.Moods...)
	labels = append(labels, d.Tags...)
	return labels
}

// Validate checks the draft and returns a ValidationError listing all
// violated rules, or nil.
func (d Draft) Validate() error {
	var v []string

	if strings.TrimSpace(d.Text) == "" {
		if d.Variant == VariantVitality {
			v = append(v, "Vitality content cannot be empty")
		} else {
			v = append(v, "Quote content cannot be empty")
		}
	}
	if len(d.Text) > MaxTextLen {
		v = append(v, fmt.Sprintf("Content cannot exceed %d characters", MaxTextLen))
	}
	if len(d.Author) > MaxAuthorLen {
		v = append(v, fmt.Sprintf("Author name cannot exceed %d characters", MaxAuthorLen))
	}

	// Quotes need at least one label; vitality snippets need a custom tag.
	if d.Variant == VariantVitality {
		if len(d.Tags) == 0 {
			v = append(v, "Please add at least one tag")
		}
	} else {
		if len(d.Moods) == 0 && len(d.Tags) == 0 {
			v = append(v, "Please select at least one mood tag or add a custom tag")
		}
	}

	if len(v) > 0 {
		return &ValidationError{Violations: v}
	}
	return nil
}

// ParadigmDraft carries a paradigm submission from a form.
type ParadigmDraft struct {
	Theory      string
	Moods       []string
	Foundations []Foundation
	Public      bool
}

// Validate checks the paradigm draft, collecting all violations.
func (d ParadigmDraft) Validate() error {
	var v []string

	if strings.TrimSpace(d.Theory) == "" {
		v = append(v, "Theory name cannot be empty")
	}
	if len(d.Theory) > MaxTheoryLen {
		v = append(v, fmt.Sprintf("Theory name cannot exceed %d characters", MaxTheoryLen))
	}
	if len(d.Foundations) == 0 {
		v = append(v, "Please add at least one foundation")
	}
	for i, f := range d.Foundations {
		if strings.TrimSpace(f.Title) == "" {
			v = append(v, fmt.Sprintf("Foundation %d: Title cannot be empty", i+1))
		}
	}

	if len(v) > 0 {
		return &ValidationError{Violations: v}
	}
	return nil
}
