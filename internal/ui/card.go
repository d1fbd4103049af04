package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"quoteswipe/internal/model"
)

// renderCard draws the card under the cursor, shifted horizontally by the
// drag/animation offset. hot styles the border once a drag is past the
// commit threshold.
func renderCard(it model.Item, width, offset int, hot bool) string {
	cardWidth := width - 8
	if cardWidth > 64 {
		cardWidth = 64
	}
	if cardWidth < 20 {
		cardWidth = 20
	}

	var body string
	if it.Is(model.VariantParadigm) {
		body = renderParadigmBody(it, cardWidth)
	} else {
		body = renderQuoteBody(it, cardWidth)
	}

	style := CardStyle
	if hot {
		style = CardDragStyle
	}
	card := style.Width(cardWidth).Render(body)

	pad := (width - lipgloss.Width(card)) / 2
	pad += offset
	if pad < 0 {
		// Clip from the left edge as the card slides off screen.
		return clipLeft(card, -pad)
	}
	return lipgloss.NewStyle().MarginLeft(pad).Render(card)
}

func renderQuoteBody(it model.Item, width int) string {
	var b strings.Builder
	b.WriteString(QuoteText.Width(width - 6).Render("“" + it.Text + "”"))
	if it.Author != "" {
		b.WriteString("\n\n")
		b.WriteString(AuthorText.Render("— " + it.Author))
	}
	if len(it.Moods) > 0 {
		b.WriteString("\n\n")
		chips := make([]string, 0, len(it.Moods))
		for _, m := range it.Moods {
			chips = append(chips, MoodChip.Render(m))
		}
		b.WriteString(strings.Join(chips, ""))
	}
	return b.String()
}

func renderParadigmBody(it model.Item, width int) string {
	var b strings.Builder
	b.WriteString(AuthorText.Render(it.Theory))
	for _, f := range it.Foundations {
		b.WriteString("\n\n")
		b.WriteString(FoundationCode.Render(f.Code) + " " + f.Title)
		if f.Description != "" {
			b.WriteString("\n")
			b.WriteString(QuoteText.Width(width - 8).Render(f.Description))
		}
		for _, ex := range f.Examples {
			b.WriteString("\n")
			b.WriteString(StatusBarText.Render("  · " + ex))
		}
	}
	return b.String()
}

// renderEmpty is shown when the active view has no cards.
func renderEmpty(tab model.Tab, signedIn bool) string {
	msg := "No content here yet."
	if signedIn {
		msg += " Press a to add something."
	}
	return HelpStyle.Render(fmt.Sprintf("%s tab: %s", tab, msg))
}

// clipLeft drops n columns from the left of every line.
func clipLeft(s string, n int) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		r := []rune(line)
		if n >= len(r) {
			lines[i] = ""
		} else {
			lines[i] = string(r[n:])
		}
	}
	return strings.Join(lines, "\n")
}
