package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"quoteswipe/internal/model"
)

type formField int

const (
	fieldText formField = iota
	fieldAuthor
	fieldTags
	fieldMoods
	fieldPublic
)

// quoteForm composes a quote or vitality submission. Vitality entries
// have no fixed-mood row; they are labelled by free-form tags only.
type quoteForm struct {
	editID  string
	variant model.Variant

	text   textarea.Model
	author textinput.Model
	tags   textinput.Model

	moods      []string
	moodOn     map[string]bool
	moodCursor int
	public     bool
	focus      formField

	authorPool []string // usage-ranked suggestions
	tagPool    []string
	suggestIdx int
}

func newQuoteForm(width int, variant model.Variant, authors, tags []string) quoteForm {
	ta := textarea.New()
	ta.Placeholder = "What did they say?"
	ta.CharLimit = model.MaxTextLen
	ta.SetWidth(min(width-8, 60))
	ta.SetHeight(4)
	ta.Focus()

	author := textinput.New()
	author.Placeholder = "Author"
	author.CharLimit = model.MaxAuthorLen

	tagIn := textinput.New()
	tagIn.Placeholder = "custom, tags, comma-separated"

	return quoteForm{
		variant:    variant,
		text:       ta,
		author:     author,
		tags:       tagIn,
		moods:      model.FixedMoods,
		moodOn:     map[string]bool{},
		public:     true,
		authorPool: authors,
		tagPool:    tags,
	}
}

func (f *quoteForm) prefill(it model.Item) {
	f.editID = it.ID
	f.variant = it.VariantOrDefault()
	f.text.SetValue(it.Text)
	f.author.SetValue(it.Author)
	f.public = it.Public

	var custom []string
	for _, m := range it.Moods {
		if model.IsFixedMood(m) {
			f.moodOn[m] = true
		} else {
			custom = append(custom, m)
		}
	}
	f.tags.SetValue(strings.Join(custom, ", "))
}

func (f quoteForm) focusCmd() tea.Cmd {
	return textarea.Blink
}

func (f *quoteForm) draft() model.Draft {
	var moods []string
	for _, m := range f.moods {
		if f.moodOn[m] {
			moods = append(moods, m)
		}
	}
	var tags []string
	for _, t := range strings.Split(f.tags.Value(), ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return model.Draft{
		Text:    f.text.Value(),
		Author:  f.author.Value(),
		Moods:   moods,
		Tags:    tags,
		Public:  f.public,
		Variant: f.variant,
	}
}

func (f *quoteForm) fields() []formField {
	if f.variant == model.VariantVitality {
		return []formField{fieldText, fieldAuthor, fieldTags, fieldPublic}
	}
	return []formField{fieldText, fieldAuthor, fieldTags, fieldMoods, fieldPublic}
}

func (f *quoteForm) cycleFocus(delta int) {
	fields := f.fields()
	cur := 0
	for i, fl := range fields {
		if fl == f.focus {
			cur = i
			break
		}
	}
	f.focus = fields[(cur+delta+len(fields))%len(fields)]
	f.suggestIdx = 0

	f.text.Blur()
	f.author.Blur()
	f.tags.Blur()
	switch f.focus {
	case fieldText:
		f.text.Focus()
	case fieldAuthor:
		f.author.Focus()
	case fieldTags:
		f.tags.Focus()
	}
}

func (f *quoteForm) update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "down":
		if f.focus == fieldText && msg.String() == "down" {
			break // let the textarea move its own cursor
		}
		f.cycleFocus(1)
		return nil
	case "shift+tab":
		f.cycleFocus(-1)
		return nil
	case "ctrl+n":
		// Cycle a usage-ranked suggestion into the focused field.
		switch f.focus {
		case fieldAuthor:
			if len(f.authorPool) > 0 {
				f.author.SetValue(f.authorPool[f.suggestIdx%len(f.authorPool)])
				f.author.CursorEnd()
				f.suggestIdx++
			}
			return nil
		case fieldTags:
			if len(f.tagPool) > 0 {
				appendTag(&f.tags, f.tagPool[f.suggestIdx%len(f.tagPool)])
				f.suggestIdx++
			}
			return nil
		}
	}

	switch f.focus {
	case fieldMoods:
		switch msg.String() {
		case "left", "h":
			if f.moodCursor > 0 {
				f.moodCursor--
			}
		case "right", "l":
			if f.moodCursor < len(f.moods)-1 {
				f.moodCursor++
			}
		case " ", "enter":
			m := f.moods[f.moodCursor]
			f.moodOn[m] = !f.moodOn[m]
		}
		return nil
	case fieldPublic:
		if msg.String() == " " || msg.String() == "enter" {
			f.public = !f.public
		}
		return nil
	case fieldText:
		var cmd tea.Cmd
		f.text, cmd = f.text.Update(msg)
		return cmd
	case fieldAuthor:
		var cmd tea.Cmd
		f.author, cmd = f.author.Update(msg)
		return cmd
	case fieldTags:
		var cmd tea.Cmd
		f.tags, cmd = f.tags.Update(msg)
		return cmd
	}
	return nil
}

func appendTag(in *textinput.Model, tag string) {
	v := strings.TrimSpace(in.Value())
	for _, existing := range strings.Split(v, ",") {
		if strings.TrimSpace(existing) == tag {
			return
		}
	}
	if v == "" {
		in.SetValue(tag)
	} else {
		in.SetValue(v + ", " + tag)
	}
	in.CursorEnd()
}

func (f quoteForm) view(width, height int) string {
	title := "New quote"
	if f.variant == model.VariantVitality {
		title = "New vitality entry"
	}
	if f.editID != "" {
		title = strings.Replace(title, "New", "Edit", 1)
	}

	var b strings.Builder
	b.WriteString(ActiveTab.Render(title))
	b.WriteString("\n\n")

	b.WriteString(f.frame(fieldText, "Text", f.text.View()))
	b.WriteString(f.frame(fieldAuthor, "Author", f.author.View()))
	if f.focus == fieldAuthor && len(f.authorPool) > 0 {
		b.WriteString(renderChips(f.authorPool, -1, 5))
		b.WriteString(StatusBarText.Render("  ctrl+n to fill"))
		b.WriteString("\n")
	}
	b.WriteString(f.frame(fieldTags, "Tags", f.tags.View()))
	if f.focus == fieldTags && len(f.tagPool) > 0 {
		b.WriteString(renderChips(f.tagPool, -1, 5))
		b.WriteString(StatusBarText.Render("  ctrl+n to add"))
		b.WriteString("\n")
	}

	if f.variant != model.VariantVitality {
		var chips strings.Builder
		for i, m := range f.moods {
			style := Chip
			if f.moodOn[m] {
				style = ChipSelected
			}
			label := m
			if f.focus == fieldMoods && i == f.moodCursor {
				label = "[" + m + "]"
			}
			chips.WriteString(style.Render(label))
		}
		b.WriteString(f.frame(fieldMoods, "Moods", chips.String()))
	}

	visibility := "private"
	if f.public {
		visibility = "public"
	}
	b.WriteString(f.frame(fieldPublic, "Visibility", visibility))

	b.WriteString("\n")
	b.WriteString(StatusBarText.Render("ctrl+s save · esc cancel · tab next field"))
	return b.String()
}

func (f quoteForm) frame(field formField, label, body string) string {
	style := FormField
	if f.focus == field {
		style = FormFieldActive
	}
	return style.Render(FormLabel.Render(label)+"\n"+body) + "\n"
}

// renderChips shows the first n entries of a suggestion pool.
func renderChips(pool []string, selected, n int) string {
	if n > len(pool) {
		n = len(pool)
	}
	var b strings.Builder
	for i := 0; i < n; i++ {
		if i == selected {
			b.WriteString(ChipSelected.Render(pool[i]))
		} else {
			b.WriteString(Chip.Render(pool[i]))
		}
	}
	return b.String()
}

