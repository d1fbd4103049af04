package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"quoteswipe/internal/model"
)

// foundationEntry is one editable foundation row.
type foundationEntry struct {
	id    string
	title textinput.Model
	desc  textinput.Model
}

// paradigmForm composes a paradigm submission: a theory name plus its
// foundations. Focus order is theory, then each foundation's title and
// description, then the visibility toggle.
type paradigmForm struct {
	editID      string
	theory      textinput.Model
	foundations []foundationEntry
	public      bool
	focus       int
}

func newParadigmForm(width int) paradigmForm {
	theory := textinput.New()
	theory.Placeholder = "Theory name"
	theory.CharLimit = model.MaxTheoryLen
	theory.Focus()

	f := paradigmForm{theory: theory, public: true}
	f.foundations = append(f.foundations, newFoundationEntry())
	return f
}

func newFoundationEntry() foundationEntry {
	title := textinput.New()
	title.Placeholder = "Foundation title"
	desc := textinput.New()
	desc.Placeholder = "Description (optional)"
	return foundationEntry{title: title, desc: desc}
}

func (f *paradigmForm) prefill(it model.Item) {
	f.editID = it.ID
	f.theory.SetValue(it.Theory)
	f.public = it.Public
	f.foundations = f.foundations[:0]
	for _, fn := range it.Foundations {
		e := newFoundationEntry()
		e.id = fn.ID
		e.title.SetValue(fn.Title)
		e.desc.SetValue(fn.Description)
		f.foundations = append(f.foundations, e)
	}
	if len(f.foundations) == 0 {
		f.foundations = append(f.foundations, newFoundationEntry())
	}
}

func (f paradigmForm) focusCmd() tea.Cmd {
	return textinput.Blink
}

func (f *paradigmForm) draft() model.ParadigmDraft {
	var fs []model.Foundation
	for _, e := range f.foundations {
		title := strings.TrimSpace(e.title.Value())
		desc := strings.TrimSpace(e.desc.Value())
		if title == "" && desc == "" {
			continue // skip rows the user added but left blank
		}
		fs = append(fs, model.Foundation{
			ID:          e.id,
			Title:       title,
			Description: desc,
		})
	}
	return model.ParadigmDraft{
		Theory:      f.theory.Value(),
		Foundations: fs,
		Public:      f.public,
	}
}

// slots is the number of focusable positions: theory + 2 per foundation
// + the visibility toggle.
func (f *paradigmForm) slots() int {
	return 1 + 2*len(f.foundations) + 1
}

func (f *paradigmForm) syncFocus() {
	f.theory.Blur()
	for i := range f.foundations {
		f.foundations[i].title.Blur()
		f.foundations[i].desc.Blur()
	}
	switch {
	case f.focus == 0:
		f.theory.Focus()
	case f.focus < f.slots()-1:
		i := (f.focus - 1) / 2
		if (f.focus-1)%2 == 0 {
			f.foundations[i].title.Focus()
		} else {
			f.foundations[i].desc.Focus()
		}
	}
}

func (f *paradigmForm) update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "down":
		f.focus = (f.focus + 1) % f.slots()
		f.syncFocus()
		return nil
	case "shift+tab", "up":
		f.focus = (f.focus - 1 + f.slots()) % f.slots()
		f.syncFocus()
		return nil
	case "ctrl+a":
		f.foundations = append(f.foundations, newFoundationEntry())
		f.focus = 1 + 2*(len(f.foundations)-1)
		f.syncFocus()
		return nil
	case "ctrl+d":
		if len(f.foundations) > 1 && f.focus > 0 && f.focus < f.slots()-1 {
			i := (f.focus - 1) / 2
			f.foundations = append(f.foundations[:i], f.foundations[i+1:]...)
			if f.focus >= f.slots() {
				f.focus = f.slots() - 1
			}
			f.syncFocus()
		}
		return nil
	}

	if f.focus == f.slots()-1 {
		if msg.String() == " " || msg.String() == "enter" {
			f.public = !f.public
		}
		return nil
	}
	var cmd tea.Cmd
	if f.focus == 0 {
		f.theory, cmd = f.theory.Update(msg)
		return cmd
	}
	i := (f.focus - 1) / 2
	if (f.focus-1)%2 == 0 {
		f.foundations[i].title, cmd = f.foundations[i].title.Update(msg)
	} else {
		f.foundations[i].desc, cmd = f.foundations[i].desc.Update(msg)
	}
	return cmd
}

func (f paradigmForm) view(width, height int) string {
	title := "New paradigm"
	if f.editID != "" {
		title = "Edit paradigm"
	}

	var b strings.Builder
	b.WriteString(ActiveTab.Render(title))
	b.WriteString("\n\n")

	style := FormField
	if f.focus == 0 {
		style = FormFieldActive
	}
	b.WriteString(style.Render(FormLabel.Render("Theory") + "\n" + f.theory.View()))
	b.WriteString("\n")

	for i, e := range f.foundations {
		titleFocused := f.focus == 1+2*i
		descFocused := f.focus == 2+2*i
		style := FormField
		if titleFocused || descFocused {
			style = FormFieldActive
		}
		b.WriteString(style.Render(
			FoundationCode.Render(fmt.Sprintf("F%d", i+1)) + "\n" +
				e.title.View() + "\n" + e.desc.View()))
		b.WriteString("\n")
	}

	visibility := "private"
	if f.public {
		visibility = "public"
	}
	style = FormField
	if f.focus == f.slots()-1 {
		style = FormFieldActive
	}
	b.WriteString(style.Render(FormLabel.Render("Visibility") + "\n" + visibility))

	b.WriteString("\n\n")
	b.WriteString(StatusBarText.Render("ctrl+s save · ctrl+a add foundation · ctrl+d remove · esc cancel"))
	return b.String()
}
