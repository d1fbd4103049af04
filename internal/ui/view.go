package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"quoteswipe/internal/model"
)

var tabLabels = map[model.Tab]string{
	model.TabRandom:   "Random",
	model.TabMood:     "Mood",
	model.TabAuthor:   "Author",
	model.TabVitality: "Vitality",
	model.TabParadigm: "Paradigm",
}

// View renders the UI.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	switch a.screen {
	case screenForm:
		if a.form != nil {
			return a.form.view(a.width, a.height)
		}
	case screenParadigmForm:
		if a.pform != nil {
			return a.pform.view(a.width, a.height)
		}
	case screenSignIn:
		return a.renderSignIn()
	case screenHelp:
		return a.renderHelp()
	}

	var b strings.Builder
	b.WriteString(a.renderTabs())
	b.WriteString("\n\n")
	b.WriteString(a.renderContent())
	b.WriteString("\n")
	if a.err != nil {
		b.WriteString(ErrorStyle.Width(a.width).Render("Error: " + a.err.Error() + " (press any key to dismiss)"))
		b.WriteString("\n")
	}
	if a.status != "" {
		b.WriteString(NoticeStyle.Render(a.status))
		b.WriteString("\n")
	}
	b.WriteString(a.renderStatusBar())
	return b.String()
}

func (a App) renderTabs() string {
	parts := make([]string, 0, 4)
	for _, t := range a.familyTabs() {
		label := tabLabels[t]
		if t == a.view.Tab {
			parts = append(parts, ActiveTab.Render(label))
		} else {
			parts = append(parts, InactiveTab.Render(label))
		}
	}
	mode := "default"
	if a.view.Mode == model.ModeAlternative {
		mode = "alternative"
	}
	parts = append(parts, StatusBarText.Render(" m:"+mode))
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (a App) renderContent() string {
	if a.screen == screenConfirmDelete {
		return a.renderConfirm()
	}
	if a.gridActive() {
		return a.renderGrid()
	}

	var b strings.Builder
	if a.view.Filter.Narrowed() {
		b.WriteString(FilterBadge.Render(fmt.Sprintf("%d quotes · %s: %s · x to clear",
			len(a.view.Items), a.view.Filter.Tab, a.view.Filter.Value)))
		b.WriteString("\n\n")
	}

	it, ok := a.view.Current()
	if !ok {
		b.WriteString(renderEmpty(a.view.Tab, a.profile != nil))
		return b.String()
	}
	hot := a.rec.Dragging() && a.rec.Progress() >= 1
	b.WriteString(renderCard(it, a.width, a.cardOffset(), hot))
	return b.String()
}

func (a App) renderGrid() string {
	entries := a.gridEntries()
	if len(entries) == 0 {
		return HelpStyle.Render("Nothing to pick from yet.")
	}
	title := "Pick a mood"
	if a.view.Tab == model.TabAuthor {
		title = "Pick an author"
	}
	var b strings.Builder
	b.WriteString(FormLabel.Render(title))
	b.WriteString("\n\n")
	for i, e := range entries {
		if i == a.gridCursor {
			b.WriteString(GridSelected.Render("> " + e))
		} else {
			b.WriteString(GridItem.Render("  " + e))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (a App) renderConfirm() string {
	return SignInStyle.Render("Delete this card?\n\n" +
		StatusBarKey.Render("y") + StatusBarText.Render(" delete   ") +
		StatusBarKey.Render("any other key") + StatusBarText.Render(" cancel"))
}

func (a App) renderSignIn() string {
	if a.device == nil {
		return SignInStyle.Render("Contacting the sign-in service...\n\n" +
			StatusBarText.Render("esc to cancel"))
	}
	return SignInStyle.Render(
		"To sign in, visit\n\n  " +
			AuthorText.Render(a.device.URL) + "\n\nand enter the code\n\n  " +
			ActiveTab.Render(a.device.Code) + "\n\n" +
			StatusBarText.Render("waiting for approval · esc to cancel"))
}

func (a App) renderHelp() string {
	rows := [][2]string{
		{"left/h/n/space", "next card"},
		{"right/l/p", "previous card"},
		{"drag left/right", "swipe between cards"},
		{"tab / 1-3", "switch tab"},
		{"m", "toggle vitality/paradigm mode"},
		{"x", "clear mood/author filter"},
		{"a / e / d", "add, edit, delete"},
		{"s", "sign in or out"},
		{"r", "reload"},
		{"q", "quit"},
	}
	var b strings.Builder
	b.WriteString(FormLabel.Render("Keys"))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			StatusBarKey.Render(fmt.Sprintf("%-16s", r[0])),
			StatusBarText.Render(r[1])))
	}
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("any key to close"))
	return b.String()
}

func (a App) renderStatusBar() string {
	pos := "-"
	if n := len(a.view.Items); n > 0 {
		pos = fmt.Sprintf("%d/%d", a.view.Index+1, n)
	}
	who := "anonymous"
	if a.profile != nil {
		who = a.profile.Email
	}
	left := fmt.Sprintf("%s · %s", pos, who)
	if a.loading {
		left += " · loading"
	}
	hints := StatusBarKey.Render("?") + StatusBarText.Render(" help ") +
		StatusBarKey.Render("q") + StatusBarText.Render(" quit")

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(hints) - 2
	if gap < 1 {
		gap = 1
	}
	return StatusBar.Width(a.width).Render(left + strings.Repeat(" ", gap) + hints)
}
