package ui

import "github.com/charmbracelet/lipgloss"

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorSuccess   = lipgloss.Color("78")  // Green
	colorWarning   = lipgloss.Color("214") // Orange
)

// CardStyle frames the quote card in the center of the screen.
var CardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorPrimary).
	Padding(1, 3)

// CardDragStyle replaces the border color while a drag is past the
// commit threshold.
var CardDragStyle = CardStyle.
	BorderForeground(colorHighlight)

// QuoteText style for the card body.
var QuoteText = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Italic(true)

// AuthorText style for the attribution line.
var AuthorText = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// MoodChip style for mood/tag labels on a card.
var MoodChip = lipgloss.NewStyle().
	Foreground(colorPrimary).
	Background(lipgloss.Color("236")).
	Padding(0, 1).
	MarginRight(1)

// FoundationCode style for the F1/F2 markers on a paradigm card.
var FoundationCode = lipgloss.NewStyle().
	Foreground(colorSuccess).
	Bold(true)

// ActiveTab style for the selected tab.
var ActiveTab = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 2)

// InactiveTab style for unselected tabs.
var InactiveTab = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Padding(0, 2)

// GridItem style for mood/author grid entries.
var GridItem = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Padding(0, 1)

// GridSelected style for the highlighted grid entry.
var GridSelected = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// FilterBadge style for the "N quotes · clear filter" affordance.
var FilterBadge = lipgloss.NewStyle().
	Foreground(colorWarning).
	Bold(true).
	Padding(0, 1)

// StatusBar style for the bottom status bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// StatusBarKey style for key hints in the status bar.
var StatusBarKey = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// StatusBarText style for descriptive text in the status bar.
var StatusBarText = lipgloss.NewStyle().
	Foreground(colorSecondary)

// ErrorStyle for displaying errors.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("196")).
	Bold(true).
	Padding(0, 1)

// NoticeStyle for transient success/status lines.
var NoticeStyle = lipgloss.NewStyle().
	Foreground(colorSuccess).
	Padding(0, 1)

// FormLabel style for form field labels.
var FormLabel = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Bold(true)

// FormFieldActive style framing the focused form field.
var FormFieldActive = lipgloss.NewStyle().
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(colorHighlight).
	PaddingLeft(1)

// FormField style framing unfocused form fields.
var FormField = lipgloss.NewStyle().
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(colorMuted).
	PaddingLeft(1)

// ChipSelected style for a toggled mood chip or suggestion.
var ChipSelected = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1).
	MarginRight(1)

// Chip style for an untoggled mood chip or suggestion.
var Chip = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Background(lipgloss.Color("236")).
	Padding(0, 1).
	MarginRight(1)

// HelpStyle for the help screen.
var HelpStyle = lipgloss.NewStyle().
	Foreground(colorMuted).
	Padding(1, 2)

// SignInStyle frames the device-code sign-in prompt.
var SignInStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorWarning).
	Padding(1, 3)
