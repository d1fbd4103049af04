package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"

	"quoteswipe/internal/auth"
	"quoteswipe/internal/feed"
	"quoteswipe/internal/model"
	"quoteswipe/internal/swipe"
)

// Commands are the injected side-effect factories.
// IMPORTANT: App does NOT hold the controller or any store. It receives
// state via messages produced by these commands.
type Commands struct {
	LoadFeed       func(force bool) tea.Cmd
	Refresh        func() tea.Cmd // snapshot only, no fetch
	SelectTab      func(tab model.Tab) tea.Cmd
	ToggleMode     func() tea.Cmd
	FilterMood     func(mood string) tea.Cmd
	FilterAuthor   func(author string) tea.Cmd
	ClearFilter    func() tea.Cmd
	Advance        func() tea.Cmd
	Retreat        func() tea.Cmd
	SubmitQuote    func(id string, d model.Draft) tea.Cmd // id == "" creates
	SubmitParadigm func(id string, d model.ParadigmDraft) tea.Cmd
	Delete         func(id string) tea.Cmd
	SignIn         func() tea.Cmd
	SignOut        func() tea.Cmd
	Suggestions    func() tea.Cmd
	RecordUsage    func(author string, tags []string) tea.Cmd
}

type screen int

const (
	screenFeed screen = iota
	screenForm
	screenParadigmForm
	screenSignIn
	screenConfirmDelete
	screenHelp
)

const frameRate = time.Second / 60

// App is the root Bubble Tea model.
type App struct {
	cmds        Commands
	adminDomain string

	view    feed.View
	profile *auth.Profile
	authors []string
	tags    []string

	rec        *swipe.Recognizer
	spring     harmonica.Spring
	springPos  float64
	springVel  float64
	target     float64
	animating  bool
	settleLock bool

	screen     screen
	form       *quoteForm
	pform      *paradigmForm
	gridCursor int
	confirmID  string
	device     *DeviceCodePrompt

	status  string
	err     error
	width   int
	height  int
	ready   bool
	loading bool
}

// NewApp creates the root model. The admin domain gates the edit/delete
// affordances on system-owned cards.
func NewApp(cmds Commands, adminDomain string) App {
	return App{
		cmds:        cmds,
		adminDomain: adminDomain,
		rec:         swipe.NewRecognizer(),
		spring:      harmonica.NewSpring(harmonica.FPS(60), 6.0, 0.8),
	}
}

// Init loads the feed and the suggestion sets.
func (a App) Init() tea.Cmd {
	a.loading = true
	var cmds []tea.Cmd
	if a.cmds.LoadFeed != nil {
		cmds = append(cmds, a.cmds.LoadFeed(true))
	}
	if a.cmds.Suggestions != nil {
		cmds = append(cmds, a.cmds.Suggestions())
	}
	return tea.Batch(cmds...)
}

func frameCmd() tea.Cmd {
	return tea.Tick(frameRate, func(time.Time) tea.Msg { return AnimTick{} })
}

func statusCmd() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg { return StatusExpired{} })
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		return a, nil

	case AnimTick:
		return a.stepAnimation()

	case FeedUpdated:
		a.loading = false
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		a.view = msg.View
		a.err = nil
		a.gridCursor = 0
		return a, nil

	case AuthChanged:
		a.device = nil
		if a.screen == screenSignIn {
			a.screen = screenFeed
		}
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		a.profile = msg.Profile
		a.loading = true
		var cmds []tea.Cmd
		if a.cmds.LoadFeed != nil {
			cmds = append(cmds, a.cmds.LoadFeed(true))
		}
		if a.cmds.Suggestions != nil {
			cmds = append(cmds, a.cmds.Suggestions())
		}
		return a, tea.Batch(cmds...)

	case DeviceCodePrompt:
		a.device = &msg
		a.screen = screenSignIn
		return a, nil

	case SuggestionsLoaded:
		if msg.Err == nil {
			a.authors = msg.Authors
			a.tags = msg.Tags
		}
		return a, nil

	case ItemSaved:
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		a.screen = screenFeed
		a.status = "Saved"
		var cmds []tea.Cmd
		if a.cmds.Refresh != nil {
			cmds = append(cmds, a.cmds.Refresh())
		}
		if a.cmds.RecordUsage != nil {
			cmds = append(cmds, a.cmds.RecordUsage(msg.Item.Author, msg.Item.Moods))
		}
		if a.cmds.Suggestions != nil {
			cmds = append(cmds, a.cmds.Suggestions())
		}
		cmds = append(cmds, statusCmd())
		a.form = nil
		a.pform = nil
		return a, tea.Batch(cmds...)

	case ItemDeleted:
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		a.status = "Deleted"
		if a.cmds.Refresh != nil {
			return a, tea.Batch(a.cmds.Refresh(), statusCmd())
		}
		return a, statusCmd()

	case StatusExpired:
		a.status = ""
		return a, nil
	}

	return a, nil
}

// stepAnimation advances the card spring one frame. When a committed
// slide reaches its target the card snaps home and the gesture lock is
// released.
func (a App) stepAnimation() (tea.Model, tea.Cmd) {
	if !a.animating {
		return a, nil
	}
	a.springPos, a.springVel = a.spring.Update(a.springPos, a.springVel, a.target)

	done := abs(a.springPos-a.target) < 0.5 && abs(a.springVel) < 0.5
	if !done {
		return a, frameCmd()
	}
	a.animating = false
	a.springPos = 0
	a.springVel = 0
	if a.settleLock {
		a.settleLock = false
		a.rec.Settle()
	}
	return a, nil
}

// commit starts the slide-off animation from the release offset and
// fires the navigation command.
func (a App) commit(dir swipe.Direction, from int) (tea.Model, tea.Cmd) {
	a.springPos = float64(from)
	a.springVel = 0
	a.animating = true
	a.settleLock = true
	edge := float64(a.width)
	if edge == 0 {
		edge = 80
	}
	if dir == swipe.DirectionForward {
		a.target = -edge
	} else {
		a.target = edge
	}

	var nav tea.Cmd
	switch {
	case dir == swipe.DirectionForward && a.cmds.Advance != nil:
		nav = a.cmds.Advance()
	case dir == swipe.DirectionBackward && a.cmds.Retreat != nil:
		nav = a.cmds.Retreat()
	}
	return a, tea.Batch(nav, frameCmd())
}

// springBack animates a sub-threshold release home from the given offset.
func (a App) springBack(from int) (tea.Model, tea.Cmd) {
	if from == 0 {
		return a, nil
	}
	a.springPos = float64(from)
	a.springVel = 0
	a.target = 0
	a.animating = true
	return a, frameCmd()
}

func (a App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if a.screen != screenFeed || a.gridActive() {
		return a, nil
	}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			a.rec.Begin(msg.X)
		}
	case tea.MouseActionMotion:
		a.rec.Move(msg.X)
	case tea.MouseActionRelease:
		offset := a.rec.Offset()
		if dir := a.rec.End(); dir != swipe.DirectionNone {
			return a.commit(dir, offset)
		}
		return a.springBack(offset)
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.err != nil {
		a.err = nil
	}

	switch a.screen {
	case screenForm:
		return a.updateForm(msg)
	case screenParadigmForm:
		return a.updateParadigmForm(msg)
	case screenSignIn:
		if msg.String() == "esc" || msg.String() == "q" {
			a.screen = screenFeed
			a.device = nil
		}
		return a, nil
	case screenConfirmDelete:
		switch msg.String() {
		case "y", "enter":
			id := a.confirmID
			a.confirmID = ""
			a.screen = screenFeed
			if a.cmds.Delete != nil {
				return a, a.cmds.Delete(id)
			}
			return a, nil
		default:
			a.confirmID = ""
			a.screen = screenFeed
			return a, nil
		}
	case screenHelp:
		a.screen = screenFeed
		return a, nil
	}
	return a.handleFeedKey(msg)
}

func (a App) handleFeedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.gridActive() {
		if m, cmd, handled := a.handleGridKey(msg); handled {
			return m, cmd
		}
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "left", "h", "n", " ":
		if a.rec.Settling() || a.animating {
			return a, nil
		}
		if _, ok := a.view.Current(); !ok {
			return a, nil
		}
		if a.view.Index >= len(a.view.Items)-1 {
			return a, nil
		}
		a.rec.Begin(0)
		a.rec.Move(-(swipe.CommitDistance + 1))
		offset := a.rec.Offset()
		return a.commit(a.rec.End(), offset)

	case "right", "l", "p":
		if a.rec.Settling() || a.animating || !a.view.CanRetreat {
			return a, nil
		}
		a.rec.Begin(0)
		a.rec.Move(swipe.CommitDistance + 1)
		offset := a.rec.Offset()
		return a.commit(a.rec.End(), offset)

	case "tab":
		return a, a.selectTabOffset(1)

	case "shift+tab":
		return a, a.selectTabOffset(-1)

	case "1", "2", "3":
		tabs := a.familyTabs()
		i := int(msg.String()[0] - '1')
		if i < len(tabs) && a.cmds.SelectTab != nil {
			a.loading = true
			return a, a.cmds.SelectTab(tabs[i])
		}
		return a, nil

	case "m":
		if a.cmds.ToggleMode != nil {
			a.loading = true
			return a, a.cmds.ToggleMode()
		}
		return a, nil

	case "x":
		if a.view.Filter.Narrowed() && a.cmds.ClearFilter != nil {
			return a, a.cmds.ClearFilter()
		}
		return a, nil

	case "r":
		if a.cmds.LoadFeed != nil {
			a.loading = true
			return a, a.cmds.LoadFeed(true)
		}
		return a, nil

	case "a":
		return a.openComposer("")

	case "e":
		it, ok := a.view.Current()
		if !ok || !a.canModify(it) {
			return a, nil
		}
		return a.openComposer(it.ID)

	case "d":
		it, ok := a.view.Current()
		if !ok || !a.canModify(it) {
			return a, nil
		}
		a.confirmID = it.ID
		a.screen = screenConfirmDelete
		return a, nil

	case "s":
		if a.profile != nil {
			if a.cmds.SignOut != nil {
				return a, a.cmds.SignOut()
			}
			return a, nil
		}
		if a.cmds.SignIn != nil {
			a.screen = screenSignIn
			return a, a.cmds.SignIn()
		}
		return a, nil

	case "?":
		a.screen = screenHelp
		return a, nil
	}

	return a, nil
}

// handleGridKey drives the mood/author selection grid. Unhandled keys
// fall through to the regular feed bindings.
func (a App) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	entries := a.gridEntries()
	switch msg.String() {
	case "up", "k":
		if a.gridCursor > 0 {
			a.gridCursor--
		}
		return a, nil, true
	case "down", "j":
		if a.gridCursor < len(entries)-1 {
			a.gridCursor++
		}
		return a, nil, true
	case "enter":
		if len(entries) == 0 {
			return a, nil, true
		}
		pick := entries[a.gridCursor]
		a.loading = true
		if a.view.Tab == model.TabMood && a.cmds.FilterMood != nil {
			return a, a.cmds.FilterMood(pick), true
		}
		if a.view.Tab == model.TabAuthor && a.cmds.FilterAuthor != nil {
			return a, a.cmds.FilterAuthor(pick), true
		}
		return a, nil, true
	}
	return a, nil, false
}

// openComposer opens the form matching the active tab, prefilled from
// the item being edited when id is non-empty.
func (a App) openComposer(id string) (tea.Model, tea.Cmd) {
	if a.profile == nil {
		a.status = "Sign in to add quotes"
		return a, statusCmd()
	}
	if a.view.Tab == model.TabParadigm {
		f := newParadigmForm(a.width)
		if id != "" {
			if it, ok := a.view.Current(); ok && it.ID == id {
				f.prefill(it)
			}
		}
		a.pform = &f
		a.screen = screenParadigmForm
		return a, f.focusCmd()
	}
	variant := model.VariantQuote
	if a.view.Tab == model.TabVitality {
		variant = model.VariantVitality
	}
	f := newQuoteForm(a.width, variant, a.authors, a.tags)
	if id != "" {
		if it, ok := a.view.Current(); ok && it.ID == id {
			f.prefill(it)
		}
	}
	a.form = &f
	a.screen = screenForm
	return a, f.focusCmd()
}

func (a App) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.form == nil {
		a.screen = screenFeed
		return a, nil
	}
	switch msg.String() {
	case "esc":
		a.form = nil
		a.screen = screenFeed
		return a, nil
	case "ctrl+s":
		if a.cmds.SubmitQuote != nil {
			return a, a.cmds.SubmitQuote(a.form.editID, a.form.draft())
		}
		return a, nil
	}
	cmd := a.form.update(msg)
	return a, cmd
}

func (a App) updateParadigmForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.pform == nil {
		a.screen = screenFeed
		return a, nil
	}
	switch msg.String() {
	case "esc":
		a.pform = nil
		a.screen = screenFeed
		return a, nil
	case "ctrl+s":
		if a.cmds.SubmitParadigm != nil {
			return a, a.cmds.SubmitParadigm(a.pform.editID, a.pform.draft())
		}
		return a, nil
	}
	cmd := a.pform.update(msg)
	return a, cmd
}

// selectTabOffset moves within the active tab family, wrapping around.
func (a App) selectTabOffset(delta int) tea.Cmd {
	if a.cmds.SelectTab == nil {
		return nil
	}
	tabs := a.familyTabs()
	cur := 0
	for i, t := range tabs {
		if t == a.view.Tab {
			cur = i
			break
		}
	}
	next := (cur + delta + len(tabs)) % len(tabs)
	a.loading = true
	return a.cmds.SelectTab(tabs[next])
}

func (a App) familyTabs() []model.Tab {
	if a.view.Mode == model.ModeAlternative {
		return []model.Tab{model.TabVitality, model.TabParadigm}
	}
	return []model.Tab{model.TabRandom, model.TabMood, model.TabAuthor}
}

// gridActive reports whether the mood/author selection grid is showing
// instead of a card.
func (a App) gridActive() bool {
	return (a.view.Tab == model.TabMood || a.view.Tab == model.TabAuthor) &&
		!a.view.Filter.Narrowed()
}

func (a App) gridEntries() []string {
	if a.view.Tab == model.TabAuthor {
		return a.authors
	}
	entries := append([]string(nil), model.FixedMoods...)
	return append(entries, a.tags...)
}

// canModify mirrors the service-side mutation rule so the affordance
// only shows where the write could succeed.
func (a App) canModify(it model.Item) bool {
	if a.profile == nil {
		return false
	}
	if it.UserID == a.profile.UID {
		return true
	}
	return it.UserID == model.SystemUser &&
		strings.HasSuffix(strings.ToLower(a.profile.Email), "@"+strings.ToLower(a.adminDomain))
}

// cardOffset is the horizontal displacement to render the card at.
func (a App) cardOffset() int {
	if a.animating {
		return int(a.springPos)
	}
	return a.rec.Offset()
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// Cursor returns the current card index (for testing).
func (a App) Cursor() int {
	return a.view.Index
}

// Screen returns the active screen (for testing).
func (a App) Screen() int {
	return int(a.screen)
}
