package feed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"quoteswipe/internal/content"
	"quoteswipe/internal/logging"
	"quoteswipe/internal/model"
)

// ErrNotSignedIn is returned by write operations invoked without an
// authenticated user.
var ErrNotSignedIn = errors.New("sign in to save quotes")

// Controller owns the visible card list and the state around it. All
// methods are safe for concurrent use; fetching methods release the lock
// around repository calls so navigation stays responsive while a load is
// in flight.
type Controller struct {
	repo    content.Repository
	persist func(model.Tab, model.ViewMode)

	mu      sync.Mutex
	userID  string
	email   string
	mode    model.ViewMode
	tab     model.Tab
	filter  FilterState
	cache   []model.Item // last full fetch, shuffled
	visible []model.Item
	cursor  Cursor
	gen     uint64 // latest issued list-replacing request
}

// New creates a controller starting on the given tab and view mode,
// typically restored from the saved configuration.
func New(repo content.Repository, tab model.Tab, mode model.ViewMode) *Controller {
	if tab == "" {
		tab = model.TabRandom
	}
	if mode == "" {
		mode = model.ModeDefault
	}
	return &Controller{
		repo:   repo,
		tab:    tab,
		mode:   mode,
		filter: FilterState{Tab: tab},
	}
}

// OnViewChange registers a sink that receives the tab and view mode after
// every tab change, used to persist the last-used view across sessions.
func (c *Controller) OnViewChange(fn func(model.Tab, model.ViewMode)) {
	c.mu.Lock()
	c.persist = fn
	c.mu.Unlock()
}

// SetUser installs the signed-in identity. The cache is invalidated
// because the visible set depends on who is asking; the caller is
// expected to follow up with LoadFeed.
func (c *Controller) SetUser(uid, email string) {
	c.mu.Lock()
	c.userID = uid
	c.email = email
	c.cache = nil
	c.gen++
	c.mu.Unlock()
}

// UserID returns the signed-in user id, or "" when anonymous.
func (c *Controller) UserID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.userID
}

// View returns a render snapshot. The item slice is a copy; mutating it
// does not affect the controller.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]model.Item, len(c.visible))
	copy(items, c.visible)
	return View{
		Tab:        c.tab,
		Mode:       c.mode,
		Filter:     c.filter,
		Items:      items,
		Index:      c.cursor.Index,
		CanRetreat: c.cursor.HistoryLen() > 0,
	}
}

// LoadFeed fetches everything visible to the current user, shuffles it
// into the cache, and shows the slice matching the active tab. When force
// is false and the cache is already populated the fetch is skipped.
//
// A response is applied only if no newer list-replacing operation was
// issued while it was in flight; stale responses are discarded.
func (c *Controller) LoadFeed(ctx context.Context, force bool) error {
	c.mu.Lock()
	if !force && len(c.cache) > 0 {
		c.applyCacheLocked()
		c.mu.Unlock()
		return nil
	}
	c.gen++
	g := c.gen
	uid := c.userID
	c.mu.Unlock()

	items, err := c.repo.ListVisible(ctx, uid, true)
	if err != nil {
		return fmt.Errorf("load feed: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if g != c.gen {
		logging.Debug("discarding stale feed response", "generation", g, "latest", c.gen)
		return nil
	}
	c.cache = shuffled(items)
	c.applyCacheLocked()
	logging.Debug("feed loaded", "fetched", len(items), "visible", len(c.visible), "tab", c.tab)
	return nil
}

// SelectTab switches the active tab and persists it as the last-used
// view. The random/vitality/paradigm tabs refilter from the cache when
// possible and fetch otherwise; the mood and author tabs leave the list
// untouched until a value is picked from their grid.
func (c *Controller) SelectTab(ctx context.Context, tab model.Tab) error {
	c.mu.Lock()
	c.tab = tab
	c.filter = FilterState{Tab: tab}
	persist := c.persist
	mode := c.mode
	grid := tab == model.TabMood || tab == model.TabAuthor
	cached := len(c.cache) > 0
	if !grid && cached {
		c.applyCacheLocked()
	}
	c.mu.Unlock()

	if persist != nil {
		persist(tab, mode)
	}
	if grid || cached {
		return nil
	}
	return c.LoadFeed(ctx, true)
}

// Mode returns the active view mode.
func (c *Controller) Mode() model.ViewMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// ToggleMode flips between the default (random/mood/author) and
// alternative (vitality/paradigm) tab families, landing on the family's
// first tab.
func (c *Controller) ToggleMode(ctx context.Context) error {
	c.mu.Lock()
	if c.mode == model.ModeAlternative {
		c.mode = model.ModeDefault
	} else {
		c.mode = model.ModeAlternative
	}
	tab := model.TabRandom
	if c.mode == model.ModeAlternative {
		tab = model.TabVitality
	}
	c.mu.Unlock()
	return c.SelectTab(ctx, tab)
}

// FilterByMood narrows the feed to plain quotes carrying the given mood,
// via a targeted query. The shuffle cache is left alone so clearing the
// filter needs no network call.
func (c *Controller) FilterByMood(ctx context.Context, mood string) error {
	c.mu.Lock()
	c.gen++
	g := c.gen
	uid := c.userID
	c.mu.Unlock()

	items, err := c.repo.ListByMood(ctx, mood, uid)
	if err != nil {
		return fmt.Errorf("filter by mood %q: %w", mood, err)
	}
	items = model.FilterByVariant(items, model.VariantQuote)

	c.mu.Lock()
	defer c.mu.Unlock()
	if g != c.gen {
		return nil
	}
	c.tab = model.TabMood
	c.filter = FilterState{Tab: model.TabMood, Value: mood}
	c.visible = shuffled(items)
	c.cursor.reset()
	return nil
}

// FilterByAuthor narrows the feed to plain quotes by the given author.
func (c *Controller) FilterByAuthor(ctx context.Context, author string) error {
	c.mu.Lock()
	c.gen++
	g := c.gen
	uid := c.userID
	c.mu.Unlock()

	items, err := c.repo.ListByAuthor(ctx, author, uid)
	if err != nil {
		return fmt.Errorf("filter by author %q: %w", author, err)
	}
	items = model.FilterByVariant(items, model.VariantQuote)

	c.mu.Lock()
	defer c.mu.Unlock()
	if g != c.gen {
		return nil
	}
	c.tab = model.TabAuthor
	c.filter = FilterState{Tab: model.TabAuthor, Value: author}
	c.visible = shuffled(items)
	c.cursor.reset()
	return nil
}

// ClearFilter drops any mood/author narrowing and restores the random
// tab from the cache, fetching only if the cache is empty.
func (c *Controller) ClearFilter(ctx context.Context) error {
	c.mu.Lock()
	c.tab = model.TabRandom
	c.filter = FilterState{Tab: model.TabRandom}
	if len(c.cache) > 0 {
		c.applyCacheLocked()
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()
	return c.LoadFeed(ctx, true)
}

// Advance moves to the next card, pushing the departed index onto the
// undo stack. Returns false at the end of the list.
func (c *Controller) Advance() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor.advance(len(c.visible))
}

// Retreat pops back to the previous card. Returns false when there is
// nothing to undo.
func (c *Controller) Retreat() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor.retreat()
}

// SubmitNew validates and creates a quote or vitality item, then splices
// it into the working lists without a reload.
func (c *Controller) SubmitNew(ctx context.Context, d model.Draft) (model.Item, error) {
	if err := d.Validate(); err != nil {
		return model.Item{}, err
	}
	uid := c.UserID()
	if uid == "" {
		return model.Item{}, ErrNotSignedIn
	}
	variant := d.Variant
	if variant == "" {
		variant = model.VariantQuote
	}
	item := model.Item{
		Text:      strings.TrimSpace(d.Text),
		Author:    strings.TrimSpace(d.Author),
		Moods:     d.Labels(),
		Public:    d.Public,
		Variant:   variant,
		CreatedAt: time.Now(),
	}
	created, err := c.repo.Create(ctx, item, uid)
	if err != nil {
		return model.Item{}, fmt.Errorf("create: %w", err)
	}
	c.spliceIn(created)
	return created, nil
}

// SubmitParadigm validates and creates a paradigm item. Foundations get
// generated ids and positional codes (F1, F2, ...) when absent.
func (c *Controller) SubmitParadigm(ctx context.Context, d model.ParadigmDraft) (model.Item, error) {
	if err := d.Validate(); err != nil {
		return model.Item{}, err
	}
	uid := c.UserID()
	if uid == "" {
		return model.Item{}, ErrNotSignedIn
	}
	theory := strings.TrimSpace(d.Theory)
	item := model.Item{
		Text:        theory,
		Theory:      theory,
		Moods:       append([]string(nil), d.Moods...),
		Public:      d.Public,
		Variant:     model.VariantParadigm,
		Foundations: numberFoundations(d.Foundations),
		CreatedAt:   time.Now(),
	}
	created, err := c.repo.Create(ctx, item, uid)
	if err != nil {
		return model.Item{}, fmt.Errorf("create paradigm: %w", err)
	}
	c.spliceIn(created)
	return created, nil
}

// SubmitEdit validates and applies an edit to a quote or vitality item,
// replacing it in place in the working lists.
func (c *Controller) SubmitEdit(ctx context.Context, id string, d model.Draft) (model.Item, error) {
	if err := d.Validate(); err != nil {
		return model.Item{}, err
	}
	c.mu.Lock()
	uid, email := c.userID, c.email
	c.mu.Unlock()
	if uid == "" {
		return model.Item{}, ErrNotSignedIn
	}
	text := strings.TrimSpace(d.Text)
	author := strings.TrimSpace(d.Author)
	labels := d.Labels()
	patch := content.Patch{
		Text:   &text,
		Author: &author,
		Moods:  &labels,
		Public: &d.Public,
	}
	updated, err := c.repo.Update(ctx, id, uid, patch, email)
	if err != nil {
		return model.Item{}, fmt.Errorf("update: %w", err)
	}
	c.replaceInPlace(updated)
	return updated, nil
}

// SubmitParadigmEdit applies an edit to a paradigm item.
func (c *Controller) SubmitParadigmEdit(ctx context.Context, id string, d model.ParadigmDraft) (model.Item, error) {
	if err := d.Validate(); err != nil {
		return model.Item{}, err
	}
	c.mu.Lock()
	uid, email := c.userID, c.email
	c.mu.Unlock()
	if uid == "" {
		return model.Item{}, ErrNotSignedIn
	}
	theory := strings.TrimSpace(d.Theory)
	moods := append([]string(nil), d.Moods...)
	foundations := numberFoundations(d.Foundations)
	patch := content.Patch{
		Text:        &theory,
		Moods:       &moods,
		Public:      &d.Public,
		Theory:      &theory,
		Foundations: &foundations,
	}
	updated, err := c.repo.Update(ctx, id, uid, patch, email)
	if err != nil {
		return model.Item{}, fmt.Errorf("update paradigm: %w", err)
	}
	c.replaceInPlace(updated)
	return updated, nil
}

// DeleteItem removes an item from the service and from both working
// lists, nudging the cursor so it keeps pointing at a previously adjacent
// card.
func (c *Controller) DeleteItem(ctx context.Context, id string) error {
	c.mu.Lock()
	uid, email := c.userID, c.email
	c.mu.Unlock()

	if err := c.repo.Remove(ctx, id, uid, email); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = withoutID(c.cache, id)
	idx := indexOf(c.visible, id)
	if idx < 0 {
		return nil
	}
	c.visible = append(c.visible[:idx:idx], c.visible[idx+1:]...)
	if idx <= c.cursor.Index && c.cursor.Index > 0 {
		c.cursor.Index--
	}
	if c.cursor.Index >= len(c.visible) {
		c.cursor.Index = max(0, len(c.visible)-1)
	}
	// Undo entries pointing at or past the removed slot shift with it.
	hist := c.cursor.history[:0]
	for _, h := range c.cursor.history {
		if h == idx {
			continue
		}
		if h > idx {
			h--
		}
		if h < len(c.visible) {
			hist = append(hist, h)
		}
	}
	c.cursor.history = hist
	return nil
}

// ClearOwned deletes every item owned by the current user.
func (c *Controller) ClearOwned(ctx context.Context) error {
	uid := c.UserID()
	if uid == "" {
		return ErrNotSignedIn
	}
	if err := c.repo.ClearAllFor(ctx, uid); err != nil {
		return fmt.Errorf("clear owned: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = withoutOwner(c.cache, uid)
	c.visible = withoutOwner(c.visible, uid)
	c.cursor.reset()
	return nil
}

// Authors returns the distinct author names readable by the current user,
// for the author grid and suggestion chips.
func (c *Controller) Authors(ctx context.Context) ([]string, error) {
	return c.repo.DistinctAuthors(ctx, c.UserID())
}

// Tags returns the distinct custom tags readable by the current user.
func (c *Controller) Tags(ctx context.Context) ([]string, error) {
	return c.repo.DistinctTags(ctx, c.UserID())
}

// applyCacheLocked rebuilds the visible list from the shuffle cache for
// the active tab and resets the cursor. Counts as a list replacement for
// the purpose of the generation guard.
func (c *Controller) applyCacheLocked() {
	c.gen++
	c.visible = model.FilterByVariant(c.cache, c.tab.Variant())
	c.cursor.reset()
}

// spliceIn appends a freshly created item to the cache and, when it
// matches the active view, to the visible list. The cursor is untouched.
func (c *Controller) spliceIn(it model.Item) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = append(c.cache, it)
	if c.matchesViewLocked(it) {
		c.visible = append(c.visible, it)
	}
}

// replaceInPlace swaps the edited item into both lists by id.
func (c *Controller) replaceInPlace(it model.Item) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.cache {
		if c.cache[i].ID == it.ID {
			c.cache[i] = it
		}
	}
	for i := range c.visible {
		if c.visible[i].ID == it.ID {
			c.visible[i] = it
		}
	}
}

func (c *Controller) matchesViewLocked(it model.Item) bool {
	if !it.Is(c.tab.Variant()) {
		return false
	}
	if !c.filter.Narrowed() {
		return true
	}
	if c.filter.Tab == model.TabMood {
		return it.HasMood(c.filter.Value)
	}
	return it.AuthorMatches(c.filter.Value)
}

// numberFoundations fills in missing ids and positional codes.
func numberFoundations(fs []model.Foundation) []model.Foundation {
	out := make([]model.Foundation, len(fs))
	for i, f := range fs {
		if f.ID == "" {
			f.ID = uuid.NewString()
		}
		if f.Code == "" {
			f.Code = fmt.Sprintf("F%d", i+1)
		}
		out[i] = f
	}
	return out
}

func indexOf(items []model.Item, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func withoutID(items []model.Item, id string) []model.Item {
	out := items[:0]
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}

func withoutOwner(items []model.Item, uid string) []model.Item {
	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		if it.UserID != uid {
			out = append(out, it)
		}
	}
	return out
}
