package content

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"quoteswipe/internal/model"
)

// Memory is an in-memory Repository. It backs offline mode and tests, and
// serves the seed set behind the Fallback wrapper.
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type Memory struct {
	mu          sync.RWMutex
	items       []model.Item
	limit       int
	adminDomain string
}

// NewMemory creates a Memory repository preloaded with the given items.
func NewMemory(seed []model.Item) *Memory {
	return &Memory{
		items:       append([]model.Item(nil), seed...),
		limit:       DefaultPageLimit,
		adminDomain: "gmail.com",
	}
}

// SetAdminDomain overrides the trusted domain for system-item mutations.
func (m *Memory) SetAdminDomain(domain string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.adminDomain = domain
}

// scan returns a bounded copy of the collection, like a remote bulk read.
func (m *Memory) scan() []model.Item {
	out := make([]model.Item, 0, len(m.items))
	for i, it := range m.items {
		if i >= m.limit {
			break
		}
		out = append(out, it)
	}
	return out
}

func (m *Memory) ListVisible(_ context.Context, userID string, includePublic bool) ([]model.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return visibleTo(m.scan(), userID, includePublic), nil
}

func (m *Memory) ListByMood(_ context.Context, mood, userID string) ([]model.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Item, 0)
	for _, it := range m.scan() {
		if it.HasMood(mood) && it.VisibleTo(userID) {
			out = append(out, it)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (m *Memory) ListByAuthor(_ context.Context, author, userID string) ([]model.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Item, 0)
	for _, it := range m.scan() {
		if it.AuthorMatches(author) && it.VisibleTo(userID) {
			out = append(out, it)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (m *Memory) ListOwnedBy(_ context.Context, userID string) ([]model.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Item, 0)
	for _, it := range m.items {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (m *Memory) Create(_ context.Context, item model.Item, ownerID string) (model.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	item.UserID = ownerID
	if item.Variant == "" {
		item.Variant = model.VariantQuote
	}
	m.items = append(m.items, item)
	return item, nil
}

func (m *Memory) Update(_ context.Context, id, callerID string, patch Patch, callerEmail string) (model.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, it := range m.items {
		if it.ID != id {
			continue
		}
		if !canMutate(it, callerID, callerEmail, m.adminDomain) {
			return model.Item{}, &AuthorizationError{Action: "edit"}
		}
		m.items[i] = applyPatch(it, patch)
		return m.items[i], nil
	}
	return model.Item{}, ErrNotFound
}

func (m *Memory) Remove(_ context.Context, id, callerID, callerEmail string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, it := range m.items {
		if it.ID != id {
			continue
		}
		if !canMutate(it, callerID, callerEmail, m.adminDomain) {
			return &AuthorizationError{Action: "delete"}
		}
		m.items = append(m.items[:i], m.items[i+1:]...)
		return nil
	}
	return ErrNotFound
}

func (m *Memory) ClearAllFor(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.items[:0]
	for _, it := range m.items {
		if it.UserID != userID {
			kept = append(kept, it)
		}
	}
	m.items = kept
	return nil
}

func (m *Memory) DistinctAuthors(_ context.Context, userID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return distinctAuthors(visibleTo(m.scan(), userID, true)), nil
}

func (m *Memory) DistinctTags(_ context.Context, userID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return distinctTags(visibleTo(m.scan(), userID, true)), nil
}

// Verify Memory implements Repository at compile time.
var _ Repository = (*Memory)(nil)
