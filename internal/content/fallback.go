package content

import (
	"context"

	"quoteswipe/internal/logging"
	"quoteswipe/internal/model"
)

// Fallback wraps a Repository so the feed never renders empty because of
// connectivity alone: read failures and empty bulk reads are answered from
// the built-in seed set instead of surfacing an error to the viewer.
// Writes pass through untouched; a failed write is the caller's problem.
type Fallback struct {
	Repository
	seed *Memory
}

// NewFallback wraps remote with a seed-backed read fallback.
func NewFallback(remote Repository, seed []model.Item) *Fallback {
	return &Fallback{Repository: remote, seed: NewMemory(seed)}
}

func (f *Fallback) ListVisible(ctx context.Context, userID string, includePublic bool) ([]model.Item, error) {
	items, err := f.Repository.ListVisible(ctx, userID, includePublic)
	if err == nil && len(items) > 0 {
		return items, nil
	}
	if err != nil {
		logging.Warn("falling back to seed quotes", "error", err)
	}
	return f.seed.ListVisible(ctx, userID, includePublic)
}

func (f *Fallback) ListByMood(ctx context.Context, mood, userID string) ([]model.Item, error) {
	items, err := f.Repository.ListByMood(ctx, mood, userID)
	if err == nil && len(items) > 0 {
		return items, nil
	}
	if err != nil {
		logging.Warn("falling back to seed quotes for mood", "mood", mood, "error", err)
	}
	return f.seed.ListByMood(ctx, mood, userID)
}

func (f *Fallback) ListByAuthor(ctx context.Context, author, userID string) ([]model.Item, error) {
	items, err := f.Repository.ListByAuthor(ctx, author, userID)
	if err != nil {
		logging.Warn("falling back to seed quotes for author", "author", author, "error", err)
		return f.seed.ListByAuthor(ctx, author, userID)
	}
	return items, nil
}

func (f *Fallback) DistinctAuthors(ctx context.Context, userID string) ([]string, error) {
	authors, err := f.Repository.DistinctAuthors(ctx, userID)
	if err == nil && len(authors) > 0 {
		return authors, nil
	}
	return f.seed.DistinctAuthors(ctx, userID)
}

func (f *Fallback) DistinctTags(ctx context.Context, userID string) ([]string, error) {
	tags, err := f.Repository.DistinctTags(ctx, userID)
	if err == nil && len(tags) > 0 {
		return tags, nil
	}
	return f.seed.DistinctTags(ctx, userID)
}

// Verify Fallback implements Repository at compile time.
var _ Repository = (*Fallback)(nil)
