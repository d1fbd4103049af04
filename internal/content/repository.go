// Package content provides access to the quote collection: a remote
// document-store client, an in-memory implementation, and a fallback
// wrapper that keeps the feed populated when the service is unreachable.
//
// All list operations are bounded bulk scans. The backing store does no
// filtering beyond the row limit; visibility, mood, and author narrowing
// happen in memory after the read, exactly as wide as the page limit.
package content

import (
	"context"
	"errors"
	"sort"
	"strings"

	"quoteswipe/internal/model"
)

// DefaultPageLimit bounds bulk reads when no limit is configured.
const DefaultPageLimit = 100

// ErrNotFound is returned when a mutation targets a missing item.
var ErrNotFound = errors.New("quote not found")

// AuthorizationError is returned when a caller lacks ownership or domain
// rights to mutate an item. Its message is shown to the user verbatim.
type AuthorizationError struct {
	Action string // "edit" or "delete"
}

func (e *AuthorizationError) Error() string {
	return "You can only " + e.Action + " your own quotes or system quotes (if logged in with Gmail)"
}

// Patch is a partial update. Nil fields are left unchanged. Theory and
// Foundations are applied only when the patched variant is paradigm.
type Patch struct {
	Text        *string
	Author      *string
	Moods       *[]string
	Public      *bool
	Variant     *model.Variant
	Theory      *string
	Foundations *[]model.Foundation
}

// Repository is the document-collection contract consumed by the feed
// controller. Implementations serialize individual writes but perform no
// optimistic-concurrency check: an edit overwrites whatever is stored.
type Repository interface {
	ListVisible(ctx context.Context, userID string, includePublic bool) ([]model.Item, error)
	ListByMood(ctx context.Context, mood, userID string) ([]model.Item, error)
	ListByAuthor(ctx context.Context, author, userID string) ([]model.Item, error)
	ListOwnedBy(ctx context.Context, userID string) ([]model.Item, error)
	Create(ctx context.Context, item model.Item, ownerID string) (model.Item, error)
	Update(ctx context.Context, id, callerID string, patch Patch, callerEmail string) (model.Item, error)
	Remove(ctx context.Context, id, callerID, callerEmail string) error
	ClearAllFor(ctx context.Context, userID string) error
	DistinctAuthors(ctx context.Context, userID string) ([]string, error)
	DistinctTags(ctx context.Context, userID string) ([]string, error)
}

// canMutate applies the ownership rule: a caller may mutate an item it
// owns, or a system-owned item when the caller's verified email belongs to
// the trusted domain. This is a coarse domain check, not a permissions
// system.
func canMutate(it model.Item, callerID, callerEmail, adminDomain string) bool {
	if it.UserID == callerID && callerID != "" {
		return true
	}
	return it.UserID == model.SystemUser &&
		callerEmail != "" &&
		strings.HasSuffix(strings.ToLower(callerEmail), "@"+strings.ToLower(adminDomain))
}

// applyPatch merges a patch into an item.
func applyPatch(it model.Item, p Patch) model.Item {
	if p.Text != nil {
		it.Text = *p.Text
	}
	if p.Author != nil {
		it.Author = *p.Author
	}
	if p.Moods != nil {
		it.Moods = append([]string(nil), (*p.Moods)...)
	}
	if p.Public != nil {
		it.Public = *p.Public
	}
	if p.Variant != nil {
		it.Variant = *p.Variant
	}
	if it.Variant == model.VariantParadigm {
		if p.Theory != nil {
			it.Theory = *p.Theory
		}
		if p.Foundations != nil {
			it.Foundations = append([]model.Foundation(nil), (*p.Foundations)...)
		}
	}
	return it
}

// visibleTo filters a scan down to what the caller may see, newest first.
func visibleTo(items []model.Item, userID string, includePublic bool) []model.Item {
	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		switch {
		case userID != "" && includePublic:
			if it.Public || it.UserID == userID {
				out = append(out, it)
			}
		case userID != "":
			if it.UserID == userID {
				out = append(out, it)
			}
		default:
			if it.Public {
				out = append(out, it)
			}
		}
	}
	sortNewestFirst(out)
	return out
}

func sortNewestFirst(items []model.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

// distinctAuthors extracts the sorted unique author set from readable items.
func distinctAuthors(items []model.Item) []string {
	set := map[string]struct{}{}
	for _, it := range items {
		a := strings.TrimSpace(it.Author)
		if a != "" {
			set[a] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for a := range set {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// distinctTags extracts the sorted unique custom-tag set, excluding the
// fixed mood labels.
func distinctTags(items []model.Item) []string {
	set := map[string]struct{}{}
	for _, it := range items {
		for _, m := range it.Moods {
			tag := strings.TrimSpace(m)
			if tag != "" && !model.IsFixedMood(tag) {
				set[tag] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
