// Package ui provides the Bubble Tea TUI for quoteswipe.
package ui

import (
	"quoteswipe/internal/auth"
	"quoteswipe/internal/feed"
	"quoteswipe/internal/model"
)

// FeedUpdated is sent whenever a controller operation replaces or mutates
// the visible list.
type FeedUpdated struct {
	View feed.View
	Err  error
}

// AuthChanged is sent when the signed-in identity changes. A nil profile
// means signed out.
type AuthChanged struct {
	Profile *auth.Profile
	Err     error
}

// DeviceCodePrompt is sent while a device-flow sign-in is pending, so the
// verification URL and code can be shown.
type DeviceCodePrompt struct {
	URL  string
	Code string
}

// SuggestionsLoaded carries usage-ranked author and tag suggestions for
// the submission forms and the grid views.
type SuggestionsLoaded struct {
	Authors []string
	Tags    []string
	Err     error
}

// ItemSaved is sent when a create or edit completes.
type ItemSaved struct {
	Item model.Item
	Err  error
}

// ItemDeleted is sent when a delete completes.
type ItemDeleted struct {
	ID  string
	Err error
}

// AnimTick drives the card spring animation at frame rate.
type AnimTick struct{}

// StatusExpired clears a transient status line.
type StatusExpired struct{}
