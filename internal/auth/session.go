// Package auth provides user identity: a session contract, an OAuth
// device-flow implementation, and profile persistence in the document
// store's users collection.
package auth

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrProfileNotFound is returned when no profile document exists for a uid.
var ErrProfileNotFound = errors.New("profile not found")

// Profile is the stored user record. It is created on first sign-in and
// refreshed on every subsequent one; the core never deletes it.
type Profile struct {
	UID          string    `json:"uid"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	LastLoginAt  time.Time `json:"last_login_at"`
	ItemsCreated int       `json:"items_created"`
}

// Session is the authentication contract consumed by the UI and the feed
// controller. Current returns nil while signed out.
type Session interface {
	SignIn(ctx context.Context) (*Profile, error)
	SignOut(ctx context.Context) error
	Current() *Profile

	// OnChange registers a callback fired with the new identity (or nil on
	// sign-out). The returned cancel func removes the subscription; callers
	// must invoke it on teardown.
	OnChange(fn func(*Profile)) (cancel func())
}

// ProfileStore persists user profiles.
type ProfileStore interface {
	Get(ctx context.Context, uid string) (*Profile, error)
	Put(ctx context.Context, p *Profile) error
}

// notifier implements the OnChange subscription bookkeeping shared by the
// session implementations.
type notifier struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(*Profile)
}

func (n *notifier) OnChange(fn func(*Profile)) (cancel func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.subs == nil {
		n.subs = make(map[int]func(*Profile))
	}
	id := n.nextID
	n.nextID++
	n.subs[id] = fn

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

func (n *notifier) notify(p *Profile) {
	n.mu.Lock()
	fns := make([]func(*Profile), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn(p)
	}
}

// createOrUpdateProfile upserts the profile document: new users get a full
// record, returning users keep CreatedAt and ItemsCreated but have their
// last login refreshed.
func createOrUpdateProfile(ctx context.Context, store ProfileStore, ident Identity, now time.Time) (*Profile, error) {
	existing, err := store.Get(ctx, ident.UID)
	switch {
	case errors.Is(err, ErrProfileNotFound):
		p := &Profile{
			UID:         ident.UID,
			Email:       ident.Email,
			DisplayName: ident.DisplayName,
			AvatarURL:   ident.AvatarURL,
			CreatedAt:   now,
			LastLoginAt: now,
		}
		if err := store.Put(ctx, p); err != nil {
			return nil, err
		}
		return p, nil
	case err != nil:
		return nil, err
	}

	existing.Email = ident.Email
	existing.DisplayName = ident.DisplayName
	existing.AvatarURL = ident.AvatarURL
	existing.LastLoginAt = now
	if err := store.Put(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Identity is what the provider asserts about a user.
type Identity struct {
	UID         string
	Email       string
	DisplayName string
	AvatarURL   string
}

// StaticSession is a Session with a fixed identity. It backs offline mode
// (where it stays anonymous until SignIn) and tests.
type StaticSession struct {
	notifier
	mu       sync.Mutex
	identity Identity
	store    ProfileStore
	current  *Profile
	now      func() time.Time
}

// NewStaticSession creates a session that signs in as the given identity.
func NewStaticSession(ident Identity, store ProfileStore) *StaticSession {
	return &StaticSession{identity: ident, store: store, now: time.Now}
}

func (s *StaticSession) SignIn(ctx context.Context) (*Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := createOrUpdateProfile(ctx, s.store, s.identity, s.now())
	if err != nil {
		return nil, err
	}
	s.current = p
	s.notify(p)
	return p, nil
}

func (s *StaticSession) SignOut(context.Context) error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	s.notify(nil)
	return nil
}

func (s *StaticSession) Current() *Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// MemoryProfiles is an in-memory ProfileStore.
type MemoryProfiles struct {
	mu       sync.Mutex
	profiles map[string]Profile
}

func NewMemoryProfiles() *MemoryProfiles {
	return &MemoryProfiles{profiles: map[string]Profile{}}
}

func (m *MemoryProfiles) Get(_ context.Context, uid string) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[uid]
	if !ok {
		return nil, ErrProfileNotFound
	}
	cp := p
	return &cp, nil
}

func (m *MemoryProfiles) Put(_ context.Context, p *Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.UID] = *p
	return nil
}

// Verify implementations at compile time.
var (
	_ Session      = (*StaticSession)(nil)
	_ ProfileStore = (*MemoryProfiles)(nil)
)
