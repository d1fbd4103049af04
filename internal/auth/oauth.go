package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"quoteswipe/internal/logging"
)

// OAuthConfig configures the device-flow provider.
type OAuthConfig struct {
	ClientID      string
	DeviceAuthURL string
	TokenURL      string
	UserInfoURL   string
	Scopes        string
}

// OAuthSession signs users in with the OAuth 2.0 device authorization
// grant: it requests a device code, tells the user where to enter it, and
// polls the token endpoint until the provider confirms.
type OAuthSession struct {
	notifier
	cfg      OAuthConfig
	client   *http.Client
	profiles ProfileStore
	now      func() time.Time

	// Prompt is invoked with the verification URI and user code once the
	// provider issues them. The TUI renders these; a nil Prompt is ignored.
	Prompt func(verificationURI, userCode string)

	mu      sync.Mutex
	current *Profile
}

// NewOAuthSession creates an OAuth device-flow session.
func NewOAuthSession(cfg OAuthConfig, profiles ProfileStore) *OAuthSession {
	return &OAuthSession{
		cfg:      cfg,
		client:   &http.Client{Timeout: 30 * time.Second},
		profiles: profiles,
		now:      time.Now,
	}
}

type deviceCodeResponse struct {
	DeviceCode      string `json:"device_code"`
	UserCode        string `json:"user_code"`
	VerificationURI string `json:"verification_uri"`
	ExpiresIn       int    `json:"expires_in"`
	Interval        int    `json:"interval"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Error       string `json:"error"`
}

type userInfoResponse struct {
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// SignIn runs the device flow to completion. It blocks until the user
// approves, the code expires, or ctx is cancelled.
func (s *OAuthSession) SignIn(ctx context.Context) (*Profile, error) {
	dc, err := s.requestDeviceCode(ctx)
	if err != nil {
		return nil, fmt.Errorf("request device code: %w", err)
	}
	if s.Prompt != nil {
		s.Prompt(dc.VerificationURI, dc.UserCode)
	}

	token, err := s.pollForToken(ctx, dc)
	if err != nil {
		return nil, err
	}

	ident, err := s.fetchIdentity(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("fetch identity: %w", err)
	}

	profile, err := createOrUpdateProfile(ctx, s.profiles, ident, s.now())
	if err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}

	s.mu.Lock()
	s.current = profile
	s.mu.Unlock()
	s.notify(profile)

	logging.Info("signed in", "uid", profile.UID, "email", profile.Email)
	return profile, nil
}

func (s *OAuthSession) requestDeviceCode(ctx context.Context) (*deviceCodeResponse, error) {
	form := url.Values{
		"client_id": {s.cfg.ClientID},
		"scope":     {s.cfg.Scopes},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.DeviceAuthURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("device endpoint status %d", resp.StatusCode)
	}

	var dc deviceCodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&dc); err != nil {
		return nil, err
	}
	if dc.Interval <= 0 {
		dc.Interval = 5
	}
	return &dc, nil
}

// pollForToken polls the token endpoint at the provider's interval,
// backing off on slow_down, until approval or expiry.
func (s *OAuthSession) pollForToken(ctx context.Context, dc *deviceCodeResponse) (string, error) {
	interval := time.Duration(dc.Interval) * time.Second
	deadline := s.now().Add(time.Duration(dc.ExpiresIn) * time.Second)

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(interval):
		}
		if dc.ExpiresIn > 0 && s.now().After(deadline) {
			return "", fmt.Errorf("device code expired before approval")
		}

		form := url.Values{
			"client_id":   {s.cfg.ClientID},
			"device_code": {dc.DeviceCode},
			"grant_type":  {"urn:ietf:params:oauth:grant-type:device_code"},
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.TokenURL,
			strings.NewReader(form.Encode()))
		if err != nil {
			return "", err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := s.client.Do(req)
		if err != nil {
			return "", fmt.Errorf("poll token: %w", err)
		}
		var tr tokenResponse
		decErr := json.NewDecoder(resp.Body).Decode(&tr)
		resp.Body.Close()
		if decErr != nil {
			return "", fmt.Errorf("decode token response: %w", decErr)
		}

		switch tr.Error {
		case "":
			if tr.AccessToken != "" {
				return tr.AccessToken, nil
			}
			return "", fmt.Errorf("token response missing access_token")
		case "authorization_pending":
			// keep polling
		case "slow_down":
			interval += 5 * time.Second
		default:
			return "", fmt.Errorf("token endpoint: %s", tr.Error)
		}
	}
}

func (s *OAuthSession) fetchIdentity(ctx context.Context, token string) (Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.UserInfoURL, nil)
	if err != nil {
		return Identity{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.client.Do(req)
	if err != nil {
		return Identity{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Identity{}, fmt.Errorf("userinfo status %d", resp.StatusCode)
	}

	var ui userInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&ui); err != nil {
		return Identity{}, err
	}
	return Identity{
		UID:         ui.Sub,
		Email:       ui.Email,
		DisplayName: ui.Name,
		AvatarURL:   ui.Picture,
	}, nil
}

func (s *OAuthSession) SignOut(context.Context) error {
	s.mu.Lock()
	was := s.current
	s.current = nil
	s.mu.Unlock()
	s.notify(nil)
	if was != nil {
		logging.Info("signed out", "uid", was.UID)
	}
	return nil
}

func (s *OAuthSession) Current() *Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Verify OAuthSession implements Session at compile time.
var _ Session = (*OAuthSession)(nil)
