// Package config loads and saves the persistent application configuration.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config is the persistent application configuration.
type Config struct {
	// Remote document store
	Service ServiceConfig `json:"service"`

	// OAuth identity provider
	OAuth OAuthConfig `json:"oauth"`

	// UI state restored across sessions
	UI UIConfig `json:"ui"`
}

// ServiceConfig holds document-store service settings.
type ServiceConfig struct {
	Endpoint string `json:"endpoint,omitempty"` // Base URL; empty means offline seed mode
	APIKey   string `json:"api_key,omitempty"`
	// PageLimit bounds every bulk read. There is no pagination beyond it.
	PageLimit int `json:"page_limit"`
	// AdminDomain is the email domain allowed to edit system-owned items.
	AdminDomain string `json:"admin_domain"`
}

// OAuthConfig holds device-flow identity provider settings.
type OAuthConfig struct {
	ClientID      string `json:"client_id,omitempty"`
	DeviceAuthURL string `json:"device_auth_url,omitempty"`
	TokenURL      string `json:"token_url,omitempty"`
	UserInfoURL   string `json:"user_info_url,omitempty"`
	Scopes        string `json:"scopes,omitempty"`
}

// UIConfig holds UI preferences and the last-used view state.
type UIConfig struct {
	ActiveTab string `json:"active_tab"`
	ViewMode  string `json:"view_mode"` // "default" or "alternative"
	Theme     string `json:"theme"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Service: ServiceConfig{
			PageLimit:   100,
			AdminDomain: "gmail.com",
		},
		OAuth: OAuthConfig{
			Scopes: "openid email profile",
		},
		UI: UIConfig{
			ActiveTab: "random",
			ViewMode:  "default",
			Theme:     "dark",
		},
	}
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".quoteswipe", "config.json")
}

// Load reads config from disk, or returns defaults. A corrupt file is
// treated the same as a missing one.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads config from an explicit path. Tests use this.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			cfg.AutoPopulateFromEnv()
			return cfg, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return DefaultConfig(), nil
	}
	cfg.normalize()

	return cfg, nil
}

// Save writes config to disk
func (c *Config) Save() error {
	return c.SaveTo(ConfigPath())
}

// SaveTo writes config to an explicit path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600) // Restrictive permissions for API keys
}

// AutoPopulateFromEnv fills in secrets from environment variables
func (c *Config) AutoPopulateFromEnv() {
	if v := os.Getenv("QUOTESWIPE_ENDPOINT"); v != "" {
		c.Service.Endpoint = v
	}
	if v := os.Getenv("QUOTESWIPE_API_KEY"); v != "" {
		c.Service.APIKey = v
	}
	if v := os.Getenv("QUOTESWIPE_OAUTH_CLIENT_ID"); v != "" {
		c.OAuth.ClientID = v
	}
}

// normalize backfills zero values that an old or hand-edited config file
// may be missing.
func (c *Config) normalize() {
	if c.Service.PageLimit <= 0 {
		c.Service.PageLimit = 100
	}
	if c.Service.AdminDomain == "" {
		c.Service.AdminDomain = "gmail.com"
	}
	if c.UI.ViewMode != "alternative" {
		c.UI.ViewMode = "default"
	}
	switch c.UI.ActiveTab {
	case "random", "mood", "author", "vitality", "paradigm":
	default:
		c.UI.ActiveTab = "random"
	}
}
