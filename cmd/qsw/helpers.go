package main

import (
	"log"
	"os"
	"path/filepath"

	"quoteswipe/internal/config"
	"quoteswipe/internal/content"
	"quoteswipe/internal/model"
	"quoteswipe/internal/store"
	"quoteswipe/internal/usage"
)

// dataDir returns ~/.quoteswipe/, creating it if needed.
func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("failed to get home directory: %v", err)
	}
	dir := filepath.Join(home, ".quoteswipe")
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("failed to create data directory: %v", err)
	}
	return dir
}

// openDB opens the usage store or fatals.
func openDB() *store.Store {
	st, err := store.Open(filepath.Join(dataDir(), "quoteswipe.db"))
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	return st
}

// openTracker opens the usage tracker over the sqlite store.
func openTracker() (*usage.Tracker, *store.Store) {
	st := openDB()
	return usage.NewTracker(st), st
}

// loadConfig loads the saved config with env overrides applied.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg.AutoPopulateFromEnv()
	return cfg
}

// openRepo builds the same repository the TUI uses: remote with seed
// fallback when an endpoint is configured, seed-only otherwise.
func openRepo(cfg *config.Config) content.Repository {
	seed := model.Seed()
	if cfg.Service.Endpoint == "" {
		mem := content.NewMemory(seed)
		mem.SetAdminDomain(cfg.Service.AdminDomain)
		return mem
	}
	return content.NewFallback(content.NewDocStore(content.DocStoreConfig{
		Endpoint:    cfg.Service.Endpoint,
		APIKey:      cfg.Service.APIKey,
		PageLimit:   cfg.Service.PageLimit,
		AdminDomain: cfg.Service.AdminDomain,
	}), seed)
}
