package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"quoteswipe/internal/auth"
	"quoteswipe/internal/config"
	"quoteswipe/internal/content"
	"quoteswipe/internal/feed"
	"quoteswipe/internal/logging"
	"quoteswipe/internal/model"
	"quoteswipe/internal/store"
	"quoteswipe/internal/ui"
	"quoteswipe/internal/usage"
)

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := logging.Init(); err != nil {
		log.Printf("Warning: file logging disabled: %v", err)
	}
	defer logging.Close()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.AutoPopulateFromEnv()

	// Data directory: ~/.quoteswipe/
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}
	dataDir := filepath.Join(homeDir, ".quoteswipe")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	// Usage counters live in sqlite next to the config.
	st, err := store.Open(filepath.Join(dataDir, "quoteswipe.db"))
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer st.Close()
	tracker := usage.NewTracker(st)

	// Repository: remote document store with seed fallback, or pure
	// offline seed mode when no endpoint is configured.
	seed := model.Seed()
	var repo content.Repository
	if cfg.Service.Endpoint != "" {
		repo = content.NewFallback(content.NewDocStore(content.DocStoreConfig{
			Endpoint:    cfg.Service.Endpoint,
			APIKey:      cfg.Service.APIKey,
			PageLimit:   cfg.Service.PageLimit,
			AdminDomain: cfg.Service.AdminDomain,
		}), seed)
		logging.Info("using remote document store", "endpoint", cfg.Service.Endpoint)
	} else {
		mem := content.NewMemory(seed)
		mem.SetAdminDomain(cfg.Service.AdminDomain)
		repo = mem
		logging.Info("offline mode, seed collection only")
	}

	// Session: OAuth device flow when configured, a local static
	// identity otherwise.
	var session auth.Session
	var oauthSession *auth.OAuthSession
	if cfg.OAuth.ClientID != "" {
		var profiles auth.ProfileStore = auth.NewMemoryProfiles()
		if cfg.Service.Endpoint != "" {
			profiles = auth.NewDocProfiles(cfg.Service.Endpoint, cfg.Service.APIKey)
		}
		oauthSession = auth.NewOAuthSession(auth.OAuthConfig{
			ClientID:      cfg.OAuth.ClientID,
			DeviceAuthURL: cfg.OAuth.DeviceAuthURL,
			TokenURL:      cfg.OAuth.TokenURL,
			UserInfoURL:   cfg.OAuth.UserInfoURL,
			Scopes:        cfg.OAuth.Scopes,
		}, profiles)
		session = oauthSession
	} else {
		session = auth.NewStaticSession(auth.Identity{
			UID:         "local",
			Email:       envOrDefault("QUOTESWIPE_USER_EMAIL", "local@gmail.com"),
			DisplayName: envOrDefault("QUOTESWIPE_USER_NAME", "Local User"),
		}, auth.NewMemoryProfiles())
	}

	controller := feed.New(repo, model.Tab(cfg.UI.ActiveTab), model.ViewMode(cfg.UI.ViewMode))
	controller.OnViewChange(func(tab model.Tab, mode model.ViewMode) {
		cfg.UI.ActiveTab = string(tab)
		cfg.UI.ViewMode = string(mode)
		if err := cfg.Save(); err != nil {
			logging.Warn("failed to persist view state", "error", err)
		}
	})

	// snapshot wraps a controller operation result for the UI.
	snapshot := func(err error) tea.Msg {
		return ui.FeedUpdated{View: controller.View(), Err: err}
	}

	cmds := ui.Commands{
		LoadFeed: func(force bool) tea.Cmd {
			return func() tea.Msg { return snapshot(controller.LoadFeed(ctx, force)) }
		},
		Refresh: func() tea.Cmd {
			return func() tea.Msg { return snapshot(nil) }
		},
		SelectTab: func(tab model.Tab) tea.Cmd {
			return func() tea.Msg { return snapshot(controller.SelectTab(ctx, tab)) }
		},
		ToggleMode: func() tea.Cmd {
			return func() tea.Msg { return snapshot(controller.ToggleMode(ctx)) }
		},
		FilterMood: func(mood string) tea.Cmd {
			return func() tea.Msg { return snapshot(controller.FilterByMood(ctx, mood)) }
		},
		FilterAuthor: func(author string) tea.Cmd {
			return func() tea.Msg { return snapshot(controller.FilterByAuthor(ctx, author)) }
		},
		ClearFilter: func() tea.Cmd {
			return func() tea.Msg { return snapshot(controller.ClearFilter(ctx)) }
		},
		Advance: func() tea.Cmd {
			return func() tea.Msg { controller.Advance(); return snapshot(nil) }
		},
		Retreat: func() tea.Cmd {
			return func() tea.Msg { controller.Retreat(); return snapshot(nil) }
		},
		SubmitQuote: func(id string, d model.Draft) tea.Cmd {
			return func() tea.Msg {
				if id == "" {
					it, err := controller.SubmitNew(ctx, d)
					return ui.ItemSaved{Item: it, Err: err}
				}
				it, err := controller.SubmitEdit(ctx, id, d)
				return ui.ItemSaved{Item: it, Err: err}
			}
		},
		SubmitParadigm: func(id string, d model.ParadigmDraft) tea.Cmd {
			return func() tea.Msg {
				if id == "" {
					it, err := controller.SubmitParadigm(ctx, d)
					return ui.ItemSaved{Item: it, Err: err}
				}
				it, err := controller.SubmitParadigmEdit(ctx, id, d)
				return ui.ItemSaved{Item: it, Err: err}
			}
		},
		Delete: func(id string) tea.Cmd {
			return func() tea.Msg {
				return ui.ItemDeleted{ID: id, Err: controller.DeleteItem(ctx, id)}
			}
		},
		SignIn: func() tea.Cmd {
			return func() tea.Msg {
				// Success arrives through the OnChange subscription.
				if _, err := session.SignIn(ctx); err != nil {
					return ui.AuthChanged{Err: err}
				}
				return nil
			}
		},
		SignOut: func() tea.Cmd {
			return func() tea.Msg {
				if err := session.SignOut(ctx); err != nil {
					return ui.AuthChanged{Err: err}
				}
				return nil
			}
		},
		Suggestions: func() tea.Cmd {
			return func() tea.Msg {
				authors, err := controller.Authors(ctx)
				if err != nil {
					return ui.SuggestionsLoaded{Err: err}
				}
				tags, err := controller.Tags(ctx)
				if err != nil {
					return ui.SuggestionsLoaded{Err: err}
				}
				rankedAuthors, err := tracker.Rank(usage.CategoryAuthors, authors)
				if err != nil {
					logging.Warn("author ranking failed", "error", err)
					rankedAuthors = authors
				}
				rankedTags, err := tracker.Rank(usage.CategoryTags, tags)
				if err != nil {
					logging.Warn("tag ranking failed", "error", err)
					rankedTags = tags
				}
				return ui.SuggestionsLoaded{Authors: rankedAuthors, Tags: rankedTags}
			}
		},
		RecordUsage: func(author string, tags []string) tea.Cmd {
			return func() tea.Msg {
				if author != "" {
					if err := tracker.Record(usage.CategoryAuthors, author); err != nil {
						logging.Warn("author usage recording failed", "error", err)
					}
				}
				var custom []string
				for _, t := range tags {
					if !model.IsFixedMood(t) {
						custom = append(custom, t)
					}
				}
				if err := tracker.RecordAll(usage.CategoryTags, custom); err != nil {
					logging.Warn("tag usage recording failed", "error", err)
				}
				return nil
			}
		},
	}

	app := ui.NewApp(cmds, cfg.Service.AdminDomain)
	program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if oauthSession != nil {
		oauthSession.Prompt = func(uri, code string) {
			program.Send(ui.DeviceCodePrompt{URL: uri, Code: code})
		}
	}
	unsubscribe := session.OnChange(func(p *auth.Profile) {
		uid, email := "", ""
		if p != nil {
			uid, email = p.UID, p.Email
		}
		controller.SetUser(uid, email)
		program.Send(ui.AuthChanged{Profile: p})
	})
	defer unsubscribe()

	logging.Info("starting", "version", logging.Version)
	if _, err := program.Run(); err != nil {
		log.Printf("Error running program: %v", err)
	}
}
