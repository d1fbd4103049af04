package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"quoteswipe/internal/model"
	"quoteswipe/internal/usage"
)

// runExport dumps the visible collection as JSON to stdout.
func runExport() {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	user := fs.String("user", "", "Include private items owned by this user id")
	mood := fs.String("mood", "", "Only items carrying this mood or tag")
	fs.Parse(os.Args[1:])

	repo := openRepo(loadConfig())
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var items []model.Item
	var err error
	if *mood != "" {
		items, err = repo.ListByMood(ctx, *mood, *user)
	} else {
		items, err = repo.ListVisible(ctx, *user, true)
	}
	if err != nil {
		log.Fatalf("export failed: %v", err)
	}
	writeJSON(items)
}

// runSeed prints the built-in seed collection.
func runSeed() {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	fs.Parse(os.Args[1:])
	writeJSON(model.Seed())
}

// runAuthors lists distinct authors, most-used first.
func runAuthors() {
	fs := flag.NewFlagSet("authors", flag.ExitOnError)
	fs.Parse(os.Args[1:])
	listRanked(usage.CategoryAuthors, func(ctx context.Context) ([]string, error) {
		return openRepo(loadConfig()).DistinctAuthors(ctx, "")
	})
}

// runTags lists distinct custom tags, most-used first.
func runTags() {
	fs := flag.NewFlagSet("tags", flag.ExitOnError)
	fs.Parse(os.Args[1:])
	listRanked(usage.CategoryTags, func(ctx context.Context) ([]string, error) {
		return openRepo(loadConfig()).DistinctTags(ctx, "")
	})
}

func listRanked(category string, fetch func(context.Context) ([]string, error)) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	values, err := fetch(ctx)
	if err != nil {
		log.Fatalf("listing failed: %v", err)
	}
	tracker, st := openTracker()
	defer st.Close()
	ranked, err := tracker.Rank(category, values)
	if err != nil {
		log.Fatalf("ranking failed: %v", err)
	}
	for _, v := range ranked {
		fmt.Println(v)
	}
}

// runStats prints usage counter statistics per category.
func runStats() {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	top := fs.Int("top", 10, "Records to show per category")
	fs.Parse(os.Args[1:])

	st := openDB()
	defer st.Close()

	counts, err := st.CategoryCounts()
	if err != nil {
		log.Fatalf("failed to read stats: %v", err)
	}
	if len(counts) == 0 {
		fmt.Println("No usage recorded yet.")
		return
	}

	for _, category := range []string{usage.CategoryAuthors, usage.CategoryTags} {
		n, ok := counts[category]
		if !ok {
			continue
		}
		fmt.Printf("%s: %d tracked (cap %d)\n", category, n, usage.MaxRecords)

		records, err := st.Records(category)
		if err != nil {
			log.Fatalf("failed to read %s records: %v", category, err)
		}
		for i, r := range records {
			if i >= *top {
				break
			}
			fmt.Printf("  %3d×  %-30s  last used %s\n",
				r.Count, r.Value, r.LastUsed.Format("2006-01-02 15:04"))
		}
		fmt.Println()
	}
}

// runClear deletes every quote owned by a user.
func runClear() {
	fs := flag.NewFlagSet("clear", flag.ExitOnError)
	user := fs.String("user", "", "Owner user id (required)")
	fs.Parse(os.Args[1:])
	if *user == "" {
		log.Fatal("clear: -user is required")
	}

	repo := openRepo(loadConfig())
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := repo.ClearAllFor(ctx, *user); err != nil {
		log.Fatalf("clear failed: %v", err)
	}
	fmt.Printf("cleared all items owned by %s\n", *user)
}

// runClearUsage resets usage counters.
func runClearUsage() {
	fs := flag.NewFlagSet("clear-usage", flag.ExitOnError)
	category := fs.String("category", "all", "authors, tags, or all")
	fs.Parse(os.Args[1:])

	var categories []string
	switch *category {
	case "all":
		categories = []string{usage.CategoryAuthors, usage.CategoryTags}
	case usage.CategoryAuthors, usage.CategoryTags:
		categories = []string{*category}
	default:
		log.Fatalf("unknown category %q", *category)
	}

	tracker, st := openTracker()
	defer st.Close()
	for _, c := range categories {
		if err := tracker.Clear(c); err != nil {
			log.Fatalf("failed to clear %s: %v", c, err)
		}
		fmt.Printf("cleared %s\n", c)
	}
}

func writeJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatalf("encoding failed: %v", err)
	}
}
