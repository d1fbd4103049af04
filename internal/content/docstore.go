package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"quoteswipe/internal/logging"
	"quoteswipe/internal/model"
)

// DocStore talks to the hosted document-store service over HTTP. The
// service is a dumb collection of JSON documents: every read here is a
// bounded bulk scan filtered client-side, and mutations are
// read-check-write with no version comparison.
type DocStore struct {
	endpoint    string
	apiKey      string
	limit       int
	adminDomain string
	client      *http.Client
	limiter     *rate.Limiter
}

// DocStoreConfig configures the client.
type DocStoreConfig struct {
	Endpoint    string
	APIKey      string
	PageLimit   int
	AdminDomain string
}

// NewDocStore creates a document-store client.
func NewDocStore(cfg DocStoreConfig) *DocStore {
	if cfg.PageLimit <= 0 {
		cfg.PageLimit = DefaultPageLimit
	}
	if cfg.AdminDomain == "" {
		cfg.AdminDomain = "gmail.com"
	}
	return &DocStore{
		endpoint:    strings.TrimRight(cfg.Endpoint, "/"),
		apiKey:      cfg.APIKey,
		limit:       cfg.PageLimit,
		adminDomain: cfg.AdminDomain,
		client:      &http.Client{Timeout: 30 * time.Second},
		limiter:     rate.NewLimiter(rate.Every(100*time.Millisecond), 5),
	}
}

// documentsResponse is the bulk-read envelope.
type documentsResponse struct {
	Documents []model.Item `json:"documents"`
}

func (d *DocStore) do(ctx context.Context, method, path string, body, out any) (int, error) {
	if err := d.limiter.Wait(ctx); err != nil {
		return 0, err
	}

	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("docstore: encode request: %w", err)
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, d.endpoint+path, rdr)
	if err != nil {
		return 0, fmt.Errorf("docstore: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if d.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+d.apiKey)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("docstore: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return resp.StatusCode, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, fmt.Errorf("docstore: %s %s: status %d", method, path, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("docstore: decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// scan performs the bounded bulk read every list operation starts from.
func (d *DocStore) scan(ctx context.Context, limit int) ([]model.Item, error) {
	var resp documentsResponse
	path := fmt.Sprintf("/v1/quotes?limit=%d", limit)
	if _, err := d.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Documents, nil
}

func (d *DocStore) get(ctx context.Context, id string) (model.Item, error) {
	var it model.Item
	if _, err := d.do(ctx, http.MethodGet, "/v1/quotes/"+id, nil, &it); err != nil {
		return model.Item{}, err
	}
	return it, nil
}

func (d *DocStore) ListVisible(ctx context.Context, userID string, includePublic bool) ([]model.Item, error) {
	items, err := d.scan(ctx, d.limit)
	if err != nil {
		return nil, err
	}
	return visibleTo(items, userID, includePublic), nil
}

func (d *DocStore) ListByMood(ctx context.Context, mood, userID string) ([]model.Item, error) {
	items, err := d.scan(ctx, d.limit)
	if err != nil {
		return nil, err
	}
	out := make([]model.Item, 0)
	for _, it := range items {
		if it.HasMood(mood) && it.VisibleTo(userID) {
			out = append(out, it)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (d *DocStore) ListByAuthor(ctx context.Context, author, userID string) ([]model.Item, error) {
	items, err := d.scan(ctx, d.limit)
	if err != nil {
		return nil, err
	}
	out := make([]model.Item, 0)
	for _, it := range items {
		if it.AuthorMatches(author) && it.VisibleTo(userID) {
			out = append(out, it)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (d *DocStore) ListOwnedBy(ctx context.Context, userID string) ([]model.Item, error) {
	items, err := d.scan(ctx, d.limit)
	if err != nil {
		return nil, err
	}
	out := make([]model.Item, 0)
	for _, it := range items {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (d *DocStore) Create(ctx context.Context, item model.Item, ownerID string) (model.Item, error) {
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
	// Paradigm fields never leak onto other variants.
	if item.Variant != model.VariantParadigm {
		item.Theory = ""
		item.Foundations = nil
	}

	var created model.Item
	if _, err := d.do(ctx, http.MethodPost, "/v1/quotes", item, &created); err != nil {
		return model.Item{}, err
	}
	logging.Debug("docstore: created item", "id", created.ID, "variant", created.Variant)
	return created, nil
}

func (d *DocStore) Update(ctx context.Context, id, callerID string, patch Patch, callerEmail string) (model.Item, error) {
	current, err := d.get(ctx, id)
	if err != nil {
		return model.Item{}, err
	}
	if !canMutate(current, callerID, callerEmail, d.adminDomain) {
		return model.Item{}, &AuthorizationError{Action: "edit"}
	}

	updated := applyPatch(current, patch)
	var out model.Item
	if _, err := d.do(ctx, http.MethodPut, "/v1/quotes/"+id, updated, &out); err != nil {
		return model.Item{}, err
	}
	return out, nil
}

func (d *DocStore) Remove(ctx context.Context, id, callerID, callerEmail string) error {
	current, err := d.get(ctx, id)
	if err != nil {
		return err
	}
	if !canMutate(current, callerID, callerEmail, d.adminDomain) {
		return &AuthorizationError{Action: "delete"}
	}

	_, err = d.do(ctx, http.MethodDelete, "/v1/quotes/"+id, nil, nil)
	return err
}

func (d *DocStore) ClearAllFor(ctx context.Context, userID string) error {
	owned, err := d.ListOwnedBy(ctx, userID)
	if err != nil {
		return err
	}
	for _, it := range owned {
		if _, err := d.do(ctx, http.MethodDelete, "/v1/quotes/"+it.ID, nil, nil); err != nil {
			return err
		}
	}
	logging.Info("docstore: cleared user data", "user", userID, "items", len(owned))
	return nil
}

func (d *DocStore) DistinctAuthors(ctx context.Context, userID string) ([]string, error) {
	// Wider scan than the feed read so suggestion lists see more history.
	items, err := d.scan(ctx, d.limit*2)
	if err != nil {
		return nil, err
	}
	return distinctAuthors(visibleTo(items, userID, true)), nil
}

func (d *DocStore) DistinctTags(ctx context.Context, userID string) ([]string, error) {
	items, err := d.scan(ctx, d.limit*2)
	if err != nil {
		return nil, err
	}
	return distinctTags(visibleTo(items, userID, true)), nil
}

// Verify DocStore implements Repository at compile time.
var _ Repository = (*DocStore)(nil)
