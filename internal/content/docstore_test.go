package content

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"quoteswipe/internal/model"
)

// fakeService is a minimal in-process document service.
type fakeService struct {
	mu   sync.Mutex
	docs map[string]model.Item
}

func (f *fakeService) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/quotes", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		switch r.Method {
		case http.MethodGet:
			out := documentsResponse{Documents: []model.Item{}}
			for _, it := range f.docs {
				out.Documents = append(out.Documents, it)
			}
			json.NewEncoder(w).Encode(out)
		case http.MethodPost:
			var it model.Item
			json.NewDecoder(r.Body).Decode(&it)
			f.docs[it.ID] = it
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(it)
		}
	})
	mux.HandleFunc("/v1/quotes/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/v1/quotes/")
		f.mu.Lock()
		defer f.mu.Unlock()
		it, ok := f.docs[id]
		if !ok {
			http.NotFound(w, r)
			return
		}
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(it)
		case http.MethodPut:
			var upd model.Item
			json.NewDecoder(r.Body).Decode(&upd)
			f.docs[id] = upd
			json.NewEncoder(w).Encode(upd)
		case http.MethodDelete:
			delete(f.docs, id)
			w.WriteHeader(http.StatusNoContent)
		}
	})
	return mux
}

func newDocStoreTest(t *testing.T, seed ...model.Item) (*DocStore, *fakeService) {
	t.Helper()
	svc := &fakeService{docs: map[string]model.Item{}}
	for _, it := range seed {
		svc.docs[it.ID] = it
	}
	srv := httptest.NewServer(svc.handler())
	t.Cleanup(srv.Close)
	return NewDocStore(DocStoreConfig{Endpoint: srv.URL, APIKey: "test-key"}), svc
}

func TestDocStoreListVisible(t *testing.T) {
	ds, _ := newDocStoreTest(t, testItems()...)

	anon, err := ds.ListVisible(context.Background(), "", true)
	if err != nil {
		t.Fatalf("ListVisible failed: %v", err)
	}
	if len(anon) != 2 {
		t.Fatalf("anonymous got %d items, want 2", len(anon))
	}

	mine, err := ds.ListVisible(context.Background(), "u1", true)
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 3 {
		t.Fatalf("u1 got %d items, want 3", len(mine))
	}
}

func TestDocStoreCreateRoundTrip(t *testing.T) {
	ds, svc := newDocStoreTest(t)

	created, err := ds.Create(context.Background(), model.Item{
		Text:   "fresh",
		Moods:  []string{"excited"},
		Public: true,
		// Paradigm leftovers must be stripped from a quote.
		Theory:      "should vanish",
		Foundations: []model.Foundation{{Title: "nope"}},
	}, "u1")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == "" {
		t.Error("no ID assigned")
	}
	if created.Theory != "" || created.Foundations != nil {
		t.Error("paradigm fields leaked onto a quote variant")
	}

	svc.mu.Lock()
	stored, ok := svc.docs[created.ID]
	svc.mu.Unlock()
	if !ok {
		t.Fatal("document not stored server-side")
	}
	if stored.UserID != "u1" {
		t.Errorf("stored owner = %q", stored.UserID)
	}
}

func TestDocStoreUpdateAuthorization(t *testing.T) {
	ds, _ := newDocStoreTest(t, model.Item{
		ID: "sys1", Text: "system quote", UserID: model.SystemUser, Public: true,
		CreatedAt: time.Now(),
	})
	text := "hacked"

	var authErr *AuthorizationError
	_, err := ds.Update(context.Background(), "sys1", "u1", Patch{Text: &text}, "u1@example.com")
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthorizationError, got %v", err)
	}

	// Unchanged after the denial.
	got, err := ds.get(context.Background(), "sys1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Text != "system quote" {
		t.Errorf("denied edit mutated the document: %q", got.Text)
	}

	// Trusted-domain caller succeeds.
	upd, err := ds.Update(context.Background(), "sys1", "u1", Patch{Text: &text}, "admin@gmail.com")
	if err != nil {
		t.Fatalf("trusted edit failed: %v", err)
	}
	if upd.Text != "hacked" {
		t.Errorf("Text = %q", upd.Text)
	}
}

func TestDocStoreRemoveNotFound(t *testing.T) {
	ds, _ := newDocStoreTest(t)
	err := ds.Remove(context.Background(), "ghost", "u1", "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDocStoreUnreachable(t *testing.T) {
	ds := NewDocStore(DocStoreConfig{Endpoint: "http://127.0.0.1:1"})
	ds.client.Timeout = 500 * time.Millisecond

	if _, err := ds.ListVisible(context.Background(), "", true); err == nil {
		t.Fatal("expected error from unreachable service")
	}
}

func TestDocStoreSendsBearer(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(documentsResponse{})
	}))
	defer srv.Close()

	ds := NewDocStore(DocStoreConfig{Endpoint: srv.URL, APIKey: "secret"})
	if _, err := ds.ListVisible(context.Background(), "", true); err != nil {
		t.Fatal(err)
	}
	if got != "Bearer secret" {
		t.Errorf("Authorization = %q", got)
	}
}
