package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/claude/gymmate/internal/metrics"
	"github.com/claude/gymmate/internal/models"
	"github.com/claude/gymmate/internal/profile"
	"github.com/claude/gymmate/internal/registry"
	"github.com/claude/gymmate/internal/server"
	"github.com/claude/gymmate/internal/storage"
)

// newTestServer creates an httptest server that routes requests to handler functions
// keyed by method and path. Verifies the HTTP client sends correct requests.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.Method+" "+r.URL.Path]
		if !ok {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatal(err)
	}
}

// TestSetProgressRequest verifies the client sends the body and API key and
// decodes the updated program.
func TestSetProgressRequest(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"PUT /api/v1/programs/3/progress": func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("X-API-Key"); got != "k" {
				t.Errorf("X-API-Key = %q, want k", got)
			}
			var body struct {
				Progress float64 `json:"progress"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			if body.Progress != 0.4 {
				t.Errorf("progress = %v, want 0.4", body.Progress)
			}
			writeTestJSON(t, w, http.StatusOK, models.Program{ID: 3, Day: "Wednesday", Muscle: "Shoulder", Progress: 0.4})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL+"/", "k")
	p, err := client.SetProgress(context.Background(), 3, 0.4)
	if err != nil {
		t.Fatal(err)
	}
	if p.Progress != 0.4 {
		t.Errorf("progress = %v, want 0.4", p.Progress)
	}
}

// TestReadsOmitAPIKey verifies GET requests do not carry the key.
func TestReadsOmitAPIKey(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/profile": func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("X-API-Key"); got != "" {
				t.Errorf("X-API-Key = %q, want empty", got)
			}
			writeTestJSON(t, w, http.StatusOK, models.GuestProfile())
		},
	})
	defer ts.Close()

	p, err := NewHTTPClient(ts.URL, "k").GetProfile(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Guest" {
		t.Errorf("name = %q, want Guest", p.Name)
	}
}

// TestErrorMapping verifies status codes come back as the store sentinel errors.
func TestErrorMapping(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"DELETE /api/v1/programs/9": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, http.StatusNotFound, map[string]string{"error": "program not found"})
		},
		"POST /api/v1/programs": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, http.StatusBadRequest, map[string]string{"error": "day is required"})
		},
		"PATCH /api/v1/profile": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		},
		"GET /api/v1/programs": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, http.StatusInternalServerError, map[string]string{"error": "boom"})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "")
	ctx := context.Background()

	if err := client.DeleteProgram(ctx, 9); !errors.Is(err, registry.ErrNotFound) {
		t.Errorf("delete err = %v, want ErrNotFound", err)
	}
	if _, err := client.AddProgram(ctx, "", "Arms"); !errors.Is(err, registry.ErrInvalidInput) {
		t.Errorf("add err = %v, want registry.ErrInvalidInput", err)
	}
	if _, err := client.UpdateProfile(ctx, "", ""); !errors.Is(err, profile.ErrInvalidInput) {
		t.Errorf("update profile err = %v, want profile.ErrInvalidInput", err)
	}
	if _, err := client.ListPrograms(ctx); err == nil {
		t.Error("list err = nil, want error on 500")
	}
}

// TestHTTPClientAgainstServer runs every DataSource method against the real API.
func TestHTTPClientAgainstServer(t *testing.T) {
	db, err := storage.Open(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := registry.NewSeeded()
	srv := server.New(reg, profile.New(), db, metrics.NewTestManager(), server.Options{APIKey: "secret"}, log)
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "secret")
	ctx := context.Background()

	added, err := client.AddProgram(ctx, "Sunday", "Arms")
	if err != nil {
		t.Fatalf("AddProgram: %v", err)
	}
	if added.ID != 7 {
		t.Errorf("added id = %d, want 7", added.ID)
	}
	if _, err := client.UpdateProgram(ctx, 7, "Sunday", "Core"); err != nil {
		t.Fatalf("UpdateProgram: %v", err)
	}
	if _, err := client.SetProgress(ctx, 7, 1); err != nil {
		t.Fatalf("SetProgress: %v", err)
	}
	got, err := client.GetProgram(ctx, 7)
	if err != nil {
		t.Fatalf("GetProgram: %v", err)
	}
	if want := (models.Program{ID: 7, Day: "Sunday", Muscle: "Core", Progress: 1}); got != want {
		t.Errorf("program = %+v, want %+v", got, want)
	}
	if err := client.DeleteProgram(ctx, 7); err != nil {
		t.Fatalf("DeleteProgram: %v", err)
	}
	programs, err := client.ListPrograms(ctx)
	if err != nil {
		t.Fatalf("ListPrograms: %v", err)
	}
	if len(programs) != 6 {
		t.Errorf("got %d programs, want 6", len(programs))
	}
	p, err := client.UpdateProfile(ctx, "Ana", "28")
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if p.Name != "Ana" {
		t.Errorf("name = %q, want Ana", p.Name)
	}

	if _, err := NewHTTPClient(ts.URL, "").AddProgram(ctx, "Sunday", "Arms"); err == nil {
		t.Error("AddProgram without key succeeded, want error")
	}
}
