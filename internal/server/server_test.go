package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/workplan/internal/constants"
	"github.com/julianstephens/workplan/internal/models"
	"github.com/julianstephens/workplan/internal/plan"
	"github.com/julianstephens/workplan/internal/storage"
)

func setupTestServer(t *testing.T) (*Server, *plan.Store) {
	t.Helper()
	mem := storage.NewMemoryStore()
	if err := mem.Init(); err != nil {
		t.Fatal(err)
	}
	store := plan.New(mem)
	store.Init()
	store.SetPlanDate("2026-10-19")

	srv, err := New(store, Config{Mode: gin.TestMode})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return srv, store
}

func get(t *testing.T, srv *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestNewRequiresStore(t *testing.T) {
	if _, err := New(nil, Config{Mode: gin.TestMode}); err == nil {
		t.Error("expected error without a store")
	}
}

func TestPage(t *testing.T) {
	srv, _ := setupTestServer(t)

	tests := []struct {
		name      string
		target    string
		wantPrint bool
	}{
		{"plain", "/", false},
		{"auto print", "/?print=1", true},
		{"other value", "/?print=yes", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, srv, tt.target)
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", w.Code)
			}
			if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
				t.Errorf("unexpected content type %q", ct)
			}
			body := w.Body.String()
			if !strings.Contains(body, "Exercise") {
				t.Error("expected seeded action in page")
			}
			if got := strings.Contains(body, "window.print()"); got != tt.wantPrint {
				t.Errorf("print trigger = %v, want %v", got, tt.wantPrint)
			}
		})
	}
}

func TestPlanJSON(t *testing.T) {
	srv, store := setupTestServer(t)
	store.AddAction("Stretch", 2, 4, false)

	w := get(t, srv, "/api/plan")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var got models.Plan
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(got.Actions) != 3 {
		t.Fatalf("expected 3 actions, got %d", len(got.Actions))
	}
	if got.Actions[2].Name != "Stretch" || len(got.Actions[2].Cycles) != 4 {
		t.Errorf("unexpected last action %+v", got.Actions[2])
	}
	if got.PlanDate != "2026-10-19" {
		t.Errorf("expected plan date, got %q", got.PlanDate)
	}
}

func TestPlanJSONEmptyList(t *testing.T) {
	srv, store := setupTestServer(t)
	for _, a := range store.Actions() {
		store.DeleteAction(a.ID, plan.Always)
	}

	w := get(t, srv, "/api/plan")
	if !strings.Contains(w.Body.String(), `"actions":[]`) {
		t.Errorf("expected empty array, got %s", w.Body.String())
	}
}

func TestViewDoesNotWriteUnsavedStore(t *testing.T) {
	mem := storage.NewMemoryStore()
	if err := mem.Init(); err != nil {
		t.Fatal(err)
	}
	srv, err := New(plan.New(mem), Config{Mode: gin.TestMode})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	for _, target := range []string{"/", "/api/plan"} {
		if w := get(t, srv, target); w.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", target, w.Code)
		}
	}
	if _, ok, _ := mem.Get(constants.ActionsKey); ok {
		t.Error("serving the plan wrote to the store")
	}
}

func TestHealth(t *testing.T) {
	srv, _ := setupTestServer(t)
	w := get(t, srv, "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "healthy" {
		t.Errorf("unexpected status %q", body["status"])
	}
}

func TestWritesAreNotRouted(t *testing.T) {
	srv, _ := setupTestServer(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader("{}"))
	srv.Handler().ServeHTTP(w, req)
	if w.Code == http.StatusOK {
		t.Error("expected POST to be rejected")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	mem := storage.NewMemoryStore()
	mem.Init()
	store := plan.New(mem)
	store.Init()
	srv, err := New(store, Config{Addr: "127.0.0.1:0", Mode: gin.TestMode})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
