package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/workplan/internal/storage/postgres"
	"github.com/julianstephens/workplan/internal/storage/sqlite"
)

func setupProviders(t *testing.T) map[string]Provider {
	t.Helper()
	dir := t.TempDir()
	return map[string]Provider{
		"sqlite": sqlite.NewStore(filepath.Join(dir, "test.db")),
		"json":   NewJSONStore(filepath.Join(dir, "test.json")),
		"memory": NewMemoryStore(),
	}
}

func TestProviderRoundTrip(t *testing.T) {
	for name, p := range setupProviders(t) {
		t.Run(name, func(t *testing.T) {
			if err := p.Init(); err != nil {
				t.Fatalf("init failed: %v", err)
			}
			defer p.Close()

			if _, ok, err := p.Get("workplan.actions"); err != nil || ok {
				t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
			}

			if err := p.Set("workplan.actions", `[{"id":1}]`); err != nil {
				t.Fatalf("set failed: %v", err)
			}
			if err := p.Set("workplan.actions", `[{"id":2}]`); err != nil {
				t.Fatalf("overwrite failed: %v", err)
			}
			if err := p.Set("workplan.date", ""); err != nil {
				t.Fatalf("set empty value failed: %v", err)
			}

			v, ok, err := p.Get("workplan.actions")
			if err != nil || !ok {
				t.Fatalf("expected key present, got ok=%v err=%v", ok, err)
			}
			if v != `[{"id":2}]` {
				t.Errorf("expected overwritten value, got %q", v)
			}

			v, ok, err = p.Get("workplan.date")
			if err != nil || !ok || v != "" {
				t.Errorf("expected present empty value, got %q ok=%v err=%v", v, ok, err)
			}
		})
	}
}

func TestFileProvidersPersistAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		open func() Provider
	}{
		{"sqlite", func() Provider { return sqlite.NewStore(filepath.Join(dir, "reopen.db")) }},
		{"json", func() Provider { return NewJSONStore(filepath.Join(dir, "reopen.json")) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := tt.open()
			if err := first.Init(); err != nil {
				t.Fatalf("init failed: %v", err)
			}
			if err := first.Set("workplan.date", "2026-03-01"); err != nil {
				t.Fatalf("set failed: %v", err)
			}
			first.Close()

			second := tt.open()
			if err := second.Load(); err != nil {
				t.Fatalf("load failed: %v", err)
			}
			defer second.Close()
			v, ok, err := second.Get("workplan.date")
			if err != nil || !ok || v != "2026-03-01" {
				t.Errorf("expected persisted date, got %q ok=%v err=%v", v, ok, err)
			}
		})
	}
}

func TestLoadUninitialized(t *testing.T) {
	dir := t.TempDir()
	for name, p := range map[string]Provider{
		"sqlite": sqlite.NewStore(filepath.Join(dir, "missing.db")),
		"json":   NewJSONStore(filepath.Join(dir, "missing.json")),
	} {
		t.Run(name, func(t *testing.T) {
			if err := p.Load(); err == nil {
				t.Error("expected error loading uninitialized storage")
			}
		})
	}
}

func TestJSONStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := NewJSONStore(path).Load(); err == nil {
		t.Error("expected parse error")
	}
}

func TestJSONStoreFailedWriteKeepsOldValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	s := NewJSONStore(path)
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("a", "1"); err != nil {
		t.Fatal(err)
	}

	// A directory where the temp file goes makes every save fail
	if err := os.Mkdir(path+".tmp", 0700); err != nil {
		t.Fatal(err)
	}

	if err := s.Set("a", "2"); err == nil {
		t.Fatal("expected write error")
	}
	if err := s.Set("b", "x"); err == nil {
		t.Fatal("expected write error")
	}

	if v, ok, _ := s.Get("a"); !ok || v != "1" {
		t.Errorf("expected persisted value 1, got %q (ok=%v)", v, ok)
	}
	if _, ok, _ := s.Get("b"); ok {
		t.Error("expected unsaved key to be absent")
	}
}

func TestMemoryStoreQuota(t *testing.T) {
	s := NewMemoryStore().WithQuota(20)
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("a", "12345"); err != nil {
		t.Fatalf("expected write within quota, got %v", err)
	}
	err := s.Set("b", "this value is far too long")
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}
	if _, ok, _ := s.Get("b"); ok {
		t.Error("rejected write must not be stored")
	}
	// Replacing a key only counts the new value
	if err := s.Set("a", "1234567890123456789"); err != nil {
		t.Errorf("expected overwrite within quota, got %v", err)
	}
}

func TestMemoryStoreNotLoaded(t *testing.T) {
	s := NewMemoryStore()
	if err := s.Set("k", "v"); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("expected ErrNotLoaded, got %v", err)
	}
}

func TestOpen(t *testing.T) {
	tests := []struct {
		location string
		check    func(Provider) bool
	}{
		{"/tmp/plan.db", func(p Provider) bool { _, ok := p.(*sqlite.Store); return ok }},
		{"/tmp/plan.JSON", func(p Provider) bool { _, ok := p.(*JSONStore); return ok }},
		{":memory:", func(p Provider) bool { _, ok := p.(*MemoryStore); return ok }},
		{"postgresql://alice@localhost/db", func(p Provider) bool { _, ok := p.(*postgres.Store); return ok }},
	}

	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			if !tt.check(Open(tt.location)) {
				t.Errorf("unexpected provider type for %s", tt.location)
			}
		})
	}
}
