package backup

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/workplan/internal/constants"
	"github.com/julianstephens/workplan/internal/storage"
	"github.com/julianstephens/workplan/internal/storage/sqlite"
)

// setupSQLiteStore creates an initialized store holding one value
func setupSQLiteStore(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "workplan.db")
	store := sqlite.NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	if err := store.Set(constants.DateKey, "before"); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

// steppingClock advances one second per call
func steppingClock() func() time.Time {
	t := time.Date(2026, 10, 19, 8, 0, 0, 0, time.Local)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func readDate(t *testing.T, path string) string {
	t.Helper()
	store := sqlite.NewStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("failed to load store: %v", err)
	}
	defer store.Close()
	v, _, err := store.Get(constants.DateKey)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestKindFor(t *testing.T) {
	tests := []struct {
		location string
		want     Kind
		wantErr  bool
	}{
		{"/home/u/.config/workplan/workplan.db", KindSQLite, false},
		{"/tmp/plan.JSON", KindJSON, false},
		{":memory:", 0, true},
		{"postgres://localhost/workplan", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := KindFor(tt.location)
		if (err != nil) != tt.wantErr {
			t.Errorf("KindFor(%q) error = %v", tt.location, err)
			continue
		}
		if tt.wantErr && !errors.Is(err, ErrUnsupported) {
			t.Errorf("KindFor(%q) expected ErrUnsupported, got %v", tt.location, err)
		}
		if got != tt.want {
			t.Errorf("KindFor(%q) = %v, want %v", tt.location, got, tt.want)
		}
	}
}

func TestCreateAndList(t *testing.T) {
	path := setupSQLiteStore(t)
	m := NewManager(path, KindSQLite)
	m.now = steppingClock()

	first, err := m.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second, err := m.Create()
	if err != nil {
		t.Fatal(err)
	}

	backups, err := m.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 2 {
		t.Fatalf("expected 2 backups, got %d", len(backups))
	}
	if backups[0].Path != second || backups[1].Path != first {
		t.Errorf("expected newest first, got %v", backups)
	}
	if readDate(t, first) != "before" {
		t.Error("backup does not hold the store contents")
	}
}

func TestCreateSameSecond(t *testing.T) {
	path := setupSQLiteStore(t)
	m := NewManager(path, KindSQLite)
	fixed := time.Date(2026, 10, 19, 8, 0, 0, 0, time.Local)
	m.now = func() time.Time { return fixed }

	a, err := m.Create()
	if err != nil {
		t.Fatal(err)
	}
	b, err := m.Create()
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("expected distinct backup names")
	}
	backups, _ := m.List()
	if len(backups) != 2 || backups[0].Path != b {
		t.Errorf("expected counter-suffixed backup to sort first, got %v", backups)
	}
}

func TestCreateMissingStore(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "missing.db"), KindSQLite)
	if _, err := m.Create(); err == nil {
		t.Error("expected error for missing store")
	}
}

func TestRotation(t *testing.T) {
	path := setupSQLiteStore(t)
	m := NewManager(path, KindSQLite)
	m.now = steppingClock()

	var newest string
	for i := 0; i < constants.MaxBackups+3; i++ {
		p, err := m.Create()
		if err != nil {
			t.Fatal(err)
		}
		newest = p
	}

	backups, err := m.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != constants.MaxBackups {
		t.Errorf("expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}
	if backups[0].Path != newest {
		t.Error("rotation removed the newest backup")
	}
}

func TestListIgnoresForeignFiles(t *testing.T) {
	path := setupSQLiteStore(t)
	m := NewManager(path, KindSQLite)
	if err := os.MkdirAll(m.Dir(), 0700); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"notes.txt", "workplan-garbage.db", "workplan-20261019-080000.json"} {
		if err := os.WriteFile(filepath.Join(m.Dir(), name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}
	backups, err := m.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 0 {
		t.Errorf("expected foreign files ignored, got %v", backups)
	}
}

func TestRestoreSQLite(t *testing.T) {
	path := setupSQLiteStore(t)
	m := NewManager(path, KindSQLite)
	m.now = steppingClock()

	saved, err := m.Create()
	if err != nil {
		t.Fatal(err)
	}

	store := sqlite.NewStore(path)
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	store.Set(constants.DateKey, "after")
	store.Close()

	if err := m.Restore(saved); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if got := readDate(t, path); got != "before" {
		t.Errorf("expected restored value, got %q", got)
	}

	backups, _ := m.List()
	if len(backups) != 2 {
		t.Errorf("expected pre-restore backup to be kept, got %d backups", len(backups))
	}
}

func TestRestoreRejectsInvalidBackup(t *testing.T) {
	path := setupSQLiteStore(t)
	m := NewManager(path, KindSQLite)

	bogus := filepath.Join(t.TempDir(), "bogus.db")
	if err := os.WriteFile(bogus, []byte("not a database at all, not even close"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := m.Restore(bogus); err == nil {
		t.Error("expected invalid backup to be rejected")
	}
	if err := m.Restore(filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Error("expected missing backup to be rejected")
	}
	if got := readDate(t, path); got != "before" {
		t.Errorf("store changed after rejected restore: %q", got)
	}
}

func TestJSONBackupRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	store := storage.NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	store.Set(constants.DateKey, "before")

	m := NewManager(path, KindJSON)
	m.now = steppingClock()
	saved, err := m.Create()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Ext(saved) != ".json" {
		t.Errorf("expected .json backup, got %s", saved)
	}

	store.Set(constants.DateKey, "after")
	if err := m.Restore(saved); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	reopened := storage.NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatal(err)
	}
	if v, _, _ := reopened.Get(constants.DateKey); v != "before" {
		t.Errorf("expected restored value, got %q", v)
	}
}
