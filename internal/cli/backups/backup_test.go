package backups

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/workplan/internal/cli"
	"github.com/julianstephens/workplan/internal/plan"
	"github.com/julianstephens/workplan/internal/storage"
)

func TestResolveBackupPath(t *testing.T) {
	dir := t.TempDir()
	name := "workplan-20261019-080000.db"
	full := filepath.Join(dir, name)
	if err := os.WriteFile(full, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	if got, err := resolveBackupPath(full, dir); err != nil || got != full {
		t.Errorf("absolute: got %q, %v", got, err)
	}
	if got, err := resolveBackupPath(name, dir); err != nil || got != full {
		t.Errorf("bare name: got %q, %v", got, err)
	}
	if _, err := resolveBackupPath("missing.db", dir); err == nil {
		t.Error("expected error for missing backup")
	}
	if _, err := resolveBackupPath(filepath.Join(dir, "missing.db"), dir); err == nil {
		t.Error("expected error for missing absolute path")
	}
}

func TestBackupCommandsRejectMemoryStore(t *testing.T) {
	mem := storage.NewMemoryStore()
	mem.Init()
	ctx := &cli.Context{Provider: mem, Plan: plan.New(mem)}
	if err := (&BackupCreateCmd{}).Run(ctx); err == nil {
		t.Error("expected error for in-memory store")
	}
}

func TestBackupCreateListRestoreJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	store := storage.NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	p := plan.New(store)
	p.Init()

	var out bytes.Buffer
	ctx := &cli.Context{
		Provider: store,
		Plan:     p,
		Out:      &out,
		Confirm:  plan.Always,
	}

	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "1 total") {
		t.Errorf("expected one backup listed, got %q", out.String())
	}

	entries, err := os.ReadDir(filepath.Join(filepath.Dir(path), "backups"))
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one backup file, got %v (%v)", entries, err)
	}

	p.SetPlanDate("changed")
	if err := (&BackupRestoreCmd{BackupFile: entries[0].Name()}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	reopened := storage.NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatal(err)
	}
	if v, _, _ := reopened.Get("workplan.date"); v == "changed" {
		t.Error("expected date from before the backup")
	}
}
