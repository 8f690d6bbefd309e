package printer

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/julianstephens/workplan/internal/constants"
	"github.com/julianstephens/workplan/internal/models"
)

func samplePlan() models.Plan {
	return models.Plan{
		Actions:  models.DefaultActions(1),
		PlanDate: "2026-10-19",
	}
}

func TestPrintWritesPageAndStartsOpener(t *testing.T) {
	dir := t.TempDir()
	var started []string
	p := New(
		WithOutputDir(dir),
		WithStarter(func(cmd *exec.Cmd) error {
			started = cmd.Args
			return nil
		}),
		withGOOS("linux"),
	)

	path, err := p.Print(samplePlan())
	if err != nil {
		t.Fatalf("Print failed: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("expected file in %s, got %s", dir, path)
	}
	if !strings.HasPrefix(filepath.Base(path), constants.PrintFilePrefix) || filepath.Ext(path) != ".html" {
		t.Errorf("unexpected file name %s", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "window.print()") {
		t.Error("expected auto-print trigger in page")
	}
	if !strings.Contains(string(data), "Meals before 18:00") {
		t.Error("expected actions in page")
	}

	if want := []string{"xdg-open", path}; !reflect.DeepEqual(started, want) {
		t.Errorf("expected %v, got %v", want, started)
	}
}

func TestPrintUniqueNames(t *testing.T) {
	dir := t.TempDir()
	p := New(WithOutputDir(dir), WithStarter(func(*exec.Cmd) error { return nil }))
	a, err := p.Print(samplePlan())
	if err != nil {
		t.Fatal(err)
	}
	b, err := p.Print(samplePlan())
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Errorf("expected distinct files, both %s", a)
	}
}

func TestOpenerCommand(t *testing.T) {
	tests := []struct {
		name   string
		goos   string
		opener []string
		want   []string
	}{
		{"linux", "linux", nil, []string{"xdg-open", "/tmp/p.html"}},
		{"mac", "darwin", nil, []string{"open", "/tmp/p.html"}},
		{"windows", "windows", nil, []string{"rundll32", "url.dll,FileProtocolHandler", "/tmp/p.html"}},
		{"configured", "linux", []string{"firefox", "--new-window"}, []string{"firefox", "--new-window", "/tmp/p.html"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(withGOOS(tt.goos), WithOpener(tt.opener))
			cmd := p.command("/tmp/p.html")
			if !reflect.DeepEqual(cmd.Args, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, cmd.Args)
			}
		})
	}
}

func TestPrintOpenerFailure(t *testing.T) {
	p := New(
		WithOutputDir(t.TempDir()),
		WithStarter(func(*exec.Cmd) error { return errors.New("no browser") }),
	)
	path, err := p.Print(samplePlan())
	if err == nil {
		t.Fatal("expected error when opener cannot start")
	}
	if _, statErr := os.Stat(path); statErr != nil {
		t.Errorf("expected page to remain on disk: %v", statErr)
	}
}
