// Package printer hands the printable page to the host browser, whose print
// dialog opens once the page loads.
package printer

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"

	"github.com/julianstephens/workplan/internal/constants"
	"github.com/julianstephens/workplan/internal/logger"
	"github.com/julianstephens/workplan/internal/models"
	"github.com/julianstephens/workplan/internal/render"
)

// Printer writes the page to disk and launches an opener for it
type Printer struct {
	opener    []string
	outputDir string
	goos      string
	start     func(cmd *exec.Cmd) error
}

type Option func(*Printer)

// WithOpener replaces the platform opener. The file path is appended to cmd.
func WithOpener(cmd []string) Option {
	return func(p *Printer) {
		if len(cmd) > 0 {
			p.opener = append([]string(nil), cmd...)
		}
	}
}

// WithOutputDir sets where pages are written. Empty means the temp directory.
func WithOutputDir(dir string) Option {
	return func(p *Printer) { p.outputDir = dir }
}

// WithStarter replaces how the opener process is launched
func WithStarter(start func(cmd *exec.Cmd) error) Option {
	return func(p *Printer) { p.start = start }
}

func withGOOS(goos string) Option {
	return func(p *Printer) { p.goos = goos }
}

func New(opts ...Option) *Printer {
	p := &Printer{
		goos:  runtime.GOOS,
		start: startDetached,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Print writes plan as an auto-printing page and opens it. It returns the
// path of the written file and does not wait for the opener to exit.
func (p *Printer) Print(plan models.Plan) (string, error) {
	path, err := p.write(plan)
	if err != nil {
		return "", err
	}

	cmd := p.command(path)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	if err := p.start(cmd); err != nil {
		return path, fmt.Errorf("failed to open %s: %w", path, err)
	}
	logger.Debug("Opened printable page", "path", path, "opener", cmd.Args[0])
	return path, nil
}

func (p *Printer) write(plan models.Plan) (string, error) {
	dir := p.outputDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create print directory: %w", err)
	}

	path := filepath.Join(dir, constants.PrintFilePrefix+uuid.New().String()+".html")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create print file: %w", err)
	}
	if err := render.HTML(f, plan, render.HTMLOptions{AutoPrint: true}); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write print file: %w", err)
	}
	return path, nil
}

func (p *Printer) command(path string) *exec.Cmd {
	if len(p.opener) > 0 {
		return exec.Command(p.opener[0], append(p.opener[1:], path)...)
	}
	switch p.goos {
	case "darwin":
		return exec.Command("open", path)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		return exec.Command("xdg-open", path)
	}
}

// startDetached starts cmd and reaps it in the background
func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
