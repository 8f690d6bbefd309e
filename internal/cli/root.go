package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/workplan/internal/backup"
	"github.com/julianstephens/workplan/internal/config"
	"github.com/julianstephens/workplan/internal/logger"
	"github.com/julianstephens/workplan/internal/models"
	"github.com/julianstephens/workplan/internal/plan"
	"github.com/julianstephens/workplan/internal/storage"
)

type Context struct {
	Provider storage.Provider
	Plan     *plan.Store
	Config   config.Config

	// Out receives command output; nil means stdout
	Out io.Writer
	// Confirm answers destructive prompts; nil means an interactive huh prompt
	Confirm plan.Confirmer
}

func (c *Context) Printf(format string, args ...any) {
	out := c.Out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintf(out, format, args...)
}

// Confirmer returns the prompt used before destructive commands
func (c *Context) Confirmer() plan.Confirmer {
	if c.Confirm != nil {
		return c.Confirm
	}
	return HuhConfirmer{}
}

// HuhConfirmer asks on the terminal with a huh confirm field
type HuhConfirmer struct{}

func (HuhConfirmer) Confirm(prompt string) bool {
	var ok bool
	err := huh.NewConfirm().
		Title(prompt).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		WithTheme(huh.ThemeDracula()).
		Run()
	if err != nil {
		logger.Debug("Confirmation aborted", "error", err)
		return false
	}
	return ok
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	kind, err := backup.KindFor(c.Provider.GetConfigPath())
	if err != nil {
		logger.Debug("Skipping automatic backup", "store", c.Provider.GetConfigPath(), "reason", err)
		return
	}
	if _, err := backup.NewManager(c.Provider.GetConfigPath(), kind).Create(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ErrActionNotFound is returned when a command names an id that is not in the plan
var ErrActionNotFound = errors.New("action not found")

// FindAction looks up an action by id for commands that report on it
func (c *Context) FindAction(id int64) (models.Action, error) {
	a, ok := c.Plan.Action(id)
	if !ok {
		return models.Action{}, fmt.Errorf("%w: %d", ErrActionNotFound, id)
	}
	return a, nil
}
