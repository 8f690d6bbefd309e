package backups

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/workplan/internal/backup"
	"github.com/julianstephens/workplan/internal/cli"
	"github.com/julianstephens/workplan/internal/constants"
	"github.com/julianstephens/workplan/internal/logger"
	"github.com/julianstephens/workplan/internal/plan"
)

func manager(ctx *cli.Context) (*backup.Manager, error) {
	path := ctx.Provider.GetConfigPath()
	kind, err := backup.KindFor(path)
	if err != nil {
		return nil, err
	}
	return backup.NewManager(path, kind), nil
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	path, err := mgr.Create()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	ctx.Printf("Backup created: %s\n", filepath.Base(path))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		ctx.Printf("No backups found.\n")
		ctx.Printf("Backups are stored in: %s\n", mgr.Dir())
		return nil
	}

	ctx.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		ctx.Printf("  %s  %s  (%.1f KB)\n",
			b.Timestamp.Format("2006-01-02 15:04:05"),
			filepath.Base(b.Path),
			float64(b.Size)/1024.0,
		)
	}
	ctx.Printf("\nBackup directory: %s\n", mgr.Dir())
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Restore without asking for confirmation."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}

	path, err := resolveBackupPath(c.BackupFile, mgr.Dir())
	if err != nil {
		return err
	}

	ctx.Printf("This will replace your current plan with: %s\n", path)
	ctx.Printf("Stop any running workplan TUI or server first. The current store is backed up before restoring.\n")
	confirm := ctx.Confirmer()
	if c.Yes {
		confirm = plan.Always
	}
	if !confirm.Confirm("Restore this backup?") {
		ctx.Printf("Restore cancelled.\n")
		return nil
	}

	// Release the store before its file is replaced
	if err := ctx.Provider.Close(); err != nil {
		logger.Warn("Failed to close store before restore", "error", err)
	}

	if err := mgr.Restore(path); err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}
	ctx.Printf("Plan restored from %s\n", filepath.Base(path))
	return nil
}

// resolveBackupPath accepts an absolute path, a path relative to the working
// directory, or a bare file name inside the backup directory
func resolveBackupPath(name, dir string) (string, error) {
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err != nil {
			return "", fmt.Errorf("backup file not found: %s", name)
		}
		return name, nil
	}
	if _, err := os.Stat(name); err == nil {
		abs, err := filepath.Abs(name)
		if err != nil {
			return "", fmt.Errorf("failed to resolve backup path: %w", err)
		}
		return abs, nil
	}
	candidate := filepath.Join(dir, name)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", fmt.Errorf("backup file not found: tried current directory and %s", dir)
}
