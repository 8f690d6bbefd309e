// Package backup keeps rotating copies of a file-backed plan store.
package backup

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/workplan/internal/constants"
	"github.com/julianstephens/workplan/internal/logger"
)

const timestampFormat = "20060102-150405"

// ErrUnsupported is returned for stores that are not a local file
var ErrUnsupported = errors.New("backups are only supported for SQLite and JSON stores")

// Kind is the file format of the store being backed up
type Kind int

const (
	KindSQLite Kind = iota
	KindJSON
)

func (k Kind) suffix() string {
	if k == KindJSON {
		return ".json"
	}
	return ".db"
}

// KindFor picks the backup kind from a store location
func KindFor(location string) (Kind, error) {
	lower := strings.ToLower(location)
	switch {
	case location == "" || location == ":memory:",
		strings.HasPrefix(lower, "postgres://"),
		strings.HasPrefix(lower, "postgresql://"):
		return 0, ErrUnsupported
	case strings.HasSuffix(lower, ".json"):
		return KindJSON, nil
	default:
		return KindSQLite, nil
	}
}

// Info describes one backup file
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager creates, lists, rotates and restores backups of one store file
type Manager struct {
	storePath string
	backupDir string
	kind      Kind
	now       func() time.Time
}

// NewManager returns a manager keeping backups next to the store, in a
// "backups" directory
func NewManager(storePath string, kind Kind) *Manager {
	return &Manager{
		storePath: storePath,
		backupDir: filepath.Join(filepath.Dir(storePath), constants.BackupDirName),
		kind:      kind,
		now:       time.Now,
	}
}

// Dir returns the backup directory
func (m *Manager) Dir() string {
	return m.backupDir
}

// Create copies the store into a new timestamped backup and rotates old ones
func (m *Manager) Create() (string, error) {
	path, err := m.create()
	if err != nil {
		return "", err
	}
	if err := m.rotate(); err != nil {
		logger.Warn("Failed to rotate old backups", "dir", m.backupDir, "error", err)
	}
	return path, nil
}

func (m *Manager) create() (string, error) {
	if _, err := os.Stat(m.storePath); err != nil {
		return "", fmt.Errorf("store does not exist: %s", m.storePath)
	}
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	path, err := m.nextPath()
	if err != nil {
		return "", err
	}

	switch m.kind {
	case KindSQLite:
		err = vacuumInto(m.storePath, path)
	default:
		err = copyFile(m.storePath, path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to back up store: %w", err)
	}
	logger.Debug("Created backup", "path", path)
	return path, nil
}

// nextPath returns an unused name, adding a counter when two backups share a second
func (m *Manager) nextPath() (string, error) {
	stamp := m.now().Format(timestampFormat)
	base := constants.BackupFilePrefix + stamp
	path := filepath.Join(m.backupDir, base+m.kind.suffix())
	for n := 1; ; n++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		if n > 100 {
			return "", errors.New("failed to generate unique backup filename")
		}
		path = filepath.Join(m.backupDir, base+"-"+strconv.Itoa(n)+m.kind.suffix())
	}
}

// List returns the backups, newest first
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Info{}, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []Info{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ts, counter, ok := m.parseName(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Path:      filepath.Join(m.backupDir, entry.Name()),
			Timestamp: ts.Add(time.Duration(counter)),
			Size:      info.Size(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// parseName reads the timestamp and optional counter out of a backup file name
func (m *Manager) parseName(name string) (time.Time, int, bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, m.kind.suffix()) {
		return time.Time{}, 0, false
	}
	rest := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), m.kind.suffix())

	counter := 0
	if len(rest) > len(timestampFormat) && rest[len(timestampFormat)] == '-' {
		n, err := strconv.Atoi(rest[len(timestampFormat)+1:])
		if err != nil {
			return time.Time{}, 0, false
		}
		counter = n
		rest = rest[:len(timestampFormat)]
	}

	ts, err := time.ParseInLocation(timestampFormat, rest, time.Local)
	if err != nil {
		return time.Time{}, 0, false
	}
	return ts, counter, true
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	for _, b := range backups[min(len(backups), constants.MaxBackups):] {
		if err := os.Remove(b.Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", b.Path, err)
		}
	}
	return nil
}

// Restore replaces the store with the backup at path. The current store is
// backed up first, outside rotation.
func (m *Manager) Restore(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("backup file does not exist: %s", path)
	}
	if err := m.verify(path); err != nil {
		return fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	if _, err := os.Stat(m.storePath); err == nil {
		current, err := m.create()
		if err != nil {
			return fmt.Errorf("failed to back up current store before restore: %w", err)
		}
		logger.Info("Backed up current store before restore", "path", current)
	}

	tmp := m.storePath + ".restore.tmp"
	if err := copyFile(path, tmp); err != nil {
		return fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tmp, m.storePath); err != nil {
		if rmErr := os.Remove(tmp); rmErr != nil {
			logger.Warn("Failed to remove temporary file", "path", tmp, "error", rmErr)
		}
		return fmt.Errorf("failed to restore store: %w", err)
	}
	return nil
}

func (m *Manager) verify(path string) error {
	if m.kind == KindJSON {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if !json.Valid(data) {
			return errors.New("not a JSON document")
		}
		return nil
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()
	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

// vacuumInto writes a compacted copy of the SQLite database at src to dst,
// falling back to a plain copy when VACUUM INTO is unavailable
func vacuumInto(src, dst string) error {
	db, err := sql.Open("sqlite", src+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}
	if _, err := db.Exec("VACUUM INTO ?", dst); err != nil {
		logger.Debug("VACUUM INTO failed, copying file instead", "error", err)
		return copyFile(src, dst)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
