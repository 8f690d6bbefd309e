package constants

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// SessionState represents the current state of the TUI application
type SessionState int

// ConfirmationMsg is a message to trigger a confirmation dialog
type ConfirmationMsg struct {
	Message string
	Action  func() tea.Cmd
}

const (
	AppName            = "workplan"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/workplan"
	DefaultStorePath   = "~/.config/workplan/workplan.db"
	DefaultConfigFile  = "~/.config/workplan/config.yaml"
	ConnectionEnvVar   = "WORKPLAN_DB_CONNECTION"
	Version            = "v0.1.0"

	// Storage keys for the persisted plan
	ActionsKey = "workplan.actions"
	DateKey    = "workplan.date"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "workplan-"

	// Print constants
	PrintFilePrefix  = "workplan-print-"
	DefaultServeAddr = "127.0.0.1:8737"

	// FlashDuration is how long the add dialog shows its error border
	FlashDuration = 2 * time.Second

	DeleteActionPrompt = "Are you sure you want to delete this action?"
	BoxToggleHint      = "Boxes are for marking by hand after printing."
)

const (
	StateBoard SessionState = iota
	StateAddAction
	StateRename
	StateWeight
	StateDate
	StateConfirmation
)
