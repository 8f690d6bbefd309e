package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/workplan/internal/cli"
	"github.com/julianstephens/workplan/internal/cli/actions"
	"github.com/julianstephens/workplan/internal/cli/backups"
	"github.com/julianstephens/workplan/internal/cli/system"
	"github.com/julianstephens/workplan/internal/config"
	"github.com/julianstephens/workplan/internal/constants"
	"github.com/julianstephens/workplan/internal/errors"
	"github.com/julianstephens/workplan/internal/keyring"
	"github.com/julianstephens/workplan/internal/logger"
	"github.com/julianstephens/workplan/internal/plan"
	"github.com/julianstephens/workplan/internal/storage"
	"github.com/julianstephens/workplan/internal/storage/postgres"
)

// keyringStore selects the connection string saved with `workplan keyring set`
const keyringStore = "keyring"

var CLI struct {
	Version    kong.VersionFlag
	Store      string `help:"Store location: SQLite file, *.json file, :memory:, 'keyring', or a PostgreSQL connection string without a password." type:"string"`
	ConfigFile string `name:"config" help:"Path to the YAML config file." type:"path" default:"${config_file}"`
	Debug      bool   `help:"Log debug output to stderr."`

	Init   system.InitCmd    `cmd:"" help:"Initialize workplan storage."`
	Tui    system.TuiCmd     `cmd:"" help:"Launch the interactive board." default:"1"`
	Show   actions.ShowCmd   `cmd:"" help:"Show the plan."`
	Add    actions.AddCmd    `cmd:"" help:"Add an action."`
	Delete actions.DeleteCmd `cmd:"" help:"Delete an action."`
	Rename actions.RenameCmd `cmd:"" help:"Rename an action."`
	Weight actions.WeightCmd `cmd:"" help:"Set the weight of a cycle."`
	Box    actions.BoxCmd    `cmd:"" help:"Mark a box."`
	Move   actions.MoveCmd   `cmd:"" help:"Reorder actions."`
	Date   actions.DateCmd   `cmd:"" help:"Show or set the plan date."`
	Print  system.PrintCmd   `cmd:"" help:"Open the printable plan in the browser."`
	Serve  system.ServeCmd   `cmd:"" help:"Serve the printable plan over HTTP."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage store backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Save a PostgreSQL connection string in the OS keyring."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the saved connection string."`
	} `cmd:"" help:"Manage the stored database connection string."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Printable action plan with cycles, boxes and weight tracking"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_file": constants.DefaultConfigFile,
		},
	)

	cfg, err := config.Load(CLI.ConfigFile)
	if err != nil {
		errors.Fatal(err)
	}
	cfg.Debug = cfg.Debug || CLI.Debug

	if err := logger.Init(logger.Config{
		Debug:     cfg.Debug,
		ConfigDir: config.ExpandHome(constants.DefaultConfigDir),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	command := ctx.Command()
	location, err := resolveStore(CLI.Store, cfg.Store)
	if err != nil && !strings.HasPrefix(command, "keyring") {
		errors.Fatal(err)
	}

	provider := storage.Open(location)
	appCtx := &cli.Context{
		Provider: provider,
		Plan:     plan.New(provider),
		Config:   cfg,
	}
	appCtx.Config.Store = location

	// Init prepares the store itself; keyring commands never touch it
	if command != "init" && !strings.HasPrefix(command, "keyring") {
		if err := ensureStoreDir(location); err != nil {
			errors.Fatal(err)
		}
		if err := provider.Load(); err != nil {
			errors.Fatal(err)
		}
		appCtx.Plan.Init()
	}
	defer appCtx.Plan.Close()

	if err := ctx.Run(appCtx); err != nil {
		appCtx.Plan.Close()
		errors.Fatal(err)
	}
}

// resolveStore picks the store location: flag, then WORKPLAN_DB_CONNECTION,
// then the config file. Passwords are only accepted from the keyring or the
// environment.
func resolveStore(flag, configured string) (string, error) {
	location := strings.TrimSpace(flag)
	fromUser := location != ""
	if location == "" {
		if env := strings.TrimSpace(os.Getenv(constants.ConnectionEnvVar)); env != "" {
			return env, nil
		}
		location = configured
		fromUser = true
	}

	if location == keyringStore {
		connStr, err := keyring.GetConnectionString()
		if err != nil {
			return "", fmt.Errorf("failed to read connection string from keyring: %w", err)
		}
		return connStr, nil
	}

	if storage.IsPostgres(location) {
		if fromUser {
			if _, err := postgres.ValidateConnString(location); err != nil {
				return "", fmt.Errorf("%w; use `%s keyring set` or %s instead", err, constants.AppName, constants.ConnectionEnvVar)
			}
		}
		return location, nil
	}

	if location == storage.MemoryLocation {
		return location, nil
	}
	return config.ExpandHome(location), nil
}

func ensureStoreDir(location string) error {
	if location == storage.MemoryLocation || storage.IsPostgres(location) {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(location), 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	return nil
}
