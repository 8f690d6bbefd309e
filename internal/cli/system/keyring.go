package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/workplan/internal/cli"
	"github.com/julianstephens/workplan/internal/keyring"
	"github.com/julianstephens/workplan/internal/storage"
	"github.com/julianstephens/workplan/internal/storage/postgres"
)

// KeyringSetCmd stores the PostgreSQL connection string in the OS keyring
type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in keyring."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	if !storage.IsPostgres(cmd.ConnectionString) {
		return errors.New("connection string must start with postgres:// or postgresql://")
	}

	if _, err := postgres.ValidateConnString(cmd.ConnectionString); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		// The keyring is encrypted, so a password is acceptable here
		ctx.Printf("Warning: connection string contains a password. It will be stored in the OS keyring.\n")
	}

	if err := keyring.SetConnectionString(cmd.ConnectionString); err != nil {
		return fmt.Errorf("failed to store connection string: %w", err)
	}
	ctx.Printf("Connection string stored in OS keyring.\n")
	ctx.Printf("Use --store keyring (or store: keyring in the config file) to connect with it.\n")
	return nil
}

// KeyringDeleteCmd removes the stored connection string
type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			ctx.Printf("No connection string stored in OS keyring.\n")
			return nil
		}
		return fmt.Errorf("failed to delete connection string: %w", err)
	}
	ctx.Printf("Connection string removed from OS keyring.\n")
	return nil
}
