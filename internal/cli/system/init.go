// Package system holds setup, account and service commands.
package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/waketrack/internal/cli"
	"github.com/julianstephens/waketrack/internal/config"
	"github.com/julianstephens/waketrack/internal/storage"
)

// InitCmd writes a default config file when none exists and creates the
// storage schema. The store is not loaded beforehand for this command.
type InitCmd struct {
	Email string `help:"Sign in with this email once initialized."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if _, err := os.Stat(ctx.ConfigPath); os.IsNotExist(err) {
		if err := config.Save(ctx.ConfigPath, *ctx.Config); err != nil {
			return err
		}
		ctx.Printf("✓ Wrote config to %s\n", ctx.ConfigPath)
	} else if err != nil {
		return fmt.Errorf("failed to access config file: %w", err)
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	where := ctx.Config.Storage.Backend
	if d, ok := ctx.Store.(storage.Describer); ok {
		where = d.Describe()
	}
	ctx.Printf("✓ Initialized %s storage at %s\n", ctx.Config.Storage.Backend, where)

	if c.Email != "" {
		id, err := ctx.Session().Login(ctx.Ctx, c.Email)
		if err != nil {
			return err
		}
		ctx.Printf("✓ Signed in as %s\n", id)
	}
	return nil
}
