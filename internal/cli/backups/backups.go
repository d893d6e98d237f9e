// Package backups holds the SQLite snapshot commands.
package backups

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/waketrack/internal/backup"
	"github.com/julianstephens/waketrack/internal/cli"
	"github.com/julianstephens/waketrack/internal/storage/sqlite"
)

var errNotSQLite = errors.New("backups are only available for the sqlite backend")

func manager(ctx *cli.Context) (*backup.Manager, *sqlite.Store, error) {
	s, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return nil, nil, errNotSQLite
	}
	return backup.NewManager(s.GetPath()), s, nil
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr, _, err := manager(ctx)
	if err != nil {
		return err
	}
	info, err := mgr.Create()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	ctx.Printf("✓ Backup created: %s\n", info.Name())
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr, _, err := manager(ctx)
	if err != nil {
		return err
	}
	list, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(list) == 0 {
		ctx.Println("No backups found.")
		ctx.Printf("Backups are stored in: %s\n", mgr.Dir())
		return nil
	}
	ctx.Printf("%d backups:\n\n", len(list))
	for _, b := range list {
		ctx.Printf("  %s  %s  (%.1f KB)\n", b.Timestamp.Format("2006-01-02 15:04:05"), b.Name(), float64(b.Size)/1024)
	}
	ctx.Println()
	ctx.Println(cli.MutedStyle.Render("Backup directory: " + mgr.Dir()))
	return nil
}

type BackupRestoreCmd struct {
	File string `arg:"" help:"Path or file name of the backup to restore."`
	Yes  bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr, store, err := manager(ctx)
	if err != nil {
		return err
	}
	path := c.File
	if _, err := os.Stat(path); err != nil {
		path = mgr.Resolve(c.File)
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	ok, err := cli.Confirm("Restore "+filepath.Base(path)+"?",
		"The current database is replaced. Stop every other waketrack process first; a snapshot of the current data is taken before restoring.",
		c.Yes)
	if err != nil || !ok {
		return err
	}

	if err := store.Close(); err != nil {
		ctx.Printf("Warning: failed to close database connection: %v\n", err)
	}
	safety, err := mgr.Restore(path)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}
	if safety != nil {
		ctx.Printf("✓ Previous database saved as %s\n", safety.Name())
	}
	ctx.Printf("✓ Restored from %s\n", filepath.Base(path))
	return nil
}
