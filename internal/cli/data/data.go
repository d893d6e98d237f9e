// Package data holds the export and import commands.
package data

import (
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/waketrack/internal/activity"
	"github.com/julianstephens/waketrack/internal/cli"
)

type ExportCmd struct {
	Output string `short:"o" help:"File to write; \"-\" for stdout. Defaults to waketrack-<user>-<date>.json."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	user, err := ctx.User()
	if err != nil {
		return err
	}
	now := ctx.Now()
	doc, err := activity.New(ctx.Repo).ExportAll(ctx.Ctx, user, now)
	if err != nil {
		return err
	}

	if c.Output == "-" {
		return activity.WriteExport(ctx.Out, doc)
	}
	path := c.Output
	if path == "" {
		path = activity.ExportFileName(user, now)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := activity.WriteExport(f, doc); err != nil {
		f.Close()
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	ctx.Printf("✓ Exported %d days to %s\n", len(doc.Activities), path)
	return nil
}

type ImportCmd struct {
	File string `arg:"" help:"Export file to read; \"-\" for stdin."`
	Yes  bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	user, err := ctx.User()
	if err != nil {
		return err
	}

	var r io.Reader = os.Stdin
	if c.File != "-" {
		f, err := os.Open(c.File)
		if err != nil {
			return fmt.Errorf("failed to open import file: %w", err)
		}
		defer f.Close()
		r = f
	}
	doc, err := activity.ReadImport(r)
	if err != nil {
		return err
	}

	ok, err := cli.Confirm(
		fmt.Sprintf("Import %d days for %s?", len(doc.Activities), user),
		"Days in the file overwrite the stored days with the same date.",
		c.Yes || c.File == "-",
	)
	if err != nil || !ok {
		return err
	}
	ctx.PerformAutomaticBackup()
	n, err := activity.New(ctx.Repo).ImportAll(ctx.Ctx, user, doc)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Imported %d days (format %s)\n", n, doc.Version)
	if doc.Gamification != nil {
		ctx.Println("✓ Restored points and badges")
	}
	return nil
}
