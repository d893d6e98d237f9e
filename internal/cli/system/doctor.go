package system

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/waketrack/internal/auth"
	"github.com/julianstephens/waketrack/internal/backup"
	"github.com/julianstephens/waketrack/internal/cli"
	"github.com/julianstephens/waketrack/internal/keyring"
	"github.com/julianstephens/waketrack/internal/storage"
	"github.com/julianstephens/waketrack/internal/storage/sqlite"
	"github.com/julianstephens/waketrack/internal/utils"
)

type check struct {
	name string
	// warn marks a check whose failure does not fail the command.
	warn bool
	run  func(*cli.Context) error
}

var checks = []check{
	{name: "Storage reachable", run: checkStorage},
	{name: "Timezone", run: checkTimezone},
	{name: "Signed-in user", warn: true, run: checkUser},
	{name: "Backups present", warn: true, run: checkBackups},
	{name: "OS keyring", warn: true, run: checkKeyring},
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	failed := false
	for _, c := range checks {
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warn:
			ctx.Printf("⚠ %s: WARNING\n   %v\n", c.name, err)
		default:
			ctx.Printf("❌ %s: FAIL\n   %v\n", c.name, err)
			failed = true
		}
	}
	ctx.Println()
	if failed {
		return errors.New("one or more checks failed")
	}
	ctx.Println("All checks passed.")
	return nil
}

func checkStorage(ctx *cli.Context) error {
	c, cancel := context.WithTimeout(ctx.Ctx, 5*time.Second)
	defer cancel()
	if p, ok := ctx.Store.(storage.Pinger); ok {
		return p.Ping(c)
	}
	_, err := ctx.Store.Keys(c, "")
	return err
}

func checkTimezone(ctx *cli.Context) error {
	if _, err := utils.LoadLocation(ctx.Config.Timezone); err != nil {
		return fmt.Errorf("cannot load timezone %q: %w", ctx.Config.Timezone, err)
	}
	if ctx.Now().Year() < 2000 {
		return fmt.Errorf("system clock looks wrong: %s", ctx.Now())
	}
	return nil
}

func checkUser(ctx *cli.Context) error {
	_, err := ctx.User()
	if errors.Is(err, auth.ErrNoUser) {
		return errors.New("nobody is signed in")
	}
	return err
}

func checkBackups(ctx *cli.Context) error {
	s, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return nil
	}
	list, err := backup.NewManager(s.GetPath()).List()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		return errors.New("no backups yet; run 'waketrack backup create'")
	}
	if age := ctx.Clock().Sub(list[0].Timestamp); age > 7*24*time.Hour {
		return fmt.Errorf("latest backup is %d days old", int(age.Hours()/24))
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}
