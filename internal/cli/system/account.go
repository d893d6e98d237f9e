package system

import (
	"errors"

	"github.com/julianstephens/waketrack/internal/auth"
	"github.com/julianstephens/waketrack/internal/cli"
)

type LoginCmd struct {
	Email string `arg:"" help:"Email address; only its derived id is stored."`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	id, err := ctx.Session().Login(ctx.Ctx, c.Email)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Signed in as %s\n", id)
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	if err := ctx.Session().Logout(ctx.Ctx); err != nil {
		return err
	}
	ctx.Println("✓ Signed out")
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *cli.Context) error {
	id, err := ctx.User()
	if errors.Is(err, auth.ErrNoUser) {
		ctx.Println("Not signed in. Run `waketrack login <email>`.")
		return nil
	}
	if err != nil {
		return err
	}
	ctx.Println(id)
	return nil
}
