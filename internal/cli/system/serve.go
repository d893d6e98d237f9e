package system

import (
	"github.com/julianstephens/waketrack/internal/api"
	"github.com/julianstephens/waketrack/internal/cli"
	"github.com/julianstephens/waketrack/internal/constants"
)

// ServeCmd exposes the stores and engines over a local JSON API.
type ServeCmd struct {
	Addr string `help:"Listen address; defaults to api.addr from the config."`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	addr := c.Addr
	if addr == "" {
		addr = ctx.Config.API.Addr
	}
	if addr == "" {
		addr = constants.DefaultAPIAddr
	}
	srv := api.NewServer(ctx.Repo, ctx.Gamification(), api.Options{
		DailyGoal:   float64(ctx.Config.Goals.DailyProductiveHours),
		InsightDays: ctx.InsightWindow(),
		Now:         ctx.Now,
	})
	ctx.Printf("Serving on http://%s/api\n", addr)
	return srv.ListenAndServe(ctx.Ctx, addr)
}
