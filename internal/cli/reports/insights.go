package reports

import (
	"github.com/julianstephens/waketrack/internal/cli"
	"github.com/julianstephens/waketrack/internal/insights"
)

type InsightsCmd struct {
	Days int `short:"n" help:"Window size in days (defaults to the configured window)."`
}

func (c *InsightsCmd) Run(ctx *cli.Context) error {
	user, err := ctx.User()
	if err != nil {
		return err
	}
	goal, err := ctx.DailyGoal(user)
	if err != nil {
		return err
	}
	window := c.Days
	if window <= 0 {
		window = ctx.InsightWindow()
	}
	rep, err := insights.Build(ctx.Ctx, ctx.Repo, user, ctx.Now(), window, goal)
	if err != nil {
		return err
	}

	ctx.Printf("%s  %s → %s\n\n", cli.HeaderStyle.Render("💡 Insights"), rep.From, rep.To)
	printInsights(ctx, "Recommendations", rep.Recommendations)
	printInsights(ctx, "Analysis", rep.Advanced)
	return nil
}

// SuggestCmd prints the suggested schedule for the insight window.
type SuggestCmd struct {
	Days int `short:"n" help:"Window size in days (defaults to the configured window)."`
}

func (c *SuggestCmd) Run(ctx *cli.Context) error {
	user, err := ctx.User()
	if err != nil {
		return err
	}
	window := c.Days
	if window <= 0 {
		window = ctx.InsightWindow()
	}
	rep, err := insights.Build(ctx.Ctx, ctx.Repo, user, ctx.Now(), window, 0)
	if err != nil {
		return err
	}
	ctx.Println(cli.HeaderStyle.Render("🗓  Suggested schedule"))
	for _, line := range rep.Schedule {
		ctx.Println("  • " + line)
	}
	return nil
}
