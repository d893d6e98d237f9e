// Package reports holds the read-only statistics commands.
package reports

import (
	"fmt"
	"strings"

	"github.com/julianstephens/waketrack/internal/cli"
	"github.com/julianstephens/waketrack/internal/constants"
	"github.com/julianstephens/waketrack/internal/metrics"
	"github.com/julianstephens/waketrack/internal/models"
	"github.com/julianstephens/waketrack/internal/utils"
)

type StatsCmd struct {
	From string `help:"First day of the range."`
	To   string `help:"Last day of the range." default:"today"`
	Days int    `short:"n" help:"Range length when --from is not given." default:"7"`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	user, err := ctx.User()
	if err != nil {
		return err
	}
	start, end, err := ctx.ResolveRange(c.From, c.To, c.Days)
	if err != nil {
		return err
	}
	days, err := metrics.LoadRange(ctx.Ctx, ctx.Repo, user, start, end)
	if err != nil {
		return err
	}

	t := metrics.Sum(days)
	ctx.Printf("%s  %s → %s\n\n", cli.HeaderStyle.Render("📊 Stats"), utils.FormatDate(start), utils.FormatDate(end))
	for _, d := range days {
		rate := 0.0
		if d.Total() > 0 {
			rate = float64(d.Productive) / float64(d.Total()) * 100
		}
		ctx.Printf("  %s  %s %3.0f%%  %s\n", d.Date, cli.Bar(rate, 20), rate,
			cli.MutedStyle.Render(fmt.Sprintf("%dp %du %dn", d.Productive, d.Unproductive, d.Neutral)))
	}
	ctx.Println()
	ctx.Printf("  Productive hours:   %d\n", t.Productive)
	ctx.Printf("  Unproductive hours: %d\n", t.Unproductive)
	ctx.Printf("  Neutral hours:      %d\n", t.Neutral)
	ctx.Printf("  Productivity:       %.1f%%\n", metrics.AverageProductivity(days))
	ctx.Printf("  Consistency:        %s\n", metrics.ClassifyConsistency(metrics.ProductivityVariance(days)))
	return nil
}

type TrendCmd struct {
	Period string `short:"p" help:"Bucket size: week or month." enum:"week,month" default:"week"`
	Days   int    `short:"n" help:"Days of history to include." default:"90"`
}

func (c *TrendCmd) Run(ctx *cli.Context) error {
	user, err := ctx.User()
	if err != nil {
		return err
	}
	g, err := metrics.ParseGranularity(c.Period)
	if err != nil {
		return err
	}
	start, end, err := ctx.ResolveRange("", "today", c.Days)
	if err != nil {
		return err
	}
	days, err := metrics.LoadRange(ctx.Ctx, ctx.Repo, user, start, end)
	if err != nil {
		return err
	}
	trend := metrics.GenerateTrendData(days, g)
	ctx.Println(cli.HeaderStyle.Render("📈 Trend by " + c.Period))
	logged := 0
	for _, p := range trend {
		if p.TotalLogged == 0 {
			continue
		}
		logged++
		ctx.Printf("  %-14s %s %5.1f%%  %s\n", p.Period, cli.Bar(p.ProductivityScore, 20), p.ProductivityScore,
			cli.MutedStyle.Render(fmt.Sprintf("%d logged", p.TotalLogged)))
	}
	if logged == 0 {
		ctx.Println(cli.MutedStyle.Render("  No activity logged in this range."))
	}
	return nil
}

type PatternsCmd struct {
	Days int `short:"n" help:"Days of history to analyze." default:"30"`
}

func (c *PatternsCmd) Run(ctx *cli.Context) error {
	user, err := ctx.User()
	if err != nil {
		return err
	}
	start, end, err := ctx.ResolveRange("", "today", c.Days)
	if err != nil {
		return err
	}
	days, err := metrics.LoadRange(ctx.Ctx, ctx.Repo, user, start, end)
	if err != nil {
		return err
	}
	patterns := metrics.AnalyzeProductivityPatterns(days)
	ctx.Println(cli.HeaderStyle.Render("🕒 Hourly patterns"))
	for _, p := range patterns {
		if p.TotalSessions == 0 {
			continue
		}
		ctx.Printf("  %s %s %5.1f%%  %-7s %s\n", utils.FormatHour(p.Hour), cli.Bar(p.AverageProductivity, 20),
			p.AverageProductivity, patternLabel(p.Category), cli.MutedStyle.Render(fmt.Sprintf("%d sessions", p.TotalSessions)))
	}
	return nil
}

func patternLabel(c models.PatternCategory) string {
	switch c {
	case models.PatternPeak:
		return cli.SuccessStyle.Render(string(c))
	case models.PatternLow:
		return cli.WarningStyle.Render(string(c))
	}
	return string(c)
}

type StreakCmd struct{}

func (c *StreakCmd) Run(ctx *cli.Context) error {
	user, err := ctx.User()
	if err != nil {
		return err
	}
	s, err := metrics.Streak(ctx.Ctx, ctx.Repo, user, ctx.Now(), constants.StreakLookbackDays)
	if err != nil {
		return err
	}
	ctx.Printf("🔥 Current streak: %d %s\n", s.Current, plural(s.Current, "day"))
	ctx.Printf("🏆 Longest streak: %d %s\n", s.Longest, plural(s.Longest, "day"))
	return nil
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func insightIcon(t models.InsightType) string {
	switch t {
	case models.InsightWarning, models.InsightImprovement:
		return "⚠"
	case models.InsightAchievement, models.InsightStrength, models.InsightPositive:
		return "★"
	case models.InsightGoal:
		return "◎"
	case models.InsightPattern:
		return "≈"
	}
	return "•"
}

func printInsights(ctx *cli.Context, title string, list []models.Insight) {
	if len(list) == 0 {
		return
	}
	ctx.Println(cli.HeaderStyle.Render(title))
	for _, in := range list {
		line := fmt.Sprintf("  %s %s", insightIcon(in.Type), in.Title)
		if in.Priority != "" {
			line += cli.MutedStyle.Render(" [" + string(in.Priority) + "]")
		}
		ctx.Println(line)
		ctx.Println("    " + strings.TrimSpace(in.Description))
	}
	ctx.Println()
}
