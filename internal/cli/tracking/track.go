// Package tracking holds the time tracking, pomodoro and reminder commands.
package tracking

import (
	"fmt"
	"strings"

	"github.com/julianstephens/waketrack/internal/classifier"
	"github.com/julianstephens/waketrack/internal/cli"
	"github.com/julianstephens/waketrack/internal/models"
	"github.com/julianstephens/waketrack/internal/timetracking"
	"github.com/julianstephens/waketrack/internal/utils"
)

type PlanCmd struct {
	Hour     string   `arg:"" help:"Hour slot (9 or 09:00)."`
	Activity []string `arg:"" help:"Planned activity."`
	Minutes  int      `short:"m" help:"Planned duration in minutes." default:"60"`
	Category string   `short:"c" help:"Category; inferred from the text when omitted."`
	Date     string   `short:"d" help:"Day to plan." default:"today"`
}

func (c *PlanCmd) Run(ctx *cli.Context) error {
	user, err := ctx.User()
	if err != nil {
		return err
	}
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	hour, err := models.ParseHourKey(c.Hour)
	if err != nil {
		return err
	}
	text := strings.TrimSpace(strings.Join(c.Activity, " "))
	cat := classifier.Categorize(text)
	if c.Category != "" {
		if cat, err = models.ParseCategoryStrict(c.Category); err != nil {
			return err
		}
	}
	e, err := timetracking.New(ctx.Repo).Plan(ctx.Ctx, user, date, hour, text, cat, c.Minutes, ctx.Now())
	if err != nil {
		return err
	}
	ctx.Printf("✓ Planned %q at %s on %s for %d min\n", e.PlannedActivity, e.Hour, e.Date, e.PlannedDuration)
	return nil
}

type StartCmd struct {
	Hour   string   `arg:"" help:"Hour slot of the planned entry."`
	Actual []string `arg:"" optional:"" help:"What you are actually doing; defaults to the plan."`
	Date   string   `short:"d" help:"Day of the entry." default:"today"`
}

func (c *StartCmd) Run(ctx *cli.Context) error {
	user, err := ctx.User()
	if err != nil {
		return err
	}
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	hour, err := models.ParseHourKey(c.Hour)
	if err != nil {
		return err
	}
	e, err := timetracking.New(ctx.Repo).Start(ctx.Ctx, user, date, hour, strings.Join(c.Actual, " "), ctx.Now())
	if err != nil {
		return err
	}
	ctx.Printf("▶ Tracking %q (%s %s)\n", e.ActualActivity, e.Date, e.Hour)
	return nil
}

type StopCmd struct{}

func (c *StopCmd) Run(ctx *cli.Context) error {
	user, err := ctx.User()
	if err != nil {
		return err
	}
	now := ctx.Now()
	e, err := timetracking.New(ctx.Repo).Stop(ctx.Ctx, user, now)
	if err != nil {
		return err
	}
	ctx.Printf("■ Stopped %q after %d min (%s)\n", e.ActualActivity, timetracking.ActualMinutes(e, now),
		formatVariance(timetracking.Variance(e, now)))
	return nil
}

type StatusCmd struct {
	Date string `short:"d" help:"Day to show." default:"today"`
	Week bool   `short:"w" help:"Summarize the week containing the day."`
}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	user, err := ctx.User()
	if err != nil {
		return err
	}
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	tr := timetracking.New(ctx.Repo)
	now := ctx.Now()

	if c.Week {
		log, err := tr.Log(ctx.Ctx, user)
		if err != nil {
			return err
		}
		t, err := utils.ParseDate(date, now.Location())
		if err != nil {
			return err
		}
		week := timetracking.WeekStats(log, utils.FormatDate(utils.WeekStart(t)), now)
		ctx.Println(cli.HeaderStyle.Render("⏱  Week " + utils.FormatDate(utils.WeekStart(t))))
		if len(week) == 0 {
			ctx.Println(cli.MutedStyle.Render("  Nothing tracked this week."))
		}
		for _, d := range week {
			printStats(ctx, d.Date, d.TimeStats)
		}
		return nil
	}

	entries, err := tr.Entries(ctx.Ctx, user, date)
	if err != nil {
		return err
	}
	ctx.Println(cli.HeaderStyle.Render("⏱  " + date))
	if len(entries) == 0 {
		ctx.Println(cli.MutedStyle.Render("  Nothing planned."))
		return nil
	}
	for _, e := range entries {
		state := cli.MutedStyle.Render("planned")
		switch {
		case e.IsActive:
			state = cli.SuccessStyle.Render("active")
		case e.ActualEndTime != nil:
			state = formatVariance(timetracking.Variance(e, now))
		}
		ctx.Printf("  %s  %-30s %3d/%3d min  %s\n", e.Hour, e.PlannedActivity,
			timetracking.ActualMinutes(e, now), e.PlannedDuration, state)
	}
	log, err := tr.Log(ctx.Ctx, user)
	if err != nil {
		return err
	}
	if st, ok := timetracking.DayStats(log, date, now); ok {
		ctx.Println()
		printStats(ctx, "Total", st)
	}
	return nil
}

func printStats(ctx *cli.Context, label string, st models.TimeStats) {
	ctx.Printf("  %-10s %d/%d min  %d/%d done  efficiency %.0f%%  %s\n", label,
		st.TotalActual, st.TotalPlanned, st.CompletedTasks, st.TotalTasks, st.Efficiency, formatVariance(st.Variance))
}

func formatVariance(minutes int) string {
	switch {
	case minutes > 0:
		return cli.WarningStyle.Render(fmt.Sprintf("+%d min over", minutes))
	case minutes < 0:
		return cli.SuccessStyle.Render(fmt.Sprintf("%d min under", -minutes))
	}
	return "on time"
}

type UnplanCmd struct {
	Hour string `arg:"" help:"Hour slot of the entry."`
	Date string `short:"d" help:"Day of the entry." default:"today"`
}

func (c *UnplanCmd) Run(ctx *cli.Context) error {
	user, err := ctx.User()
	if err != nil {
		return err
	}
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	hour, err := models.ParseHourKey(c.Hour)
	if err != nil {
		return err
	}
	if err := timetracking.New(ctx.Repo).Delete(ctx.Ctx, user, date, hour); err != nil {
		return err
	}
	ctx.Printf("✓ Removed entry at %s on %s\n", models.HourKey(hour), date)
	return nil
}
