// Package goals holds the goal management commands.
package goals

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/waketrack/internal/cli"
	"github.com/julianstephens/waketrack/internal/goals"
	"github.com/julianstephens/waketrack/internal/models"
)

type GoalAddCmd struct {
	Title  string `arg:"" optional:"" help:"Goal title. Prompts for every field when omitted."`
	Type   string `short:"t" help:"daily or weekly." enum:"daily,weekly" default:"daily"`
	Target int    `short:"n" help:"Target value."`
	Metric string `short:"m" help:"productive_hours, total_activities or streak_days." enum:"productive_hours,total_activities,streak_days" default:"productive_hours"`
}

func (c *GoalAddCmd) prompt() error {
	target := ""
	if c.Target > 0 {
		target = strconv.Itoa(c.Target)
	}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Goal title").
				Value(&c.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Period").
				Options(
					huh.NewOption("Daily", string(models.GoalDaily)),
					huh.NewOption("Weekly", string(models.GoalWeekly)),
				).
				Value(&c.Type),
			huh.NewSelect[string]().
				Title("Measure").
				Options(
					huh.NewOption("Productive hours", string(models.MetricProductiveHours)),
					huh.NewOption("Logged activities", string(models.MetricTotalActivities)),
					huh.NewOption("Streak days", string(models.MetricStreakDays)),
				).
				Value(&c.Metric),
			huh.NewInput().
				Title("Target").
				Value(&target).
				Validate(func(s string) error {
					if n, err := strconv.Atoi(s); err != nil || n <= 0 {
						return fmt.Errorf("enter a positive number")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("goal form: %w", err)
	}
	n, err := strconv.Atoi(target)
	if err != nil {
		return err
	}
	c.Target = n
	return nil
}

func (c *GoalAddCmd) Run(ctx *cli.Context) error {
	user, err := ctx.User()
	if err != nil {
		return err
	}
	if c.Title == "" {
		if err := c.prompt(); err != nil {
			return err
		}
	}
	g, err := goals.New(ctx.Repo).Create(ctx.Ctx, user, goals.Input{
		Title:  c.Title,
		Type:   models.GoalType(c.Type),
		Target: c.Target,
		Metric: models.GoalMetric(c.Metric),
	}, ctx.Now())
	if err != nil {
		return err
	}
	ctx.Printf("✓ Added %s goal %q (%s)\n", g.Type, g.Title, shortID(g.ID))
	return nil
}

type GoalListCmd struct {
	All bool `short:"a" help:"Include inactive goals."`
}

func (c *GoalListCmd) Run(ctx *cli.Context) error {
	user, err := ctx.User()
	if err != nil {
		return err
	}
	svc := goals.New(ctx.Repo)
	list, err := svc.List(ctx.Ctx, user)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		ctx.Println("No goals yet. Add one with `waketrack goal add`.")
		return nil
	}
	now := ctx.Now()
	for _, g := range list {
		if !g.IsActive && !c.All {
			continue
		}
		p, err := svc.Progress(ctx.Ctx, user, g, now)
		if err != nil {
			return err
		}
		mark := " "
		if p.Completed {
			mark = cli.SuccessStyle.Render("✓")
		}
		line := fmt.Sprintf("%s %s  %-28s %s %3.0f%%  %d/%d %s", mark, shortID(g.ID), g.Title,
			cli.Bar(p.Percentage, 16), p.Percentage, p.Progress, g.Target, metricUnit(g.Metric))
		if !g.IsActive {
			line = cli.MutedStyle.Render(line + " (paused)")
		}
		ctx.Println(line)
	}
	return nil
}

type GoalDeleteCmd struct {
	ID string `arg:"" help:"Goal id or unique id prefix."`
}

func (c *GoalDeleteCmd) Run(ctx *cli.Context) error {
	user, svc, g, err := resolve(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := svc.Delete(ctx.Ctx, user, g.ID); err != nil {
		return err
	}
	ctx.Printf("✓ Deleted goal %q\n", g.Title)
	return nil
}

type GoalPauseCmd struct {
	ID string `arg:"" help:"Goal id or unique id prefix."`
}

func (c *GoalPauseCmd) Run(ctx *cli.Context) error {
	return setActive(ctx, c.ID, false)
}

type GoalResumeCmd struct {
	ID string `arg:"" help:"Goal id or unique id prefix."`
}

func (c *GoalResumeCmd) Run(ctx *cli.Context) error {
	return setActive(ctx, c.ID, true)
}

func setActive(ctx *cli.Context, ref string, active bool) error {
	user, svc, g, err := resolve(ctx, ref)
	if err != nil {
		return err
	}
	if err := svc.SetActive(ctx.Ctx, user, g.ID, active); err != nil {
		return err
	}
	state := "paused"
	if active {
		state = "resumed"
	}
	ctx.Printf("✓ Goal %q %s\n", g.Title, state)
	return nil
}

// resolve finds the single goal whose id starts with ref.
func resolve(ctx *cli.Context, ref string) (string, *goals.Service, models.Goal, error) {
	user, err := ctx.User()
	if err != nil {
		return "", nil, models.Goal{}, err
	}
	svc := goals.New(ctx.Repo)
	list, err := svc.List(ctx.Ctx, user)
	if err != nil {
		return "", nil, models.Goal{}, err
	}
	var matches []models.Goal
	for _, g := range list {
		if g.ID == ref {
			return user, svc, g, nil
		}
		if ref != "" && strings.HasPrefix(g.ID, ref) {
			matches = append(matches, g)
		}
	}
	switch len(matches) {
	case 0:
		return "", nil, models.Goal{}, goals.ErrNotFound
	case 1:
		return user, svc, matches[0], nil
	}
	return "", nil, models.Goal{}, fmt.Errorf("goal id %q is ambiguous (%d matches)", ref, len(matches))
}

func metricUnit(m models.GoalMetric) string {
	switch m {
	case models.MetricProductiveHours:
		return "h"
	case models.MetricStreakDays:
		return "days"
	}
	return "activities"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
