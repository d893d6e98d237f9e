package reports

import (
	"fmt"

	"github.com/julianstephens/waketrack/internal/cli"
	"github.com/julianstephens/waketrack/internal/constants"
)

// PointsCmd refreshes and prints the gamification record.
type PointsCmd struct {
	Badges bool `short:"b" help:"List every badge, not only earned ones."`
}

func (c *PointsCmd) Run(ctx *cli.Context) error {
	user, err := ctx.User()
	if err != nil {
		return err
	}
	res, err := ctx.Gamification().Refresh(ctx.Ctx, user, ctx.Now())
	if err != nil {
		return err
	}
	d := res.Data

	done := constants.PointsPerLevel - d.PointsToNextLevel
	ctx.Printf("%s  Level %d · %d points\n", cli.HeaderStyle.Render("🎮 Progress"), d.Level, d.TotalPoints)
	ctx.Printf("  %s %d to next level\n", cli.Bar(float64(done)/float64(constants.PointsPerLevel)*100, 20), d.PointsToNextLevel)
	ctx.Printf("  🔥 Streak %d (best %d)\n", d.CurrentStreak, d.LongestStreak)

	if res.LevelUp {
		ctx.Println(cli.SuccessStyle.Render(fmt.Sprintf("  ⬆ Level up! You reached level %d", d.Level)))
	}
	for _, b := range res.NewBadges {
		ctx.Println(cli.SuccessStyle.Render(fmt.Sprintf("  %s New badge: %s", b.Icon, b.Name)))
	}
	if res.Completed != nil {
		ctx.Println(cli.SuccessStyle.Render(fmt.Sprintf("  ✓ Challenge complete: %s (+%d)", res.Completed.Name, res.Completed.Points)))
	}

	if ch := d.WeeklyChallenge; ch != nil {
		ctx.Println()
		ctx.Println(cli.HeaderStyle.Render("Weekly challenge"))
		pct := 0.0
		if ch.Target > 0 {
			pct = float64(ch.Progress) / float64(ch.Target) * 100
		}
		ctx.Printf("  %s · %s\n", ch.Name, cli.MutedStyle.Render(ch.StartDate+" → "+ch.EndDate))
		ctx.Printf("  %s %d/%d  +%d pts\n", cli.Bar(pct, 20), ch.Progress, ch.Target, ch.Points)
	}

	ctx.Println()
	ctx.Println(cli.HeaderStyle.Render("Badges"))
	shown := 0
	for _, b := range d.Badges {
		if !b.Earned && !c.Badges {
			continue
		}
		shown++
		if b.Earned {
			ctx.Printf("  %s %-22s %s\n", b.Icon, b.Name, cli.MutedStyle.Render(b.Description))
		} else {
			ctx.Printf("  %s %-22s %s\n", cli.MutedStyle.Render("·"), cli.MutedStyle.Render(b.Name), cli.MutedStyle.Render(b.Description))
		}
	}
	if shown == 0 {
		ctx.Println(cli.MutedStyle.Render("  None yet. Keep logging!"))
	}
	return nil
}
