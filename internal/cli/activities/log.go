package activities

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/waketrack/internal/activity"
	"github.com/julianstephens/waketrack/internal/classifier"
	"github.com/julianstephens/waketrack/internal/cli"
	"github.com/julianstephens/waketrack/internal/constants"
	"github.com/julianstephens/waketrack/internal/models"
	"github.com/julianstephens/waketrack/internal/utils"
)

type LogCmd struct {
	Hour     string   `arg:"" help:"Hour slot, e.g. 9 or 09:00."`
	Text     []string `arg:"" optional:"" help:"What you did. Empty clears the slot."`
	Category string   `short:"c" help:"productive, unproductive or neutral. Guessed from the text when omitted."`
	Date     string   `short:"d" help:"Date (YYYY-MM-DD, today, yesterday, -N)." default:"today"`
}

func (c *LogCmd) Run(ctx *cli.Context) error {
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
	text := strings.TrimSpace(strings.Join(c.Text, " "))

	cat := classifier.Categorize(text)
	guessed := true
	if c.Category != "" {
		if cat, err = models.ParseCategoryStrict(c.Category); err != nil {
			return err
		}
		guessed = false
	}

	store := activity.New(ctx.Repo)
	before, err := store.LoadDay(ctx.Ctx, user, date)
	if err != nil {
		return err
	}
	day, err := store.SetSlot(ctx.Ctx, user, date, hour, text, cat)
	if err != nil {
		return err
	}

	key := models.HourKey(hour)
	if text == "" {
		ctx.Printf("✓ Cleared %s %s\n", date, key)
		return nil
	}
	label := string(cat)
	if guessed {
		label += " (auto)"
	}
	ctx.Printf("✓ %s %s  %s  %s\n", date, key, text, cli.CategoryStyle(cat).Render(label))

	game := ctx.Gamification()
	award, ok, err := game.AwardForSlot(ctx.Ctx, user, key, before[key], day[key], ctx.Now())
	if err != nil {
		return fmt.Errorf("failed to award points: %w", err)
	}
	if ok && award.Points > 0 {
		ctx.Printf("  +%d points (total %d)\n", award.Points, award.Total)
		if award.LevelUp {
			ctx.Println(cli.SuccessStyle.Render(fmt.Sprintf("  🎉 Level up! You reached level %d", award.Level)))
		}
	}
	return nil
}

type DayCmd struct {
	Date string `arg:"" optional:"" help:"Date to show." default:"today"`
	All  bool   `short:"a" help:"Show empty hours too."`
}

func (c *DayCmd) Run(ctx *cli.Context) error {
	user, err := ctx.User()
	if err != nil {
		return err
	}
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	day, err := activity.New(ctx.Repo).LoadDay(ctx.Ctx, user, date)
	if err != nil {
		return err
	}

	ctx.Println(cli.HeaderStyle.Render("📅 " + date))
	logged := 0
	for h := 0; h < 24; h++ {
		slot := day.Slot(h)
		if slot.IsEmpty() && !c.All {
			continue
		}
		if !slot.IsEmpty() {
			logged++
		}
		text := slot.Text
		if text == "" {
			text = cli.MutedStyle.Render("—")
		}
		ctx.Printf("  %s  %-40s %s\n", models.HourKey(h), text, cli.CategoryStyle(slot.Category).Render(string(slot.Category)))
	}
	if logged == 0 && !c.All {
		ctx.Println(cli.MutedStyle.Render("  Nothing logged yet."))
	}
	return nil
}

type ClearCmd struct {
	Date string `arg:"" optional:"" help:"Date to clear." default:"today"`
	All  bool   `help:"Delete every logged day instead of one."`
	Yes  bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *ClearCmd) Run(ctx *cli.Context) error {
	user, err := ctx.User()
	if err != nil {
		return err
	}
	store := activity.New(ctx.Repo)

	if c.All {
		ok, err := cli.Confirm("Delete all activity data?", "Every logged day and your gamification progress will be removed.", c.Yes)
		if err != nil || !ok {
			return err
		}
		ctx.PerformAutomaticBackup()
		n, err := store.ClearAll(ctx.Ctx, user)
		if err != nil {
			return err
		}
		ctx.Printf("✓ Deleted %d days\n", n)
		return nil
	}

	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	ok, err := cli.Confirm("Clear "+date+"?", "All 24 hours of this day will be emptied.", c.Yes)
	if err != nil || !ok {
		return err
	}
	if err := store.ClearDay(ctx.Ctx, user, date); err != nil {
		return err
	}
	ctx.Printf("✓ Cleared %s\n", date)
	return nil
}

type CopyCmd struct {
	From string `arg:"" help:"Source date."`
	To   string `arg:"" help:"Destination date."`
}

func (c *CopyCmd) Run(ctx *cli.Context) error {
	user, err := ctx.User()
	if err != nil {
		return err
	}
	src, err := ctx.ResolveDate(c.From)
	if err != nil {
		return err
	}
	dst, err := ctx.ResolveDate(c.To)
	if err != nil {
		return err
	}
	n, err := activity.New(ctx.Repo).CopyDay(ctx.Ctx, user, src, dst)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Copied %d activities from %s to %s\n", n, src, dst)
	return nil
}

type DuplicateWeekCmd struct {
	From string `arg:"" help:"Any date in the source week."`
	To   string `arg:"" help:"Any date in the destination week."`
}

func (c *DuplicateWeekCmd) Run(ctx *cli.Context) error {
	user, err := ctx.User()
	if err != nil {
		return err
	}
	src, err := ctx.ResolveDate(c.From)
	if err != nil {
		return err
	}
	dst, err := ctx.ResolveDate(c.To)
	if err != nil {
		return err
	}
	src, dst = weekStart(src), weekStart(dst)
	n, err := activity.New(ctx.Repo).DuplicateWeek(ctx.Ctx, user, src, dst)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Duplicated %d days from the week of %s to the week of %s\n", n, src, dst)
	return nil
}

// weekStart snaps a valid YYYY-MM-DD date to its Monday.
func weekStart(date string) string {
	t, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return date
	}
	return utils.FormatDate(utils.WeekStart(t))
}
