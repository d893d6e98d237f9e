package activities

import (
	"strings"

	"github.com/julianstephens/waketrack/internal/activity"
	"github.com/julianstephens/waketrack/internal/classifier"
	"github.com/julianstephens/waketrack/internal/cli"
	"github.com/julianstephens/waketrack/internal/models"
)

type SearchCmd struct {
	Term     []string `arg:"" optional:"" help:"Text to look for (case-insensitive)."`
	Category string   `short:"c" help:"Only this category."`
	From     string   `help:"Earliest date."`
	To       string   `help:"Latest date."`
	HourFrom string   `help:"Earliest hour slot."`
	HourTo   string   `help:"Latest hour slot."`
	Limit    int      `short:"n" help:"Maximum entries to print." default:"50"`
}

func (c *SearchCmd) filter(ctx *cli.Context) (activity.Filter, error) {
	f := activity.AnyHour()
	f.Term = strings.TrimSpace(strings.Join(c.Term, " "))
	var err error
	if c.Category != "" {
		if f.Category, err = models.ParseCategoryStrict(c.Category); err != nil {
			return f, err
		}
	}
	if c.From != "" {
		if f.From, err = ctx.ResolveDate(c.From); err != nil {
			return f, err
		}
	}
	if c.To != "" {
		if f.To, err = ctx.ResolveDate(c.To); err != nil {
			return f, err
		}
	}
	if c.HourFrom != "" {
		if f.HourFrom, err = models.ParseHourKey(c.HourFrom); err != nil {
			return f, err
		}
	}
	if c.HourTo != "" {
		if f.HourTo, err = models.ParseHourKey(c.HourTo); err != nil {
			return f, err
		}
	}
	return f, nil
}

func (c *SearchCmd) Run(ctx *cli.Context) error {
	user, err := ctx.User()
	if err != nil {
		return err
	}
	f, err := c.filter(ctx)
	if err != nil {
		return err
	}
	res, err := activity.New(ctx.Repo).Search(ctx.Ctx, user, f)
	if err != nil {
		return err
	}

	st := res.Stats
	ctx.Printf("%s  %d of %d entries · %d%% productive\n",
		cli.HeaderStyle.Render("🔎 Search"), st.Total, res.Scanned, st.ProductivityRate)
	for i, e := range res.Entries {
		if c.Limit > 0 && i >= c.Limit {
			ctx.Println(cli.MutedStyle.Render("  …"))
			break
		}
		ctx.Printf("  %s %s  %-40s %s\n", e.Date, e.Hour, e.Text, cli.CategoryStyle(e.Category).Render(string(e.Category)))
	}
	if len(res.Common) > 0 {
		ctx.Println()
		ctx.Println(cli.HeaderStyle.Render("Most common"))
		for _, a := range res.Common {
			ctx.Printf("  %3d× %s\n", a.Count, a.Text)
		}
	}
	return nil
}

type ClassifyCmd struct {
	Text []string `arg:"" help:"Activity text to classify."`
}

func (c *ClassifyCmd) Run(ctx *cli.Context) error {
	text := strings.Join(c.Text, " ")
	s := classifier.Score(text)
	cat := classifier.Categorize(text)
	ctx.Printf("%s  (productive %d, unproductive %d, neutral %d)\n",
		cli.CategoryStyle(cat).Render(string(cat)), s.Productive, s.Unproductive, s.Neutral)
	return nil
}
