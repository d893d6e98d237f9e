package activities

import (
	"github.com/julianstephens/waketrack/internal/activity"
	"github.com/julianstephens/waketrack/internal/cli"
	"github.com/julianstephens/waketrack/internal/templates"
)

type TemplateSaveCmd struct {
	Name string `arg:"" help:"Template name."`
	Date string `short:"d" help:"Day to capture." default:"today"`
}

func (c *TemplateSaveCmd) Run(ctx *cli.Context) error {
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
	tpl, err := templates.New(ctx.Repo).Save(ctx.Ctx, user, c.Name, day, ctx.Now())
	if err != nil {
		return err
	}
	ctx.Printf("✓ Saved template %q with %d activities\n", tpl.Name, len(tpl.Activities))
	return nil
}

type TemplateApplyCmd struct {
	Template string `arg:"" help:"Template name or id."`
	Date     string `short:"d" help:"Day to overwrite." default:"today"`
	Yes      bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *TemplateApplyCmd) Run(ctx *cli.Context) error {
	user, err := ctx.User()
	if err != nil {
		return err
	}
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	ok, err := cli.Confirm("Apply template to "+date+"?", "Existing activities on that day are replaced.", c.Yes)
	if err != nil || !ok {
		return err
	}
	tpl, err := templates.New(ctx.Repo).Apply(ctx.Ctx, user, c.Template, date)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Applied %q to %s\n", tpl.Name, date)
	return nil
}

type TemplateListCmd struct{}

func (c *TemplateListCmd) Run(ctx *cli.Context) error {
	user, err := ctx.User()
	if err != nil {
		return err
	}
	list, err := templates.New(ctx.Repo).List(ctx.Ctx, user)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		ctx.Println("No templates saved.")
		return nil
	}
	for _, t := range list {
		ctx.Printf("  %s  %-24s %2d activities  %s\n", shortID(t.ID), t.Name, len(t.Activities),
			cli.MutedStyle.Render(t.CreatedAt.Format("2006-01-02")))
	}
	return nil
}

type TemplateDeleteCmd struct {
	Template string `arg:"" help:"Template name or id."`
}

func (c *TemplateDeleteCmd) Run(ctx *cli.Context) error {
	user, err := ctx.User()
	if err != nil {
		return err
	}
	if err := templates.New(ctx.Repo).Delete(ctx.Ctx, user, c.Template); err != nil {
		return err
	}
	ctx.Printf("✓ Deleted template %s\n", c.Template)
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
