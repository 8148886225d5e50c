package goals

import (
	"fmt"

	"github.com/julianstephens/myroutine/internal/cli"
	"github.com/julianstephens/myroutine/internal/models"
	"github.com/julianstephens/myroutine/internal/routine"
	"github.com/julianstephens/myroutine/internal/stats"
	"github.com/julianstephens/myroutine/internal/ui"
)

var periods = map[string]models.GoalPeriod{
	"":        "",
	"weekly":  models.GoalWeekly,
	"semanal": models.GoalWeekly,
	"monthly": models.GoalMonthly,
	"mensal":  models.GoalMonthly,
}

type GoalCmd struct {
	Add    GoalAddCmd    `cmd:"" help:"Add a goal."`
	Edit   GoalEditCmd   `cmd:"" help:"Edit a goal."`
	Delete GoalDeleteCmd `cmd:"" help:"Delete a goal."`
	List   GoalListCmd   `cmd:"" help:"Show goals with their progress." default:"1"`
}

type GoalAddCmd struct {
	Title    string  `arg:"" help:"Goal title."`
	Category string  `short:"c" required:"" help:"study, workout, sleep or focus."`
	Target   float64 `short:"t" required:"" help:"Target value (minutes, days or average hours)."`
	Period   string  `short:"p" help:"Goal period." enum:"weekly,monthly,semanal,mensal" default:"weekly"`
}

func (c *GoalAddCmd) Run(ctx *cli.Context) error {
	g, err := ctx.Service.AddGoal(routine.GoalInput{
		Title:    c.Title,
		Period:   periods[c.Period],
		Category: c.Category,
		Target:   c.Target,
	})
	if err = ctx.Saved(err); err != nil {
		return err
	}
	ctx.Printf("Added goal %q: %s %s (%s)\n", g.Title, formatTarget(g), g.Unit, g.Period)
	return nil
}

type GoalEditCmd struct {
	Goal     string  `arg:"" help:"Goal ID or title."`
	Title    string  `help:"New title."`
	Category string  `short:"c" help:"New category."`
	Target   float64 `short:"t" help:"New target."`
	Period   string  `short:"p" help:"New period." enum:",weekly,monthly,semanal,mensal" default:""`
}

func (c *GoalEditCmd) Run(ctx *cli.Context) error {
	g, err := ctx.Service.UpdateGoal(c.Goal, routine.GoalInput{
		Title:    c.Title,
		Period:   periods[c.Period],
		Category: c.Category,
		Target:   c.Target,
	})
	if err = ctx.Saved(err); err != nil {
		return err
	}
	ctx.Printf("Updated goal %q\n", g.Title)
	return nil
}

type GoalDeleteCmd struct {
	Goal string `arg:"" help:"Goal ID or title."`
	Yes  bool   `short:"y" help:"Skip confirmation."`
}

func (c *GoalDeleteCmd) Run(ctx *cli.Context) error {
	ok, err := ctx.Confirm(c.Yes, fmt.Sprintf("Delete goal %q?", c.Goal))
	if err != nil || !ok {
		return err
	}
	g, err := ctx.Service.DeleteGoal(c.Goal)
	if err = ctx.Saved(err); err != nil {
		return err
	}
	ctx.Printf("Deleted goal %q\n", g.Title)
	return nil
}

type GoalListCmd struct{}

func (c *GoalListCmd) Run(ctx *cli.Context) error {
	report, err := ctx.Service.GoalReport()
	if err != nil {
		return err
	}
	if len(report) == 0 {
		ctx.Println("No goals yet. Add one with 'myroutine goal add'.")
		return nil
	}
	width := ui.BarWidth(30)
	for _, p := range report {
		status := ""
		if p.Completed {
			status = ui.Success.Render(" " + ui.IconOk + "completed")
		}
		ctx.Printf("%s %s%s\n", ui.Title.Render(p.Goal.Title), ui.Muted.Render("("+string(p.Goal.Period)+")"), status)
		ctx.Printf("  %s / %s %s\n", p.Display, formatTarget(p.Goal), p.Category.Unit())
		ctx.Printf("  %s\n", ui.ProgressBar(p.Percent, width))
	}
	return nil
}

func formatTarget(g models.Goal) string {
	c, err := stats.GoalCategory(g)
	if err != nil {
		return fmt.Sprint(g.Target)
	}
	return stats.FormatValue(c, g.Target)
}
