package schedule

import (
	"fmt"
	"os"

	"github.com/julianstephens/myroutine/internal/cli"
	"github.com/julianstephens/myroutine/internal/constants"
	"github.com/julianstephens/myroutine/internal/ui"
)

type TemplateCmd struct {
	Save   TemplateSaveCmd   `cmd:"" help:"Save a day's schedule as a template."`
	Apply  TemplateApplyCmd  `cmd:"" help:"Add a template's events to a day."`
	Delete TemplateDeleteCmd `cmd:"" help:"Delete a template."`
	List   TemplateListCmd   `cmd:"" help:"List templates." default:"1"`
	Export TemplateExportCmd `cmd:"" help:"Write a template as YAML."`
	Import TemplateImportCmd `cmd:"" help:"Load a template from a YAML file."`
}

type TemplateSaveCmd struct {
	Name string `arg:"" help:"Template name."`
	Date string `help:"Date whose schedule to save (default today)."`
}

func (c *TemplateSaveCmd) Run(ctx *cli.Context) error {
	key, err := ctx.Service.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	t, err := ctx.Service.SaveTemplate(c.Name, key)
	if err = ctx.Saved(err); err != nil {
		return err
	}
	ctx.Printf("Saved template %q with %d events\n", t.Name, len(t.Events))
	return nil
}

type TemplateApplyCmd struct {
	Template string `arg:"" help:"Template ID or name."`
	Date     string `help:"Date to add the events to (default today)."`
}

func (c *TemplateApplyCmd) Run(ctx *cli.Context) error {
	key, err := ctx.Service.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	events, err := ctx.Service.ApplyTemplate(c.Template, key)
	if err = ctx.Saved(err); err != nil {
		return err
	}
	ctx.Printf("Added %d events to %s\n", len(events), key)
	return nil
}

type TemplateDeleteCmd struct {
	Template string `arg:"" help:"Template ID or name."`
	Yes      bool   `short:"y" help:"Skip confirmation."`
}

func (c *TemplateDeleteCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Service.FindTemplate(c.Template)
	if err != nil {
		return err
	}
	ok, err := ctx.Confirm(c.Yes, fmt.Sprintf("Delete template %q?", t.Name))
	if err != nil || !ok {
		return err
	}
	_, err = ctx.Service.DeleteTemplate(string(t.ID))
	if err = ctx.Saved(err); err != nil {
		return err
	}
	ctx.Printf("Deleted template %q\n", t.Name)
	return nil
}

type TemplateListCmd struct{}

func (c *TemplateListCmd) Run(ctx *cli.Context) error {
	templates, err := ctx.Service.ListTemplates()
	if err != nil {
		return err
	}
	if len(templates) == 0 {
		ctx.Println("No templates saved.")
		return nil
	}
	rows := make([][]string, 0, len(templates))
	for _, t := range templates {
		first := ""
		if len(t.Events) > 0 {
			first = t.Events[0].Time + " " + t.Events[0].Title
		}
		rows = append(rows, []string{
			t.Name,
			fmt.Sprint(len(t.Events)),
			first,
			t.CreatedAt.In(ctx.Service.Location()).Format(constants.DateFormat),
		})
	}
	ctx.Println(ui.Table([]string{"Name", "Events", "First", "Created"}, rows))
	return nil
}

type TemplateExportCmd struct {
	Template string `arg:"" help:"Template ID or name."`
	Output   string `short:"o" help:"Output file (default stdout)." type:"path"`
}

func (c *TemplateExportCmd) Run(ctx *cli.Context) error {
	if c.Output == "" {
		return ctx.Service.WriteTemplate(c.Template, ctx.Out)
	}
	f, err := os.Create(c.Output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", c.Output, err)
	}
	if err := ctx.Service.WriteTemplate(c.Template, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	ctx.Printf("Template written to %s\n", c.Output)
	return nil
}

type TemplateImportCmd struct {
	File string `arg:"" help:"YAML template file." type:"existingfile"`
}

func (c *TemplateImportCmd) Run(ctx *cli.Context) error {
	f, err := os.Open(c.File)
	if err != nil {
		return err
	}
	defer f.Close()

	t, err := ctx.Service.ReadTemplate(f)
	if err = ctx.Saved(err); err != nil {
		return err
	}
	ctx.Printf("Imported template %q with %d events\n", t.Name, len(t.Events))
	return nil
}
