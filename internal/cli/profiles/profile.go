package profiles

import (
	"fmt"
	"os"

	"github.com/julianstephens/myroutine/internal/cli"
	"github.com/julianstephens/myroutine/internal/constants"
	"github.com/julianstephens/myroutine/internal/routine"
	"github.com/julianstephens/myroutine/internal/ui"
)

// EnvSecret lets scripts pass a profile secret without a prompt.
const EnvSecret = "MYROUTINE_PROFILE_SECRET"

// readSecret is replaced in tests.
var readSecret = ui.Password

func secretInput(title string) (string, error) {
	if v := os.Getenv(EnvSecret); v != "" {
		return v, nil
	}
	return readSecret(title)
}

type ProfileCmd struct {
	Create  ProfileCreateCmd  `cmd:"" help:"Create a profile."`
	Edit    ProfileEditCmd    `cmd:"" help:"Edit a profile."`
	Delete  ProfileDeleteCmd  `cmd:"" help:"Delete a profile."`
	List    ProfileListCmd    `cmd:"" help:"List profiles." default:"1"`
	Use     ProfileUseCmd     `cmd:"" help:"Switch to a profile."`
	Logout  ProfileLogoutCmd  `cmd:"" help:"Clear the active profile."`
	Current ProfileCurrentCmd `cmd:"" help:"Show the active profile."`
}

type ProfileCreateCmd struct {
	Name   string `arg:"" help:"Profile name (up to 20 characters)."`
	Color  string `help:"Profile color as a hex code."`
	Icon   string `help:"Profile icon."`
	Secret bool   `help:"Protect the profile with a secret (prompted)."`
	Use    bool   `help:"Switch to the new profile."`
}

func (c *ProfileCreateCmd) Run(ctx *cli.Context) error {
	in := routine.ProfileInput{Name: c.Name, Color: c.Color, Icon: c.Icon}
	if c.Secret {
		secret, err := secretInput("Secret for " + c.Name)
		if err != nil {
			return err
		}
		in.Secret = &secret
	}

	p, err := ctx.Service.CreateProfile(in)
	if err = ctx.Saved(err); err != nil {
		return err
	}
	ctx.Printf("Created profile %s %s (%s)\n", p.Icon, p.Name, p.ID)

	if c.Use {
		_, err = ctx.Service.UseProfile(string(p.ID), valueOr(in.Secret))
		if err = ctx.Saved(err); err != nil {
			return err
		}
		ctx.Printf("Now using %s\n", p.Name)
	}
	return nil
}

type ProfileEditCmd struct {
	Profile     string `arg:"" help:"Profile ID or name."`
	Name        string `help:"New name."`
	Color       string `help:"New color."`
	Icon        string `help:"New icon."`
	Secret      bool   `help:"Set a new secret (prompted)." xor:"secret"`
	ClearSecret bool   `help:"Remove the secret." xor:"secret"`
}

func (c *ProfileEditCmd) Run(ctx *cli.Context) error {
	in := routine.ProfileInput{Name: c.Name, Color: c.Color, Icon: c.Icon}
	switch {
	case c.ClearSecret:
		empty := ""
		in.Secret = &empty
	case c.Secret:
		secret, err := secretInput("New secret")
		if err != nil {
			return err
		}
		in.Secret = &secret
	}

	p, err := ctx.Service.UpdateProfile(c.Profile, in)
	if err = ctx.Saved(err); err != nil {
		return err
	}
	ctx.Printf("Updated profile %s %s\n", p.Icon, p.Name)
	return nil
}

type ProfileDeleteCmd struct {
	Profile string `arg:"" help:"Profile ID or name."`
	Yes     bool   `short:"y" help:"Skip confirmation."`
}

func (c *ProfileDeleteCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Service.FindProfile(c.Profile)
	if err != nil {
		return err
	}
	ok, err := ctx.Confirm(c.Yes, fmt.Sprintf("Delete profile %q?", p.Name))
	if err != nil || !ok {
		return err
	}
	_, err = ctx.Service.DeleteProfile(string(p.ID))
	if err = ctx.Saved(err); err != nil {
		return err
	}
	ctx.Printf("Deleted profile %s\n", p.Name)
	return nil
}

type ProfileListCmd struct{}

func (c *ProfileListCmd) Run(ctx *cli.Context) error {
	profiles, err := ctx.Service.ListProfiles()
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		ctx.Println("No profiles yet. Create one with 'myroutine profile create <name>'.")
		return nil
	}
	active, _ := ctx.Service.ActiveProfile()

	rows := make([][]string, 0, len(profiles))
	for _, p := range profiles {
		marker := ""
		if p.ID == active.ID {
			marker = ui.IconDone
		}
		lock := ""
		if p.IsProtected() {
			lock = "yes"
		}
		rows = append(rows, []string{marker, p.Icon + " " + p.Name, p.CreatedAt.In(ctx.Service.Location()).Format(constants.DateFormat), lock, string(p.ID)})
	}
	ctx.Println(ui.Table([]string{"", "Name", "Created", "Secret", "ID"}, rows))
	return nil
}

type ProfileUseCmd struct {
	Profile string `arg:"" help:"Profile ID or name."`
}

func (c *ProfileUseCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Service.FindProfile(c.Profile)
	if err != nil {
		return err
	}
	var secret string
	if p.IsProtected() {
		if secret, err = secretInput("Secret for " + p.Name); err != nil {
			return err
		}
	}
	_, err = ctx.Service.UseProfile(string(p.ID), secret)
	if err = ctx.Saved(err); err != nil {
		return err
	}
	ctx.Printf("Now using %s %s\n", p.Icon, p.Name)
	return nil
}

type ProfileLogoutCmd struct{}

func (c *ProfileLogoutCmd) Run(ctx *cli.Context) error {
	if err := ctx.Saved(ctx.Service.Logout()); err != nil {
		return err
	}
	ctx.Println("Logged out.")
	return nil
}

type ProfileCurrentCmd struct{}

func (c *ProfileCurrentCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Service.ActiveProfile()
	if err != nil {
		return err
	}
	ui.Kv(ctx.Out, "Profile", p.Icon+" "+p.Name)
	ui.Kv(ctx.Out, "Created", p.CreatedAt.In(ctx.Service.Location()).Format(constants.DateFormat))
	ui.Kv(ctx.Out, "ID", string(p.ID))
	return nil
}

func valueOr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
