package data

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/myroutine/internal/cli"
	"github.com/julianstephens/myroutine/internal/constants"
	"github.com/julianstephens/myroutine/internal/portability"
	"github.com/julianstephens/myroutine/internal/storage"
	"github.com/julianstephens/myroutine/internal/ui"
)

// EnvPassphrase supplies the snapshot passphrase without a prompt.
const EnvPassphrase = "MYROUTINE_PASSPHRASE"

// Swapped in tests.
var readPassphrase = ui.Password

func passphrase(title string) (string, error) {
	if v := os.Getenv(EnvPassphrase); v != "" {
		return v, nil
	}
	return readPassphrase(title)
}

type DataCmd struct {
	Export DataExportCmd `cmd:"" help:"Write all data to a JSON or YAML snapshot."`
	Import DataImportCmd `cmd:"" help:"Replace stored data with a snapshot."`
	Clear  DataClearCmd  `cmd:"" help:"Delete all stored data."`
	Info   DataInfoCmd   `cmd:"" help:"Show where data is stored and how much there is." default:"1"`
}

type DataExportCmd struct {
	Output  string `short:"o" help:"Output file, or - for stdout (default myroutine-backup-<date>.<format>)."`
	Format  string `short:"f" help:"Snapshot format." enum:"json,yaml" default:"json"`
	Encrypt bool   `short:"e" help:"Encrypt the snapshot with a passphrase."`
}

func (c *DataExportCmd) Run(ctx *cli.Context) error {
	format, err := portability.ParseFormat(c.Format)
	if err != nil {
		return err
	}
	opts := portability.ExportOptions{Format: format}
	if c.Encrypt {
		if opts.Passphrase, err = passphrase("Snapshot passphrase"); err != nil {
			return err
		}
		if opts.Passphrase == "" {
			return fmt.Errorf("a passphrase is required with --encrypt")
		}
	}

	if c.Output == "-" {
		_, err := portability.Export(ctx.Repo, ctx.Out, opts, ctx.Service.Now())
		return err
	}

	path := c.Output
	if path == "" {
		path = fmt.Sprintf("%s%s.%s", constants.ExportFilePrefix, ctx.Service.TodayKey(), format)
		if c.Encrypt {
			path += ".age"
		}
	}
	var buf bytes.Buffer
	snap, err := portability.Export(ctx.Repo, &buf, opts, ctx.Service.Now())
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	ui.Ok(ctx.Out, fmt.Sprintf("Exported %d days to %s (%s)", len(snap.RoutineData), path, humanize.Bytes(uint64(buf.Len()))))
	return nil
}

type DataImportCmd struct {
	File string `arg:"" help:"Snapshot file, or - for stdin."`
	Yes  bool   `short:"y" help:"Skip confirmation."`
}

func (c *DataImportCmd) Run(ctx *cli.Context) error {
	raw, err := readInput(c.File)
	if err != nil {
		return err
	}

	secret := ""
	if portability.IsEncrypted(raw) {
		if secret, err = passphrase("Snapshot passphrase"); err != nil {
			return err
		}
	}
	snap, err := portability.Decode(raw, secret)
	if err != nil {
		return err
	}

	ok, err := ctx.Confirm(c.Yes, fmt.Sprintf("Replace stored data with %d days from %s?", len(snap.RoutineData), c.File))
	if err != nil || !ok {
		return err
	}

	ctx.PerformAutomaticBackup()
	result, err := portability.Import(ctx.Repo, snap)
	if result.HasIssues() {
		ctx.Println(result.FormatReport())
	}
	if err = ctx.Saved(err); err != nil {
		return err
	}
	ui.Ok(ctx.Out, fmt.Sprintf("Imported %d days", len(snap.RoutineData)))
	return nil
}

func readInput(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(os.Stdin)
	}
	raw, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return raw, nil
}

type DataClearCmd struct {
	Yes bool `short:"y" help:"Skip both confirmations."`
}

func (c *DataClearCmd) Run(ctx *cli.Context) error {
	ok, err := ctx.Confirm(c.Yes, "Delete ALL routine data, profiles, habits, goals and templates?")
	if err != nil || !ok {
		return err
	}
	ok, err = ctx.Confirm(c.Yes, "This cannot be undone. Are you sure?")
	if err != nil || !ok {
		return err
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Repo.Clear(); err != nil {
		return fmt.Errorf("failed to clear data: %w", err)
	}
	ui.Ok(ctx.Out, "All data cleared")
	return nil
}

type DataInfoCmd struct{}

func (c *DataInfoCmd) Run(ctx *cli.Context) error {
	ui.Kv(ctx.Out, "Backend", storage.Backend(ctx.Store))
	ui.Kv(ctx.Out, "Location", ctx.Store.GetConfigPath())
	if ctx.IsFileStore() {
		if fi, err := os.Stat(ctx.Store.GetConfigPath()); err == nil {
			ui.Kv(ctx.Out, "Size", humanize.Bytes(uint64(fi.Size())))
			ui.Kv(ctx.Out, "Modified", humanize.Time(fi.ModTime()))
		}
	}

	records, err := ctx.Service.Records()
	if err != nil {
		return err
	}
	first, last := "", ""
	for k := range records {
		if first == "" || k < first {
			first = k
		}
		if k > last {
			last = k
		}
	}
	ui.Kv(ctx.Out, "Days", fmt.Sprint(len(records)))
	if first != "" {
		ui.Kv(ctx.Out, "Range", first+" .. "+last)
	}

	keys, err := ctx.Store.Keys()
	if err != nil {
		return err
	}
	ui.Kv(ctx.Out, "Keys", fmt.Sprint(keys))
	return nil
}
