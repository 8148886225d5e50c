package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/julianstephens/myroutine/internal/backup"
	"github.com/julianstephens/myroutine/internal/config"
	apperr "github.com/julianstephens/myroutine/internal/errors"
	"github.com/julianstephens/myroutine/internal/logger"
	"github.com/julianstephens/myroutine/internal/routine"
	"github.com/julianstephens/myroutine/internal/storage"
	"github.com/julianstephens/myroutine/internal/ui"
)

type Context struct {
	Config  *config.Config
	Store   storage.Provider
	Repo    *storage.Repository
	Service *routine.Service
	Out     io.Writer
}

// NewContext wires a repository and service over store.
func NewContext(cfg *config.Config, store storage.Provider, opts ...routine.Option) *Context {
	repo := storage.NewRepository(store)
	return &Context{
		Config:  cfg,
		Store:   store,
		Repo:    repo,
		Service: routine.New(repo, opts...),
		Out:     os.Stdout,
	}
}

// Printf writes to the command output.
func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// IsFileStore reports whether the store lives in a local file that backups
// can copy.
func (c *Context) IsFileStore() bool {
	return storage.Backend(c.Store) != "postgres"
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if !c.IsFileStore() {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Saved turns a persistence failure into a warning. The change already
// reached memory, so the command itself succeeded; any other error is
// returned unchanged.
func (c *Context) Saved(err error) error {
	if err == nil || !apperr.IsPersistence(err) {
		return err
	}
	if c.Repo.Flush() == nil {
		return nil
	}
	logger.Error("Failed to persist changes", "error", err, "pending", strings.Join(c.Repo.Pending(), ","))
	ui.Warn(c.Out, fmt.Sprintf("Could not save changes: %v", err))
	ui.Warn(c.Out, "Run 'myroutine data export' to keep a copy of your data.")
	return nil
}

// Confirm asks before a destructive action unless yes is set.
func (c *Context) Confirm(yes bool, title string) (bool, error) {
	if yes {
		return true, nil
	}
	return ui.Confirm(title)
}
