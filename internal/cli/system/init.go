package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/myroutine/internal/cli"
	"github.com/julianstephens/myroutine/internal/storage"
	"github.com/julianstephens/myroutine/internal/storage/postgres"
)

type InitCmd struct {
	Force  bool   `help:"Delete the existing local store before initializing."`
	Source string `help:"Store path or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized %s storage at: %s\n", storage.Backend(ctx.Store), ctx.Store.GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Copying data from: %s\n", c.Source)
		n, err := copyStore(ctx.Store, c.Source)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Printf("Copied %d keys.\n", n)
	}
	return nil
}

// reset removes a local store file. Remote stores are cleared with
// 'myroutine data clear' instead.
func (c *InitCmd) reset(ctx *cli.Context) error {
	if !ctx.IsFileStore() {
		return errors.New("--force only applies to local stores; use 'myroutine data clear' for postgres")
	}
	dbPath := ctx.Store.GetConfigPath()
	if abs, err := filepath.Abs(dbPath); err == nil {
		dbPath = abs
	}
	if c.Source != "" {
		if absSource, err := filepath.Abs(c.Source); err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to access existing store: %w", err)
	}
	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close existing store: %w", err)
	}
	for _, suffix := range []string{"", "-wal", "-shm"} {
		if err := os.Remove(dbPath + suffix); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete existing store: %w", err)
		}
	}
	ctx.Printf("Deleted existing store at: %s\n", dbPath)
	return nil
}

// copyStore writes every key of the source store into dst in one batch.
func copyStore(dst storage.Provider, source string) (int, error) {
	if postgres.IsConnString(source) {
		if valid, err := postgres.ValidateConnString(source); !valid {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return 0, errors.New("source connection string contains embedded credentials; use environment variables or .pgpass instead")
			}
			return 0, err
		}
	} else if _, err := os.Stat(source); err != nil {
		return 0, fmt.Errorf("source store not found: %w", err)
	}

	src := storage.Open(source)
	if err := src.Load(); err != nil {
		return 0, fmt.Errorf("failed to load source store: %w", err)
	}
	defer src.Close()

	keys, err := src.Keys()
	if err != nil {
		return 0, fmt.Errorf("failed to list source keys: %w", err)
	}
	entries := make(map[string][]byte, len(keys))
	for _, k := range keys {
		v, ok, err := src.Get(k)
		if err != nil {
			return 0, fmt.Errorf("failed to read %q from source: %w", k, err)
		}
		if ok {
			entries[k] = v
		}
	}
	if len(entries) == 0 {
		return 0, nil
	}
	if err := dst.SetMany(entries); err != nil {
		return 0, fmt.Errorf("failed to write destination: %w", err)
	}
	return len(entries), nil
}
