package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/julianstephens/myroutine/internal/constants"
	"github.com/julianstephens/myroutine/internal/keyring"
	"github.com/julianstephens/myroutine/internal/utils"
)

// EnvConnection supplies a PostgreSQL connection string without writing it to disk.
const EnvConnection = "MYROUTINE_DB_CONNECTION"

// Config is the process configuration read from config.toml. User
// preferences live in the store, not here.
type Config struct {
	// Storage is a file path (SQLite, or JSON when it ends in .json) or a
	// PostgreSQL connection string without a password.
	Storage  string `toml:"storage"`
	Timezone string `toml:"timezone"`
	Debug    bool   `toml:"debug"`
	NoColor  bool   `toml:"no_color"`
	LogLevel string `toml:"log_level,omitempty"`
}

// Paths holds the resolved locations used by myroutine.
type Paths struct {
	ConfigDir  string
	ConfigFile string
	DBFile     string
	LogDir     string
}

// GetPaths returns the resolved paths, respecting XDG_CONFIG_HOME.
func GetPaths() Paths {
	home, _ := os.UserHomeDir()
	base := envOr("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	dir := filepath.Join(base, constants.AppName)

	return Paths{
		ConfigDir:  dir,
		ConfigFile: filepath.Join(dir, "config.toml"),
		DBFile:     filepath.Join(dir, constants.AppName+".db"),
		LogDir:     filepath.Join(dir, "logs"),
	}
}

// EnsureDirs creates the config directory.
func (p Paths) EnsureDirs() error {
	return os.MkdirAll(p.ConfigDir, 0o755)
}

func defaultConfig() *Config {
	return &Config{
		Timezone: constants.DefaultTimezone,
	}
}

// Load reads the config file at path, returning defaults if it does not
// exist. An empty path means the default location.
func Load(path string) (*Config, error) {
	if path == "" {
		path = GetPaths().ConfigFile
	}
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.Timezone == "" {
		cfg.Timezone = constants.DefaultTimezone
	}
	if !utils.ValidateTimezone(cfg.Timezone) {
		return nil, fmt.Errorf("invalid timezone %q in %s", cfg.Timezone, path)
	}
	return cfg, nil
}

// Save writes cfg to path, or to the default location when path is empty.
func Save(path string, cfg *Config) error {
	if path == "" {
		paths := GetPaths()
		if err := paths.EnsureDirs(); err != nil {
			return err
		}
		path = paths.ConfigFile
	} else if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// ResolveStorage picks the storage target. An explicit value (flag or config
// file) wins, then the environment, then the OS keyring, then the default
// SQLite file. A leading ~ is expanded for file paths.
func (c *Config) ResolveStorage(override string) (string, error) {
	target := override
	if target == "" {
		target = c.Storage
	}
	if target == "" {
		target = os.Getenv(EnvConnection)
	}
	if target == "" {
		connStr, err := keyring.GetConnectionString()
		switch {
		case err == nil:
			target = connStr
		case errors.Is(err, keyring.ErrNotFound), errors.Is(err, keyring.ErrKeyringUnavailable):
		default:
			return "", err
		}
	}
	if target == "" {
		return GetPaths().DBFile, nil
	}
	return ExpandHome(target)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
