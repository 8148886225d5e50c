package storage

import (
	"strings"

	"github.com/julianstephens/myroutine/internal/storage/postgres"
	"github.com/julianstephens/myroutine/internal/storage/sqlite"
)

// Versioned is implemented by backends that track a schema version.
type Versioned interface {
	SchemaVersion() (current, latest int, err error)
}

// Migrator is implemented by backends with SQL migrations.
type Migrator interface {
	Migrate(progress func(string)) (applied int, err error)
}

// Open picks a backend for target: PostgreSQL for connection URLs, the JSON
// file store for *.json paths, SQLite for anything else.
func Open(target string) Provider {
	switch {
	case postgres.IsConnString(target):
		return postgres.New(target)
	case strings.HasSuffix(strings.ToLower(target), ".json"):
		return NewJSONStore(target)
	default:
		return sqlite.NewStore(target)
	}
}

// Backend names the kind of store behind p.
func Backend(p Provider) string {
	switch p.(type) {
	case *postgres.Store:
		return "postgres"
	case *sqlite.Store:
		return "sqlite"
	case *JSONStore:
		return "json"
	default:
		return "unknown"
	}
}
