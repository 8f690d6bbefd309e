package storage

import (
	"strings"

	"github.com/julianstephens/workplan/internal/storage/postgres"
	"github.com/julianstephens/workplan/internal/storage/sqlite"
)

// IsPostgres reports whether location is a PostgreSQL connection string
func IsPostgres(location string) bool {
	return strings.HasPrefix(location, "postgres://") || strings.HasPrefix(location, "postgresql://")
}

// Open picks a provider from the location string: a PostgreSQL URL, ":memory:",
// a *.json file, or (default) a SQLite database file.
func Open(location string) Provider {
	switch {
	case IsPostgres(location):
		return postgres.New(location)
	case location == MemoryLocation:
		return NewMemoryStore()
	case strings.HasSuffix(strings.ToLower(location), ".json"):
		return NewJSONStore(location)
	default:
		return sqlite.NewStore(location)
	}
}
