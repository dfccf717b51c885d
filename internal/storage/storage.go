package storage

import (
	"net/url"
	"strings"
)

// NewProvider selects a backend from the configured location: postgres URLs
// get the postgres store, a .json path the flat-file store, anything else
// the sqlite store.
func NewProvider(path string) Provider {
	switch {
	case IsPostgresConnString(path):
		return NewPostgresStore(path)
	case strings.HasSuffix(path, ".json"):
		return NewJSONStore(path)
	default:
		return NewSQLiteStore(path)
	}
}

// IsPostgresConnString reports whether path looks like a postgres URL.
func IsPostgresConnString(path string) bool {
	return strings.HasPrefix(path, "postgres://") || strings.HasPrefix(path, "postgresql://")
}

// HasEmbeddedCredentials reports whether a connection string carries a
// password inline. Credentials belong in the keyring, not on the command
// line where they leak into shell history.
func HasEmbeddedCredentials(connStr string) bool {
	u, err := url.Parse(connStr)
	if err != nil || u.User == nil {
		return false
	}
	_, has := u.User.Password()
	return has
}
