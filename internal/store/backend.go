package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/existflow/daysince/internal/model"
)

// Backend persists the whole timer collection
type Backend interface {
	// Load returns the persisted collection, or an empty one if nothing
	// has been persisted yet.
	Load(ctx context.Context) ([]model.Timer, error)
	// Save replaces the persisted collection with timers.
	Save(ctx context.Context, timers []model.Timer) error
	Close() error
}

// Backend kinds accepted by OpenBackend
const (
	KindJSON     = "json"
	KindSQLite   = "sqlite"
	KindPostgres = "postgres"
)

// DefaultPath returns the default JSON store path (~/.daysince/timers.json)
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".daysince", "timers.json"), nil
}

// OpenBackend opens the backend of the given kind. target is a file path
// for json and sqlite and a connection URL for postgres.
func OpenBackend(kind, target string) (Backend, error) {
	switch strings.ToLower(kind) {
	case "", KindJSON:
		return NewJSONFile(target), nil
	case KindSQLite:
		return OpenSQLite(target)
	case KindPostgres:
		return OpenPostgres(target)
	default:
		return nil, fmt.Errorf("unknown store backend %q (want json, sqlite or postgres)", kind)
	}
}
