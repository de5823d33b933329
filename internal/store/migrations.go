package store

import "fmt"

// migrate runs all database migrations
func (s *SQL) migrate() error {
	migrations := []string{
		migrationCreateTimers,
		migrationIndexTimerPosition,
	}

	for i, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}

const migrationCreateTimers = `
CREATE TABLE IF NOT EXISTS timers (
    position INTEGER NOT NULL,
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    date TEXT NOT NULL,
    target_days INTEGER NOT NULL
);
`

const migrationIndexTimerPosition = `
CREATE INDEX IF NOT EXISTS idx_timers_position ON timers(position);
`
