package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/existflow/daysince/internal/model"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// SQL keeps the collection in a timers table, one row per timer, ordered
// by position.
type SQL struct {
	db      *sql.DB
	dialect string
}

// OpenSQLite opens or creates the SQLite database at dbPath
func OpenSQLite(dbPath string) (*SQL, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	return openSQL("sqlite", dbPath)
}

// OpenPostgres connects to the Postgres database at dbURL
func OpenPostgres(dbURL string) (*SQL, error) {
	if dbURL == "" {
		return nil, fmt.Errorf("postgres backend needs a database url")
	}
	return openSQL("postgres", dbURL)
}

func openSQL(driver, dsn string) (*SQL, error) {
	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &SQL{db: sqlDB, dialect: driver}
	if err := s.migrate(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return s, nil
}

// rebind rewrites ? placeholders to $n for postgres
func (s *SQL) rebind(query string) string {
	if s.dialect != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Load reads every row in position order
func (s *SQL) Load(ctx context.Context) ([]model.Timer, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, date, target_days FROM timers ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query timers: %w", err)
	}
	defer rows.Close()

	timers := []model.Timer{}
	for rows.Next() {
		var (
			t    model.Timer
			date string
		)
		if err := rows.Scan(&t.ID, &t.Name, &date, &t.TargetDays); err != nil {
			return nil, fmt.Errorf("failed to scan timer: %w", err)
		}
		t.Date, err = model.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		timers = append(timers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read timers: %w", err)
	}
	return timers, nil
}

// Save replaces every row inside one transaction
func (s *SQL) Save(ctx context.Context, timers []model.Timer) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM timers`); err != nil {
		return fmt.Errorf("failed to clear timers: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, s.rebind(
		`INSERT INTO timers (position, id, name, date, target_days) VALUES (?, ?, ?, ?, ?)`))
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range timers {
		if _, err := stmt.ExecContext(ctx, i, t.ID, t.Name, model.FormatDate(t.Date), t.TargetDays); err != nil {
			return fmt.Errorf("failed to insert timer %q: %w", t.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit timers: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *SQL) Close() error {
	return s.db.Close()
}
