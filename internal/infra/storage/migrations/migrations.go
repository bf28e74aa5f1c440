package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
)

//go:embed sql/postgres/*.sql sql/sqlite3/*.sql
var migrationsFS embed.FS

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

var (
	// ErrUnknownDialect возвращается для неподдерживаемого драйвера БД
	ErrUnknownDialect = errors.New("migrations: unknown dialect")

	// ErrApply возвращается при ошибке применения миграции
	ErrApply = errors.New("migrations: failed to apply migration")
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

type migration struct {
	Name    string
	Content string
}

// Apply применяет все ещё не применённые миграции диалекта в порядке имен файлов.
// Применённые миграции учитываются в таблице schema_migrations.
func Apply(ctx context.Context, db *sql.DB, dialect string, logger Logger) error {
	files, err := load(dialect)
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, createTrackingTable(dialect)); err != nil {
		return fmt.Errorf("%w: create schema_migrations: %v", ErrApply, err)
	}

	applied, err := appliedMigrations(ctx, db)
	if err != nil {
		return fmt.Errorf("%w: read schema_migrations: %v", ErrApply, err)
	}

	for _, m := range files {
		if applied[m.Name] {
			continue
		}

		if err := applyOne(ctx, db, m); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrApply, m.Name, err)
		}

		if logger != nil {
			logger.Info("Migration applied: %s (%s)", m.Name, dialect)
		}
	}

	return nil
}

func load(dialect string) ([]migration, error) {
	if dialect != DialectPostgres && dialect != DialectSQLite {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, dialect)
	}

	dir := path.Join("sql", dialect)
	entries, err := fs.ReadDir(migrationsFS, dir)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrApply, dir, err)
	}

	files := make([]migration, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".sql" {
			continue
		}

		content, err := migrationsFS.ReadFile(path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrApply, e.Name(), err)
		}

		files = append(files, migration{Name: e.Name(), Content: string(content)})
	}

	// Числовой префикс в имени задаёт порядок
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	return files, nil
}

func createTrackingTable(dialect string) string {
	if dialect == DialectPostgres {
		return `CREATE TABLE IF NOT EXISTS schema_migrations (
			name       VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`
	}
	return `CREATE TABLE IF NOT EXISTS schema_migrations (
		name       TEXT PRIMARY KEY,
		applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`
}

func appliedMigrations(ctx context.Context, db *sql.DB) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT name FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		applied[name] = true
	}

	return applied, rows.Err()
}

func applyOne(ctx context.Context, db *sql.DB, m migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, m.Content); err != nil {
		return fmt.Errorf("execute: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (name) VALUES ($1)", m.Name); err != nil {
		return fmt.Errorf("record: %w", err)
	}

	return tx.Commit()
}
