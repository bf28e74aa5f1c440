package migrations

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplySQLiteIsIdempotent(t *testing.T) {
	db, err := sql.Open("sqlite3", "file:migrations_test?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	require.NoError(t, Apply(ctx, db, DialectSQLite, nil))
	require.NoError(t, Apply(ctx, db, DialectSQLite, nil))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 2, count)

	for _, table := range []string{"reservations", "holidays", "working_hours", "disabled_slots", "admin_sessions"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = $1", table).Scan(&name)
		assert.NoError(t, err, table)
	}
}

func TestLoadBothDialects(t *testing.T) {
	pg, err := load(DialectPostgres)
	require.NoError(t, err)
	lite, err := load(DialectSQLite)
	require.NoError(t, err)

	require.Len(t, pg, 2)
	require.Len(t, lite, 2)
	assert.Equal(t, "001_init.sql", pg[0].Name)
	assert.Equal(t, pg[1].Name, lite[1].Name)
}

func TestUnknownDialect(t *testing.T) {
	err := Apply(context.Background(), nil, "mysql", nil)
	assert.ErrorIs(t, err, ErrUnknownDialect)
}
