// Package storagetest поднимает чистую in-memory sqlite базу с применёнными миграциями для тестов.
package storagetest

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/migrations"
)

// NewSQLite создает изолированную базу на время теста.
// Пул ограничен одним соединением: in-memory база живёт, пока соединение открыто.
func NewSQLite(t testing.TB) *sql.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := migrations.Apply(context.Background(), db, migrations.DialectSQLite, nil); err != nil {
		db.Close()
		t.Fatalf("apply migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}
