package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimal = `
[database]
driver = "sqlite3"

[admin]
username = "admin"
password_hash = "$2a$10$abcdefghijklmnopqrstuv"
`

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(minimal)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "data/barber.db", cfg.Database.Path)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 12*time.Hour, cfg.Admin.SessionDuration())
	assert.Equal(t, 5*time.Minute, cfg.Availability.CacheDuration())
	assert.Equal(t, "Asia/Tehran", cfg.Location().String())
	require.NotNil(t, cfg.Availability.ApplyGlobalDisabledSlots)
	assert.True(t, *cfg.Availability.ApplyGlobalDisabledSlots)
	assert.Equal(t, "@every 1h", cfg.Scheduler.SessionCleanup)
	assert.Contains(t, cfg.Database.DSN(), "file:data/barber.db?")
}

func TestParse_ExplicitValues(t *testing.T) {
	cfg, err := Parse(`
[server]
http_port = 9000

[database]
driver = "postgres"
host = "db"
user = "barber"
password = "secret"
dbname = "barber"

[admin]
username = "admin"
password_hash = "hash"
session_ttl = 30

[availability]
timezone = "UTC"
apply_global_disabled_slots = false

[cors]
allowed_origins = ["https://barber.example"]
`)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.HTTPPort)
	assert.Equal(t, "host=db port=5432 user=barber password=secret dbname=barber sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, 30*time.Minute, cfg.Admin.SessionDuration())
	assert.False(t, *cfg.Availability.ApplyGlobalDisabledSlots)
	assert.Equal(t, time.UTC, cfg.Location())
	assert.Equal(t, []string{"https://barber.example"}, cfg.CORS.AllowedOrigins)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing admin", "[database]\ndriver = \"sqlite3\"\n"},
		{"postgres without host", "[database]\ndriver = \"postgres\"\n[admin]\nusername = \"a\"\npassword_hash = \"b\"\n"},
		{"unknown driver", "[database]\ndriver = \"mysql\"\n[admin]\nusername = \"a\"\npassword_hash = \"b\"\n"},
		{"bad timezone", minimal + "[availability]\ntimezone = \"Mars/Olympus\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	_, err := Parse("not = [toml")
	assert.Error(t, err)
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("BARBER_ADMIN_HASH", "from-env")

	path := filepath.Join(t.TempDir(), "config.toml")
	data := "[database]\ndriver = \"sqlite3\"\n[admin]\nusername = \"admin\"\npassword_hash = \"${BARBER_ADMIN_HASH}\"\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Admin.PasswordHash)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestExpandEnv_KeepsBcryptHash(t *testing.T) {
	t.Setenv("DB_PASSWORD", "pw")

	got := expandEnv(`password = "${DB_PASSWORD}"` + "\n" + `password_hash = "$2a$10$abc"`)
	assert.Equal(t, `password = "pw"`+"\n"+`password_hash = "$2a$10$abc"`, got)
}
