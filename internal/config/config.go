package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Redis        RedisConfig        `toml:"redis"`
	Admin        AdminConfig        `toml:"admin"`
	RateLimit    RateLimitConfig    `toml:"rate_limit"`
	Availability AvailabilityConfig `toml:"availability"`
	Scheduler    SchedulerConfig    `toml:"scheduler"`
	CORS         CORSConfig         `toml:"cors"`
	Realtime     RealtimeConfig     `toml:"realtime"`
}

// ServerConfig таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Driver          string `toml:"driver"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	Path            string `toml:"path"` // файл базы для sqlite3
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RedisConfig пустой Addr отключает кэш слотов
type RedisConfig struct {
	Addr      string `toml:"addr"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	KeyPrefix string `toml:"key_prefix"`
}

type AdminConfig struct {
	Username     string `toml:"username"`
	PasswordHash string `toml:"password_hash"` // bcrypt
	SessionTTL   int    `toml:"session_ttl"`   // минуты
}

// RateLimitConfig ограничение создания бронирований на один IP
type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerMinute float64 `toml:"requests_per_minute"`
	Burst             int     `toml:"burst"`
}

type AvailabilityConfig struct {
	Timezone                 string `toml:"timezone"`
	CacheTTL                 int    `toml:"cache_ttl"` // секунды
	ApplyGlobalDisabledSlots *bool  `toml:"apply_global_disabled_slots"`
}

// SchedulerConfig расписания cron; пустая строка отключает задачу
type SchedulerConfig struct {
	SessionCleanup string `toml:"session_cleanup"`
	DayRollover    string `toml:"day_rollover"`
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

type RealtimeConfig struct {
	Enabled bool `toml:"enabled"`
}

// Load читает .env (если есть), подставляет ${VAR} из окружения и разбирает TOML файл
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	return Parse(expandEnv(string(data)))
}

// envRef только форма ${VAR}: bcrypt хэши содержат "$2a$10$..."
var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

func expandEnv(s string) string {
	return envRef.ReplaceAllStringFunc(s, func(ref string) string {
		return os.Getenv(ref[2 : len(ref)-1])
	})
}

// Parse разбирает TOML, заполняет значения по умолчанию и проверяет конфигурацию
func Parse(data string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	setDefault(&c.Server.HTTPPort, 8080)
	setDefault(&c.Server.ReadTimeout, 15)
	setDefault(&c.Server.WriteTimeout, 15)
	setDefault(&c.Server.IdleTimeout, 60)
	setDefault(&c.Server.ShutdownTimeout, 10)

	if c.Database.Driver == "" {
		c.Database.Driver = DriverPostgres
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.Driver == DriverSQLite && c.Database.Path == "" {
		c.Database.Path = "data/barber.db"
	}
	setDefault(&c.Database.Port, 5432)
	setDefault(&c.Database.MaxOpenConns, 25)
	setDefault(&c.Database.MaxIdleConns, 5)
	setDefault(&c.Database.ConnMaxLifetime, 300)

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "barber-booking"
	}

	setDefault(&c.Admin.SessionTTL, 12*60)

	if c.RateLimit.RequestsPerMinute <= 0 {
		c.RateLimit.RequestsPerMinute = 10
	}
	setDefault(&c.RateLimit.Burst, 5)

	if c.Availability.Timezone == "" {
		c.Availability.Timezone = "Asia/Tehran"
	}
	setDefault(&c.Availability.CacheTTL, 300)
	if c.Availability.ApplyGlobalDisabledSlots == nil {
		enabled := true
		c.Availability.ApplyGlobalDisabledSlots = &enabled
	}

	if c.Scheduler.SessionCleanup == "" {
		c.Scheduler.SessionCleanup = "@every 1h"
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	var problems []string

	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			problems = append(problems, "database.host and database.dbname are required for postgres")
		}
	case DriverSQLite:
	default:
		problems = append(problems, fmt.Sprintf("unsupported database.driver %q", c.Database.Driver))
	}

	if c.Admin.Username == "" || c.Admin.PasswordHash == "" {
		problems = append(problems, "admin.username and admin.password_hash are required")
	}

	if _, err := time.LoadLocation(c.Availability.Timezone); err != nil {
		problems = append(problems, fmt.Sprintf("unknown availability.timezone %q", c.Availability.Timezone))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// DSN строка подключения для выбранного драйвера
func (d DatabaseConfig) DSN() string {
	if d.Driver == DriverSQLite {
		// внешние ключи и ожидание блокировки вместо SQLITE_BUSY
		return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL", d.Path)
	}

	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Availability.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (s ServerConfig) ShutdownDuration() time.Duration {
	return time.Duration(s.ShutdownTimeout) * time.Second
}

func (a AdminConfig) SessionDuration() time.Duration {
	return time.Duration(a.SessionTTL) * time.Minute
}

func (a AvailabilityConfig) CacheDuration() time.Duration {
	return time.Duration(a.CacheTTL) * time.Second
}

func setDefault(v *int, def int) {
	if *v <= 0 {
		*v = def
	}
}
