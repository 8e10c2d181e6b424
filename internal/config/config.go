package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"

	defaultCacheTTL   = 5 * time.Minute
	defaultBcryptCost = 10
	envFile           = ".env"
)

type Config struct {
	GinMode    string
	Port       string
	TZ         string
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPass     string
	DBName     string
	DBSSLMode  string
	DBPath     string
	LogLevel   slog.Level
	CacheTTL   time.Duration
	BcryptCost int
}

// findEnvFile walks up from the working directory looking for .env.
func findEnvFile() (string, bool) {
	dir, err := os.Getwd()
	if err != nil {
		return "", false
	}

	for {
		candidate := filepath.Join(dir, envFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func Load() *Config {
	if getenv("GIN_MODE", "debug") == "debug" {
		loadEnvFile()
	}

	cfg := &Config{
		GinMode:    getenv("GIN_MODE", "debug"),
		Port:       getenv("PORT", "8080"),
		TZ:         getenv("TZ", "UTC"),
		DBDriver:   strings.ToLower(getenv("DB_DRIVER", DriverPostgres)),
		DBHost:     getenv("DB_HOST", "localhost"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     getenv("DB_USER", "postgres"),
		DBPass:     getenv("DB_PASS", ""),
		DBName:     getenv("DB_NAME", "library"),
		DBSSLMode:  os.Getenv("DB_SSLMODE"),
		DBPath:     getenv("DB_PATH", "library.db"),
		LogLevel:   parseLevel(getenv("LOG_LEVEL", "info")),
		CacheTTL:   parseDuration("CACHE_TTL", defaultCacheTTL),
		BcryptCost: parseInt("BCRYPT_COST", defaultBcryptCost),
	}

	if cfg.DBPort == "" {
		cfg.DBPort = "5432"
		if cfg.DBDriver == DriverMySQL {
			cfg.DBPort = "3306"
		}
	}

	if cfg.DBSSLMode == "" {
		if cfg.GinMode == "release" {
			cfg.DBSSLMode = "require"
		} else {
			cfg.DBSSLMode = "disable"
		}
	}

	return cfg
}

func loadEnvFile() {
	path, ok := findEnvFile()
	if !ok {
		slog.Warn("no .env file found, using process environment")
		return
	}

	if err := godotenv.Load(path); err != nil {
		slog.Warn("could not load env file", "path", path, "error", err)
		return
	}
	slog.Info("loaded env file", "path", path)
}

// DSN renders the connection string for DBDriver.
func (c *Config) DSN() string {
	switch c.DBDriver {
	case DriverMySQL:
		return fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			c.DBUser,
			c.DBPass,
			c.DBHost,
			c.DBPort,
			c.DBName,
		)
	case DriverSQLite:
		return sqliteDSN(c.DBPath)
	default:
		return fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
			c.DBHost,
			c.DBUser,
			c.DBPass,
			c.DBName,
			c.DBPort,
			c.DBSSLMode,
			c.TZ,
		)
	}
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// parseDuration accepts a Go duration or a bare number of seconds.
func parseDuration(key string, def time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second
	}
	slog.Warn("invalid duration, using default", "key", key, "value", s, "default", def)
	return def
}

func parseInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		slog.Warn("invalid integer, using default", "key", key, "value", s, "default", def)
		return def
	}
	return n
}

// sqliteDSN turns foreign key enforcement on for every pooled connection.
func sqliteDSN(path string) string {
	if strings.Contains(path, "_foreign_keys=") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}
