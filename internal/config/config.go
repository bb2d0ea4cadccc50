package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage engines accepted by DB_DRIVER
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	// Storage
	DBDriver          string // sqlite | postgres
	DatabaseURL       string // sqlite file path or postgres connection string
	BusyTimeout       time.Duration
	TxTimeout         time.Duration
	DefaultFolderName string
	// Logging
	LogLevel    string
	LogDir      string // empty = stdout only
	LogMaxFiles int
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")
	driver := strings.ToLower(getEnv("DB_DRIVER", DriverSQLite))

	return &Config{
		Port:              getEnv("PORT", "8080"),
		Environment:       env,
		CORSOrigins:       getEnv("CORS_ORIGINS", "http://localhost:3000"),
		DBDriver:          driver,
		DatabaseURL:       getEnv("DATABASE_URL", defaultDatabaseURL(driver)),
		BusyTimeout:       getDuration("BUSY_TIMEOUT", 5*time.Second),
		TxTimeout:         getDuration("TX_TIMEOUT", 5*time.Second),
		DefaultFolderName: getEnv("DEFAULT_FOLDER_NAME", "General"),
		LogLevel:          getEnv("LOG_LEVEL", getDefaultLogLevel(env)),
		LogDir:            getEnv("LOG_DIR", ""),
		LogMaxFiles:       getInt("LOG_MAX_FILES", 10),
	}
}

// defaultDatabaseURL returns the database location used when DATABASE_URL is unset
func defaultDatabaseURL(driver string) string {
	if driver == DriverPostgres {
		return "postgres://localhost:5432/pinknote?sslmode=disable"
	}
	return "pinknote.db"
}

// getDefaultLogLevel returns the default log level based on environment
func getDefaultLogLevel(env string) string {
	if env == "prod" {
		return "info"
	}
	return "debug"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		return defaultValue
	}
	return d
}

func getInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return defaultValue
	}
	return n
}
