package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var ErrMissingCredentials = errors.New("missing required credentials")

type EnvConfig struct {
	SF_USERNAME       string
	SF_PASSWORD       string
	SF_SECURITY_TOKEN string
	SF_LOGIN_URL      string
	SF_API_VERSION    string

	LOG_FILE_PATH string
	APP_PORT      string
	OUTPUT_DIR    string

	DB_HOST              string
	DB_PORT              string
	DB_USER              string
	DB_PASSWORD          string
	DB_NAME              string
	DB_SSL_MODE          string
	DB_MAX_OPEN_CONNS    int
	DB_MAX_IDLE_CONNS    int
	DB_CONN_MAX_LIFETIME time.Duration
}

// DefaultEnvConfig is populated by LoadEnvConfig.
var DefaultEnvConfig EnvConfig

// LoadEnvConfig reads .env style files (a missing file is not an error) and
// then the process environment into DefaultEnvConfig.
func LoadEnvConfig(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := EnvConfig{
		SF_USERNAME:       os.Getenv("SF_USERNAME"),
		SF_PASSWORD:       os.Getenv("SF_PASSWORD"),
		SF_SECURITY_TOKEN: os.Getenv("SF_SECURITY_TOKEN"),
		SF_LOGIN_URL:      getEnv("SF_LOGIN_URL", "https://login.salesforce.com"),
		SF_API_VERSION:    getEnv("SF_API_VERSION", "59.0"),
		LOG_FILE_PATH:     os.Getenv("LOG_FILE_PATH"),
		APP_PORT:          getEnv("APP_PORT", "8080"),
		OUTPUT_DIR:        getEnv("OUTPUT_DIR", "output"),
		DB_HOST:           os.Getenv("DB_HOST"),
		DB_PORT:           getEnv("DB_PORT", "5432"),
		DB_USER:           os.Getenv("DB_USER"),
		DB_PASSWORD:       os.Getenv("DB_PASSWORD"),
		DB_NAME:           os.Getenv("DB_NAME"),
		DB_SSL_MODE:       getEnv("DB_SSL_MODE", "disable"),
	}

	var err error
	if cfg.DB_MAX_OPEN_CONNS, err = getEnvInt("DB_MAX_OPEN_CONNS", 5); err != nil {
		return err
	}
	if cfg.DB_MAX_IDLE_CONNS, err = getEnvInt("DB_MAX_IDLE_CONNS", 2); err != nil {
		return err
	}
	lifetime := getEnv("DB_CONN_MAX_LIFETIME", "5m")
	if cfg.DB_CONN_MAX_LIFETIME, err = time.ParseDuration(lifetime); err != nil {
		return fmt.Errorf("invalid DB_CONN_MAX_LIFETIME %q: %w", lifetime, err)
	}

	DefaultEnvConfig = cfg
	return nil
}

// ValidateCredentials reports which of the SF_* keys required to log in are empty.
func (c EnvConfig) ValidateCredentials() error {
	var missing []string
	if c.SF_USERNAME == "" {
		missing = append(missing, "SF_USERNAME")
	}
	if c.SF_PASSWORD == "" {
		missing = append(missing, "SF_PASSWORD")
	}
	if c.SF_SECURITY_TOKEN == "" {
		missing = append(missing, "SF_SECURITY_TOKEN")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}
	return nil
}

// DatabaseEnabled is true when a Postgres host is configured.
func (c EnvConfig) DatabaseEnabled() bool {
	return c.DB_HOST != ""
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}
