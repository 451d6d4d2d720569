package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

type Config struct {
	Port         int
	DatabaseType string
	DatabaseURL  string
	StateFile    string
	SeedForms    bool

	AdminEmail    string
	AdminPassword string
	UserEmail     string
	TokenSecret   string
	TokenTTL      time.Duration

	NotifyAdminEmail      string
	ReceiptIncludeAnswers bool
	Timezone              string
	LogLevel              slog.Level
}

// LoadDotEnv loads path into the environment. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ParseFlags reads flags, then environment variables, then defaults
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var seed, includeAnswers, logLevel, ttl string

	fs := flag.NewFlagSet("sgformer", flag.ContinueOnError)

	// Network and storage (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Storage backend (memory, sqlite or postgres)")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.StateFile, "state", "", "State file for the memory backend")
	fs.StringVar(&seed, "seed", "", "Seed the sample forms into an empty store (true/false)")

	// Accounts and secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminEmail, "admin-email", "", "Admin login e-mail")
	fs.StringVar(&cfg.AdminPassword, "admin-password", "", "Admin password (prefer env)")
	fs.StringVar(&cfg.UserEmail, "user-email", "", "Guest user e-mail")
	fs.StringVar(&cfg.TokenSecret, "token-secret", "", "Session token secret (prefer env)")
	fs.StringVar(&ttl, "token-ttl", "", "Session token lifetime, e.g. 12h")

	fs.StringVar(&cfg.NotifyAdminEmail, "notify-admin", "", "Address notified of new submissions")
	fs.StringVar(&includeAnswers, "receipt-answers", "", "Embed answers in receipt QR codes (true/false)")
	fs.StringVar(&cfg.Timezone, "tz", "", "Timezone for check-in dates and statistics")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	cfg.DatabaseType = strings.ToLower(firstNonEmpty(cfg.DatabaseType, os.Getenv("DATABASE_TYPE"), BackendMemory))
	cfg.DatabaseURL = firstNonEmpty(cfg.DatabaseURL, os.Getenv("DATABASE_URL"))
	switch cfg.DatabaseType {
	case BackendMemory:
	case BackendSQLite, BackendPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("database URL required for %s (use -d or DATABASE_URL env)", cfg.DatabaseType)
		}
	default:
		return Config{}, fmt.Errorf("unsupported DATABASE_TYPE %q", cfg.DatabaseType)
	}
	cfg.StateFile = firstNonEmpty(cfg.StateFile, os.Getenv("STATE_FILE"))

	var err error
	if cfg.SeedForms, err = parseBool("SEED_FORMS", firstNonEmpty(seed, os.Getenv("SEED_FORMS")), true); err != nil {
		return Config{}, err
	}

	cfg.AdminEmail = firstNonEmpty(cfg.AdminEmail, os.Getenv("ADMIN_EMAIL"), "admin@example.com")
	cfg.UserEmail = firstNonEmpty(cfg.UserEmail, os.Getenv("USER_EMAIL"), "user@example.com")

	// Secrets - MUST be provided
	cfg.AdminPassword = firstNonEmpty(cfg.AdminPassword, os.Getenv("ADMIN_PASSWORD"))
	if cfg.AdminPassword == "" {
		return Config{}, errors.New("ADMIN_PASSWORD required")
	}
	cfg.TokenSecret = firstNonEmpty(cfg.TokenSecret, os.Getenv("TOKEN_SECRET"))
	if cfg.TokenSecret == "" {
		return Config{}, errors.New("TOKEN_SECRET required")
	}

	cfg.TokenTTL = 24 * time.Hour
	if v := firstNonEmpty(ttl, os.Getenv("TOKEN_TTL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("invalid TOKEN_TTL %q", v)
		}
		cfg.TokenTTL = d
	}

	cfg.NotifyAdminEmail = firstNonEmpty(cfg.NotifyAdminEmail, os.Getenv("NOTIFY_ADMIN_EMAIL"))
	if cfg.ReceiptIncludeAnswers, err = parseBool("RECEIPT_INCLUDE_ANSWERS", firstNonEmpty(includeAnswers, os.Getenv("RECEIPT_INCLUDE_ANSWERS")), false); err != nil {
		return Config{}, err
	}

	cfg.Timezone = firstNonEmpty(cfg.Timezone, os.Getenv("TIMEZONE"), "Local")
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return Config{}, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(firstNonEmpty(logLevel, os.Getenv("LOG_LEVEL"), "info"))); err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	return cfg, nil
}

// Location returns the configured timezone
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func parseBool(name, v string, def bool) (bool, error) {
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q", name, v)
	}
	return b, nil
}
