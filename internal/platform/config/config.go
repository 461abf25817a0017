package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// Supported values for STORE_DRIVER.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"
	StoreDriverMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	Port            string
	IsProduction    bool
	ShutdownTimeout time.Duration

	// Account store
	StoreDriver   string
	DatabaseURL   string
	SQLitePath    string
	EnableDBCheck bool

	// Ledger
	BcryptCost   int
	EnableDelete bool
	BankPassword string // when set, BANK is registered at startup if absent

	// HTTP extras
	CORSAllowedOrigins []string
	RateLimit          string // ulule/limiter formatted rate, e.g. "100-M"; empty disables
	PosthogAPIKey      string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("STORE_DRIVER", StoreDriverSQLite)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("SQLITE_PATH", "bank.db")
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("BCRYPT_COST", bcrypt.DefaultCost)
	v.SetDefault("ENABLE_DELETE", true)
	v.SetDefault("BANK_PASSWORD", "")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("RATE_LIMIT", "")
	v.SetDefault("POSTHOG_API_KEY", "")
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:          v.GetString("PORT"),
		IsProduction:  v.GetBool("IS_PRODUCTION"),
		StoreDriver:   strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
		DatabaseURL:   v.GetString("PGSQL_URL"),
		SQLitePath:    v.GetString("SQLITE_PATH"),
		EnableDBCheck: v.GetBool("ENABLE_DB_CHECK"),
		BcryptCost:    v.GetInt("BCRYPT_COST"),
		EnableDelete:  v.GetBool("ENABLE_DELETE"),
		BankPassword:  v.GetString("BANK_PASSWORD"),
		RateLimit:     v.GetString("RATE_LIMIT"),
		PosthogAPIKey: v.GetString("POSTHOG_API_KEY"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	shutdownStr := v.GetString("SHUTDOWN_TIMEOUT")
	shutdown, err := time.ParseDuration(shutdownStr)
	if err != nil || shutdown <= 0 {
		shutdown = 10 * time.Second
		log.Printf("Warning: Invalid value for SHUTDOWN_TIMEOUT ('%s'). Defaulting to %s.\n", shutdownStr, shutdown)
	}
	cfg.ShutdownTimeout = shutdown

	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		log.Printf("Warning: BCRYPT_COST %d out of range. Defaulting to %d.\n", cfg.BcryptCost, bcrypt.DefaultCost)
		cfg.BcryptCost = bcrypt.DefaultCost
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	switch cfg.StoreDriver {
	case StoreDriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL must be set when STORE_DRIVER is %q", StoreDriverPostgres)
		}
	case StoreDriverSQLite:
		if cfg.SQLitePath == "" {
			return nil, fmt.Errorf("SQLITE_PATH must be set when STORE_DRIVER is %q", StoreDriverSQLite)
		}
	case StoreDriverMemory:
		log.Println("Warning: STORE_DRIVER is memory, accounts are lost on restart.")
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
	}

	if cfg.BankPassword == "" {
		log.Println("Warning: BANK_PASSWORD not set. BANK must be registered before deposits or transfers.")
	}

	return cfg, nil
}
