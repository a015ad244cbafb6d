package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers.
const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	Port          string
	IsProduction  bool
	StoreDriver   string
	DatabaseURL   string
	EnableDBCheck bool
	RunMigrations bool

	JWTSecret string
	JWTIssuer string // optional; enforced when set

	RedisAddr      string // empty disables the wallet cache and the shared rate-limit store
	RedisPassword  string
	RedisDB        int
	WalletCacheTTL time.Duration

	RateLimit          string // ulule formatted rate, e.g. "100-M"
	CORSAllowedOrigins []string

	DefaultCurrency             string
	LedgerMaxRetries            int
	LedgerAllowNegativeReversal bool
	LedgerRepairSettleWindow    time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("STORE_DRIVER", StoreDriverMemory)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_ISSUER", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("WALLET_CACHE_TTL", "5m")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("DEFAULT_CURRENCY", "MAD")
	v.SetDefault("LEDGER_MAX_RETRIES", 5)
	v.SetDefault("LEDGER_ALLOW_NEGATIVE_REVERSAL", false)
	v.SetDefault("LEDGER_REPAIR_SETTLE_WINDOW", "1m")

	// Actual environment variables override .env values and defaults.
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:                        v.GetString("PORT"),
		IsProduction:                v.GetBool("IS_PRODUCTION"),
		StoreDriver:                 strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
		DatabaseURL:                 v.GetString("PGSQL_URL"),
		EnableDBCheck:               v.GetBool("ENABLE_DB_CHECK"),
		RunMigrations:               v.GetBool("RUN_MIGRATIONS"),
		JWTSecret:                   v.GetString("JWT_SECRET"),
		JWTIssuer:                   v.GetString("JWT_ISSUER"),
		RedisAddr:                   v.GetString("REDIS_ADDR"),
		RedisPassword:               v.GetString("REDIS_PASSWORD"),
		RedisDB:                     v.GetInt("REDIS_DB"),
		RateLimit:                   v.GetString("RATE_LIMIT"),
		CORSAllowedOrigins:          splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		DefaultCurrency:             strings.ToUpper(v.GetString("DEFAULT_CURRENCY")),
		LedgerMaxRetries:            v.GetInt("LEDGER_MAX_RETRIES"),
		LedgerAllowNegativeReversal: v.GetBool("LEDGER_ALLOW_NEGATIVE_REVERSAL"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.StoreDriver {
	case StoreDriverMemory:
		if cfg.IsProduction {
			log.Println("Warning: STORE_DRIVER=memory in production. Data will not survive a restart.")
		}
	case StoreDriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required when STORE_DRIVER=%s", StoreDriverPostgres)
		}
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER '%s', expected %s or %s", cfg.StoreDriver, StoreDriverMemory, StoreDriverPostgres)
	}

	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	ttlStr := v.GetString("WALLET_CACHE_TTL")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil || ttl <= 0 {
		ttl = 5 * time.Minute
		log.Printf("Warning: Invalid value for WALLET_CACHE_TTL ('%s'). Defaulting to %s.\n", ttlStr, ttl)
	}
	cfg.WalletCacheTTL = ttl

	settleStr := v.GetString("LEDGER_REPAIR_SETTLE_WINDOW")
	settle, err := time.ParseDuration(settleStr)
	if err != nil || settle < 0 {
		settle = time.Minute
		log.Printf("Warning: Invalid value for LEDGER_REPAIR_SETTLE_WINDOW ('%s'). Defaulting to %s.\n", settleStr, settle)
	}
	cfg.LedgerRepairSettleWindow = settle

	if cfg.LedgerMaxRetries < 1 {
		log.Printf("Warning: Invalid value for LEDGER_MAX_RETRIES (%d). Defaulting to 5.\n", cfg.LedgerMaxRetries)
		cfg.LedgerMaxRetries = 5
	}
	if len(cfg.DefaultCurrency) != 3 {
		return nil, fmt.Errorf("DEFAULT_CURRENCY must be a 3-letter code, got '%s'", cfg.DefaultCurrency)
	}

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
