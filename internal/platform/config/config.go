package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	JWTSecret      string
	MigrationsPath string

	// Per-account serialization. An empty RedisAddr selects the in-process locker.
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	AccountLockTTL time.Duration

	// Business date and ledger behaviour
	TenantTimezone          *time.Location
	ChargeCatchUpMaxPeriods int

	RateLimit          string // ulule limiter format, e.g. "100-M"
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("ACCOUNT_LOCK_TTL", "30s")
	viper.SetDefault("TENANT_TIMEZONE", "UTC")
	viper.SetDefault("CHARGE_CATCH_UP_MAX_PERIODS", 120)
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	lockTTLStr := viper.GetString("ACCOUNT_LOCK_TTL")
	lockTTL, err := time.ParseDuration(lockTTLStr)
	if err != nil || lockTTL <= 0 {
		lockTTL = 30 * time.Second
		log.Printf("Warning: Invalid value for ACCOUNT_LOCK_TTL ('%s'). Defaulting to %s.\n", lockTTLStr, lockTTL.String())
	}

	tzName := viper.GetString("TENANT_TIMEZONE")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		loc = time.UTC
		log.Printf("Warning: Unknown TENANT_TIMEZONE ('%s'). Defaulting to UTC.\n", tzName)
	}

	maxPeriods := viper.GetInt("CHARGE_CATCH_UP_MAX_PERIODS")
	if maxPeriods <= 0 {
		maxPeriods = 120
		log.Printf("Warning: CHARGE_CATCH_UP_MAX_PERIODS must be positive. Defaulting to %d.\n", maxPeriods)
	}

	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	if cfg.RedisAddr == "" {
		log.Println("Warning: REDIS_ADDR not set. Account locks are held in process and do not span replicas.")
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.RedisPassword = viper.GetString("REDIS_PASSWORD")
	cfg.RedisDB = viper.GetInt("REDIS_DB")
	cfg.AccountLockTTL = lockTTL
	cfg.TenantTimezone = loc
	cfg.ChargeCatchUpMaxPeriods = maxPeriods
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitOrigins(viper.GetString("CORS_ALLOWED_ORIGINS"))

	return cfg, nil
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
