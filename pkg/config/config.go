package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool
	JWTSecret    string

	// Upstream rate provider
	FreecurrencyAPIURL  string
	FreecurrencyAPIKey  string
	FreecurrencyTimeout time.Duration

	// Background rate refresh
	RateUpdateInterval time.Duration

	// Per-IP limit for the conversion endpoint, formatted like "60-M".
	ConvertRateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("FREECURRENCY_API_URL", "https://api.freecurrencyapi.com/v1")
	viper.SetDefault("FREECURRENCY_API_KEY", "")
	viper.SetDefault("FREECURRENCY_TIMEOUT", "10s")
	viper.SetDefault("RATE_UPDATE_INTERVAL", "24h")
	viper.SetDefault("CONVERT_RATE_LIMIT", "60-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.FreecurrencyAPIURL = viper.GetString("FREECURRENCY_API_URL")
	cfg.FreecurrencyAPIKey = viper.GetString("FREECURRENCY_API_KEY")
	if cfg.FreecurrencyAPIKey == "" {
		log.Println("Warning: FREECURRENCY_API_KEY not set. Provider sync will not function.")
	}

	timeoutStr := viper.GetString("FREECURRENCY_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		timeout = 10 * time.Second
		log.Printf("Warning: Invalid value for FREECURRENCY_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, timeout)
	}
	cfg.FreecurrencyTimeout = timeout

	intervalStr := viper.GetString("RATE_UPDATE_INTERVAL")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		interval = 24 * time.Hour
		log.Printf("Warning: Invalid value for RATE_UPDATE_INTERVAL ('%s'). Defaulting to %s.\n", intervalStr, interval)
	}
	cfg.RateUpdateInterval = interval

	cfg.ConvertRateLimit = viper.GetString("CONVERT_RATE_LIMIT")

	return cfg, nil
}
