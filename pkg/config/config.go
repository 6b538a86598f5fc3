package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// AllowedOrigins configures CORS for browser-based admin tools.
	AllowedOrigins []string

	// RateLimit is a ulule/limiter formatted rate, e.g. "100-M".
	RateLimit string

	// RequireConfiguredPeriods rejects postings dated outside any configured
	// fiscal period. Off by default so tenants without period configuration
	// keep working.
	RequireConfiguredPeriods bool

	// FiscalYearStartMonth (1-12) sets the first month of the fiscal year.
	FiscalYearStartMonth int

	// JournalEntryPrefix seeds the entry number prefix when no settings row
	// exists yet.
	JournalEntryPrefix string
}

// LoadConfig loads configuration from environment variables, reading a .env
// file first if one is present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("REQUIRE_CONFIGURED_PERIODS", false)
	viper.SetDefault("FISCAL_YEAR_START_MONTH", 1)
	viper.SetDefault("JOURNAL_ENTRY_PREFIX", "JE")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:              viper.GetString("PGSQL_URL"),
		Port:                     viper.GetString("PORT"),
		IsProduction:             viper.GetBool("IS_PRODUCTION"),
		AllowedOrigins:           viper.GetStringSlice("ALLOWED_ORIGINS"),
		RateLimit:                viper.GetString("RATE_LIMIT"),
		RequireConfiguredPeriods: viper.GetBool("REQUIRE_CONFIGURED_PERIODS"),
		FiscalYearStartMonth:     viper.GetInt("FISCAL_YEAR_START_MONTH"),
		JournalEntryPrefix:       viper.GetString("JOURNAL_ENTRY_PREFIX"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.FiscalYearStartMonth < 1 || cfg.FiscalYearStartMonth > 12 {
		return nil, fmt.Errorf("FISCAL_YEAR_START_MONTH must be 1-12, got %d", cfg.FiscalYearStartMonth)
	}
	return cfg, nil
}
