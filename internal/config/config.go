// Package config provides configuration management using Viper
package config

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// Environment types
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// LogLevel represents the logging level for the application
type LogLevel string

// Available log levels
const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// Config holds all configuration parameters for the application
type Config struct {
	// Application settings
	AppName     string   `mapstructure:"appname"`
	AppPort     string   `mapstructure:"appport"`
	Environment string   `mapstructure:"environment"`
	LogLevel    LogLevel `mapstructure:"loglevel"`

	// File paths
	StoragePath  string `mapstructure:"storagepath"`
	DatabaseName string `mapstructure:"-"` // Derived from other settings
	GeoDBPath    string `mapstructure:"geodbpath"`

	// Logging settings
	LogsDirectory    string `mapstructure:"logsdir"`
	LogsMaxSizeInMb  int    `mapstructure:"logsmaxsizeinmb"`
	LogsMaxBackups   int    `mapstructure:"logsmaxbackups"`
	LogsMaxAgeInDays int    `mapstructure:"logsmaxageindays"`

	// Database settings
	DatabaseMaxOpenConns int `mapstructure:"dbmaxopenconns"`
	DatabaseMaxIdleConns int `mapstructure:"dbmaxidleconns"`

	// Insight provider settings
	OpenRouterAPIKey       string `mapstructure:"openrouterapikey"`
	OpenRouterBaseURL      string `mapstructure:"openrouterbaseurl"`
	InsightModel           string `mapstructure:"insightmodel"`
	InsightTimeoutSeconds  int    `mapstructure:"insighttimeoutseconds"`
	InsightRefreshInterval int    `mapstructure:"insightrefreshintervalseconds"`

	// Tracking settings
	TrackingQueueSize int `mapstructure:"trackingqueuesize"`

	// Data retention settings
	EventsRetentionDays int `mapstructure:"eventsretentiondays"`
}

var (
	cfg  *Config
	once sync.Once
)

// GetConfig returns the application configuration
func GetConfig() *Config {
	once.Do(func() {
		v := viper.New()

		// Set defaults
		v.SetDefault("appname", "maison")
		v.SetDefault("appport", "3000")
		v.SetDefault("environment", Development)
		v.SetDefault("loglevel", string(LogLevelDebug))
		v.SetDefault("storagepath", "storage")
		v.SetDefault("geodbpath", "")
		v.SetDefault("logsdir", "logs")
		v.SetDefault("logsmaxsizeinmb", 20)
		v.SetDefault("logsmaxbackups", 10)
		v.SetDefault("logsmaxageindays", 30)
		v.SetDefault("dbmaxopenconns", 0)
		v.SetDefault("dbmaxidleconns", 0)
		v.SetDefault("openrouterbaseurl", "https://openrouter.ai/api/v1")
		v.SetDefault("insightmodel", "meta-llama/llama-3.3-70b-instruct:free")
		v.SetDefault("insighttimeoutseconds", 30)
		v.SetDefault("insightrefreshintervalseconds", 0) // 0 disables the scheduled refresh
		v.SetDefault("trackingqueuesize", 1024)
		v.SetDefault("eventsretentiondays", 90)

		// Bind environment variables
		v.BindEnv("appname", "MAISON_APP_NAME")
		v.BindEnv("appport", "MAISON_APP_PORT")
		v.BindEnv("environment", "MAISON_ENV")
		v.BindEnv("loglevel", "MAISON_LOG_LEVEL")
		v.BindEnv("storagepath", "MAISON_STORAGE_PATH")
		v.BindEnv("geodbpath", "MAISON_GEO_DB_PATH")
		v.BindEnv("logsdir", "MAISON_LOGS_DIR")
		v.BindEnv("logsmaxsizeinmb", "MAISON_LOGS_MAX_SIZE_IN_MB")
		v.BindEnv("logsmaxbackups", "MAISON_LOGS_MAX_BACKUPS")
		v.BindEnv("logsmaxageindays", "MAISON_LOGS_MAX_AGE_IN_DAYS")
		v.BindEnv("dbmaxopenconns", "MAISON_DB_MAX_OPEN_CONNS")
		v.BindEnv("dbmaxidleconns", "MAISON_DB_MAX_IDLE_CONNS")
		v.BindEnv("openrouterapikey", "OPENROUTER_API_KEY")
		v.BindEnv("openrouterbaseurl", "MAISON_OPENROUTER_BASE_URL")
		v.BindEnv("insightmodel", "MAISON_INSIGHT_MODEL")
		v.BindEnv("insighttimeoutseconds", "MAISON_INSIGHT_TIMEOUT_SECONDS")
		v.BindEnv("insightrefreshintervalseconds", "MAISON_INSIGHT_REFRESH_INTERVAL_SECONDS")
		v.BindEnv("trackingqueuesize", "MAISON_TRACKING_QUEUE_SIZE")
		v.BindEnv("eventsretentiondays", "MAISON_EVENTS_RETENTION_DAYS")

		cfg = &Config{}
		if err := v.Unmarshal(cfg); err != nil {
			log.Fatalf("config: failed to unmarshal configuration: %v", err)
		}

		// Validate
		if err := cfg.validate(); err != nil {
			log.Fatalf("config: invalid configuration: %v", err)
		}

		// Set derived values
		cfg.DatabaseName = cfg.GetDatabasePath()
	})
	return cfg
}

// validate checks the configuration for errors
func (c *Config) validate() error {
	validEnvs := map[string]bool{
		Development: true,
		Production:  true,
		Test:        true,
	}
	if !validEnvs[c.Environment] {
		return fmt.Errorf("invalid environment: %s", c.Environment)
	}

	if c.InsightTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid insight timeout: %d", c.InsightTimeoutSeconds)
	}

	if c.TrackingQueueSize <= 0 {
		return fmt.Errorf("invalid tracking queue size: %d", c.TrackingQueueSize)
	}

	return nil
}

// GetDatabasePath returns the appropriate database path based on environment
func (c *Config) GetDatabasePath() string {
	if c.DatabaseName == "" {
		c.DatabaseName = filepath.Join(c.StoragePath,
			fmt.Sprintf("%s-%s.db", c.AppName, c.Environment))
	}
	return c.DatabaseName
}

// IsDevelopment returns true if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.Environment == Development
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}

// IsTest returns true if the environment is test
func (c *Config) IsTest() bool {
	return c.Environment == Test
}

// GetInsightTimeout returns the bounded timeout for provider calls.
func (c *Config) GetInsightTimeout() time.Duration {
	return time.Duration(c.InsightTimeoutSeconds) * time.Second
}

// GetMaxOpenConns returns the appropriate MaxOpenConns value based on environment
// If explicitly set via env var, uses that value. Otherwise:
// - Test: 1 (required for test stability)
// - Development/Production: 10 (allows concurrent reads for snapshot queries)
func (c *Config) GetMaxOpenConns() int {
	if c.DatabaseMaxOpenConns > 0 {
		return c.DatabaseMaxOpenConns
	}

	if c.Environment == Test {
		return 1
	}

	return 10
}

// GetMaxIdleConns returns the appropriate MaxIdleConns value based on environment
func (c *Config) GetMaxIdleConns() int {
	if c.DatabaseMaxIdleConns > 0 {
		return c.DatabaseMaxIdleConns
	}

	if c.Environment == Test {
		return 1
	}

	return 5
}

// Reset clears the cached configuration; intended for tests.
func Reset() {
	once = sync.Once{}
	cfg = nil
}
