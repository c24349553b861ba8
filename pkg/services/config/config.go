package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/models/domain"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/sentiment"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const EnvPrefix = "FRAUD_ANALYSER"

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Source   SourceConfig   `mapstructure:"source"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Cache    CacheConfig    `mapstructure:"cache"`
	SMTP     SMTPConfig     `mapstructure:"smtp"`
	Archive  ArchiveConfig  `mapstructure:"archive"`
	History  HistoryConfig  `mapstructure:"history"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// SourceConfig points at the review source API
type SourceConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	MaxRetries        int           `mapstructure:"max_retries"`
	RetryBackoff      time.Duration `mapstructure:"retry_backoff"`
	PageSize          int           `mapstructure:"page_size"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Country           string        `mapstructure:"country"`
	Language          string        `mapstructure:"language"`
}

type AnalysisConfig struct {
	PositiveCutoff      float64  `mapstructure:"positive_cutoff"`
	NegativeCutoff      float64  `mapstructure:"negative_cutoff"`
	RiskAlertPercentage float64  `mapstructure:"risk_alert_percentage"`
	DefaultMaxReviews   int      `mapstructure:"default_max_reviews"`
	MaxReviewsLimit     int      `mapstructure:"max_reviews_limit"`
	Keywords            []string `mapstructure:"keywords"`
}

// CacheConfig selects the session cache backend: none, memory or valkey
type CacheConfig struct {
	Backend string        `mapstructure:"backend"`
	TTL     time.Duration `mapstructure:"ttl"`
	Valkey  ValkeyConfig  `mapstructure:"valkey"`
}

type ValkeyConfig struct {
	Address   string `mapstructure:"address"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

type SMTPConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	StartTLS bool   `mapstructure:"starttls"`
}

// ArchiveConfig enables copying rendered reports to an S3 compatible bucket
type ArchiveConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Bucket   string `mapstructure:"bucket"`
	Prefix   string `mapstructure:"prefix"`
	Region   string `mapstructure:"region"`
	Endpoint string `mapstructure:"endpoint"`
}

// HistoryConfig enables persisting analysis summaries to a DuckDB file
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from an optional file and FRAUD_ANALYSER_*
// environment variables, on top of defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("source.base_url", "http://localhost:3000")
	v.SetDefault("source.timeout", "30s")
	v.SetDefault("source.max_retries", 3)
	v.SetDefault("source.retry_backoff", "1s")
	v.SetDefault("source.page_size", 200)
	v.SetDefault("source.requests_per_second", 5.0)
	v.SetDefault("source.country", "us")
	v.SetDefault("source.language", "en")

	v.SetDefault("analysis.positive_cutoff", domain.DefaultPositiveCutoff)
	v.SetDefault("analysis.negative_cutoff", domain.DefaultNegativeCutoff)
	v.SetDefault("analysis.risk_alert_percentage", domain.DefaultRiskAlertPercentage)
	v.SetDefault("analysis.default_max_reviews", 500)
	v.SetDefault("analysis.max_reviews_limit", 10000)
	v.SetDefault("analysis.keywords", sentiment.DefaultKeywords())

	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.ttl", "1h")
	v.SetDefault("cache.valkey.address", "localhost:6379")
	v.SetDefault("cache.valkey.password", "")
	v.SetDefault("cache.valkey.db", 0)
	v.SetDefault("cache.valkey.key_prefix", "fraud-analyser:")

	v.SetDefault("smtp.enabled", false)
	v.SetDefault("smtp.host", "")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.username", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("smtp.from", "")
	v.SetDefault("smtp.starttls", true)

	v.SetDefault("archive.enabled", false)
	v.SetDefault("archive.bucket", "")
	v.SetDefault("archive.prefix", "reports")
	v.SetDefault("archive.region", "us-east-1")
	v.SetDefault("archive.endpoint", "")

	v.SetDefault("history.enabled", false)
	v.SetDefault("history.path", "fraud-analyser.db")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Thresholds returns the configured default thresholds.
func (c *Config) Thresholds() domain.Thresholds {
	return domain.Thresholds{
		PositiveCutoff:      c.Analysis.PositiveCutoff,
		NegativeCutoff:      c.Analysis.NegativeCutoff,
		RiskAlertPercentage: c.Analysis.RiskAlertPercentage,
	}
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}

	if c.Source.BaseURL == "" {
		return fmt.Errorf("source.base_url is required")
	}
	if c.Source.Timeout <= 0 {
		return fmt.Errorf("source.timeout must be positive")
	}
	if c.Source.PageSize < 1 {
		return fmt.Errorf("source.page_size must be at least 1")
	}
	if c.Source.RequestsPerSecond < 0 {
		return fmt.Errorf("source.requests_per_second must not be negative")
	}

	if err := c.Thresholds().Validate(); err != nil {
		return err
	}
	if c.Analysis.MaxReviewsLimit < 1 {
		return fmt.Errorf("analysis.max_reviews_limit must be at least 1")
	}
	if c.Analysis.DefaultMaxReviews < 1 || c.Analysis.DefaultMaxReviews > c.Analysis.MaxReviewsLimit {
		return fmt.Errorf("analysis.default_max_reviews must be between 1 and analysis.max_reviews_limit")
	}

	switch c.Cache.Backend {
	case "none", "memory":
	case "valkey":
		if c.Cache.Valkey.Address == "" {
			return fmt.Errorf("cache.valkey.address is required when cache.backend is valkey")
		}
	default:
		return fmt.Errorf("cache.backend must be one of none, memory, valkey")
	}

	if c.SMTP.Enabled {
		if c.SMTP.Host == "" {
			return fmt.Errorf("smtp.host is required when smtp is enabled")
		}
		if c.SMTP.From == "" {
			return fmt.Errorf("smtp.from is required when smtp is enabled")
		}
	}

	if c.Archive.Enabled && c.Archive.Bucket == "" {
		return fmt.Errorf("archive.bucket is required when archive is enabled")
	}

	if c.History.Enabled && c.History.Path == "" {
		return fmt.Errorf("history.path is required when history is enabled")
	}

	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("logging.format must be json or console")
	}
	return nil
}
