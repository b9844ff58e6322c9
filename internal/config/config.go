// Package config loads the analyzer configuration from command line flags and
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Stats backend constants
	StatsBackendFile  = "file"
	StatsBackendRedis = "redis"

	// Default values
	DefaultStrategy    = "text"
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB
	DefaultStatsFile   = "usage_stats.json"
	DefaultRedisAddr   = "127.0.0.1:6379"
)

// Config holds all configuration for the report analyzer
type Config struct {
	// Extraction configuration
	Strategy    string
	MaxFileSize int64 // Maximum PDF file size in bytes

	// Output configuration
	CSVPath   string // NLDFT series export target, empty disables
	ShowStats bool   // print cumulative usage after the analysis

	// Usage stats configuration
	StatsBackend string // "file" or "redis"
	StatsFile    string
	RedisAddr    string

	// Application configuration
	Version  string
	LogLevel string
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Strategy:     DefaultStrategy,
		MaxFileSize:  DefaultMaxFileSize,
		StatsBackend: StatsBackendFile,
		StatsFile:    DefaultStatsFile,
		RedisAddr:    DefaultRedisAddr,
		Version:      "1.0.0",
		LogLevel:     DefaultLogLevel,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("PORESIGHT")
	viper.AutomaticEnv()

	viper.SetDefault("strategy", cfg.Strategy)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
	viper.SetDefault("csv", cfg.CSVPath)
	viper.SetDefault("stats", cfg.ShowStats)
	viper.SetDefault("statsbackend", cfg.StatsBackend)
	viper.SetDefault("statsfile", cfg.StatsFile)
	viper.SetDefault("redisaddr", cfg.RedisAddr)
	viper.SetDefault("loglevel", cfg.LogLevel)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("strategy", cfg.Strategy, "Extraction strategy: 'text' for linearized-text scanning, 'table' for table geometry")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
	pflag.String("csv", cfg.CSVPath, "Write the NLDFT series to this CSV file")
	pflag.Bool("stats", cfg.ShowStats, "Print cumulative usage statistics after the analysis")
	pflag.String("statsbackend", cfg.StatsBackend, "Usage stats backend: 'file' or 'redis'")
	pflag.String("statsfile", cfg.StatsFile, "Usage stats file path (file backend)")
	pflag.String("redisaddr", cfg.RedisAddr, "Redis address as host:port (redis backend)")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("strategy", pflag.Lookup("strategy"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
	_ = viper.BindPFlag("csv", pflag.Lookup("csv"))
	_ = viper.BindPFlag("stats", pflag.Lookup("stats"))
	_ = viper.BindPFlag("statsbackend", pflag.Lookup("statsbackend"))
	_ = viper.BindPFlag("statsfile", pflag.Lookup("statsfile"))
	_ = viper.BindPFlag("redisaddr", pflag.Lookup("redisaddr"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <report.pdf>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nPoresight - extracts porosity measurements from gas-adsorption PDF reports\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s report.pdf                        # text strategy (default)\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --strategy=table report.pdf       # table-geometry strategy\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --csv=series.csv report.pdf       # also export the NLDFT series\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  PORESIGHT_STRATEGY     Extraction strategy\n")
		fmt.Fprintf(os.Stderr, "  PORESIGHT_MAXFILESIZE  Maximum file size\n")
		fmt.Fprintf(os.Stderr, "  PORESIGHT_STATSBACKEND Usage stats backend\n")
		fmt.Fprintf(os.Stderr, "  PORESIGHT_STATSFILE    Usage stats file path\n")
		fmt.Fprintf(os.Stderr, "  PORESIGHT_REDISADDR    Redis address\n")
		fmt.Fprintf(os.Stderr, "  PORESIGHT_LOGLEVEL     Log level\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Strategy = viper.GetString("strategy")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
	cfg.CSVPath = viper.GetString("csv")
	cfg.ShowStats = viper.GetBool("stats")
	cfg.StatsBackend = viper.GetString("statsbackend")
	cfg.StatsFile = viper.GetString("statsfile")
	cfg.RedisAddr = viper.GetString("redisaddr")
	cfg.LogLevel = viper.GetString("loglevel")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Strategy != "text" && c.Strategy != "table" {
		return errors.New("strategy must be either 'text' or 'table'")
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	switch c.StatsBackend {
	case StatsBackendFile:
		if c.StatsFile == "" {
			return errors.New("stats file path cannot be empty")
		}
	case StatsBackendRedis:
		if c.RedisAddr == "" {
			return errors.New("redis address cannot be empty")
		}
	default:
		return errors.New("stats backend must be either 'file' or 'redis'")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Strategy: %s, MaxFileSize: %d, StatsBackend: %s, LogLevel: %s}",
		c.Strategy, c.MaxFileSize, c.StatsBackend, c.LogLevel)
}
