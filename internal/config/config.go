package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"fundcli/pkg/contracts/domain"
)

// Config represents the complete application configuration
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format      string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output      string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/fundcli.log"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT" default:"false"`
}

// AnalysisConfig contains analysis pipeline configuration
type AnalysisConfig struct {
	Universe       string `yaml:"universe" envconfig:"UNIVERSE" default:"Global"`
	MaxConcurrency int    `yaml:"max_concurrency" envconfig:"MAX_CONCURRENCY" default:"4"`
	OutputFormat   string `yaml:"output_format" envconfig:"OUTPUT_FORMAT" default:"csv"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	BaseDir    string `yaml:"base_dir" envconfig:"BASE_DIR"`
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"reports"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
}

// Load loads configuration from environment variables and an optional
// config file. An empty configFile falls back to the default locations.
func Load(configFile string) (*Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process("FUND", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Load from config file if exists
	if configFile == "" {
		configFile = getConfigFilePath()
	}
	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			fileConfig, err := loadFromFile(configFile)
			if err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
			cfg = mergeConfigs(*fileConfig, cfg)
		}
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config. A field from the file
// wins only when the env-loaded value still equals the built-in default,
// so explicit environment overrides keep precedence.
func mergeConfigs(fileConfig, envConfig Config) Config {
	def := Default()

	mergeString := func(env, file, fallback string) string {
		if env == fallback && file != "" {
			return file
		}
		return env
	}
	mergeInt := func(env, file, fallback int) int {
		if env == fallback && file != 0 {
			return file
		}
		return env
	}

	envConfig.Logging.Level = mergeString(envConfig.Logging.Level, fileConfig.Logging.Level, def.Logging.Level)
	envConfig.Logging.Format = mergeString(envConfig.Logging.Format, fileConfig.Logging.Format, def.Logging.Format)
	envConfig.Logging.Output = mergeString(envConfig.Logging.Output, fileConfig.Logging.Output, def.Logging.Output)
	envConfig.Logging.FilePath = mergeString(envConfig.Logging.FilePath, fileConfig.Logging.FilePath, def.Logging.FilePath)
	if fileConfig.Logging.Development {
		envConfig.Logging.Development = true
	}

	envConfig.Analysis.Universe = mergeString(envConfig.Analysis.Universe, fileConfig.Analysis.Universe, def.Analysis.Universe)
	envConfig.Analysis.MaxConcurrency = mergeInt(envConfig.Analysis.MaxConcurrency, fileConfig.Analysis.MaxConcurrency, def.Analysis.MaxConcurrency)
	envConfig.Analysis.OutputFormat = mergeString(envConfig.Analysis.OutputFormat, fileConfig.Analysis.OutputFormat, def.Analysis.OutputFormat)

	envConfig.Paths.BaseDir = mergeString(envConfig.Paths.BaseDir, fileConfig.Paths.BaseDir, def.Paths.BaseDir)
	envConfig.Paths.DataDir = mergeString(envConfig.Paths.DataDir, fileConfig.Paths.DataDir, def.Paths.DataDir)
	envConfig.Paths.ReportsDir = mergeString(envConfig.Paths.ReportsDir, fileConfig.Paths.ReportsDir, def.Paths.ReportsDir)
	envConfig.Paths.LogsDir = mergeString(envConfig.Paths.LogsDir, fileConfig.Paths.LogsDir, def.Paths.LogsDir)

	return envConfig
}

// validate validates the configuration
func (c *Config) validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	switch c.Logging.Output {
	case "console", "file", "both":
	default:
		return fmt.Errorf("invalid log output: %s", c.Logging.Output)
	}

	if c.Logging.Output != "console" && c.Logging.FilePath == "" {
		return fmt.Errorf("log file path required for output %q", c.Logging.Output)
	}

	if !domain.IsValidUniverse(c.Analysis.Universe) {
		return fmt.Errorf("invalid universe: %s", c.Analysis.Universe)
	}

	if c.Analysis.MaxConcurrency < 1 {
		return fmt.Errorf("max concurrency must be at least 1, got %d", c.Analysis.MaxConcurrency)
	}

	switch c.Analysis.OutputFormat {
	case "csv", "json":
	default:
		return fmt.Errorf("invalid output format: %s", c.Analysis.OutputFormat)
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	// Check for config file in common locations
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:       "info",
			Format:      "json",
			Output:      "console",
			FilePath:    "logs/fundcli.log",
			Development: false,
		},
		Analysis: AnalysisConfig{
			Universe:       "Global",
			MaxConcurrency: 4,
			OutputFormat:   "csv",
		},
		Paths: PathsConfig{
			DataDir:    "data",
			ReportsDir: "reports",
			LogsDir:    "logs",
		},
	}
}
