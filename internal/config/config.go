package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Data      DataConfig      `yaml:"data" envconfig:"DATA"`
	Database  DatabaseConfig  `yaml:"database" envconfig:"DATABASE"`
	Bootstrap BootstrapConfig `yaml:"bootstrap" envconfig:"BOOTSTRAP"`
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
}

// DataConfig locates the xlsx exports of the upstream tool.
type DataConfig struct {
	// Dir is the directory holding the per-site workbooks
	// (<site>_base.xlsx, <site>_Constrained.xlsx, ...).
	Dir string `yaml:"dir" envconfig:"DIR" validate:"required"`
}

// DatabaseConfig configures the relational source variant.
type DatabaseConfig struct {
	Driver string `yaml:"driver" envconfig:"DRIVER" validate:"oneof=sqlite"`
	DSN    string `yaml:"dsn" envconfig:"DSN"`
	// Program optionally filters rows by the Program column.
	Program string `yaml:"program" envconfig:"PROGRAM"`
	// Tables overrides the default logical-table to SQL-table mapping.
	Tables map[string]string `yaml:"tables" envconfig:"TABLES"`
}

// BootstrapConfig tunes the bootstrap ingestion heuristics.
type BootstrapConfig struct {
	// DivergenceThreshold is the total-variable concentration above which a
	// bootstrap replicate is treated as diverged and dropped. Inherited from
	// the upstream tooling; whether 100 is a principled bound is unclear.
	DivergenceThreshold float64 `yaml:"divergence_threshold" envconfig:"DIVERGENCE_THRESHOLD" validate:"gt=0"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int             `yaml:"port" envconfig:"PORT" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration   `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration   `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration   `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	RateLimit       RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" validate:"gte=0"`
	Burst   int     `yaml:"burst" envconfig:"BURST" validate:"gte=0"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

const envPrefix = "PMFKIT"

// DefaultConfig returns the baseline configuration before file and env
// layers are applied.
func DefaultConfig() Config {
	return Config{
		Data:     DataConfig{Dir: "."},
		Database: DatabaseConfig{Driver: "sqlite"},
		Bootstrap: BootstrapConfig{
			DivergenceThreshold: 100,
		},
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     50,
				Burst:   25,
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "stdout",
			FilePath: "logs/pmfkit.log",
		},
	}
}

// Load builds the configuration: defaults, then the optional yaml file, then
// PMFKIT_* environment variables on top.
func Load() (*Config, error) {
	return LoadFromFile(configFilePath())
}

// LoadFromFile is Load with an explicit yaml path ("" skips the file layer).
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := applyFile(path, &cfg); err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
		}
	}

	// Env variables win over the file layer.
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	return validator.New(validator.WithRequiredStructEnabled()).Struct(c)
}

func applyFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func configFilePath() string {
	if p := os.Getenv(envPrefix + "_CONFIG"); p != "" {
		return p
	}
	return "pmfkit.yaml"
}
