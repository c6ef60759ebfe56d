// Package config loads moodshelf settings from defaults, an optional YAML
// file and the environment, in that order of precedence.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/poiesic/moodshelf/ai"
	"github.com/poiesic/moodshelf/cluster"
)

// PathEnvVar names the environment variable holding the config file path.
const PathEnvVar = "MOODSHELF_CONFIG"

// EnvPrefix is the prefix of environment overrides, e.g.
// MOODSHELF_AI_MODEL or MOODSHELF_CLUSTER_RETRY_DELAY.
const EnvPrefix = "MOODSHELF_"

// TokenEnvVar is read as the embedding token when no other token is set.
const TokenEnvVar = "HF_TOKEN"

// Config is the complete moodshelf configuration.
type Config struct {
	Database DatabaseConfig `koanf:"database"`
	AI       AIConfig       `koanf:"ai"`
	Cluster  ClusterConfig  `koanf:"cluster"`
	Logging  LoggingConfig  `koanf:"logging"`
	Metrics  MetricsConfig  `koanf:"metrics"`
}

// DatabaseConfig locates the badger store.
type DatabaseConfig struct {
	Path     string `koanf:"path"`
	InMemory bool   `koanf:"in_memory"`
}

// AIConfig selects the embedding provider.
type AIConfig struct {
	Provider string        `koanf:"provider" validate:"oneof=huggingface openai"`
	Host     string        `koanf:"host" validate:"required"`
	Model    string        `koanf:"model" validate:"required"`
	Token    string        `koanf:"token"`
	Timeout  time.Duration `koanf:"timeout" validate:"gte=0"`
}

// ClusterConfig tunes keyword clustering.
type ClusterConfig struct {
	Threshold  float64       `koanf:"threshold" validate:"gte=-1,lte=1"`
	RetryDelay time.Duration `koanf:"retry_delay" validate:"gte=0"`
	PoolSize   int           `koanf:"pool_size" validate:"gte=0"` // 0 = NumCPU/2
}

// LoggingConfig configures the default slog handler.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=text json"`
}

// MetricsConfig controls metric export.
type MetricsConfig struct {
	// Textfile, when set, receives the registry in Prometheus text format
	// when the CLI exits.
	Textfile string `koanf:"textfile"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "moodshelf.db",
		},
		AI: AIConfig{
			Provider: ai.ProviderHuggingFace,
			Host:     ai.DefaultHuggingFaceHost,
			Model:    ai.DefaultHuggingFaceModel,
			Timeout:  ai.DefaultTimeout,
		},
		Cluster: ClusterConfig{
			Threshold:  cluster.DefaultThreshold,
			RetryDelay: cluster.DefaultRetryDelay,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration. path names a YAML file; when empty the
// file named by MOODSHELF_CONFIG is used, if any.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = os.Getenv(PathEnvVar)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	hfToken := env.Provider(TokenEnvVar, ".", func(key string) string {
		if key == TokenEnvVar {
			return "ai.token"
		}
		return ""
	})
	if err := k.Load(hfToken, nil); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", TokenEnvVar, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// envMappings maps lowercased variable names, without the prefix, to
// configuration keys.
var envMappings = map[string]string{
	"db_path":             "database.path",
	"db_in_memory":        "database.in_memory",
	"database_path":       "database.path",
	"database_in_memory":  "database.in_memory",
	"ai_provider":         "ai.provider",
	"ai_host":             "ai.host",
	"ai_model":            "ai.model",
	"ai_token":            "ai.token",
	"ai_timeout":          "ai.timeout",
	"cluster_threshold":   "cluster.threshold",
	"cluster_retry_delay": "cluster.retry_delay",
	"cluster_pool_size":   "cluster.pool_size",
	"log_level":           "logging.level",
	"log_format":          "logging.format",
	"logging_level":       "logging.level",
	"logging_format":      "logging.format",
	"metrics_textfile":    "metrics.textfile",
}

func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	// Unmapped variables are skipped
	return envMappings[key]
}

// Validate checks field ranges and enumerations.
func (c *Config) Validate() error {
	c.AI.Provider = strings.ToLower(strings.TrimSpace(c.AI.Provider))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if !c.Database.InMemory && strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("database.path is required unless database.in_memory is set")
	}
	return validator.New().Struct(c)
}

// AIConfig converts the embedding section to an ai.Config.
func (c *Config) AIConfig() *ai.Config {
	return ai.NewConfig(
		ai.WithProvider(c.AI.Provider),
		ai.WithHost(c.AI.Host),
		ai.WithModel(c.AI.Model),
		ai.WithToken(c.AI.Token),
		ai.WithTimeout(c.AI.Timeout),
	)
}

// ClusterOptions converts the cluster section to clusterer options.
func (c *Config) ClusterOptions() []cluster.Option {
	opts := []cluster.Option{
		cluster.WithThreshold(c.Cluster.Threshold),
		cluster.WithRetryDelay(c.Cluster.RetryDelay),
	}
	if c.Cluster.PoolSize > 0 {
		opts = append(opts, cluster.WithPoolSize(c.Cluster.PoolSize))
	}
	return opts
}

// SlogLevel parses the logging level.
func (l LoggingConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}
