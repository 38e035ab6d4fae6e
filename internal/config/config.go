// Package config handles configuration loading for the multipart inspector.
//
// Configuration is loaded from a YAML file with support for environment
// variable expansion (${VAR} or $VAR syntax). This allows sensitive values
// like database credentials to be injected at runtime.
//
// # Configuration Sections
//
//   - log: level and output format
//   - limits: body size and multipart nesting bounds
//   - storage: optional MongoDB archive for decoded parts
//
// # Example Configuration
//
//	log:
//	  level: info
//	  format: json
//
//	limits:
//	  maxBodyBytes: 10485760
//	  maxDepth: 4
//
//	storage:
//	  mongodb:
//	    enabled: true
//	    uri: ${MONGODB_URI}
//	    database: mimeparts
//
// See [Load] for loading configuration from a file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Limits  LimitsConfig  `yaml:"limits"`
	Storage StorageConfig `yaml:"storage"`
}

// LogConfig holds logger settings
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level"`
	// Format is text or json
	Format string `yaml:"format"`
}

// LimitsConfig bounds the work done per body
type LimitsConfig struct {
	MaxBodyBytes int64 `yaml:"maxBodyBytes"`
	// MaxDecompressedBytes bounds gzip-encoded part bodies
	MaxDecompressedBytes int64 `yaml:"maxDecompressedBytes"`
	MaxDepth             int   `yaml:"maxDepth"`
}

// StorageConfig holds database settings
type StorageConfig struct {
	MongoDB MongoDBConfig `yaml:"mongodb"`
}

// MongoDBConfig holds MongoDB connection settings
type MongoDBConfig struct {
	Enabled  bool   `yaml:"enabled"`
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
	GridFS   struct {
		BucketName     string `yaml:"bucketName"`
		ChunkSizeBytes int32  `yaml:"chunkSizeBytes"`
	} `yaml:"gridfs"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse builds configuration from YAML bytes
func Parse(data []byte) (*Config, error) {
	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when no file is given
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// SlogLevel maps the configured level onto slog
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Limits.MaxBodyBytes == 0 {
		c.Limits.MaxBodyBytes = 32 << 20
	}
	if c.Limits.MaxDecompressedBytes == 0 {
		c.Limits.MaxDecompressedBytes = 64 << 20
	}
	if c.Limits.MaxDepth == 0 {
		c.Limits.MaxDepth = 8
	}
	if c.Storage.MongoDB.Database == "" {
		c.Storage.MongoDB.Database = "mimeparts"
	}
	if c.Storage.MongoDB.GridFS.BucketName == "" {
		c.Storage.MongoDB.GridFS.BucketName = "parts"
	}
	if c.Storage.MongoDB.GridFS.ChunkSizeBytes == 0 {
		c.Storage.MongoDB.GridFS.ChunkSizeBytes = 261120 // 255KB
	}
}

func (c *Config) validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level must be 'debug', 'info', 'warn', or 'error', got '%s'", c.Log.Level)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be 'text' or 'json', got '%s'", c.Log.Format)
	}

	if c.Limits.MaxBodyBytes < 0 {
		return fmt.Errorf("limits.maxBodyBytes must not be negative")
	}
	if c.Limits.MaxDecompressedBytes < 0 {
		return fmt.Errorf("limits.maxDecompressedBytes must not be negative")
	}
	if c.Limits.MaxDepth < 0 {
		return fmt.Errorf("limits.maxDepth must not be negative")
	}

	if c.Storage.MongoDB.Enabled && c.Storage.MongoDB.URI == "" {
		return fmt.Errorf("storage.mongodb.uri is required when storage.mongodb.enabled is true")
	}

	return nil
}
