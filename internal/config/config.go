// Package config holds the settings of the long-running servers (HTTP and MCP).
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/pushdown/pkg/adapters/redis"
	"github.com/aretw0/pushdown/pkg/persistence/middleware"
	"github.com/aretw0/pushdown/pkg/runner"
)

// Default values used when neither the file nor the flags set a field.
const (
	DefaultAddr     = ":8080"
	DefaultMaxSteps = 100000
)

// EnvEncryptionKey supplies the active encryption key outside the file.
const EnvEncryptionKey = "PUSHDOWN_ENCRYPTION_KEY"

// ServeConfig is the structure of the optional serve.yaml file.
type ServeConfig struct {
	Addr         string      `yaml:"addr"`
	MaxSteps     int         `yaml:"max_steps"`
	MaxInputSize int         `yaml:"max_input_size"`
	Metrics      bool        `yaml:"metrics"`
	Redis        RedisConfig `yaml:"redis"`

	// Encryption seals cached verdicts at rest. Keys are base64-encoded
	// 32-byte AES keys; EnvEncryptionKey overrides Key.
	Encryption EncryptionConfig `yaml:"encryption"`
}

// EncryptionConfig lists the verdict encryption keys.
type EncryptionConfig struct {
	Key          string   `yaml:"key"`
	FallbackKeys []string `yaml:"fallback_keys"`
}

// RedisConfig enables the Redis verdict cache when Addr is set.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
	Prefix   string        `yaml:"prefix"`
}

// Default returns the configuration used without a file.
func Default() ServeConfig {
	return ServeConfig{
		Addr:         DefaultAddr,
		MaxSteps:     DefaultMaxSteps,
		MaxInputSize: runner.MaxInputSize(),
		Metrics:      true,
		Redis: RedisConfig{
			Prefix: redis.DefaultPrefix,
		},
	}
}

// Load reads path on top of Default, then applies EnvEncryptionKey.
// An empty path skips the file.
func Load(path string) (ServeConfig, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	if key := os.Getenv(EnvEncryptionKey); key != "" {
		cfg.Encryption.Key = key
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values a file or flag may have set.
func (c ServeConfig) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr must not be empty"))
	}
	if c.MaxSteps < 0 {
		errs = append(errs, fmt.Errorf("max_steps must not be negative (got %d)", c.MaxSteps))
	}
	if c.MaxInputSize <= 0 {
		errs = append(errs, fmt.Errorf("max_input_size must be positive (got %d)", c.MaxInputSize))
	}
	if c.Redis.TTL < 0 {
		errs = append(errs, fmt.Errorf("redis.ttl must not be negative (got %s)", c.Redis.TTL))
	}
	if _, err := c.EncryptionKeys(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// EncryptionKeys decodes the encryption keys. It returns nil when
// encryption is off.
func (c ServeConfig) EncryptionKeys() (*middleware.EncryptionConfig, error) {
	if c.Encryption.Key == "" {
		if len(c.Encryption.FallbackKeys) > 0 {
			return nil, errors.New("encryption.fallback_keys requires encryption.key")
		}
		return nil, nil
	}

	active, err := middleware.ParseKey(c.Encryption.Key)
	if err != nil {
		return nil, fmt.Errorf("encryption.key: %w", err)
	}
	keys := &middleware.EncryptionConfig{ActiveKey: active}
	for i, s := range c.Encryption.FallbackKeys {
		k, err := middleware.ParseKey(s)
		if err != nil {
			return nil, fmt.Errorf("encryption.fallback_keys[%d]: %w", i, err)
		}
		keys.FallbackKeys = append(keys.FallbackKeys, k)
	}
	return keys, nil
}

// UsesRedis reports whether verdicts should be cached in Redis.
func (c ServeConfig) UsesRedis() bool {
	return c.Redis.Addr != ""
}
