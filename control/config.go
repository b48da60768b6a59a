// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Configuration for pools, logging, metrics and the churn tool.
// Sources, lowest precedence first: defaults, YAML file, DISPOSIFY_* env.

package control

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/momentics/disposify/api"
	"github.com/momentics/disposify/disposable"
	"github.com/momentics/disposify/pool"
)

// EnvPrefix prefixes every environment override, e.g.
// DISPOSIFY_POOL_RING_CAPACITY.
const EnvPrefix = "DISPOSIFY"

// Config is the full configuration tree.
type Config struct {
	Pool    PoolConfig    `mapstructure:"pool"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Churn   ChurnConfig   `mapstructure:"churn"`
}

// PoolConfig sizes the record free-list.
type PoolConfig struct {
	RingCapacity int `mapstructure:"ring_capacity"`
}

// LogConfig selects the zap logger.
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// MetricsConfig controls the prometheus exposition.
type MetricsConfig struct {
	Namespace string `mapstructure:"namespace"`
	Addr      string `mapstructure:"addr"` // empty disables the HTTP endpoint
}

// ChurnConfig drives cmd/disposify-churn.
type ChurnConfig struct {
	Workers    int `mapstructure:"workers"`
	Iterations int `mapstructure:"iterations"`
	Handlers   int `mapstructure:"handlers"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("pool.ring_capacity", pool.DefaultRingCapacity)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("metrics.namespace", "disposify")
	v.SetDefault("metrics.addr", "")
	v.SetDefault("churn.workers", 8)
	v.SetDefault("churn.iterations", 100000)
	v.SetDefault("churn.handlers", 4)
}

// LoadConfig reads path (optional; empty means defaults and environment
// only) and validates the result.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	if c.Pool.RingCapacity <= 0 {
		errs = append(errs, api.NewError(api.ErrCodeInvalidArgument, "pool.ring_capacity must be positive").
			WithContext("value", c.Pool.RingCapacity))
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, api.NewError(api.ErrCodeInvalidArgument, "log.level is not a zap level").
			WithContext("value", c.Log.Level))
	}
	if c.Churn.Workers <= 0 || c.Churn.Iterations < 0 || c.Churn.Handlers <= 0 {
		errs = append(errs, api.NewError(api.ErrCodeInvalidArgument, "churn settings out of range").
			WithContext("workers", c.Churn.Workers).
			WithContext("iterations", c.Churn.Iterations).
			WithContext("handlers", c.Churn.Handlers))
	}
	return errors.Join(errs...)
}

// NewLogger builds the zap logger described by c.
func (c LogConfig) NewLogger() (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", c.Level, api.ErrInvalidArgument)
	}
	zc := zap.NewProductionConfig()
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}

// NewPool builds a record pool from c.
func (c PoolConfig) NewPool(log *zap.Logger) *disposable.Pool {
	return disposable.NewPool(
		disposable.WithRingCapacity(c.RingCapacity),
		disposable.WithLogger(log),
	)
}
