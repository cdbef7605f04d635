// Package config loads isosort settings from TOML.
//
// Settings are layered: the embedded defaults first, then config.toml from
// the user's config directory. Command-line flags are applied on top by the
// CLI.
package config

import (
	"embed"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/isosort/pkg/errors"
)

//go:embed default/config.toml
var configFS embed.FS

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config is the full settings tree.
type Config struct {
	Log    LogConfig    `toml:"log"`
	Sort   SortConfig   `toml:"sort"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// SortConfig mirrors sorter.Options.
type SortConfig struct {
	CyclePasses int `toml:"cycle_passes"`
	OrderStep   int `toml:"order_step"`
}

type CacheConfig struct {
	Backend   string        `toml:"backend"`
	Dir       string        `toml:"dir"` // empty means the user cache directory
	RedisAddr string        `toml:"redis_addr"`
	TTL       time.Duration `toml:"ttl"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the embedded defaults.
func Default() *Config {
	data, err := configFS.ReadFile("default/config.toml")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults missing: %v", err))
	}
	c := &Config{}
	if err := c.Load(string(data)); err != nil {
		panic(fmt.Sprintf("config: embedded defaults invalid: %v", err))
	}
	return c
}

// Load decodes TOML data over c. Keys absent from data keep their current
// values.
func (c *Config) Load(data string) error {
	md, err := toml.Decode(data, c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidInput, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	return c.Validate()
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "log.level")
	}
	if c.Sort.CyclePasses < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "sort.cycle_passes must be at least 1, got %d", c.Sort.CyclePasses)
	}
	if c.Sort.OrderStep < 2 {
		return errors.New(errors.ErrCodeInvalidInput, "sort.order_step must be at least 2, got %d", c.Sort.OrderStep)
	}
	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidInput, "cache.redis_addr is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "cache.backend must be file, redis or none, got %q", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache.ttl must not be negative")
	}
	return nil
}

// LogLevel returns the parsed log level. Call after Validate.
func (c *Config) LogLevel() log.Level {
	lvl, _ := log.ParseLevel(c.Log.Level)
	return lvl
}
