package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matzehuels/isosort/pkg/config"
)

// DefaultDir returns the file cache directory used when none is
// configured.
func DefaultDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locate cache dir: %w", err)
	}
	return filepath.Join(dir, "isosort"), nil
}

// Open builds the backend cfg selects, wrapped with [Instrument].
func Open(ctx context.Context, cfg config.CacheConfig) (Cache, error) {
	var (
		c   Cache
		err error
	)
	switch cfg.Backend {
	case config.CacheNone:
		c = NewNullCache()
	case config.CacheRedis:
		c, err = NewRedisCache(ctx, cfg.RedisAddr)
	case config.CacheFile, "":
		dir := cfg.Dir
		if dir == "" {
			if dir, err = DefaultDir(); err != nil {
				return nil, err
			}
		}
		c, err = NewFileCache(dir)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	return Instrument(c), nil
}
