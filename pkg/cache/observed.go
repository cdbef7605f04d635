package cache

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/isosort/pkg/observability"
)

// observed reports cache traffic to the registered CacheHooks.
type observed struct {
	Cache
}

// Instrument wraps c so every Get and Set is reported to
// observability.Cache().
func Instrument(c Cache) Cache {
	if _, ok := c.(*observed); ok {
		return c
	}
	return &observed{Cache: c}
}

func (o *observed) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := o.Cache.Get(ctx, key)
	if err != nil {
		return data, hit, err
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, keyType(key))
	} else {
		observability.Cache().OnCacheMiss(ctx, keyType(key))
	}
	return data, hit, nil
}

func (o *observed) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := o.Cache.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, keyType(key), len(data))
	return nil
}

// keyType finds the key kind, skipping any scope prefix.
func keyType(key string) string {
	for _, kind := range []string{KindArtifact, KindSort} {
		if strings.HasPrefix(key, kind+":") || strings.Contains(key, ":"+kind+":") {
			return kind
		}
	}
	return "other"
}
