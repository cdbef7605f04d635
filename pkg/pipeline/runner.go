package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/isosort/pkg/cache"
	"github.com/matzehuels/isosort/pkg/errors"
	"github.com/matzehuels/isosort/pkg/scene"
)

// Runner wraps the pipeline stages with caching. The CLI and the server
// share one Runner; it holds no per-run state and is safe for concurrent
// use.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// TTL is how long results stay cached.
	TTL time.Duration
}

// NewRunner creates a runner. A nil keyer uses cache.DefaultKeyer, a nil
// cache disables caching and a nil logger uses log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    DefaultTTL,
	}
}

// Close releases the cache.
func (r *Runner) Close() error {
	return r.Cache.Close()
}

// SortWithCacheInfo sorts s, serving the result from the cache when an
// identical scene was sorted with the same options. The returned Result
// has CacheHit set accordingly.
func (r *Runner) SortWithCacheInfo(ctx context.Context, s *scene.Scene, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	key, err := r.sortKey(s, &opts)
	if err != nil {
		return nil, err
	}

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached Result
			if err := json.Unmarshal(data, &cached); err == nil {
				cached.CacheHit = true
				return &cached, nil
			}
			r.Logger.Warn("discarding unreadable cache entry", "key", key)
		} else if err != nil {
			r.Logger.Warn("cache read failed", "err", err)
		}
	}

	start := time.Now()
	res, err := Simulate(ctx, s, opts)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("sorted scene",
		"scene", res.Scene,
		"objects", len(res.Order),
		"frames", res.Frames,
		"cycles_broken", res.CyclesBroken,
		"duration", time.Since(start))

	if data, err := json.Marshal(res); err == nil {
		r.store(ctx, key, data)
	}
	return res, nil
}

// Sort is SortWithCacheInfo under a shorter name.
func (r *Runner) Sort(ctx context.Context, s *scene.Scene, opts Options) (*Result, error) {
	return r.SortWithCacheInfo(ctx, s, opts)
}

// GraphWithCacheInfo renders the dependency graph of s in opts.Format and
// reports whether the artifact came from the cache. On a miss the scene is
// sorted first, itself through the cache.
func (r *Runner) GraphWithCacheInfo(ctx context.Context, s *scene.Scene, opts Options) ([]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	sortKey, err := r.sortKey(s, &opts)
	if err != nil {
		return nil, false, err
	}
	key := r.Keyer.ArtifactKey(sortKey, opts.ArtifactKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			return data, true, nil
		}
	}

	res, err := r.SortWithCacheInfo(ctx, s, opts)
	if err != nil {
		return nil, false, err
	}
	data, err := Render(ctx, res.Graph, opts.Format, opts.Detailed)
	if err != nil {
		return nil, false, err
	}
	r.store(ctx, key, data)
	return data, false, nil
}

// Graph is GraphWithCacheInfo without the cache hit flag.
func (r *Runner) Graph(ctx context.Context, s *scene.Scene, opts Options) ([]byte, error) {
	data, _, err := r.GraphWithCacheInfo(ctx, s, opts)
	return data, err
}

// SortMany sorts scenes concurrently with at most limit workers (all at
// once when limit <= 0). Each scene gets its own sorter. Results keep the
// order of scenes; the first error cancels the rest.
func (r *Runner) SortMany(ctx context.Context, scenes []*scene.Scene, opts Options, limit int) ([]*Result, error) {
	results := make([]*Result, len(scenes))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, s := range scenes {
		g.Go(func() error {
			res, err := r.SortWithCacheInfo(ctx, s, opts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Runner) sortKey(s *scene.Scene, opts *Options) (string, error) {
	if s == nil {
		return "", errors.New(errors.ErrCodeInvalidScene, "scene is required")
	}
	hash, err := HashScene(s)
	if err != nil {
		return "", err
	}
	return r.Keyer.SortKey(hash, opts.SortKeyOpts()), nil
}

// store writes to the cache, retrying transient failures. Failed writes
// are logged and dropped.
func (r *Runner) store(ctx context.Context, key string, data []byte) {
	err := cache.RetryWithBackoff(ctx, func() error {
		return r.Cache.Set(ctx, key, data, r.TTL)
	})
	if err != nil {
		r.Logger.Warn("cache write failed", "err", err)
	}
}
