package pipeline

import (
	"context"
	"encoding/json"

	"github.com/matzehuels/isosort/pkg/cache"
	"github.com/matzehuels/isosort/pkg/errors"
	"github.com/matzehuels/isosort/pkg/scene"
)

// HashScene returns the content hash a scene is cached under.
func HashScene(s *scene.Scene) (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash scene")
	}
	return cache.Hash(data), nil
}

// Simulate builds s and sorts opts.Frames frames without caching.
func Simulate(ctx context.Context, s *scene.Scene, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errors.New(errors.ErrCodeInvalidScene, "scene is required")
	}

	hash, err := HashScene(s)
	if err != nil {
		return nil, err
	}
	w, err := s.Build(opts.SorterOptions())
	if err != nil {
		return nil, err
	}

	res := &Result{Scene: s.Name, SceneHash: hash, Frames: opts.Frames}
	for i := 0; i < opts.Frames; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if i > 0 {
			w.Step(opts.Step)
		}
		res.Stats = w.Update(ctx)
		res.CyclesBroken += res.Stats.CyclesBroken
	}

	res.Order = w.Entries()
	res.Graph = w.Sorter().Snapshot()
	res.State = w.Scene()
	return res, nil
}
