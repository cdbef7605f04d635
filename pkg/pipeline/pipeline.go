// Package pipeline runs scenes through the sorter and renders the results.
//
// The CLI and the HTTP server both go through this package so that frame
// stepping, caching and output formats behave the same everywhere.
//
// # Architecture
//
// A pipeline run has two stages:
//
//  1. Sort: build a world from a scene, run Frames frames (stepping the
//     simulation Step seconds between frames) and snapshot the result.
//  2. Render: turn the dependency graph snapshot into DOT, SVG, PNG or JSON.
//
// [Simulate] and [Render] are the uncached stages. A [Runner] wraps them
// with a [cache.Cache]: sort results are keyed by the scene's content hash
// plus the options that change them, artifacts by the sort key plus format.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	defer runner.Close()
//
//	res, err := runner.Sort(ctx, s, pipeline.Options{Frames: 60, Step: 1.0 / 60})
//	if err != nil {
//	    return err
//	}
//	for _, e := range res.Order {
//	    fmt.Println(e.ID, e.Order)
//	}
//
//	svg, err := runner.Graph(ctx, s, pipeline.Options{Format: pipeline.FormatSVG})
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/isosort/pkg/cache"
	"github.com/matzehuels/isosort/pkg/depgraph"
	"github.com/matzehuels/isosort/pkg/errors"
	"github.com/matzehuels/isosort/pkg/scene"
	"github.com/matzehuels/isosort/pkg/sorter"
)

const (
	// DefaultFrames is the number of frames sorted when none is requested.
	DefaultFrames = 1

	// DefaultStep is the simulated time between frames, in seconds.
	DefaultStep = 1.0 / 60

	// MaxFrames bounds a single run.
	MaxFrames = 10000

	// DefaultTTL is how long results stay cached.
	DefaultTTL = 24 * time.Hour
)

// Output formats of [Render].
const (
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// Formats lists the supported output formats.
var Formats = []string{FormatDOT, FormatSVG, FormatPNG, FormatJSON}

// ValidateFormat returns an INVALID_FORMAT error unless format is one of
// [Formats].
func ValidateFormat(format string) error {
	return errors.ValidateFormat(format, Formats...)
}

// ContentType returns the MIME type of a rendered format.
func ContentType(format string) string {
	switch format {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatJSON:
		return "application/json"
	default:
		return "text/vnd.graphviz; charset=utf-8"
	}
}

// Options configures a pipeline run. Zero values take defaults.
type Options struct {
	// Frames is how many frames to sort. The scene is stepped before every
	// frame but the first.
	Frames int `json:"frames,omitempty"`
	// Step is the simulated time between frames, in seconds.
	Step float64 `json:"step,omitempty"`
	// CyclePasses and OrderStep configure the sorter.
	CyclePasses int `json:"cycle_passes,omitempty"`
	OrderStep   int `json:"order_step,omitempty"`

	// Format and Detailed select the rendered graph.
	Format   string `json:"format,omitempty"`
	Detailed bool   `json:"detailed,omitempty"`

	// Refresh bypasses cached results; fresh results are still stored.
	Refresh bool `json:"-"`

	// Logger receives sorter debug output. Defaults to a discarding logger.
	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults checks o and fills in defaults. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Frames < 0 || o.Frames > MaxFrames {
		return errors.New(errors.ErrCodeInvalidInput, "frames must be between 0 and %d, got %d", MaxFrames, o.Frames)
	}
	if o.Step < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "step must not be negative, got %g", o.Step)
	}
	if o.CyclePasses < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cycle_passes must not be negative, got %d", o.CyclePasses)
	}
	if o.OrderStep < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "order_step must not be negative, got %d", o.OrderStep)
	}

	if o.Frames == 0 {
		o.Frames = DefaultFrames
	}
	if o.Step == 0 {
		o.Step = DefaultStep
	}
	if o.CyclePasses == 0 {
		o.CyclePasses = sorter.DefaultCyclePasses
	}
	if o.OrderStep == 0 {
		o.OrderStep = sorter.DefaultOrderStep
	}
	if o.Format == "" {
		o.Format = FormatDOT
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return ValidateFormat(o.Format)
}

// SorterOptions returns the sorter configuration of o.
func (o *Options) SorterOptions() sorter.Options {
	return sorter.Options{
		CyclePasses: o.CyclePasses,
		OrderStep:   o.OrderStep,
		Logger:      o.Logger,
	}
}

// SortKeyOpts returns the options that identify a cached sort result.
func (o *Options) SortKeyOpts() cache.SortKeyOpts {
	return cache.SortKeyOpts{
		Frames:      o.Frames,
		Step:        o.Step,
		CyclePasses: o.CyclePasses,
		OrderStep:   o.OrderStep,
	}
}

// ArtifactKeyOpts returns the options that identify a cached rendering.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: o.Format, Detailed: o.Detailed}
}

// Result is the outcome of sorting a scene.
type Result struct {
	Scene     string `json:"scene"`
	SceneHash string `json:"scene_hash"`
	Frames    int    `json:"frames"`

	// Order lists the objects back to front after the last frame.
	Order []scene.Entry `json:"order"`
	// Graph is the dependency graph of the last frame.
	Graph *depgraph.Graph `json:"graph"`
	// Stats describes the last frame.
	Stats sorter.Stats `json:"stats"`
	// CyclesBroken sums the edges removed over all frames.
	CyclesBroken int `json:"cycles_broken"`
	// State is the scene as it stands after the last frame.
	State *scene.Scene `json:"state"`

	// CacheHit is set when the result was served from the cache.
	CacheHit bool `json:"cache_hit"`
}
