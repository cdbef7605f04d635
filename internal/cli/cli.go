// Package cli implements the isosort command-line interface.
package cli

import (
	"context"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/isosort/pkg/buildinfo"
	"github.com/matzehuels/isosort/pkg/cache"
	"github.com/matzehuels/isosort/pkg/config"
	"github.com/matzehuels/isosort/pkg/errors"
	"github.com/matzehuels/isosort/pkg/pipeline"
	"github.com/matzehuels/isosort/pkg/scene"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds state shared by all commands.
type CLI struct {
	Logger *log.Logger
	// Config is loaded before any command runs.
	Config *config.Config

	configPath string
	verbose    bool
}

// New creates a CLI that logs to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "isosort",
		Short: "Isosort computes draw orders for isometric sprites",
		Long: `Isosort sorts the sprites of an isometric 2D scene back to front.

Static sprites are compared once; moving sprites are re-sorted every frame.
Scenes are read from TOML, JSON, YAML or HCL files.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.FilePath()+")")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.sortCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.simulateCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the config and attaches the logger to the command context.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	var (
		cfg *config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.LoadFile(c.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	c.Config = cfg

	level := cfg.LogLevel()
	if c.verbose {
		level = log.DebugLevel
	}
	c.SetLogLevel(level)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner over the configured cache. A cache
// that cannot be opened is reported and replaced by no caching.
func (c *CLI) newRunner(ctx context.Context, noCache bool) *pipeline.Runner {
	var store cache.Cache
	if noCache {
		store = cache.NewNullCache()
	} else {
		var err error
		if store, err = cache.Open(ctx, c.Config.Cache); err != nil {
			c.Logger.Warn("caching disabled", "backend", c.Config.Cache.Backend, "err", err)
			store = cache.NewNullCache()
		}
	}

	r := pipeline.NewRunner(store, nil, c.Logger)
	if c.Config.Cache.TTL > 0 {
		r.TTL = c.Config.Cache.TTL
	}
	return r
}

// =============================================================================
// Flags
// =============================================================================

// sortFlags are the flags shared by commands that sort a scene. Zero
// values fall back to the config file, then to the pipeline defaults.
type sortFlags struct {
	frames      int
	step        float64
	cyclePasses int
	orderStep   int
	noCache     bool
	refresh     bool
}

func (f *sortFlags) register(cmd *cobra.Command, frames int) {
	f.frames = frames
	cmd.Flags().IntVar(&f.frames, "frames", f.frames, "number of frames to sort")
	cmd.Flags().Float64Var(&f.step, "step", pipeline.DefaultStep, "simulated seconds between frames")
	cmd.Flags().IntVar(&f.cyclePasses, "cycle-passes", 0, "cycle-breaking sweeps per frame (default from config)")
	cmd.Flags().IntVar(&f.orderStep, "order-step", 0, "distance between draw orders (default from config)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached results")
}

func (c *CLI) pipelineOptions(f sortFlags) pipeline.Options {
	opts := pipeline.Options{
		Frames:      f.frames,
		Step:        f.step,
		CyclePasses: f.cyclePasses,
		OrderStep:   f.orderStep,
		Refresh:     f.refresh,
		Logger:      c.Logger,
	}
	if opts.CyclePasses == 0 {
		opts.CyclePasses = c.Config.Sort.CyclePasses
	}
	if opts.OrderStep == 0 {
		opts.OrderStep = c.Config.Sort.OrderStep
	}
	return opts
}

// resolvePath makes a command-line path absolute so relative paths may
// climb out of the working directory.
func resolvePath(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrCodeInvalidPath, "path cannot be empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", path)
	}
	return abs, errors.ValidatePath(abs)
}

// loadScene reads the scene file at a command-line path.
func loadScene(path string) (*scene.Scene, error) {
	abs, err := resolvePath(path)
	if err != nil {
		return nil, err
	}
	return scene.Load(abs)
}
