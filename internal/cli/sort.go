package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/matzehuels/isosort/pkg/pipeline"
	"github.com/matzehuels/isosort/pkg/scene"
)

// sortCommand prints the draw order of one or more scenes.
func (c *CLI) sortCommand() *cobra.Command {
	var (
		flags  sortFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "sort <scene>...",
		Short: "Print the draw order of one or more scenes",
		Long: `Sort reads each scene, sorts it for the requested number of frames and
prints the objects back to front. Several scenes are sorted concurrently.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			scenes := make([]*scene.Scene, len(args))
			for i, path := range args {
				s, err := loadScene(path)
				if err != nil {
					return err
				}
				scenes[i] = s
			}

			runner := c.newRunner(ctx, flags.noCache)
			defer runner.Close()

			prog := newProgress(loggerFromContext(ctx))
			results, err := runner.SortMany(ctx, scenes, c.pipelineOptions(flags), runtime.NumCPU())
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Sorted %d scene(s)", len(results)))

			out := cmd.OutOrStdout()
			if asJSON {
				return writeResultsJSON(out, results)
			}
			for _, res := range results {
				printResult(out, res)
			}
			return nil
		},
	}

	flags.register(cmd, pipeline.DefaultFrames)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	return cmd
}

// printResult prints a scene's order table and frame stats.
func printResult(w io.Writer, res *pipeline.Result) {
	name := res.Scene
	if name == "" {
		name = "scene"
	}
	fmt.Fprintln(w, StyleTitle.Render(name)+" "+StyleDim.Render(fmt.Sprintf("after %d frame(s)", res.Frames)))
	fmt.Fprintln(w, orderTable(res.Order, nil))
	fmt.Fprintln(w, statsLine(res.Stats, res.CacheHit))
	if res.Stats.Unresolved > 0 {
		printWarning(w, "%d cycle(s) could not be broken; their draw order is arbitrary", res.Stats.Unresolved)
	}
}

// writeResultsJSON writes one result as an object and several as an array.
func writeResultsJSON(w io.Writer, results []*pipeline.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if len(results) == 1 {
		return enc.Encode(results[0])
	}
	return enc.Encode(results)
}
