package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/isosort/pkg/errors"
	"github.com/matzehuels/isosort/pkg/pipeline"
)

// graphCommand renders a scene's dependency graph.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		flags    sortFlags
		format   string
		output   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "graph <scene>",
		Short: "Render the dependency graph of a scene",
		Long: `Graph sorts a scene and renders the dependency graph of the last frame.
An edge A -> B means A is drawn after B. Dynamic sprites are filled and
their edges dashed.

DOT and JSON go to stdout unless --output is set; SVG and PNG are written
next to the scene by default.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(format); err != nil {
				return err
			}
			s, err := loadScene(args[0])
			if err != nil {
				return err
			}
			if output == "" && (format == pipeline.FormatSVG || format == pipeline.FormatPNG) {
				output = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + "." + format
			}
			if output != "" {
				if output, err = resolvePath(output); err != nil {
					return err
				}
			}

			ctx := cmd.Context()
			runner := c.newRunner(ctx, flags.noCache)
			defer runner.Close()

			opts := c.pipelineOptions(flags)
			opts.Format = format
			opts.Detailed = detailed

			spin := newSpinner(ctx, cmd.ErrOrStderr(), "Rendering "+format+"...")
			spin.Start()
			data, hit, err := runner.GraphWithCacheInfo(ctx, s, opts)
			spin.Stop()
			if err != nil {
				return err
			}

			if output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", output)
			}
			status := iconFresh
			if hit {
				status = iconCached
			}
			out := cmd.OutOrStdout()
			printSuccess(out, "Rendered %s graph (%s)", format, status)
			printFile(out, output)
			return nil
		},
	}

	flags.register(cmd, pipeline.DefaultFrames)
	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatDOT, fmt.Sprintf("output format: %s", strings.Join(pipeline.Formats, ", ")))
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "label nodes with anchors and rank them by draw order")
	return cmd
}
