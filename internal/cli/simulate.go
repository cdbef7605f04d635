package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/isosort/pkg/scene"
)

const defaultSimulateFrames = 60

// simulateCommand moves the dynamic sprites of a scene and reports the
// order they end up in.
func (c *CLI) simulateCommand() *cobra.Command {
	var (
		flags sortFlags
		out   string
	)

	cmd := &cobra.Command{
		Use:   "simulate <scene>",
		Short: "Move dynamic sprites by their velocity and sort every frame",
		Long: `Simulate steps every dynamic sprite with a velocity, sorting the scene once
per frame, and prints the final draw order. With --out the final positions
are saved as a new scene file; its format follows the file extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScene(args[0])
			if err != nil {
				return err
			}
			if out != "" {
				if out, err = resolvePath(out); err != nil {
					return err
				}
				if _, err := scene.FormatOf(out); err != nil {
					return err
				}
			}

			ctx := cmd.Context()
			runner := c.newRunner(ctx, flags.noCache)
			defer runner.Close()

			res, err := runner.Sort(ctx, s, c.pipelineOptions(flags))
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printResult(w, res)
			simulated := time.Duration(float64(res.Frames-1) * flags.step * float64(time.Second))
			printDetail(w, "%s simulated, %d cycle edge(s) removed over all frames", simulated.Round(time.Millisecond), res.CyclesBroken)

			if out == "" {
				return nil
			}
			if err := scene.Save(out, res.State); err != nil {
				return err
			}
			printSuccess(w, "Saved final state")
			printFile(w, out)
			return nil
		},
	}

	flags.register(cmd, defaultSimulateFrames)
	cmd.Flags().StringVarP(&out, "out", "o", "", "save the final state to this scene file (toml, json or yaml)")
	return cmd
}
