package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/isosort/pkg/server"
)

// serveCommand starts the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the sort and graph API over HTTP",
		Long: `Serve answers POST /v1/sort and POST /v1/graph with the same pipeline the
CLI uses, sharing its cache. GET /healthz reports the build.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			ctx := cmd.Context()
			runner := c.newRunner(ctx, noCache)
			defer runner.Close()

			return server.New(runner, loggerFromContext(ctx)).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
