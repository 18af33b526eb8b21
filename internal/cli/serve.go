package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/gitlanes/pkg/server"
)

// serveCommand creates the HTTP API command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render API",
		Long: `Run the HTTP render API.

Endpoints:
  GET  /healthz   liveness and build information
  POST /render    render a stream; body {"stream": {...}, "options": {...}}

Requests carrying an X-Client-ID header get their own cache namespace.
Streams wider than max_lanes (at most 256) are rejected with 400.
The server shuts down gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			if !cmd.Flags().Changed("addr") {
				addr = c.cfg.Server.Addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(runner, logger, server.Config{
				Addr:            addr,
				ShutdownTimeout: c.cfg.Server.ShutdownTimeout,
				MaxLanes:        min(c.cfg.MaxLanes, server.DefaultMaxLanes),
			})
			logger.Info("render cache", "backend", c.cacheBackend(noCache), "ttl", c.cfg.Cache.TTL)
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the render cache")

	return cmd
}

// cacheBackend names the effective cache backend for status output.
func (c *CLI) cacheBackend(noCache bool) string {
	if noCache {
		return "none"
	}
	return c.cfg.Cache.Backend
}
