package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/treekit/tidytree/internal/api"
	"github.com/treekit/tidytree/pkg/cache"
	"github.com/treekit/tidytree/pkg/pipeline"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisAddr string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout HTTP API",
		Long: `Run the layout HTTP API.

Endpoints:
  GET  /healthz     health check
  POST /v1/layout   compute a layout, returns JSON
  POST /v1/render   compute and render, returns the artifact bytes

By default results are cached on disk. With --redis the cache is
shared through a Redis server, suitable for multi-instance
deployments.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var (
				store cache.Cache
				err   error
			)
			switch {
			case noCache:
				store = cache.NewNullCache()
			case redisAddr != "":
				store, err = cache.NewRedisCache(ctx, redisAddr, appName)
				if err != nil {
					return fmt.Errorf("connect redis: %w", err)
				}
			default:
				store, err = newCache(false)
				if err != nil {
					return fmt.Errorf("initialize cache: %w", err)
				}
			}

			runner := pipeline.NewRunner(store, c.Logger)
			defer runner.Close()

			server := api.NewServer(runner, c.Logger)
			return server.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "redis address for a shared cache (host:port)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
