package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/pipeline"
	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/server"
)

// serveCommand runs the read-only HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalogue over HTTP",
		Long: `Serve the catalogue over a read-only HTTP API.

Routes: /healthz, /concepts, /concepts/{id}, /concepts/{id}/descendants,
/hierarchy, /network and /render/{id}.{format}. The catalogue is parsed
once at startup; restart to pick up edits. Ctrl+C shuts down gracefully.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	runner := c.newRunner(ctx, noCache)
	defer runner.Close()

	src, err := c.loadSource(ctx, runner)
	if err != nil {
		return err
	}

	srv := server.New(src, server.Options{
		Runner: runner,
		Logger: loggerFromContext(ctx),
		Render: pipeline.RenderOptions{
			RankDir: c.Config.Render.RankDir,
			Shape:   c.Config.Render.Shape,
		},
		RootID: c.Config.Root,
	})
	return srv.ListenAndServe(ctx, addr)
}
