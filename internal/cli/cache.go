package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/cache"
	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached parse, render and page",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			store := c.openCache(cmd.Context(), false)
			defer store.Close()

			clearer, ok := store.(cache.Clearer)
			if !ok {
				printInfo(out, "Cache backend %q holds nothing to clear", c.Config.Cache.Backend)
				return nil
			}
			n, err := clearer.Clear(cmd.Context())
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			printSuccess(out, "Cleared %d cached entries", n)
			printDetail(out, "Backend: %s", cacheLocation(c.Config))
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the cache lives",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), cacheLocation(c.Config))
			return nil
		},
	}
}

// cacheLocation is the file cache directory, the Redis URL, or "none".
func cacheLocation(cfg config.Config) string {
	switch cfg.Cache.Backend {
	case config.CacheRedis:
		return cfg.Cache.RedisURL
	case config.CacheNone:
		return config.CacheNone
	}
	dir, err := cfg.CacheDir()
	if err != nil {
		return fmt.Sprintf("unavailable (%v)", err)
	}
	return dir
}
