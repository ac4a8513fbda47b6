// Package cli implements the demise command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/buildinfo"
	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/cache"
	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/config"
	demerr "github.com/FPannach/Fanfiction-Annotation-Project/pkg/errors"
	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/observability"
	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/pipeline"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is resolved before any command runs.
	Config config.Config

	configPath string
	catalogue  string
	strict     bool
}

// New creates a new CLI instance with a default logger.
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
		Use:   "demise",
		Short: "Demise renders the Modes of Demise concept catalogue",
		Long: `Demise reads the Modes of Demise SKOS catalogue (a small Turtle dialect)
and turns it into node-link diagrams, interactive HTML hierarchies and
networks, category counts and diagnostics.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ./demise.toml, then ~/.config/demise/config.toml)")
	root.PersistentFlags().StringVarP(&c.catalogue, "input", "i", "", "catalogue TTL file (overrides config)")
	root.PersistentFlags().BoolVar(&c.strict, "strict", false, "fail on repeated concept ids")

	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.hierarchyCommand())
	root.AddCommand(c.networkCommand())
	root.AddCommand(c.countCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.fromHTMLCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig resolves the configuration file and applies the global flag
// overrides. It also attaches the logger to the command context.
func (c *CLI) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Resolve(c.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("input") {
		cfg.Catalogue = c.catalogue
	}
	if cmd.Flags().Changed("strict") {
		cfg.Strict = c.strict
	}
	c.Config = cfg
	hooks := observability.NewLogHooks(c.Logger)
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	if cfg.Path != "" {
		c.Logger.Debug("loaded config", "path", cfg.Path)
	}

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

// newRunner creates a pipeline runner for CLI use. A cache backend that
// cannot be opened downgrades to no caching with a warning.
func (c *CLI) newRunner(ctx context.Context, noCache bool) *pipeline.Runner {
	runner := pipeline.NewRunner(c.openCache(ctx, noCache), nil, c.Logger)
	runner.TTL = c.Config.Cache.TTL
	return runner
}

func (c *CLI) openCache(ctx context.Context, noCache bool) cache.Cache {
	if noCache || c.Config.Cache.Backend == config.CacheNone {
		return cache.NewNullCache()
	}
	dir, err := c.Config.CacheDir()
	if err != nil && c.Config.Cache.Backend == config.CacheFile {
		c.Logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache()
	}
	store, err := cache.New(ctx, cache.Options{
		Backend:  c.Config.Cache.Backend,
		Dir:      dir,
		RedisURL: c.Config.Cache.RedisURL,
		Prefix:   cache.DefaultPrefix,
	})
	if err != nil {
		c.Logger.Warn("cache disabled", "backend", c.Config.Cache.Backend, "err", err)
		return cache.NewNullCache()
	}
	return store
}

// loadSource parses the configured catalogue and logs what the parser
// stepped over.
func (c *CLI) loadSource(ctx context.Context, runner *pipeline.Runner) (*pipeline.Source, error) {
	prog := newProgress(c.Logger)
	src, cached, err := runner.Load(ctx, pipeline.LoadOptions{
		Path:   c.Config.Catalogue,
		Strict: c.Config.Strict,
	})
	if err != nil {
		return nil, err
	}

	res := src.Result
	for _, s := range res.Skipped {
		c.Logger.Debug("skipped block", "line", s.Line, "reason", s.Reason)
	}
	for _, d := range res.Duplicates {
		c.Logger.Warn("duplicate concept, later block wins", "id", d.ID, "first", d.FirstLine, "line", d.Line)
	}
	for _, w := range res.Warnings {
		c.Logger.Warn("parse warning", "line", w.Line, "msg", w.Message)
	}
	if len(res.Concepts) == 0 {
		c.Logger.Warn("catalogue holds no concepts", "path", src.Path)
	}

	msg := "Parsed " + src.Path
	if cached {
		msg += " (cached)"
	}
	prog.debug(msg)
	return src, nil
}

// ensureDir creates dir (and parents) for an output file.
func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return demerr.Wrap(demerr.ErrCodeInvalidOutput, err, "create %s", dir)
	}
	return nil
}

// writeFile writes an output artifact, creating its directory.
func writeFile(path string, data []byte) error {
	if err := ensureDir(filepath.Dir(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return demerr.Wrap(demerr.ErrCodeInvalidOutput, err, "write %s", path)
	}
	return nil
}
