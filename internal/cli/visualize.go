package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/config"
	demerr "github.com/FPannach/Fanfiction-Annotation-Project/pkg/errors"
	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/pipeline"
	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/render/nodelink"
)

type visualizeFlags struct {
	outDir  string
	noCache bool
	refresh bool
	opts    pipeline.RenderOptions
}

// visualizeCommand creates the visualize command: render the subgraph under
// a root concept as a node-link diagram.
func (c *CLI) visualizeCommand() *cobra.Command {
	var f visualizeFlags

	cmd := &cobra.Command{
		Use:   "visualize <root> <output>",
		Short: "Render the concepts under a root as a diagram",
		Long: `Render the concepts under a root as a node-link diagram.

The root concept and everything reachable below it through skos:broader
links are drawn left to right, one node per concept, one edge per
parent/child pair. The image is written to <out-dir>/<output>.<format>.

Examples:
  demise visualize physicalViolence violence
  demise visualize modeOfDemise full --format svg --rankdir TB`,
		Args: cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return c.completeConceptIDs(toComplete)
			}
			return nil, cobra.ShellCompDirectiveDefault
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			f.opts.Root = args[0]
			f.applyConfig(c.Config)
			path, err := outputPath(f.outDir, args[1], f.opts.Format)
			if err != nil {
				return err
			}
			return c.runVisualize(cmd.Context(), cmd, path, f)
		},
	}

	cmd.Flags().StringVarP(&f.opts.Format, "format", "f", "", "output format: "+strings.Join(nodelink.Formats, ", ")+" (default from config, png)")
	cmd.Flags().StringVar(&f.opts.RankDir, "rankdir", "", "layout direction: "+strings.Join(nodelink.RankDirs, ", "))
	cmd.Flags().StringVar(&f.opts.Shape, "shape", "", "Graphviz node shape (default plaintext)")
	cmd.Flags().StringVar(&f.opts.Style, "style", "", "Graphviz node style, e.g. rounded,filled")
	cmd.Flags().BoolVar(&f.opts.Detailed, "detailed", false, "add level and metadata to node labels")
	cmd.Flags().BoolVar(&f.opts.Tooltips, "tooltips", false, "attach definitions as tooltips (svg)")
	cmd.Flags().StringVarP(&f.outDir, "out-dir", "o", "", "output directory (default from config, images)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "re-render even when cached")

	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(nodelink.Formats, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("rankdir", cobra.FixedCompletions(nodelink.RankDirs, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// applyConfig fills what the flags left unset from the configuration.
func (f *visualizeFlags) applyConfig(cfg config.Config) {
	if f.outDir == "" {
		f.outDir = cfg.OutputDir
	}
	if f.opts.Format == "" {
		f.opts.Format = cfg.Render.Format
	}
	if f.opts.RankDir == "" {
		f.opts.RankDir = cfg.Render.RankDir
	}
	if f.opts.Shape == "" {
		f.opts.Shape = cfg.Render.Shape
	}
	f.opts.Refresh = f.refresh
}

// outputPath joins dir and name and appends the format extension unless
// name already carries it.
func outputPath(dir, name, format string) (string, error) {
	name = strings.TrimSuffix(name, "."+format)
	if err := demerr.ValidateOutputName(name); err != nil {
		return "", err
	}
	return filepath.Join(dir, name+"."+format), nil
}

func (c *CLI) runVisualize(ctx context.Context, cmd *cobra.Command, path string, f visualizeFlags) error {
	runner := c.newRunner(ctx, f.noCache)
	defer runner.Close()

	src, err := c.loadSource(ctx, runner)
	if err != nil {
		return err
	}

	prog := newProgress(loggerFromContext(ctx))
	spinner := newSpinner(ctx, fmt.Sprintf("Rendering %s...", strings.TrimPrefix(f.opts.Root, ":")))
	spinner.Start()

	art, err := runner.Visualize(ctx, src, f.opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return err
	}
	spinner.Stop()

	if err := writeFile(path, art.Data); err != nil {
		return err
	}
	prog.debug("Rendered " + path)

	out := cmd.OutOrStdout()
	printSuccess(out, "Rendered %s", StyleValue.Render(strings.TrimPrefix(f.opts.Root, ":")))
	printFile(out, path)
	printStats(out, art.Graph.NodeCount(), art.Graph.EdgeCount(), art.CacheHit)
	return nil
}
