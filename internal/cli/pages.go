package cli

import (
	"context"

	"github.com/spf13/cobra"

	demerr "github.com/FPannach/Fanfiction-Annotation-Project/pkg/errors"
	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/pipeline"
)

// Default page file names.
const (
	defaultHierarchyFile = "hierarchy.html"
	defaultNetworkFile   = "pyvis_hierarchy.html"
)

type pageFlags struct {
	root    string
	title   string
	noCache bool
}

func (f *pageFlags) register(cmd *cobra.Command, c *CLI) {
	cmd.Flags().StringVar(&f.root, "root", "", "only include this concept and its descendants")
	cmd.Flags().StringVar(&f.title, "title", "", "page title")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	_ = cmd.RegisterFlagCompletionFunc("root", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return c.completeConceptIDs(toComplete)
	})
}

// hierarchyCommand writes the nested-list hierarchy page.
func (c *CLI) hierarchyCommand() *cobra.Command {
	var f pageFlags
	cmd := &cobra.Command{
		Use:   "hierarchy [output.html]",
		Short: "Write the interactive hierarchy page",
		Long: `Write the catalogue as a nested list in a standalone HTML page.

Hovering a concept shows its definition and example. Without --root the
list starts at modeOfDemise, or at every top-level concept when the
catalogue has no such concept.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPage(cmd.Context(), cmd, pipeline.PageHierarchy, outputArg(args, defaultHierarchyFile), f)
		},
	}
	f.register(cmd, c)
	return cmd
}

// networkCommand writes the vis-network page.
func (c *CLI) networkCommand() *cobra.Command {
	var f pageFlags
	cmd := &cobra.Command{
		Use:   "network [output.html]",
		Short: "Write the interactive network page",
		Long: `Write every concept and broader link as an interactive network.

Nodes carry their definition and example as hover text. The page loads
vis-network from a CDN.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPage(cmd.Context(), cmd, pipeline.PageNetwork, outputArg(args, defaultNetworkFile), f)
		},
	}
	f.register(cmd, c)
	return cmd
}

func outputArg(args []string, def string) string {
	if len(args) > 0 {
		return args[0]
	}
	return def
}

func (c *CLI) runPage(ctx context.Context, cmd *cobra.Command, kind, path string, f pageFlags) error {
	if path == "" {
		return demerr.New(demerr.ErrCodeInvalidOutput, "output path cannot be empty")
	}

	runner := c.newRunner(ctx, f.noCache)
	defer runner.Close()

	src, err := c.loadSource(ctx, runner)
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	page, cached, err := runner.Page(ctx, src, pipeline.PageOptions{
		Kind:   kind,
		Root:   f.root,
		RootID: c.Config.Root,
		Title:  f.title,
	})
	if err != nil {
		return err
	}
	if err := writeFile(path, page); err != nil {
		return err
	}
	prog.debug("Wrote " + kind + " page")

	out := cmd.OutOrStdout()
	printSuccess(out, "Wrote %s page", kind)
	printFile(out, path)
	if cached {
		printDetail(out, "%s", iconCached)
	}
	return nil
}
