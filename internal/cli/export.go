package cli

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/dag"
	demerr "github.com/FPannach/Fanfiction-Annotation-Project/pkg/errors"
	graphio "github.com/FPannach/Fanfiction-Annotation-Project/pkg/io"
	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/taxonomy"
)

const defaultExportFile = "catalogue.json"

// exportCommand writes the concept graph as JSON.
func (c *CLI) exportCommand() *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "export [output.json]",
		Short: "Write the concept graph as JSON",
		Long: `Write the concept graph (nodes with label, level and definition/example
metadata, edges from broader to narrower) as JSON.

With --root only that concept and its descendants are written.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd.Context(), cmd, outputArg(args, defaultExportFile), strings.TrimPrefix(root, ":"))
		},
	}
	cmd.Flags().StringVar(&root, "root", "", "only export this concept and its descendants")
	return cmd
}

func (c *CLI) runExport(ctx context.Context, cmd *cobra.Command, path, root string) error {
	runner := c.newRunner(ctx, false)
	defer runner.Close()

	src, err := c.loadSource(ctx, runner)
	if err != nil {
		return err
	}

	var g *dag.DAG
	if root != "" {
		g, err = runner.Subgraph(src, root)
	} else {
		g, err = taxonomy.ToDAG(src.Concepts(), taxonomy.All(src.Concepts()), "")
	}
	if err != nil {
		return err
	}

	if err := ensureDir(filepath.Dir(path)); err != nil {
		return err
	}
	if err := graphio.ExportJSON(g, path); err != nil {
		return demerr.Wrap(demerr.ErrCodeInvalidOutput, err, "export %s", path)
	}

	out := cmd.OutOrStdout()
	printSuccess(out, "Exported concept graph")
	printFile(out, path)
	printStats(out, g.NodeCount(), g.EdgeCount(), false)
	return nil
}
