package cli

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/cache"
	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/dag"
	demerr "github.com/FPannach/Fanfiction-Annotation-Project/pkg/errors"
	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/htmlimport"
	graphio "github.com/FPannach/Fanfiction-Annotation-Project/pkg/io"
	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/render/htmltree"
	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/render/nodelink"
)

const formatJSON = "json"

// fromHTMLCommand rebuilds a graph from a hierarchy page.
func (c *CLI) fromHTMLCommand() *cobra.Command {
	var (
		f         visualizeFlags
		container string
	)

	cmd := &cobra.Command{
		Use:   "from-html <hierarchy.html> <output>",
		Short: "Rebuild the graph from a hierarchy page and render it",
		Long: `Read the nested list of a hierarchy page (as written by 'demise hierarchy')
and render it as a diagram, or export it as JSON with --format json.

Items are boxes with rounded corners; hovering shows the example.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f.applyConfig(c.Config)
			return c.runFromHTML(cmd.Context(), cmd, args[0], args[1], container, f)
		},
	}

	cmd.Flags().StringVarP(&f.opts.Format, "format", "f", "", "output format: "+strings.Join(nodelink.Formats, ", ")+", "+formatJSON)
	cmd.Flags().StringVar(&f.opts.RankDir, "rankdir", "", "layout direction: "+strings.Join(nodelink.RankDirs, ", "))
	cmd.Flags().StringVar(&f.opts.Shape, "shape", "box", "Graphviz node shape")
	cmd.Flags().StringVar(&f.opts.Style, "style", "rounded", "Graphviz node style")
	cmd.Flags().BoolVar(&f.opts.Tooltips, "tooltips", true, "attach examples as tooltips (svg)")
	cmd.Flags().StringVarP(&f.outDir, "out-dir", "o", "", "output directory (default from config, images)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&container, "container", htmltree.ContainerID, "id of the element holding the list")

	return cmd
}

func (c *CLI) runFromHTML(ctx context.Context, cmd *cobra.Command, input, output, container string, f visualizeFlags) error {
	data, err := os.ReadFile(input)
	if errors.Is(err, fs.ErrNotExist) {
		return demerr.Wrap(demerr.ErrCodeInputNotFound, err, "%s not found", input)
	}
	if err != nil {
		return demerr.Wrap(demerr.ErrCodeInvalidInput, err, "read %s", input)
	}

	res, err := htmlimport.Parse(bytes.NewReader(data), htmlimport.Options{ContainerID: container})
	if err != nil {
		return demerr.Wrap(demerr.ErrCodeInvalidInput, err, "read hierarchy from %s", input)
	}
	if res.Skipped > 0 {
		c.Logger.Warn("list items without a concept were dropped", "count", res.Skipped)
	}
	g := res.Graph
	out := cmd.OutOrStdout()

	if f.opts.Format == formatJSON {
		path, err := outputPath(f.outDir, output, formatJSON)
		if err != nil {
			return err
		}
		if err := ensureDir(filepath.Dir(path)); err != nil {
			return err
		}
		if err := graphio.ExportJSON(g, path); err != nil {
			return demerr.Wrap(demerr.ErrCodeInvalidOutput, err, "export %s", path)
		}
		printSuccess(out, "Exported %s", input)
		printFile(out, path)
		printStats(out, g.NodeCount(), g.EdgeCount(), false)
		return nil
	}

	path, err := outputPath(f.outDir, output, f.opts.Format)
	if err != nil {
		return err
	}
	if root, ok := g.Meta()[dag.MetaRoot].(string); ok {
		f.opts.Root = root
	}

	runner := c.newRunner(ctx, f.noCache)
	defer runner.Close()

	art, err := runner.RenderGraph(ctx, g, htmlSourceHash(data, container), f.opts)
	if err != nil {
		return err
	}
	if err := writeFile(path, art.Data); err != nil {
		return err
	}

	printSuccess(out, "Rendered %s", input)
	printFile(out, path)
	printStats(out, g.NodeCount(), g.EdgeCount(), art.CacheHit)
	return nil
}

// htmlSourceHash keys a page by its bytes and the container read from it,
// since one page can hold several lists.
func htmlSourceHash(data []byte, container string) string {
	return cache.Hash(append([]byte(container+"\x00"), data...))
}
