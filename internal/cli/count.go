package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/taxonomy"
)

// countCommand prints how many modes of demise sit below each category.
func (c *CLI) countCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count [category...]",
		Short: "Count the modes of demise below each category",
		Long: `Count the concepts reachable below each category.

Without arguments the categories come from the configuration (by default
naturalSupernaturalCauses, physicalViolence and indirectOrPsychologicalModes).
Categories missing from the catalogue are reported as not found.`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return c.completeConceptIDs(toComplete)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := args
			if len(ids) == 0 {
				ids = c.Config.Categories
			}
			for i := range ids {
				ids[i] = strings.TrimPrefix(ids[i], ":")
			}
			return c.runCount(cmd.Context(), cmd, ids)
		},
	}
	return cmd
}

func (c *CLI) runCount(ctx context.Context, cmd *cobra.Command, ids []string) error {
	runner := c.newRunner(ctx, false)
	defer runner.Close()

	src, err := c.loadSource(ctx, runner)
	if err != nil {
		return err
	}

	counts := taxonomy.CategoryCounts(src.Concepts(), ids)
	out := cmd.OutOrStdout()
	if _, err := out.Write([]byte(countTable(counts) + "\n")); err != nil {
		return err
	}
	for _, cc := range counts {
		if !cc.Found {
			printWarning(out, "category %s not found in %s", cc.ID, src.Path)
		}
	}
	return nil
}

// countTable lays the counts out as a table with a total row.
func countTable(counts []taxonomy.CategoryCount) string {
	rows := make([][]string, 0, len(counts)+1)
	total := 0
	for _, cc := range counts {
		n := "not found"
		if cc.Found {
			n = strconv.Itoa(cc.Count)
			total += cc.Count
		}
		rows = append(rows, []string{cc.Label, n})
	}
	rows = append(rows, []string{"Total", strconv.Itoa(total)})
	return renderTable([]string{"Category", "Modes of demise"}, rows)
}
