package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	demerr "github.com/FPannach/Fanfiction-Annotation-Project/pkg/errors"
	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/pipeline"
	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/taxonomy"
)

// report collects catalogue problems. Problems fail the check; notes do not.
type report struct {
	problems []string
	notes    []string
}

// checkCommand lints the catalogue.
func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report problems in the catalogue",
		Long: `Report problems in the catalogue and exit non-zero when any are found.

Problems: repeated concept ids, statements the parser stepped over,
broader/narrower references to missing concepts and broader cycles.
Notes: blocks that do not declare a concept (such as @prefix lines) and
narrower links without the matching broader link.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd.Context(), cmd)
		},
	}
}

func (c *CLI) runCheck(ctx context.Context, cmd *cobra.Command) error {
	runner := c.newRunner(ctx, false)
	defer runner.Close()

	src, err := c.loadSource(ctx, runner)
	if err != nil {
		return err
	}
	rep, err := checkSource(src)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, n := range rep.notes {
		printInfo(out, "%s", n)
	}
	for _, p := range rep.problems {
		printWarning(out, "%s", p)
	}
	if len(rep.problems) > 0 {
		return demerr.New(demerr.ErrCodeInvalidInput, "%d problem(s) in %s", len(rep.problems), src.Path)
	}
	printSuccess(out, "%s: %d concepts, no problems", src.Path, len(src.Concepts()))
	return nil
}

func checkSource(src *pipeline.Source) (report, error) {
	var rep report
	res := src.Result
	cat := src.Concepts()

	for _, s := range res.Skipped {
		rep.notes = append(rep.notes, fmt.Sprintf("line %d: skipped block (%s)", s.Line, s.Reason))
	}
	for _, d := range res.Duplicates {
		rep.problems = append(rep.problems, fmt.Sprintf("line %d: concept %s already declared on line %d", d.Line, d.ID, d.FirstLine))
	}
	for _, w := range res.Warnings {
		rep.problems = append(rep.problems, w.String())
	}
	for _, ref := range taxonomy.Dangling(cat) {
		rep.problems = append(rep.problems, fmt.Sprintf("%s: %s target %s is not in the catalogue", ref.From, ref.Relation, ref.To))
	}
	for _, ref := range taxonomy.NarrowerMismatches(cat) {
		rep.notes = append(rep.notes, fmt.Sprintf("%s lists %s as narrower, but %s does not name it as broader", ref.From, ref.To, ref.To))
	}

	g, err := taxonomy.ToDAG(cat, taxonomy.All(cat), "")
	if err != nil {
		return rep, demerr.Wrap(demerr.ErrCodeInternal, err, "build concept graph")
	}
	if cycle := g.FindCycle(); len(cycle) > 0 {
		rep.problems = append(rep.problems, "broader cycle: "+strings.Join(append(cycle, cycle[0]), " -> "))
	}
	return rep, nil
}
