package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	demerr "github.com/FPannach/Fanfiction-Annotation-Project/pkg/errors"
	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/taxonomy"
)

// showCommand prints one concept.
func (c *CLI) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a single concept",
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return c.completeConceptIDs(toComplete)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runShow(cmd.Context(), cmd, strings.TrimPrefix(args[0], ":"))
		},
	}
}

func (c *CLI) runShow(ctx context.Context, cmd *cobra.Command, id string) error {
	if err := demerr.ValidateConceptID(id); err != nil {
		return err
	}
	runner := c.newRunner(ctx, false)
	defer runner.Close()

	src, err := c.loadSource(ctx, runner)
	if err != nil {
		return err
	}
	cat := src.Concepts()
	concept, ok := cat.Get(id)
	if !ok {
		return demerr.New(demerr.ErrCodeUnknownRoot, "concept %q not found in %s", id, src.Path)
	}

	out := cmd.OutOrStdout()
	printKeyValue(out, "Concept", StyleTitle.Render(concept.DisplayLabel())+" "+StyleDim.Render(":"+concept.ID))
	printKeyValue(out, "Also", strings.Join(concept.AltLabels, ", "))
	printKeyValue(out, "Definition", concept.Definition)
	printKeyValue(out, "Example", concept.Example)
	printKeyValue(out, "Scope", concept.ScopeNote)
	printKeyValue(out, "Broader", labels(cat, taxonomy.Parents(cat, id)))
	printKeyValue(out, "Narrower", labels(cat, taxonomy.ChildrenMap(cat)[id]))
	printKeyValue(out, "Below", strconv.Itoa(taxonomy.CountDescendants(cat, id)))
	return nil
}

// labels joins display labels of ids.
func labels(cat taxonomy.Catalogue, ids []string) string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		c, _ := cat.Get(id)
		out = append(out, c.DisplayLabel())
	}
	return strings.Join(out, ", ")
}
