package taxonomy

// CategoryCount is the number of modes of demise below one category.
type CategoryCount struct {
	ID    string
	Label string
	Count int
	Found bool
}

// CategoryCounts counts descendants for each requested category, in the
// order given. Unknown categories are reported with Found unset.
func CategoryCounts(cat Catalogue, ids []string) []CategoryCount {
	children := ChildrenMap(cat)
	out := make([]CategoryCount, 0, len(ids))
	for _, id := range ids {
		c, ok := cat.Get(id)
		if !ok {
			out = append(out, CategoryCount{ID: id, Label: id})
			continue
		}
		out = append(out, CategoryCount{
			ID:    id,
			Label: c.DisplayLabel(),
			Count: len(Reachable(children, id, false)),
			Found: true,
		})
	}
	return out
}

// DefaultCategories are the three upper categories of the scheme.
var DefaultCategories = []string{
	"naturalSupernaturalCauses",
	"physicalViolence",
	"indirectOrPsychologicalModes",
}
