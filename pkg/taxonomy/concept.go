package taxonomy

import (
	"cmp"
	"maps"
	"slices"
)

// WellKnownRoot is the id of the concept that heads the whole scheme.
const WellKnownRoot = "modeOfDemise"

// Concept is a single entry of the concept scheme.
type Concept struct {
	ID         string   `json:"id"`
	Label      string   `json:"label,omitempty"`
	Definition string   `json:"definition,omitempty"`
	Example    string   `json:"example,omitempty"`
	ScopeNote  string   `json:"scope_note,omitempty"`
	AltLabels  []string `json:"alt_labels,omitempty"`
	Broader    []string `json:"broader,omitempty"`
	Narrower   []string `json:"narrower,omitempty"`
}

// DisplayLabel returns the preferred label, or the id when there is none.
func (c Concept) DisplayLabel() string {
	if c.Label != "" {
		return c.Label
	}
	return c.ID
}

// Compare orders concepts by display label, breaking ties by id.
func Compare(a, b Concept) int {
	if c := cmp.Compare(a.DisplayLabel(), b.DisplayLabel()); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// Catalogue maps concept ids to concepts.
type Catalogue map[string]Concept

// Get returns the concept with the given id.
func (c Catalogue) Get(id string) (Concept, bool) {
	concept, ok := c[id]
	return concept, ok
}

// Has reports whether id names a concept in the catalogue.
func (c Catalogue) Has(id string) bool {
	_, ok := c[id]
	return ok
}

// IDs returns all concept ids in lexical order.
func (c Catalogue) IDs() []string {
	return slices.Sorted(maps.Keys(c))
}

// Sorted returns all concepts ordered by [Compare].
func (c Catalogue) Sorted() []Concept {
	return slices.SortedFunc(maps.Values(c), Compare)
}

// sortIDs orders ids by the concepts they name. Ids missing from the
// catalogue sort by the id itself.
func (c Catalogue) sortIDs(ids []string) {
	slices.SortFunc(ids, func(a, b string) int {
		return Compare(c.lookup(a), c.lookup(b))
	})
}

func (c Catalogue) lookup(id string) Concept {
	if concept, ok := c[id]; ok {
		return concept
	}
	return Concept{ID: id}
}
