package catalog

import (
	"fmt"
	"sort"
)

// DefaultEntryBlockID is the definition id of the program entry event used by
// the stock block set.
const DefaultEntryBlockID = "EV_START"

// UnknownBlockError reports a lookup for a block id the catalog does not hold.
type UnknownBlockError struct {
	ID string
}

func (e *UnknownBlockError) Error() string {
	return fmt.Sprintf("unknown block %q", e.ID)
}

// Category carries palette display metadata for a block category.
type Category struct {
	Title string
	Color string
}

// Registry serves immutable block definitions by id. It is loaded once at
// startup and is read-only afterwards, so concurrent readers need no locking.
type Registry struct {
	definitions map[string]*BlockDefinition
	categories  map[string]Category
	aliases     map[string]string
	entryID     string
}

// NewRegistry builds a registry from already-validated definitions.
func NewRegistry(definitions map[string]*BlockDefinition, categories map[string]Category, aliases map[string]string) *Registry {
	r := &Registry{
		definitions: make(map[string]*BlockDefinition, len(definitions)),
		categories:  make(map[string]Category, len(categories)),
		aliases:     make(map[string]string, len(aliases)),
		entryID:     DefaultEntryBlockID,
	}
	for id, def := range definitions {
		r.definitions[id] = def
	}
	for name, cat := range categories {
		r.categories[name] = cat
	}
	for old, canonical := range aliases {
		r.aliases[old] = canonical
	}
	return r
}

// Get returns the definition for id, or an UnknownBlockError.
func (r *Registry) Get(id string) (*BlockDefinition, error) {
	if def, ok := r.definitions[id]; ok {
		return def, nil
	}
	return nil, &UnknownBlockError{ID: id}
}

// Contains reports whether the catalog holds a definition for id.
func (r *Registry) Contains(id string) bool {
	_, ok := r.definitions[id]
	return ok
}

// Canonical maps a possibly-deprecated block id to its canonical id. Ids with
// no alias entry pass through unchanged, including ids the catalog does not
// know; those surface later as unknown-block findings.
func (r *Registry) Canonical(id string) string {
	if canonical, ok := r.aliases[id]; ok {
		return canonical
	}
	return id
}

// EntryBlockID returns the definition id a program root must reference.
func (r *Registry) EntryBlockID() string {
	return r.entryID
}

// Definitions returns all definitions sorted by id.
func (r *Registry) Definitions() []*BlockDefinition {
	defs := make([]*BlockDefinition, 0, len(r.definitions))
	for _, def := range r.definitions {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	return defs
}

// Categories returns the palette metadata keyed by category name.
func (r *Registry) Categories() map[string]Category {
	out := make(map[string]Category, len(r.categories))
	for name, cat := range r.categories {
		out[name] = cat
	}
	return out
}
