// Package ast holds the in-memory program tree consumed by the validator and
// the code generator. Instances live in an arena keyed by instance id and
// containers hold ordered lists of child ids, so there is a single owner for
// every node and the "no root" state is explicit.
package ast

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// Instance is one placed block: a reference to a catalog definition plus the
// concrete parameter values and nested children the user configured.
type Instance struct {
	ID           string
	DefinitionID string
	Params       map[string]cty.Value
	children     map[string][]string
}

// NewInstance creates an instance with empty parameter and child maps.
func NewInstance(id, definitionID string) *Instance {
	return &Instance{
		ID:           id,
		DefinitionID: definitionID,
		Params:       make(map[string]cty.Value),
		children:     make(map[string][]string),
	}
}

// SetParam records a concrete parameter value on the instance.
func (n *Instance) SetParam(name string, value cty.Value) {
	if n.Params == nil {
		n.Params = make(map[string]cty.Value)
	}
	n.Params[name] = value
}

// Param returns the concrete value set for name, if any.
func (n *Instance) Param(name string) (cty.Value, bool) {
	v, ok := n.Params[name]
	return v, ok
}

// Children returns the ordered child ids nested in the named container.
func (n *Instance) Children(container string) []string {
	return n.children[container]
}

// Program is the whole AST: a target board, an arena of instances and an
// optional root. An empty RootID means the program has no entry block yet.
type Program struct {
	BoardID  string
	RootID   string
	Metadata map[string]any

	nodes map[string]*Instance
}

// NewProgram creates an empty program for the given board.
func NewProgram(boardID string) *Program {
	return &Program{
		BoardID:  boardID,
		Metadata: make(map[string]any),
		nodes:    make(map[string]*Instance),
	}
}

// Add places an instance into the arena. Instance ids are unique within a
// program.
func (p *Program) Add(inst *Instance) error {
	if inst.ID == "" {
		return fmt.Errorf("instance of %q has no id", inst.DefinitionID)
	}
	if _, dup := p.nodes[inst.ID]; dup {
		return fmt.Errorf("duplicate instance id %q", inst.ID)
	}
	p.nodes[inst.ID] = inst
	return nil
}

// Instance returns the arena node with the given id.
func (p *Program) Instance(id string) (*Instance, bool) {
	inst, ok := p.nodes[id]
	return inst, ok
}

// SetRoot designates an already-added instance as the program root.
func (p *Program) SetRoot(id string) error {
	if _, ok := p.nodes[id]; !ok {
		return fmt.Errorf("root instance %q is not in the program", id)
	}
	p.RootID = id
	return nil
}

// Root returns the root instance, or false when the program has none.
func (p *Program) Root() (*Instance, bool) {
	if p.RootID == "" {
		return nil, false
	}
	return p.Instance(p.RootID)
}

// Attach adds child to the arena (unless already present) and appends it to
// the parent's named container, preserving insertion order.
func (p *Program) Attach(parentID, container string, child *Instance) error {
	parent, ok := p.nodes[parentID]
	if !ok {
		return fmt.Errorf("parent instance %q is not in the program", parentID)
	}
	if _, present := p.nodes[child.ID]; !present {
		if err := p.Add(child); err != nil {
			return err
		}
	}
	return p.link(parent, container, child.ID)
}

// Link appends an existing arena node to the parent's named container.
func (p *Program) Link(parentID, container, childID string) error {
	parent, ok := p.nodes[parentID]
	if !ok {
		return fmt.Errorf("parent instance %q is not in the program", parentID)
	}
	if _, ok := p.nodes[childID]; !ok {
		return fmt.Errorf("child instance %q is not in the program", childID)
	}
	return p.link(parent, container, childID)
}

func (p *Program) link(parent *Instance, container, childID string) error {
	if childID == parent.ID {
		return fmt.Errorf("instance %q cannot contain itself", parent.ID)
	}
	if parent.children == nil {
		parent.children = make(map[string][]string)
	}
	parent.children[container] = append(parent.children[container], childID)
	return nil
}

// Len reports how many instances the arena holds.
func (p *Program) Len() int {
	return len(p.nodes)
}
