package catalog

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// Kind classifies the structural role of a block definition.
type Kind string

const (
	// KindEvent is an entry-point style block whose containers feed whole
	// sections (the start event's setup/loop slots).
	KindEvent Kind = "event"
	// KindStatement emits one or more lines into a section.
	KindStatement Kind = "statement"
	// KindExpression renders to a value substitutable into a parent parameter.
	KindExpression Kind = "expression"
)

// ParseKind converts a document string into a Kind.
func ParseKind(value string) (Kind, error) {
	switch Kind(value) {
	case KindEvent, KindStatement, KindExpression:
		return Kind(value), nil
	}
	return "", fmt.Errorf("unknown block kind %q", value)
}

// ParamType is the declared type of a block parameter. Only a few types carry
// validation rules today; the rest are accepted verbatim.
type ParamType string

const (
	ParamInt        ParamType = "int"
	ParamString     ParamType = "string"
	ParamDigitalPin ParamType = "digital_pin"
	ParamEnum       ParamType = "enum"
	ParamBool       ParamType = "bool"
	ParamFloat      ParamType = "float"
	ParamColor      ParamType = "color"
	ParamAny        ParamType = "any"
)

// ParseParamType converts a document string into a ParamType.
func ParseParamType(value string) (ParamType, error) {
	switch ParamType(value) {
	case ParamInt, ParamString, ParamDigitalPin, ParamEnum, ParamBool, ParamFloat, ParamColor, ParamAny:
		return ParamType(value), nil
	}
	return "", fmt.Errorf("unknown parameter type %q", value)
}

// BlockParameter describes one declared parameter of a block definition.
// Default is cty.NilVal when the parameter has no declared default.
type BlockParameter struct {
	Name    string
	Type    ParamType
	Default cty.Value
}

// BlockContainerSpec describes a named slot on a definition into which child
// blocks nest. When Placeholder is set, the container's rendered children are
// substituted into the parent template at that token; otherwise children are
// processed as independent emissions into Section.
type BlockContainerSpec struct {
	Name        string
	Section     Section
	Placeholder string
}

// BlockDefinition is an immutable catalog entry.
type BlockDefinition struct {
	ID       string
	Name     string
	Category string
	Kind     Kind

	// Section fixes the output section for the inline template. SectionNone
	// means the section is inherited from the parent container at generation
	// time.
	Section  Section
	Template string
	Returns  string

	Parameters []BlockParameter
	Containers []BlockContainerSpec

	// One-shot snippets emitted once per instance regardless of template.
	Setup     []string
	Globals   []string
	Includes  []string
	Functions []string
}

// IsExpression reports whether the definition renders to a value rather than
// a statement.
func (d *BlockDefinition) IsExpression() bool {
	return d.Kind == KindExpression
}

// Parameter returns the declared parameter with the given name.
func (d *BlockDefinition) Parameter(name string) (BlockParameter, bool) {
	for _, p := range d.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return BlockParameter{}, false
}

// Container returns the container spec with the given name.
func (d *BlockDefinition) Container(name string) (BlockContainerSpec, bool) {
	for _, c := range d.Containers {
		if c.Name == name {
			return c, true
		}
	}
	return BlockContainerSpec{}, false
}

// check validates the closed per-kind schema eagerly, so malformed entries
// fail at load time instead of mid-generation.
func (d *BlockDefinition) check() error {
	if d.ID == "" {
		return fmt.Errorf("block definition is missing an id")
	}
	if d.Name == "" {
		return fmt.Errorf("block %q is missing a name", d.ID)
	}
	if d.Category == "" {
		return fmt.Errorf("block %q is missing a category", d.ID)
	}
	if _, err := ParseKind(string(d.Kind)); err != nil {
		return fmt.Errorf("block %q: %w", d.ID, err)
	}
	if d.Kind == KindExpression && d.Template == "" {
		return fmt.Errorf("block %q is an expression but declares no template", d.ID)
	}
	seen := make(map[string]struct{}, len(d.Parameters))
	for _, p := range d.Parameters {
		if p.Name == "" {
			return fmt.Errorf("block %q declares a parameter without a name", d.ID)
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("block %q declares parameter %q twice", d.ID, p.Name)
		}
		seen[p.Name] = struct{}{}
	}
	names := make(map[string]struct{}, len(d.Containers))
	for _, c := range d.Containers {
		if c.Name == "" {
			return fmt.Errorf("block %q declares a container without a name", d.ID)
		}
		if _, dup := names[c.Name]; dup {
			return fmt.Errorf("block %q declares container %q twice", d.ID, c.Name)
		}
		names[c.Name] = struct{}{}
		if c.Section == SectionNone {
			return fmt.Errorf("block %q container %q has no section", d.ID, c.Name)
		}
	}
	return nil
}
