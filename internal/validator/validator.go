// Package validator walks a program tree against the catalog and the target
// board profile and reports diagnostics. Validation never fails hard: it
// always returns a (possibly empty) list and leaves the tree untouched.
package validator

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/vk/blockforge/internal/ast"
	"github.com/vk/blockforge/internal/board"
	"github.com/vk/blockforge/internal/catalog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Diagnostic is a single validation finding, optionally attributed to the
// block instance that produced it.
type Diagnostic struct {
	Message string
	BlockID string
}

func (d Diagnostic) String() string {
	if d.BlockID != "" {
		return fmt.Sprintf("[%s] %s", d.BlockID, d.Message)
	}
	return d.Message
}

// Validator checks programs against one catalog and one board profile.
type Validator struct {
	registry *catalog.Registry
	board    *board.Profile
}

// New creates a validator bound to the given catalog and board.
func New(registry *catalog.Registry, profile *board.Profile) *Validator {
	return &Validator{registry: registry, board: profile}
}

// Validate performs a depth-first pre-order pass over the program.
func (v *Validator) Validate(program *ast.Program) []Diagnostic {
	var diags []Diagnostic

	root, ok := program.Root()
	if !ok {
		return append(diags, Diagnostic{Message: "program has no entry block"})
	}

	used := make(map[catalog.Section]struct{})
	v.walk(program, root, catalog.SectionNone, used, &diags)

	if _, ok := used[catalog.SectionLoop]; !ok {
		diags = append(diags, Diagnostic{Message: "loop() has no executable blocks"})
	}
	if _, ok := used[catalog.SectionSetup]; !ok {
		diags = append(diags, Diagnostic{Message: "section 'setup' is empty"})
	}

	return diags
}

// walk visits one instance and recurses into all of its containers. inherited
// is the section the enclosing container targets; it stands in for blocks
// that carry a template but no fixed section of their own.
func (v *Validator) walk(program *ast.Program, inst *ast.Instance, inherited catalog.Section, used map[catalog.Section]struct{}, diags *[]Diagnostic) {
	def, err := v.registry.Get(inst.DefinitionID)
	if err != nil {
		// The subtree below an unknown block is unreachable for further
		// checks, so do not descend.
		*diags = append(*diags, Diagnostic{Message: "unknown block type", BlockID: inst.ID})
		return
	}

	if def.Template != "" {
		section := def.Section
		if section == catalog.SectionNone {
			section = inherited
		}
		if section != catalog.SectionNone {
			used[section] = struct{}{}
		}
	}
	if len(def.Setup) > 0 {
		used[catalog.SectionSetup] = struct{}{}
	}
	if len(def.Globals) > 0 {
		used[catalog.SectionGlobals] = struct{}{}
	}

	for _, param := range def.Parameters {
		value, ok := inst.Param(param.Name)
		if !ok {
			value = param.Default
		}
		if value == cty.NilVal || value.IsNull() {
			*diags = append(*diags, Diagnostic{
				Message: fmt.Sprintf("parameter %q is not set", param.Name),
				BlockID: inst.ID,
			})
			continue
		}
		switch param.Type {
		case catalog.ParamDigitalPin:
			v.checkDigitalPin(value, inst, diags)
		case catalog.ParamInt:
			if _, err := intValue(value); err != nil {
				*diags = append(*diags, Diagnostic{
					Message: fmt.Sprintf("parameter %q must be a number", param.Name),
					BlockID: inst.ID,
				})
			}
		}
	}

	for _, container := range def.Containers {
		for _, childID := range inst.Children(container.Name) {
			child, ok := program.Instance(childID)
			if !ok {
				*diags = append(*diags, Diagnostic{
					Message: fmt.Sprintf("container %q references missing instance %q", container.Name, childID),
					BlockID: inst.ID,
				})
				continue
			}
			v.walk(program, child, container.Section, used, diags)
		}
	}
}

func (v *Validator) checkDigitalPin(value cty.Value, inst *ast.Instance, diags *[]Diagnostic) {
	pin, err := pinNumber(value)
	if err != nil {
		*diags = append(*diags, Diagnostic{Message: "invalid pin format", BlockID: inst.ID})
		return
	}
	if !v.board.HasDigitalPin(pin) {
		*diags = append(*diags, Diagnostic{
			Message: fmt.Sprintf("pin D%d is not available on board %s", pin, v.board.Name),
			BlockID: inst.ID,
		})
	}
}

// pinNumber coerces a parameter value to a pin index, stripping a leading
// analog-style "A" prefix from string values.
func pinNumber(value cty.Value) (int, error) {
	if value.Type() == cty.String {
		s := strings.TrimSpace(value.AsString())
		s = strings.TrimPrefix(s, "A")
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("not a pin number: %q", s)
		}
		return n, nil
	}
	n, err := intValue(value)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// intValue coerces a cty value to an integer.
func intValue(value cty.Value) (int64, error) {
	num, err := convert.Convert(value, cty.Number)
	if err != nil {
		return 0, err
	}
	i, acc := num.AsBigFloat().Int64()
	if acc != big.Exact {
		return 0, fmt.Errorf("value %s is not an integer", catalog.FormatValue(value))
	}
	return i, nil
}
