// Package codegen lowers a program tree into Arduino sketch source. Emission
// is section-biased: every line lands in one of the fixed sections first and
// the final text is assembled from the section buffers in one pass, which
// keeps the block-to-line mapping a pure function of the buffers.
package codegen

import (
	"fmt"
	"strings"

	"github.com/vk/blockforge/internal/ast"
	"github.com/vk/blockforge/internal/board"
	"github.com/vk/blockforge/internal/catalog"
	"github.com/zclconf/go-cty/cty"
)

// baselineInclude seeds every sketch regardless of the block set.
const baselineInclude = "#include <Arduino.h>"

// SketchBundle is the result of one build: the assembled source, the mapping
// from block instance id to the 1-based output lines it produced, and the raw
// per-section line texts.
type SketchBundle struct {
	Code     string
	Mapping  map[string][]int
	Sections map[catalog.Section][]string
}

// GenerationError is the fatal error type for a build attempt. No partial
// output is produced alongside it.
type GenerationError struct {
	BlockID string
	Reason  string
}

func (e *GenerationError) Error() string {
	if e.BlockID != "" {
		return fmt.Sprintf("block %s: %s", e.BlockID, e.Reason)
	}
	return e.Reason
}

// Generator lowers programs against one catalog and one board profile. It is
// stateless between Build calls; concurrent builds of distinct programs are
// independent.
type Generator struct {
	registry *catalog.Registry
	board    *board.Profile
}

// New creates a generator bound to the given catalog and board.
func New(registry *catalog.Registry, profile *board.Profile) *Generator {
	return &Generator{registry: registry, board: profile}
}

// Build renders the whole program into a sketch bundle.
func (g *Generator) Build(program *ast.Program) (*SketchBundle, error) {
	root, ok := program.Root()
	if !ok {
		return nil, &GenerationError{Reason: "program has no entry block"}
	}

	b := newSketchBuilder(g.registry, program)
	b.addInclude(baselineInclude, "")
	if _, err := b.process(root, catalog.SectionNone, 0, false); err != nil {
		return nil, err
	}
	return b.finish(), nil
}

// taggedLine is one emitted line plus the instance that produced it. An empty
// blockID marks framework lines such as wrappers and separators.
type taggedLine struct {
	text    string
	blockID string
}

// sketchBuilder carries the call-local state of a single build.
type sketchBuilder struct {
	registry *catalog.Registry
	program  *ast.Program

	sections    map[catalog.Section][]taggedLine
	includes    []taggedLine
	includeSeen map[string]struct{}
}

func newSketchBuilder(registry *catalog.Registry, program *ast.Program) *sketchBuilder {
	return &sketchBuilder{
		registry:    registry,
		program:     program,
		sections:    make(map[catalog.Section][]taggedLine),
		includeSeen: make(map[string]struct{}),
	}
}

// process emits a block's one-shot snippets, then either commits its rendered
// template to the effective section or, when inline is set, returns the
// rendered text for substitution into the parent template.
func (b *sketchBuilder) process(inst *ast.Instance, target catalog.Section, indent int, inline bool) (string, error) {
	def, err := b.registry.Get(inst.DefinitionID)
	if err != nil {
		return "", &GenerationError{BlockID: inst.ID, Reason: fmt.Sprintf("unknown block type %q", inst.DefinitionID)}
	}
	vars := b.context(inst, def)

	for _, include := range def.Includes {
		b.addInclude(ExpandMap(include, vars), inst.ID)
	}
	for _, snippet := range def.Globals {
		b.addLines(catalog.SectionGlobals, ExpandMap(snippet, vars), inst.ID)
	}
	for _, snippet := range def.Functions {
		b.addLines(catalog.SectionFunctions, ExpandMap(snippet, vars), inst.ID)
	}
	for _, snippet := range def.Setup {
		b.addLines(catalog.SectionSetup, indentLines(ExpandMap(snippet, vars), 1), inst.ID)
	}

	if def.Template != "" {
		rendered, err := b.renderTemplate(def, inst, vars, indent)
		if err != nil {
			return "", err
		}
		if inline {
			return rendered, nil
		}
		section := def.Section
		if section == catalog.SectionNone {
			section = target
		}
		if section == catalog.SectionNone {
			return "", &GenerationError{BlockID: inst.ID, Reason: fmt.Sprintf("block %q resolves to no output section", def.ID)}
		}
		b.addLines(section, rendered, inst.ID)
		return rendered, nil
	}

	// No template: a transparent grouping node whose only effect is its
	// containers.
	for _, container := range def.Containers {
		if err := b.processContainer(inst, container); err != nil {
			return "", err
		}
	}
	return "", nil
}

// renderTemplate substitutes container placeholders and parameter tokens in
// one pass and indents the result to the caller's level. Placeholder children
// render inline at a relative indent of one unit; containers without a
// placeholder emit independently into their own section.
func (b *sketchBuilder) renderTemplate(def *catalog.BlockDefinition, inst *ast.Instance, params map[string]string, indent int) (string, error) {
	vars := make(map[string]string, len(params)+len(def.Containers))
	for name, value := range params {
		vars[name] = value
	}

	for _, container := range def.Containers {
		if container.Placeholder == "" {
			if err := b.processContainer(inst, container); err != nil {
				return "", err
			}
			continue
		}
		var parts []string
		for _, childID := range inst.Children(container.Name) {
			child, err := b.instance(inst, childID)
			if err != nil {
				return "", err
			}
			text, err := b.process(child, catalog.SectionNone, 0, true)
			if err != nil {
				return "", err
			}
			if text != "" {
				parts = append(parts, text)
			}
		}
		joined := strings.Join(parts, "\n")
		if joined != "" {
			joined = indentLines(joined, 1)
		}
		vars[container.Placeholder] = joined
	}

	return indentLines(ExpandMap(def.Template, vars), indent), nil
}

// processContainer emits the container's children as independent top-level
// blocks targeting the container's declared section. Children landing in the
// setup or loop body start one indent level in.
func (b *sketchBuilder) processContainer(inst *ast.Instance, container catalog.BlockContainerSpec) error {
	indent := 0
	if container.Section == catalog.SectionSetup || container.Section == catalog.SectionLoop {
		indent = 1
	}
	for _, childID := range inst.Children(container.Name) {
		child, err := b.instance(inst, childID)
		if err != nil {
			return err
		}
		if _, err := b.process(child, container.Section, indent, false); err != nil {
			return err
		}
	}
	return nil
}

func (b *sketchBuilder) instance(parent *ast.Instance, id string) (*ast.Instance, error) {
	child, ok := b.program.Instance(id)
	if !ok {
		return nil, &GenerationError{BlockID: parent.ID, Reason: fmt.Sprintf("missing child instance %q", id)}
	}
	return child, nil
}

// context resolves every declared parameter to its effective string form and
// binds the implicit id token. Parameters with no value and no default stay
// unbound so their tokens survive as written.
func (b *sketchBuilder) context(inst *ast.Instance, def *catalog.BlockDefinition) map[string]string {
	vars := make(map[string]string, len(def.Parameters)+1)
	for _, param := range def.Parameters {
		value, ok := inst.Param(param.Name)
		if !ok {
			value = param.Default
		}
		if value == cty.NilVal || value.IsNull() {
			continue
		}
		vars[param.Name] = catalog.FormatValue(value)
	}
	if _, ok := vars["id"]; !ok {
		vars["id"] = inst.ID
	}
	return vars
}

// addInclude deduplicates include lines in insertion order, attributing each
// to its first requester.
func (b *sketchBuilder) addInclude(text, blockID string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if _, seen := b.includeSeen[text]; seen {
		return
	}
	b.includeSeen[text] = struct{}{}
	b.includes = append(b.includes, taggedLine{text: text, blockID: blockID})
}

// addLines appends every line of text to the section buffer tagged with the
// originating instance.
func (b *sketchBuilder) addLines(section catalog.Section, text string, blockID string) {
	if text == "" {
		return
	}
	for _, line := range strings.Split(text, "\n") {
		b.sections[section] = append(b.sections[section], taggedLine{text: line, blockID: blockID})
	}
}

// finish flattens the section buffers into final source text in fixed order
// and records the line mapping as it goes.
func (b *sketchBuilder) finish() *SketchBundle {
	b.sections[catalog.SectionIncludes] = append(b.sections[catalog.SectionIncludes], b.includes...)

	var lines []taggedLine
	push := func(text, blockID string) {
		lines = append(lines, taggedLine{text: text, blockID: blockID})
	}
	pushSection := func(section catalog.Section) {
		lines = append(lines, b.sections[section]...)
	}

	if len(b.sections[catalog.SectionIncludes]) > 0 {
		pushSection(catalog.SectionIncludes)
		push("", "")
	}
	if len(b.sections[catalog.SectionGlobals]) > 0 {
		push("// ===== Globals =====", "")
		pushSection(catalog.SectionGlobals)
		push("", "")
	}
	push("void setup() {", "")
	pushSection(catalog.SectionSetup)
	push("}", "")
	push("", "")
	push("void loop() {", "")
	pushSection(catalog.SectionLoop)
	push("}", "")
	if len(b.sections[catalog.SectionFunctions]) > 0 {
		push("", "")
		pushSection(catalog.SectionFunctions)
	}

	mapping := make(map[string][]int)
	texts := make([]string, len(lines))
	for i, line := range lines {
		texts[i] = line.text
		if line.blockID != "" {
			mapping[line.blockID] = append(mapping[line.blockID], i+1)
		}
	}

	sections := make(map[catalog.Section][]string, len(b.sections))
	for _, section := range catalog.Sections() {
		buffer := b.sections[section]
		out := make([]string, len(buffer))
		for i, line := range buffer {
			out[i] = line.text
		}
		sections[section] = out
	}

	code := strings.TrimRight(strings.Join(texts, "\n"), " \t\n") + "\n"
	return &SketchBundle{Code: code, Mapping: mapping, Sections: sections}
}
