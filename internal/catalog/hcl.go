package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/blockforge/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// hclFile decodes the top-level blocks of a native-HCL catalog document.
type hclFile struct {
	Categories []*hclCategory `hcl:"category,block"`
	Blocks     []*hclBlock    `hcl:"block,block"`
}

type hclCategory struct {
	Name  string `hcl:"name,label"`
	Title string `hcl:"title,optional"`
	Color string `hcl:"color,optional"`
}

type hclBlock struct {
	ID         string          `hcl:"id,label"`
	Name       string          `hcl:"name"`
	Category   string          `hcl:"category"`
	Kind       string          `hcl:"kind"`
	Section    string          `hcl:"section,optional"`
	Template   string          `hcl:"template,optional"`
	Returns    string          `hcl:"returns,optional"`
	Setup      []string        `hcl:"setup,optional"`
	Globals    []string        `hcl:"globals,optional"`
	Includes   []string        `hcl:"includes,optional"`
	Functions  []string        `hcl:"functions,optional"`
	Aliases    []string        `hcl:"aliases,optional"`
	Parameters []*hclParameter `hcl:"parameter,block"`
	Containers []*hclContainer `hcl:"container,block"`
}

type hclParameter struct {
	Name    string     `hcl:"name,label"`
	Type    string     `hcl:"type"`
	Default *cty.Value `hcl:"default,optional"`
}

type hclContainer struct {
	Name        string `hcl:"name,label"`
	Section     string `hcl:"section"`
	Placeholder string `hcl:"placeholder,optional"`
}

// loadHCL parses and translates a native-HCL catalog document.
func loadHCL(ctx context.Context, path string, data []byte) (*Registry, error) {
	logger := ctxlog.FromContext(ctx)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse catalog %s: %s", path, diags.Error())
	}
	var root hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode catalog %s: %s", path, diags.Error())
	}

	definitions := make(map[string]*BlockDefinition, len(root.Blocks))
	aliases := make(map[string]string)
	for _, b := range root.Blocks {
		def := &BlockDefinition{
			ID:        strings.TrimSpace(b.ID),
			Name:      b.Name,
			Category:  b.Category,
			Kind:      Kind(b.Kind),
			Template:  b.Template,
			Returns:   b.Returns,
			Setup:     b.Setup,
			Globals:   b.Globals,
			Includes:  b.Includes,
			Functions: b.Functions,
		}
		if b.Section != "" {
			section, err := ParseSection(b.Section)
			if err != nil {
				return nil, fmt.Errorf("catalog %s: block %q: %w", path, def.ID, err)
			}
			def.Section = section
		}
		for _, p := range b.Parameters {
			paramType, err := ParseParamType(p.Type)
			if err != nil {
				return nil, fmt.Errorf("catalog %s: block %q parameter %q: %w", path, def.ID, p.Name, err)
			}
			param := BlockParameter{Name: p.Name, Type: paramType, Default: cty.NilVal}
			if p.Default != nil {
				param.Default = *p.Default
			}
			def.Parameters = append(def.Parameters, param)
		}
		for _, c := range b.Containers {
			section, err := ParseSection(c.Section)
			if err != nil {
				return nil, fmt.Errorf("catalog %s: block %q container %q: %w", path, def.ID, c.Name, err)
			}
			def.Containers = append(def.Containers, BlockContainerSpec{
				Name:        c.Name,
				Section:     section,
				Placeholder: c.Placeholder,
			})
		}
		if err := def.check(); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", path, err)
		}
		if _, dup := definitions[def.ID]; dup {
			return nil, fmt.Errorf("catalog %s: block %q is defined twice", path, def.ID)
		}
		definitions[def.ID] = def
		for _, alias := range b.Aliases {
			if alias = strings.TrimSpace(alias); alias != "" {
				aliases[alias] = def.ID
			}
		}
	}

	categories := make(map[string]Category, len(root.Categories))
	for _, cat := range root.Categories {
		categories[cat.Name] = Category{Title: cat.Title, Color: cat.Color}
	}

	logger.Debug("HCL catalog loaded.", "path", path, "blocks", len(definitions), "categories", len(categories))
	return NewRegistry(definitions, categories, aliases), nil
}
