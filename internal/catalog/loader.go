package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/blockforge/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

// Load reads a catalog document from path. HCL documents are authoritative;
// JSON and YAML documents carry either the structured {categories, blocks}
// shape or a flat palette list, in which case the builtin definitions keep
// the generator usable.
func Load(ctx context.Context, path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return loadHCL(ctx, path, data)
	case ".yaml", ".yml":
		return loadYAML(ctx, path, data)
	default:
		return loadJSON(ctx, path, data)
	}
}

// document is the structured catalog shape with full generation metadata.
type document struct {
	Version    int                    `json:"version" yaml:"version"`
	Categories map[string]categoryDoc `json:"categories" yaml:"categories"`
	Blocks     []blockDoc             `json:"blocks" yaml:"blocks"`
}

type categoryDoc struct {
	Title string `json:"title" yaml:"title"`
	Color string `json:"color" yaml:"color"`
}

type blockDoc struct {
	ID         string         `json:"id" yaml:"id"`
	Name       string         `json:"name" yaml:"name"`
	Title      string         `json:"title" yaml:"title"`
	Category   string         `json:"category" yaml:"category"`
	Kind       string         `json:"kind" yaml:"kind"`
	Section    string         `json:"section" yaml:"section"`
	Template   string         `json:"template" yaml:"template"`
	Returns    string         `json:"returns" yaml:"returns"`
	Parameters []paramDoc     `json:"parameters" yaml:"parameters"`
	Setup      stringList     `json:"setup" yaml:"setup"`
	Globals    stringList     `json:"globals" yaml:"globals"`
	Includes   stringList     `json:"includes" yaml:"includes"`
	Functions  stringList     `json:"functions" yaml:"functions"`
	Containers []containerDoc `json:"containers" yaml:"containers"`
	Aliases    []string       `json:"aliases" yaml:"aliases"`
}

type paramDoc struct {
	Name    string `json:"name" yaml:"name"`
	Type    string `json:"type" yaml:"type"`
	Default any    `json:"default" yaml:"default"`
}

type containerDoc struct {
	Name        string `json:"name" yaml:"name"`
	Section     string `json:"section" yaml:"section"`
	Placeholder string `json:"placeholder" yaml:"placeholder"`
}

// stringList accepts both a single string and a list of strings, the way
// snippet fields appear in existing catalog documents.
type stringList []string

func (s *stringList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*s = stringList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = stringList(many)
	return nil
}

func (s *stringList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var one string
		if err := node.Decode(&one); err != nil {
			return err
		}
		*s = stringList{one}
		return nil
	}
	var many []string
	if err := node.Decode(&many); err != nil {
		return err
	}
	*s = stringList(many)
	return nil
}

func loadJSON(ctx context.Context, path string, data []byte) (*Registry, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("catalog %s is empty", path)
	}
	if trimmed[0] == '[' {
		var entries []paletteEntry
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("invalid JSON in catalog %s: %w", path, err)
		}
		return fromPalette(ctx, entries), nil
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON in catalog %s: %w", path, err)
	}
	return fromDocument(ctx, path, &doc)
}

func loadYAML(ctx context.Context, path string, data []byte) (*Registry, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("invalid YAML in catalog %s: %w", path, err)
	}
	if len(root.Content) == 0 {
		return nil, fmt.Errorf("catalog %s is empty", path)
	}
	if root.Content[0].Kind == yaml.SequenceNode {
		var entries []paletteEntry
		if err := root.Decode(&entries); err != nil {
			return nil, fmt.Errorf("invalid YAML in catalog %s: %w", path, err)
		}
		return fromPalette(ctx, entries), nil
	}
	var doc document
	if err := root.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid YAML in catalog %s: %w", path, err)
	}
	return fromDocument(ctx, path, &doc)
}

// fromDocument translates the structured shape into a registry. Malformed
// entries here are hard errors: the document claims full generation metadata,
// so silently dropping a block would corrupt programs that reference it.
func fromDocument(ctx context.Context, path string, doc *document) (*Registry, error) {
	logger := ctxlog.FromContext(ctx)

	definitions := make(map[string]*BlockDefinition, len(doc.Blocks))
	aliases := make(map[string]string)
	for i, b := range doc.Blocks {
		name := b.Name
		if name == "" {
			name = b.Title
		}
		def := &BlockDefinition{
			ID:        strings.TrimSpace(b.ID),
			Name:      name,
			Category:  strings.TrimSpace(b.Category),
			Kind:      Kind(b.Kind),
			Template:  b.Template,
			Returns:   b.Returns,
			Setup:     b.Setup,
			Globals:   b.Globals,
			Includes:  b.Includes,
			Functions: b.Functions,
		}
		if def.ID == "" {
			return nil, fmt.Errorf("catalog %s: block #%d has no id", path, i)
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
			def.Parameters = append(def.Parameters, BlockParameter{
				Name:    strings.TrimSpace(p.Name),
				Type:    paramType,
				Default: GoValue(p.Default),
			})
		}
		for _, c := range b.Containers {
			section, err := ParseSection(c.Section)
			if err != nil {
				return nil, fmt.Errorf("catalog %s: block %q container %q: %w", path, def.ID, c.Name, err)
			}
			def.Containers = append(def.Containers, BlockContainerSpec{
				Name:        strings.TrimSpace(c.Name),
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

	categories := make(map[string]Category, len(doc.Categories))
	for name, cat := range doc.Categories {
		categories[name] = Category{Title: cat.Title, Color: cat.Color}
	}

	logger.Debug("Catalog document loaded.", "path", path, "blocks", len(definitions), "aliases", len(aliases))
	return NewRegistry(definitions, categories, aliases), nil
}
