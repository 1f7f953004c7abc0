package catalog

import (
	"context"
	"strings"

	"github.com/vk/blockforge/internal/ctxlog"
)

// paletteEntry is the flat list-format block descriptor. It carries enough
// for palette display but no generation templates.
type paletteEntry struct {
	ID            string         `json:"id" yaml:"id"`
	Category      string         `json:"category" yaml:"category"`
	Title         string         `json:"title" yaml:"title"`
	Name          string         `json:"name" yaml:"name"`
	Section       string         `json:"section" yaml:"section"`
	Description   string         `json:"description" yaml:"description"`
	Color         string         `json:"color" yaml:"color"`
	Params        []paramDoc     `json:"params" yaml:"params"`
	DefaultParams map[string]any `json:"default_params" yaml:"default_params"`
	Aliases       []string       `json:"aliases" yaml:"aliases"`
}

// fromPalette builds a degraded-mode registry: alias mappings come from the
// palette list, generation metadata from the builtin block set. Malformed
// list entries are skipped so one bad descriptor does not take down the whole
// palette.
func fromPalette(ctx context.Context, entries []paletteEntry) *Registry {
	logger := ctxlog.FromContext(ctx)

	aliases := make(map[string]string)
	skipped := 0
	for _, entry := range entries {
		id := strings.TrimSpace(entry.ID)
		category := strings.TrimSpace(entry.Category)
		if id == "" || category == "" {
			skipped++
			continue
		}
		for _, alias := range entry.Aliases {
			if alias = strings.TrimSpace(alias); alias != "" {
				aliases[alias] = id
			}
		}
	}
	if skipped > 0 {
		logger.Warn("Skipped malformed palette entries.", "count", skipped)
	}
	logger.Debug("Palette catalog loaded, falling back to builtin definitions.", "entries", len(entries)-skipped)

	return NewRegistry(builtinDefinitions(), builtinCategories(), aliases)
}
