package project

import (
	"context"
	"fmt"

	"github.com/vk/blockforge/internal/ast"
	"github.com/vk/blockforge/internal/catalog"
	"github.com/vk/blockforge/internal/ctxlog"
)

// BuildProgram converts the flat canvas graph into the nested program tree.
//
// The conversion is deterministic:
//   - legacy aliases are applied to node types first; ids the catalog cannot
//     resolve pass through unchanged and surface later as unknown-block
//     findings,
//   - the root is the first node in document order whose canonical type is
//     the catalog's entry definition,
//   - each edge, in document order, nests its target node into the source
//     node's container named after the source port; when the source
//     definition has exactly one container and the port name matches none,
//     that sole container is used; otherwise the edge is dropped with a
//     warning,
//   - nodes that end up neither the root nor attached anywhere are left in
//     the arena but unreachable, exactly as they are on the canvas.
func BuildProgram(ctx context.Context, doc *Document, registry *catalog.Registry) (*ast.Program, error) {
	logger := ctxlog.FromContext(ctx)

	program := ast.NewProgram(doc.Board)
	if doc.Port != "" {
		program.Metadata["port"] = doc.Port
	}

	for _, node := range doc.Nodes {
		if node.Type == "" {
			logger.Warn("Skipping node without a type.", "uid", node.UID)
			continue
		}
		canonical := registry.Canonical(node.Type)
		if canonical != node.Type {
			logger.Info("Replaced deprecated block id for compatibility.", "from", node.Type, "to", canonical)
		}
		uid := node.UID
		if uid == "" {
			uid = node.Type
		}
		inst := ast.NewInstance(uid, canonical)
		for name, value := range node.Params {
			inst.SetParam(name, catalog.GoValue(value))
		}
		if err := program.Add(inst); err != nil {
			return nil, fmt.Errorf("project has malformed nodes: %w", err)
		}
		if program.RootID == "" && canonical == registry.EntryBlockID() {
			if err := program.SetRoot(uid); err != nil {
				return nil, err
			}
		}
	}

	for _, edge := range doc.Edges {
		parent, ok := program.Instance(edge.From.Node)
		if !ok || edge.To.Node == "" {
			logger.Warn("Dropping edge with unknown endpoint.", "from", edge.From.Node, "to", edge.To.Node)
			continue
		}
		if _, ok := program.Instance(edge.To.Node); !ok {
			logger.Warn("Dropping edge with unknown endpoint.", "from", edge.From.Node, "to", edge.To.Node)
			continue
		}
		container, ok := containerFor(registry, parent, edge.From.Port)
		if !ok {
			logger.Warn("Dropping edge with no matching container.", "from", edge.From.Node, "port", edge.From.Port)
			continue
		}
		if err := program.Link(parent.ID, container, edge.To.Node); err != nil {
			logger.Warn("Dropping edge.", "from", edge.From.Node, "to", edge.To.Node, "error", err)
		}
	}

	return program, nil
}

// containerFor maps an output port name to a container on the parent's
// definition.
func containerFor(registry *catalog.Registry, parent *ast.Instance, port string) (string, bool) {
	def, err := registry.Get(parent.DefinitionID)
	if err != nil {
		// The parent type is unknown; validation reports it, the edge just
		// has nowhere to go.
		return "", false
	}
	if _, ok := def.Container(port); ok {
		return port, true
	}
	if len(def.Containers) == 1 {
		return def.Containers[0].Name, true
	}
	return "", false
}
