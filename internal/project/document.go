// Package project reads and writes the flat node/edge persistence format the
// editor produces, and converts it into the nested program tree the validator
// and generator consume.
package project

// Document is the persisted project: a flat node list plus port-to-port
// edges, as laid out on the editor canvas.
type Document struct {
	Version int    `json:"version"`
	Board   string `json:"board"`
	Port    string `json:"port,omitempty"`
	Nodes   []Node `json:"nodes"`
	Edges   []Edge `json:"edges"`
}

// Node is one placed block on the canvas.
type Node struct {
	UID    string         `json:"uid"`
	Type   string         `json:"type"`
	Pos    Position       `json:"pos"`
	Params map[string]any `json:"params,omitempty"`
}

// Position is the canvas coordinate of a node. The code generation core
// never reads it; it round-trips for the editor.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Edge connects an output port of one node to an input port of another.
type Edge struct {
	From Endpoint `json:"from"`
	To   Endpoint `json:"to"`
}

// Endpoint names one side of an edge.
type Endpoint struct {
	Node string `json:"node"`
	Port string `json:"port"`
}
