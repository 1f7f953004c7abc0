package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Load reads a project document from path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project %s: %w", path, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON in project %s: %w", path, err)
	}
	return &doc, nil
}

// Save writes a project document to path, creating parent directories as
// needed.
func Save(path string, doc *Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create project directory for %s: %w", path, err)
	}
	if doc.Version == 0 {
		doc.Version = 1
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode project %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write project %s: %w", path, err)
	}
	return nil
}
