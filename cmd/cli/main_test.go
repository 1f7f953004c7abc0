package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_PanicRecovery(t *testing.T) {
	t.Parallel()

	// An unreadable catalog makes app.NewApp panic during startup; run must
	// recover it into a plain error.
	tempDir := t.TempDir()
	projectPath := filepath.Join(tempDir, "project.json")
	require.NoError(t, os.WriteFile(projectPath, []byte(`{"board": "uno", "nodes": [], "edges": []}`), 0o644))

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	args := []string{"-blocks", filepath.Join(tempDir, "missing.json"), projectPath}

	runErr := run(out, errOut, args)

	require.Error(t, runErr)
	require.Contains(t, runErr.Error(), "application startup panicked")
	require.Contains(t, runErr.Error(), "failed to load block catalog")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	err := run(out, errOut, []string{"-h"})

	require.NoError(t, err)
	require.Contains(t, errOut.String(), "Usage:")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	err := run(out, errOut, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err)
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}
