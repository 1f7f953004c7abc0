// Package testutil provides a standardized harness for end-to-end tests:
// write catalog/board/project documents into a temp dir, run the full app
// against them, capture output and logs.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/blockforge/internal/app"
	"github.com/vk/blockforge/internal/cli"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// RunResult holds the outcomes of one harnessed run.
type RunResult struct {
	Output    string
	LogOutput string
	Err       error
	App       *app.App
}

// RunCLI writes the given files into a temp dir and runs the app against
// them. Files named blocks.*, boards.* and project.* are wired to the
// matching flags automatically; extraArgs are appended as-is.
func RunCLI(t *testing.T, files map[string]string, extraArgs ...string) *RunResult {
	t.Helper()

	tmpDir := t.TempDir()
	var args []string
	projectPath := ""
	for name, content := range files {
		path := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		base := filepath.Base(name)
		switch {
		case strings.HasPrefix(base, "blocks."):
			args = append(args, "-blocks", path)
		case strings.HasPrefix(base, "boards."):
			args = append(args, "-boards", path)
		case strings.HasPrefix(base, "project."):
			projectPath = path
		}
	}
	args = append(args, extraArgs...)
	if projectPath != "" {
		args = append(args, projectPath)
	}

	outBuf := &SafeBuffer{}
	logBuf := &SafeBuffer{}
	result := &RunResult{}

	func() {
		defer func() {
			if r := recover(); r != nil {
				result.Err = fmt.Errorf("startup error: %v", r)
			}
		}()
		cfg, shouldExit, err := cli.Parse(args, logBuf)
		if err != nil {
			result.Err = err
			return
		}
		if shouldExit {
			return
		}
		forge := app.NewApp(outBuf, logBuf, cfg)
		result.App = forge
		result.Err = forge.Run(context.Background(), cfg)
	}()

	result.Output = outBuf.String()
	result.LogOutput = logBuf.String()
	return result
}
