package project_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/blockforge/internal/project"
)

func TestSaveLoadRoundtrip(t *testing.T) {
	doc := &project.Document{
		Version: 2,
		Board:   "uno",
		Port:    "/dev/ttyACM0",
		Nodes: []project.Node{
			{UID: "start", Type: "EV_START", Pos: project.Position{X: 40, Y: 80}},
			{UID: "led", Type: "LS_LED_ON", Pos: project.Position{X: 40, Y: 160}, Params: map[string]any{"pin": float64(13)}},
		},
		Edges: []project.Edge{
			{From: project.Endpoint{Node: "start", Port: "loop"}, To: project.Endpoint{Node: "led", Port: "in"}},
		},
	}

	path := filepath.Join(t.TempDir(), "nested", "project.json")
	require.NoError(t, project.Save(path, doc))

	loaded, err := project.Load(path)
	require.NoError(t, err)
	if diff := cmp.Diff(doc, loaded); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveDefaultsVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.json")
	require.NoError(t, project.Save(path, &project.Document{Board: "uno"}))

	loaded, err := project.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Version)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "\n"))
}

func TestLoadRejectsBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := project.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}
