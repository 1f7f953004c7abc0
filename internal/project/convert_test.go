package project_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/blockforge/internal/project"
	"github.com/vk/blockforge/internal/testutil"
)

func TestBuildProgramNestsEdges(t *testing.T) {
	doc := &project.Document{
		Board: "uno",
		Port:  "/dev/ttyUSB0",
		Nodes: []project.Node{
			{UID: "n1", Type: "EV_START"},
			{UID: "n2", Type: "LS_LED_ON", Params: map[string]any{"pin": float64(9)}},
			{UID: "n3", Type: "TM_DELAY"},
		},
		Edges: []project.Edge{
			{From: project.Endpoint{Node: "n1", Port: "loop"}, To: project.Endpoint{Node: "n2"}},
			{From: project.Endpoint{Node: "n1", Port: "loop"}, To: project.Endpoint{Node: "n3"}},
		},
	}

	program, err := project.BuildProgram(context.Background(), doc, testutil.StockRegistry())
	require.NoError(t, err)

	assert.Equal(t, "uno", program.BoardID)
	assert.Equal(t, "/dev/ttyUSB0", program.Metadata["port"])

	root, ok := program.Root()
	require.True(t, ok)
	assert.Equal(t, "n1", root.ID)
	assert.Equal(t, []string{"n2", "n3"}, root.Children("loop"))

	led, ok := program.Instance("n2")
	require.True(t, ok)
	pin, ok := led.Param("pin")
	require.True(t, ok)
	assert.True(t, pin.RawEquals(cty.NumberIntVal(9)))
}

func TestBuildProgramAppliesAliases(t *testing.T) {
	doc := &project.Document{
		Board: "uno",
		Nodes: []project.Node{
			{UID: "n1", Type: "EV_START"},
			{UID: "n2", Type: "LED_ON"},
		},
		Edges: []project.Edge{
			{From: project.Endpoint{Node: "n1", Port: "loop"}, To: project.Endpoint{Node: "n2"}},
		},
	}

	program, err := project.BuildProgram(context.Background(), doc, testutil.StockRegistry())
	require.NoError(t, err)

	led, ok := program.Instance("n2")
	require.True(t, ok)
	assert.Equal(t, "LS_LED_ON", led.DefinitionID)
}

func TestBuildProgramSoleContainerFallback(t *testing.T) {
	doc := &project.Document{
		Board: "uno",
		Nodes: []project.Node{
			{UID: "n1", Type: "EV_START"},
			{UID: "if1", Type: "CTL_IF"},
			{UID: "n2", Type: "LS_LED_ON"},
		},
		Edges: []project.Edge{
			{From: project.Endpoint{Node: "n1", Port: "loop"}, To: project.Endpoint{Node: "if1"}},
			// CTL_IF has a single "then" container; the stale port name
			// still routes there.
			{From: project.Endpoint{Node: "if1", Port: "body"}, To: project.Endpoint{Node: "n2"}},
		},
	}

	program, err := project.BuildProgram(context.Background(), doc, testutil.StockRegistry())
	require.NoError(t, err)

	cond, ok := program.Instance("if1")
	require.True(t, ok)
	assert.Equal(t, []string{"n2"}, cond.Children("then"))
}

func TestBuildProgramDropsBrokenEdges(t *testing.T) {
	doc := &project.Document{
		Board: "uno",
		Nodes: []project.Node{
			{UID: "n1", Type: "EV_START"},
			{UID: "n2", Type: "LS_LED_ON"},
		},
		Edges: []project.Edge{
			{From: project.Endpoint{Node: "ghost", Port: "loop"}, To: project.Endpoint{Node: "n2"}},
			{From: project.Endpoint{Node: "n1", Port: "loop"}, To: project.Endpoint{Node: "ghost"}},
			// EV_START has two containers and no "sideways" port, so this
			// edge has no destination container.
			{From: project.Endpoint{Node: "n1", Port: "sideways"}, To: project.Endpoint{Node: "n2"}},
		},
	}

	program, err := project.BuildProgram(context.Background(), doc, testutil.StockRegistry())
	require.NoError(t, err)

	root, ok := program.Root()
	require.True(t, ok)
	assert.Empty(t, root.Children("loop"))
	assert.Empty(t, root.Children("setup"))
	assert.Equal(t, 2, program.Len())
}

func TestBuildProgramNoEntryNode(t *testing.T) {
	doc := &project.Document{
		Board: "uno",
		Nodes: []project.Node{{UID: "n1", Type: "TM_DELAY"}},
	}

	program, err := project.BuildProgram(context.Background(), doc, testutil.StockRegistry())
	require.NoError(t, err)

	_, ok := program.Root()
	assert.False(t, ok)
}

func TestBuildProgramRejectsDuplicateUIDs(t *testing.T) {
	doc := &project.Document{
		Board: "uno",
		Nodes: []project.Node{
			{UID: "n1", Type: "EV_START"},
			{UID: "n1", Type: "TM_DELAY"},
		},
	}

	_, err := project.BuildProgram(context.Background(), doc, testutil.StockRegistry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed nodes")
}
