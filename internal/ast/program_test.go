package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/blockforge/internal/ast"
)

func TestProgramAddAndRoot(t *testing.T) {
	program := ast.NewProgram("uno")

	_, ok := program.Root()
	assert.False(t, ok)

	start := ast.NewInstance("start", "EV_START")
	require.NoError(t, program.Add(start))
	require.NoError(t, program.SetRoot("start"))

	root, ok := program.Root()
	require.True(t, ok)
	assert.Same(t, start, root)
	assert.Equal(t, 1, program.Len())
}

func TestProgramRejectsDuplicateID(t *testing.T) {
	program := ast.NewProgram("uno")
	require.NoError(t, program.Add(ast.NewInstance("b1", "TM_DELAY")))

	err := program.Add(ast.NewInstance("b1", "LS_LED_ON"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate instance id")
}

func TestProgramRejectsEmptyID(t *testing.T) {
	program := ast.NewProgram("uno")
	require.Error(t, program.Add(ast.NewInstance("", "TM_DELAY")))
}

func TestProgramSetRootRequiresMembership(t *testing.T) {
	program := ast.NewProgram("uno")
	require.Error(t, program.SetRoot("ghost"))
}

func TestProgramAttachPreservesOrder(t *testing.T) {
	program := ast.NewProgram("uno")
	require.NoError(t, program.Add(ast.NewInstance("start", "EV_START")))

	require.NoError(t, program.Attach("start", "loop", ast.NewInstance("a", "LS_LED_ON")))
	require.NoError(t, program.Attach("start", "loop", ast.NewInstance("b", "TM_DELAY")))
	require.NoError(t, program.Attach("start", "loop", ast.NewInstance("c", "LS_LED_ON")))

	start, ok := program.Instance("start")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, start.Children("loop"))
	assert.Empty(t, start.Children("setup"))
}

func TestProgramLinkExistingNode(t *testing.T) {
	program := ast.NewProgram("uno")
	require.NoError(t, program.Add(ast.NewInstance("start", "EV_START")))
	require.NoError(t, program.Add(ast.NewInstance("led", "LS_LED_ON")))

	require.NoError(t, program.Link("start", "loop", "led"))
	require.Error(t, program.Link("start", "loop", "ghost"))
	require.Error(t, program.Link("ghost", "loop", "led"))
}

func TestProgramRejectsSelfContainment(t *testing.T) {
	program := ast.NewProgram("uno")
	require.NoError(t, program.Add(ast.NewInstance("start", "EV_START")))

	err := program.Link("start", "loop", "start")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot contain itself")
}

func TestInstanceParams(t *testing.T) {
	inst := ast.NewInstance("led", "LS_LED_ON")

	_, ok := inst.Param("pin")
	assert.False(t, ok)

	inst.SetParam("pin", cty.NumberIntVal(13))
	v, ok := inst.Param("pin")
	require.True(t, ok)
	assert.True(t, v.RawEquals(cty.NumberIntVal(13)))
}
