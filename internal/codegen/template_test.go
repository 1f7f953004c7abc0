package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandSubstitutesKnownTokens(t *testing.T) {
	out := ExpandMap("digitalWrite({pin}, {state});", map[string]string{
		"pin":   "13",
		"state": "HIGH",
	})
	assert.Equal(t, "digitalWrite(13, HIGH);", out)
}

func TestExpandLeavesUnknownTokens(t *testing.T) {
	out := ExpandMap("delay({ms});", map[string]string{"pin": "13"})
	assert.Equal(t, "delay({ms});", out)
}

func TestExpandDoesNotReExpandSubstitutedValues(t *testing.T) {
	// A value that itself looks like a token must land verbatim.
	out := ExpandMap("digitalWrite({pin}, {state});", map[string]string{
		"pin":   "{state}",
		"state": "HIGH",
	})
	assert.Equal(t, "digitalWrite({state}, HIGH);", out)
}

func TestExpandIgnoresNonTokenBraces(t *testing.T) {
	out := ExpandMap("if (x) {\n{then}\n}", map[string]string{"then": "y();"})
	assert.Equal(t, "if (x) {\ny();\n}", out)

	assert.Equal(t, "{not a token}", ExpandMap("{not a token}", map[string]string{"not": "x"}))
	assert.Equal(t, "{}", ExpandMap("{}", map[string]string{"": "x"}))
}

func TestIndentLinesKeepsBlankLinesBlank(t *testing.T) {
	out := indentLines("foo();\n\nbar();", 2)
	assert.Equal(t, "    foo();\n\n    bar();", out)
}

func TestIndentLinesZeroLevel(t *testing.T) {
	assert.Equal(t, "foo();", indentLines("foo();", 0))
}
