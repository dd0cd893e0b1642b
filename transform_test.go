package excel2erp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyReplacements_Chain(t *testing.T) {
	reps := Replacements{
		{Pattern: `^0+`, Replace: ""},
		{Pattern: `-`, Replace: ""},
	}
	out, err := applyReplacements("00123-456", reps)
	require.NoError(t, err)
	assert.Equal(t, "123456", out)
}

func TestApplyReplacements_OrderMatters(t *testing.T) {
	// each step rewrites the previous step's output
	forward := Replacements{
		{Pattern: "a", Replace: "b"},
		{Pattern: "b", Replace: "c"},
	}
	out, err := applyReplacements("ab", forward)
	require.NoError(t, err)
	assert.Equal(t, "cc", out)

	reversed := Replacements{forward[1], forward[0]}
	out, err = applyReplacements("ab", reversed)
	require.NoError(t, err)
	assert.Equal(t, "bc", out, "reversed chain must not equal forward result")
}

func TestApplyReplacements_CaptureGroups(t *testing.T) {
	reps := Replacements{
		{Pattern: `(\d+)/(\d+)`, Replace: "$2-$1"},
	}
	out, err := applyReplacements("15/01", reps)
	require.NoError(t, err)
	assert.Equal(t, "01-15", out)
}

func TestApplyReplacements_EmptyChain(t *testing.T) {
	out, err := applyReplacements("unchanged", nil)
	require.NoError(t, err)
	assert.Equal(t, "unchanged", out)
}

func TestApplyReplacements_EmptyValue(t *testing.T) {
	reps := Replacements{{Pattern: `^$`, Replace: "vacío"}}
	out, err := applyReplacements("", reps)
	require.NoError(t, err)
	assert.Equal(t, "vacío", out)
}

func TestApplyReplacements_InvalidPattern(t *testing.T) {
	reps := Replacements{{Pattern: "(", Replace: ""}}
	_, err := applyReplacements("x", reps)
	require.Error(t, err)
	var cfgErr *MalformedConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Field, `"("`)
}

func TestCompilePattern_Caches(t *testing.T) {
	first, err := compilePattern(`cache-me-\d+`)
	require.NoError(t, err)
	second, err := compilePattern(`cache-me-\d+`)
	require.NoError(t, err)
	assert.Same(t, first, second)
}
