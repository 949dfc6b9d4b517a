package align

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Golden(t *testing.T) {
	cases := []struct {
		name        string
		x, y        seq
		constraints bool
	}{
		{"scenario_a_unconstrained", seq{1}, seq{1, 3}, false},
		{"scenario_b_constrained", seq{3}, seq{1}, true},
		{"pseudoknot_constrained", seq{1, 1, 3, 2, 5}, seq{1, 3, 1, 2}, true},
		{"pseudoknot_unconstrained", seq{1, 1, 3, 2, 5}, seq{1, 3, 1, 2}, false},
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a, err := Align(tc.x, tc.y, tc.constraints)
			require.NoError(t, err)
			g.Assert(t, tc.name, snapshot(a))
		})
	}
}

func TestRenderAlignment(t *testing.T) {
	a, err := Align(seq{1}, seq{1, 3}, false)
	require.NoError(t, err)
	assert.Equal(t, "(1, 1)(-, 3)", a.RenderAlignment())
}

func TestRenderMatrix(t *testing.T) {
	a, err := Align(seq{3}, seq{1}, true)
	require.NoError(t, err)
	assert.Equal(t, "0, 1\n1, 2\n", a.RenderMatrix())
}

func TestRenderExecutionTrace_EmptyWorkingSequence(t *testing.T) {
	a, err := Align(seq{3}, seq{1}, true)
	require.NoError(t, err)
	assert.Equal(t, "3\n(3, -)\nε\n(-, 1)\n1\n", a.RenderExecutionTrace())
}

func TestRenderExecutionTrace_EditsInPlace(t *testing.T) {
	// The deletion of the first code must remove the head, not the tail.
	a, err := Align(seq{1, 2, 3}, seq{2, 3}, false)
	require.NoError(t, err)
	assert.Equal(t, "(1, -)(2, 2)(3, 3)", a.RenderAlignment())
	assert.Equal(t, "1, 2, 3\n(1, -)\n2, 3\n(2, 2)\n2, 3\n(3, 3)\n2, 3\n", a.RenderExecutionTrace())
}

func TestRenderConstraintDerivation(t *testing.T) {
	a, err := Align(seq{3}, seq{1}, true)
	require.NoError(t, err)
	// The deletion at (1, 0) sits on column 0 and is not derived.
	assert.Equal(t, "y_1 = 1 <= 1 = C_1\n", a.RenderConstraintDerivation())
}

func TestRenderConstraintDerivation_ShowsViolations(t *testing.T) {
	a, err := Align(seq{3}, seq{1}, false)
	require.NoError(t, err)
	assert.Equal(t, "x_1 = 3 > 1 = C_1 and y_1 = 1 <= 1 = C_1\n", a.RenderConstraintDerivation())
}

func TestRender_EmptyAlignment(t *testing.T) {
	a, err := Align(seq{}, seq{}, false)
	require.NoError(t, err)
	assert.Equal(t, "", a.RenderAlignment())
	assert.Equal(t, "0\n", a.RenderMatrix())
	assert.Equal(t, "ε\n", a.RenderExecutionTrace())
	assert.Equal(t, "", a.RenderConstraintDerivation())
}
