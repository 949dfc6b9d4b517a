package align

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlign_NilSequence(t *testing.T) {
	_, err := Align(nil, seq{1}, true)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Align(seq{1}, nil, false)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

// boxedSeq is a pointer implementation of Sequence.
type boxedSeq struct{ codes []int }

func (b *boxedSeq) Len() int { return len(b.codes) }
func (b *boxedSeq) At(i int) int { return b.codes[i-1] }

func TestAlign_NilPointerSequence(t *testing.T) {
	var absent *boxedSeq

	require.NotPanics(t, func() {
		_, err := Align(absent, seq{1}, true)
		require.ErrorIs(t, err, ErrInvalidArgument)

		_, err = Align(seq{1}, absent, false)
		require.ErrorIs(t, err, ErrInvalidArgument)
	})

	var empty seq
	a, err := Align(empty, &boxedSeq{codes: []int{1}}, true)
	require.NoError(t, err, "a nil slice is an empty sequence, not a missing one")
	assert.Equal(t, 1, a.Distance())
}

func TestAlign_ScenarioA_Unconstrained(t *testing.T) {
	a, err := Align(seq{1}, seq{1, 3}, false)
	require.NoError(t, err)

	assert.Equal(t, 1, a.Distance())
	assert.Equal(t, []EditOperation{Pair(1, 1), Insertion(3)}, a.Operations())
}

func TestAlign_ScenarioB_Constrained(t *testing.T) {
	a, err := Align(seq{3}, seq{1}, true)
	require.NoError(t, err)

	// 3 > 2*1-1, so the mismatch (3, 1) is not admissible.
	assert.Equal(t, 2, a.Distance())
	assert.Equal(t, []EditOperation{Deletion(3), Insertion(1)}, a.Operations())
	assert.True(t, a.Check())
}

func TestAlign_ScenarioB_Unconstrained(t *testing.T) {
	a, err := Align(seq{3}, seq{1}, false)
	require.NoError(t, err)

	assert.Equal(t, 1, a.Distance())
	assert.Equal(t, []EditOperation{Pair(3, 1)}, a.Operations())
	assert.False(t, a.Check(), "mismatch (3, 1) breaks the rule at position 1")
}

func TestAlign_EmptySides(t *testing.T) {
	a, err := Align(seq{1, 1, 3}, seq{}, true)
	require.NoError(t, err)
	assert.Equal(t, 3, a.Distance())
	assert.Equal(t, []EditOperation{Deletion(1), Deletion(1), Deletion(3)}, a.Operations())

	a, err = Align(seq{}, seq{1, 2}, true)
	require.NoError(t, err)
	assert.Equal(t, 2, a.Distance())
	assert.Equal(t, []EditOperation{Insertion(1), Insertion(2)}, a.Operations())

	a, err = Align(seq{}, seq{}, true)
	require.NoError(t, err)
	assert.Equal(t, 0, a.Distance())
	assert.Empty(t, a.Operations())
	assert.True(t, a.Check())
}

func TestAlign_TieBreakPrefersDeletionOverMismatch(t *testing.T) {
	// At (2, 1) the deletion and the mismatch both cost 2.
	a, err := Align(seq{1, 1}, seq{2}, false)
	require.NoError(t, err)

	assert.Equal(t, 2, a.Distance())
	assert.Equal(t, []EditOperation{Pair(1, 2), Deletion(1)}, a.Operations())
}

func TestAlign_TieBreakPrefersInsertionOverMismatch(t *testing.T) {
	// Swapping the roles puts insertion and mismatch on a tie at (1, 2).
	a, err := Align(seq{2}, seq{1, 1}, false)
	require.NoError(t, err)

	assert.Equal(t, 2, a.Distance())
	assert.Equal(t, []EditOperation{Pair(2, 1), Insertion(1)}, a.Operations())
}

func TestAlign_TieBreakPrefersInsertionOverDeletion(t *testing.T) {
	// At (3, 3) insertion (m[3][2]+1) and deletion (m[2][3]+1) both cost 2;
	// the mismatch (1, 2) costs m[2][2]+1 = 3.
	a, err := Align(seq{1, 2, 1}, seq{2, 1, 2}, false)
	require.NoError(t, err)

	m := a.Matrix()
	assert.Equal(t, 1, m[3][2])
	assert.Equal(t, 1, m[2][3])
	assert.Equal(t, 2, m[2][2])

	assert.Equal(t, 2, a.Distance())
	assert.Equal(t, []EditOperation{Deletion(1), Pair(2, 2), Pair(1, 1), Insertion(2)}, a.Operations())
}

func TestAlign_BaseRowAndColumn(t *testing.T) {
	a, err := Align(seq{1, 1, 3}, seq{1, 3, 1, 2}, true)
	require.NoError(t, err)

	m := a.Matrix()
	require.Len(t, m, 4)
	for i := range m {
		require.Len(t, m[i], 5)
		assert.Equal(t, i, m[i][0])
	}
	for j := range m[0] {
		assert.Equal(t, j, m[0][j])
	}
}

func TestAlign_UnreachableCells(t *testing.T) {
	// x_1 = 2 and y_1 = 2 are both above 2*1-1, so nothing reaches (1, 1).
	a, err := Align(seq{2}, seq{2, 1}, true)
	require.NoError(t, err)

	m := a.Matrix()
	assert.Equal(t, Unreachable, m[1][1])
	assert.Equal(t, 2, a.Distance())
	assert.Equal(t, []EditOperation{Insertion(2), Pair(2, 1)}, a.Operations())
	assert.True(t, a.Check())
	assert.Equal(t, "0, 1, 2\n1, ∞, 2\n", a.RenderMatrix())
}

func TestAlign_NoAdmissiblePath(t *testing.T) {
	_, err := Align(seq{3}, seq{3}, true)
	require.ErrorIs(t, err, ErrUnreachable)

	a, err := Align(seq{3}, seq{3}, false)
	require.NoError(t, err)
	assert.Equal(t, 0, a.Distance())
}

func TestAlign_OperationsIsACopy(t *testing.T) {
	a, err := Align(seq{1, 1}, seq{1, 1}, true)
	require.NoError(t, err)

	ops := a.Operations()
	ops[0] = Insertion(9)
	assert.Equal(t, Pair(1, 1), a.Operations()[0])

	m := a.Matrix()
	m[0][0] = 42
	assert.Equal(t, 0, a.Matrix()[0][0])
}

func TestAlign_DoesNotReadInputAfterConstruction(t *testing.T) {
	x := seq{1, 1, 3}
	a, err := Align(x, seq{1, 3}, true)
	require.NoError(t, err)

	before := a.RenderAlignment()
	x[2] = 1
	assert.Equal(t, before, a.RenderAlignment())
}
