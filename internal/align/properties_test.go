package align

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const propertyRounds = 200

// randomAdmissible returns a sequence whose k-th code lies in 1..2k-1.
func randomAdmissible(r *rand.Rand, maxLen int) seq {
	s := make(seq, r.Intn(maxLen+1))
	for k := range s {
		s[k] = 1 + r.Intn(2*(k+1)-1)
	}
	return s
}

// randomCodes returns a sequence of arbitrary small positive codes.
func randomCodes(r *rand.Rand, maxLen int) seq {
	s := make(seq, r.Intn(maxLen+1))
	for k := range s {
		s[k] = 1 + r.Intn(6)
	}
	return s
}

func mustAlign(t *testing.T, x, y Sequence, constraints bool) *Alignment {
	t.Helper()
	a, err := Align(x, y, constraints)
	require.NoError(t, err)
	return a
}

func TestProperty_IdentityIsFree(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for round := 0; round < propertyRounds; round++ {
		s := randomAdmissible(r, 12)
		for _, constraints := range []bool{true, false} {
			a := mustAlign(t, s, s, constraints)
			require.Equal(t, 0, a.Distance(), "s=%v", s)
			for _, op := range a.Operations() {
				require.Equal(t, OpMatch, op.Kind(), "s=%v", s)
			}
		}
	}
}

func TestProperty_Symmetry(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for round := 0; round < propertyRounds; round++ {
		x, y := randomAdmissible(r, 10), randomAdmissible(r, 10)
		for _, constraints := range []bool{true, false} {
			xy := mustAlign(t, x, y, constraints)
			yx := mustAlign(t, y, x, constraints)
			require.Equal(t, xy.Distance(), yx.Distance(), "x=%v y=%v constraints=%t", x, y, constraints)
		}
	}
}

func TestProperty_TriangleInequalityUnconstrained(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for round := 0; round < propertyRounds; round++ {
		x, y, z := randomCodes(r, 8), randomCodes(r, 8), randomCodes(r, 8)
		xy := mustAlign(t, x, y, false).Distance()
		xz := mustAlign(t, x, z, false).Distance()
		zy := mustAlign(t, z, y, false).Distance()
		require.LessOrEqual(t, xy, xz+zy, "x=%v y=%v z=%v", x, y, z)
	}
}

func TestProperty_EmptySide(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	for round := 0; round < propertyRounds; round++ {
		s := randomCodes(r, 10)

		a := mustAlign(t, s, seq{}, true)
		require.Equal(t, len(s), a.Distance())
		for _, op := range a.Operations() {
			require.Equal(t, OpDeletion, op.Kind())
		}

		a = mustAlign(t, seq{}, s, true)
		require.Equal(t, len(s), a.Distance())
		for _, op := range a.Operations() {
			require.Equal(t, OpInsertion, op.Kind())
		}
	}
}

func TestProperty_AlignmentShape(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	for round := 0; round < propertyRounds; round++ {
		x, y := randomAdmissible(r, 10), randomAdmissible(r, 10)
		for _, constraints := range []bool{true, false} {
			a := mustAlign(t, x, y, constraints)
			ops := a.Operations()

			n, m := len(x), len(y)
			assert.GreaterOrEqual(t, len(ops), max(n, m))
			assert.LessOrEqual(t, len(ops), n+m)

			// The script consumes x and y exactly, in order, and costs the distance.
			var gotX, gotY seq
			cost := 0
			for _, op := range ops {
				if v, ok := op.X(); ok {
					gotX = append(gotX, v)
				}
				if v, ok := op.Y(); ok {
					gotY = append(gotY, v)
				}
				cost += op.Cost()
			}
			assert.Equal(t, []int(x), []int(orEmpty(gotX)))
			assert.Equal(t, []int(y), []int(orEmpty(gotY)))
			assert.Equal(t, a.Distance(), cost)
		}
	}
}

func TestProperty_ConstrainedAlignmentsVerify(t *testing.T) {
	r := rand.New(rand.NewSource(6))
	for round := 0; round < propertyRounds; round++ {
		x, y := randomAdmissible(r, 12), randomAdmissible(r, 12)
		a := mustAlign(t, x, y, true)
		require.True(t, a.Check(), "x=%v y=%v alignment=%s", x, y, a.RenderAlignment())
	}
}

func TestProperty_ConstraintsNeverLowerTheDistance(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for round := 0; round < propertyRounds; round++ {
		x, y := randomAdmissible(r, 10), randomAdmissible(r, 10)
		free := mustAlign(t, x, y, false).Distance()
		bound := mustAlign(t, x, y, true).Distance()
		require.GreaterOrEqual(t, bound, free)
	}
}

func TestProperty_ExecutionTraceEndsInY(t *testing.T) {
	r := rand.New(rand.NewSource(8))
	for round := 0; round < propertyRounds; round++ {
		x, y := randomAdmissible(r, 10), randomAdmissible(r, 10)
		a := mustAlign(t, x, y, true)

		lines := strings.Split(strings.TrimSuffix(a.RenderExecutionTrace(), "\n"), "\n")
		require.Len(t, lines, 1+2*a.Len())
		assert.Equal(t, formatCodes(x), lines[0])
		assert.Equal(t, formatCodes(y), lines[len(lines)-1])
	}
}

func orEmpty(s seq) seq {
	if s == nil {
		return seq{}
	}
	return s
}
