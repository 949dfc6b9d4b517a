package align

import (
	"errors"
	"math"
)

// ErrUnreachable is returned by Align when no admissible edit script exists.
// It can only happen under constraints, when codes on both sides break the
// admissibility rule at the same cell.
var ErrUnreachable = errors.New("no admissible alignment")

// Unreachable is the cost of a candidate that breaks admissibility.
// It is compared against but never added to.
const Unreachable = math.MaxInt

// plus adds d to a finite cost and keeps Unreachable saturated.
func plus(v, d int) int {
	if v == Unreachable {
		return Unreachable
	}
	return v + d
}

type direction int8

const (
	dirStop direction = iota
	dirDiagonal
	dirUp
	dirLeft
)

// allowed reports whether code h may sit at position pos.
func allowed(h, pos int) bool {
	return h >= 1 && h <= 2*pos-1
}

func (a *Alignment) admissible(h, pos int) bool {
	return !a.constraints || allowed(h, pos)
}

// solve fills the cost and traceback matrices.
func (a *Alignment) solve() error {
	n, m := len(a.x), len(a.y)

	a.cost = make([][]int, n+1)
	a.trace = make([][]direction, n+1)
	for i := range a.cost {
		a.cost[i] = make([]int, m+1)
		a.trace[i] = make([]direction, m+1)
		a.cost[i][0] = i
	}
	for j := 0; j <= m; j++ {
		a.cost[0][j] = j
	}

	for i := 1; i <= n; i++ {
		xi := a.x[i-1]
		for j := 1; j <= m; j++ {
			yj := a.y[j-1]

			p := 1
			if xi == yj {
				p = 0
			}

			insOK := a.admissible(yj, i)
			delOK := a.admissible(xi, j)

			ins := Unreachable
			if insOK {
				ins = plus(a.cost[i][j-1], 1)
			}
			del := Unreachable
			if delOK {
				del = plus(a.cost[i-1][j], 1)
			}
			diag := Unreachable
			if insOK && delOK {
				diag = plus(a.cost[i-1][j-1], p)
			}

			best, dir := ins, dirLeft
			if del < best {
				best, dir = del, dirUp
			}
			if diag < best {
				best, dir = diag, dirDiagonal
			}

			a.cost[i][j] = best
			a.trace[i][j] = dir
		}
	}

	// Admissible inputs always reach (n, m): at every cell either the
	// insertion or the deletion is allowed.
	if a.cost[n][m] == Unreachable {
		return ErrUnreachable
	}
	return nil
}
