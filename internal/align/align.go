package align

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrInvalidArgument is returned by Align when a sequence is missing.
var ErrInvalidArgument = errors.New("invalid argument")

// Sequence is a read-only structural sequence.
// At is 1-based: valid indices are 1..Len().
type Sequence interface {
	Len() int
	At(i int) int
}

// Alignment is a solved, frozen alignment of x against y.
//
// Thread-safety: an Alignment is never modified after Align returns and is
// safe for concurrent reads.
type Alignment struct {
	x, y        []int
	constraints bool

	cost  [][]int
	trace [][]direction

	ops []EditOperation
}

// Align solves the alignment of x against y and reconstructs an optimal
// edit script. With constraints set, every cell of the recurrence enforces
// the admissibility rule; see the package documentation.
//
// Returns an error wrapping ErrInvalidArgument if x or y is nil, including a
// nil pointer behind the interface, and one
// wrapping ErrUnreachable if the constraints leave no way to reach (n, m).
func Align(x, y Sequence, constraints bool) (*Alignment, error) {
	if isNil(x) || isNil(y) {
		return nil, fmt.Errorf("align: %w: both sequences are required", ErrInvalidArgument)
	}

	a := &Alignment{
		x:           codes(x),
		y:           codes(y),
		constraints: constraints,
	}
	if err := a.solve(); err != nil {
		return nil, fmt.Errorf("align: %w", err)
	}
	a.ops = a.traceback()
	return a, nil
}

// isNil reports whether s is absent: a nil interface or a nil pointer
// stored in one. A nil slice is an empty sequence, not a missing one.
func isNil(s Sequence) bool {
	if s == nil {
		return true
	}
	v := reflect.ValueOf(s)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// codes snapshots a sequence so the alignment never reads it again.
func codes(s Sequence) []int {
	out := make([]int, s.Len())
	for i := range out {
		out[i] = s.At(i + 1)
	}
	return out
}

// Distance returns the minimum edit cost, m[n][m].
func (a *Alignment) Distance() int {
	return a.cost[len(a.x)][len(a.y)]
}

// Operations returns the optimal alignment in left-to-right order.
// The returned slice is a copy.
func (a *Alignment) Operations() []EditOperation {
	out := make([]EditOperation, len(a.ops))
	copy(out, a.ops)
	return out
}

// Len returns the number of operations in the alignment.
func (a *Alignment) Len() int {
	return len(a.ops)
}

// Constraints reports whether the alignment was solved under constraints.
func (a *Alignment) Constraints() bool {
	return a.constraints
}

// Matrix returns a copy of the cost matrix.
// Cells that were never reachable hold Unreachable.
func (a *Alignment) Matrix() [][]int {
	out := make([][]int, len(a.cost))
	for i, row := range a.cost {
		out[i] = append([]int(nil), row...)
	}
	return out
}
