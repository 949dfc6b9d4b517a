package align

import (
	"strconv"
	"strings"
)

// Empty is printed in place of an empty working sequence.
const Empty = "ε"

// RenderMatrix prints the cost matrix one row per line, cells separated by
// ", ". Unreachable cells print as "∞".
func (a *Alignment) RenderMatrix() string {
	var b strings.Builder
	for _, row := range a.cost {
		for j, v := range row {
			if j > 0 {
				b.WriteString(", ")
			}
			if v == Unreachable {
				b.WriteString("∞")
			} else {
				b.WriteString(strconv.Itoa(v))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// RenderAlignment prints every operation as "(a, b)", e.g. "(1, 1)(-, 3)".
func (a *Alignment) RenderAlignment() string {
	var b strings.Builder
	for _, op := range a.ops {
		b.WriteString(op.String())
	}
	return b.String()
}

// RenderExecutionTrace applies the alignment to a working copy of x, one
// operation at a time, and prints the working sequence after each step.
// The first line is x itself; the last line is y.
//
// The cursor k is the position in the working sequence of the next code of
// x still to be consumed: a match or mismatch overwrites it, a deletion
// removes it and an insertion is placed in front of it.
//
// The cursor format is this package's own. It is not byte-compatible with
// traces that rewrite the tail of the sequence at each step, so compare
// traces only against output of this renderer.
func (a *Alignment) RenderExecutionTrace() string {
	work := append([]int(nil), a.x...)
	k := 0

	var b strings.Builder
	b.WriteString(formatCodes(work))
	b.WriteByte('\n')
	for _, op := range a.ops {
		y, _ := op.Y()
		switch op.Kind() {
		case OpDeletion:
			work = append(work[:k], work[k+1:]...)
		case OpInsertion:
			work = append(work[:k], append([]int{y}, work[k:]...)...)
			k++
		default:
			work[k] = y
			k++
		}
		b.WriteString(op.String())
		b.WriteByte('\n')
		b.WriteString(formatCodes(work))
		b.WriteByte('\n')
	}
	return b.String()
}

// RenderConstraintDerivation prints, for every step of the alignment off
// row 0 and column 0, the inequality that admits it:
//
//	x_i = v <= 2j-1 = C_j                         (deletion)
//	y_j = w <= 2i-1 = C_i                         (insertion)
//	x_i = v <= 2j-1 = C_j and y_j = w <= 2i-1 = C_i (match/mismatch)
//
// The bounds are printed evaluated. An inequality that does not hold is
// printed with ">" instead of "<=". The relation always has exactly one
// space on each side; the text is not byte-compatible with renderings that
// pad the relation.
func (a *Alignment) RenderConstraintDerivation() string {
	var b strings.Builder
	for _, s := range a.steps() {
		if s.boundary() {
			continue
		}
		x, hasX := s.op.X()
		y, hasY := s.op.Y()
		if hasX {
			b.WriteString(inequality("x", s.i, x, s.j))
		}
		if hasX && hasY {
			b.WriteString(" and ")
		}
		if hasY {
			b.WriteString(inequality("y", s.j, y, s.i))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// inequality renders "name_idx = h <= 2pos-1 = C_pos".
func inequality(name string, idx, h, pos int) string {
	rel := "<="
	if !allowed(h, pos) {
		rel = ">"
	}
	return name + "_" + strconv.Itoa(idx) + " = " + strconv.Itoa(h) +
		" " + rel + " " + strconv.Itoa(2*pos-1) + " = C_" + strconv.Itoa(pos)
}

func formatCodes(codes []int) string {
	if len(codes) == 0 {
		return Empty
	}
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, ", ")
}
