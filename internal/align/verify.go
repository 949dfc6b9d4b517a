package align

// step is an operation together with the (i, j) cell it was emitted from.
type step struct {
	op   EditOperation
	i, j int
}

// steps pairs every operation with its traceback coordinates, in
// left-to-right order. Replaying the operations from (n, m) backwards
// visits exactly the traceback path.
func (a *Alignment) steps() []step {
	out := make([]step, len(a.ops))
	i, j := len(a.x), len(a.y)
	for l := len(a.ops) - 1; l >= 0; l-- {
		op := a.ops[l]
		out[l] = step{op: op, i: i, j: j}
		switch op.Kind() {
		case OpDeletion:
			i--
		case OpInsertion:
			j--
		default:
			i--
			j--
		}
	}
	return out
}

// boundary reports whether a step lies on row 0 or column 0, where the
// prefix it is measured against is empty and the rule does not apply.
func (s step) boundary() bool {
	return s.i == 0 || s.j == 0
}

// Check replays the alignment and reports whether every step satisfies the
// admissibility rule, regardless of the constraints flag used by Align.
// Steps on row 0 or column 0 are exempt.
func (a *Alignment) Check() bool {
	for _, s := range a.steps() {
		if s.boundary() {
			continue
		}
		x, hasX := s.op.X()
		y, hasY := s.op.Y()
		if hasX && !allowed(x, s.j) {
			return false
		}
		if hasY && !allowed(y, s.i) {
			return false
		}
	}
	return true
}
