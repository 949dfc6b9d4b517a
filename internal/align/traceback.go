package align

// traceback replays the recorded directions from (n, m) to (0, 0).
// Operations are collected back to front and reversed once at the end.
func (a *Alignment) traceback() []EditOperation {
	i, j := len(a.x), len(a.y)
	ops := make([]EditOperation, 0, i+j)

	for i > 0 && j > 0 {
		switch a.trace[i][j] {
		case dirDiagonal:
			ops = append(ops, Pair(a.x[i-1], a.y[j-1]))
			i--
			j--
		case dirUp:
			ops = append(ops, Deletion(a.x[i-1]))
			i--
		default:
			ops = append(ops, Insertion(a.y[j-1]))
			j--
		}
	}
	for ; j > 0; j-- {
		ops = append(ops, Insertion(a.y[j-1]))
	}
	for ; i > 0; i-- {
		ops = append(ops, Deletion(a.x[i-1]))
	}

	for l, r := 0, len(ops)-1; l < r; l, r = l+1, r-1 {
		ops[l], ops[r] = ops[r], ops[l]
	}
	return ops
}
