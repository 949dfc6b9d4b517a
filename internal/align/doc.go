// Package align computes minimum-cost edit alignments between structural
// sequences of RNA secondary structures.
//
// An alignment is computed once by Align and is read-only afterwards:
//
//	a, err := align.Align(x, y, true)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(a.Distance(), a.RenderAlignment())
//
// COST MODEL:
//
// Insertions and deletions cost 1, a match costs 0 and a mismatch costs 1.
//
// ADMISSIBILITY:
//
// A structural code h may sit at position pos of a prefix only when
// 1 <= h <= 2*pos-1. When constraints are enabled the solver refuses every
// insertion, deletion or match that breaks the rule at the cell being
// filled; the offending candidate is given an unreachable cost instead.
// Check always applies the rule, whatever flag the alignment was built with.
//
// Ties are broken in a fixed order: insertion, then deletion, then
// match/mismatch. A later candidate wins only when strictly cheaper.
package align
