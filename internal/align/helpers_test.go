package align

import (
	"fmt"
	"strings"
)

// seq is a minimal Sequence over a slice.
type seq []int

func (s seq) Len() int { return len(s) }
func (s seq) At(i int) int { return s[i-1] }

// snapshot renders everything an alignment exposes, for golden comparison.
func snapshot(a *Alignment) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "distance: %d\n", a.Distance())
	fmt.Fprintf(&b, "constraints: %t\n", a.Constraints())
	fmt.Fprintf(&b, "verified: %t\n", a.Check())
	fmt.Fprintf(&b, "alignment: %s\n", a.RenderAlignment())
	b.WriteString("-- matrix --\n")
	b.WriteString(a.RenderMatrix())
	b.WriteString("-- execution --\n")
	b.WriteString(a.RenderExecutionTrace())
	b.WriteString("-- derivation --\n")
	b.WriteString(a.RenderConstraintDerivation())
	return []byte(b.String())
}
