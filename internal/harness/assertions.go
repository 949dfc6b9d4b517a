package harness

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/sernalign/internal/align"
)

// AssertionError is returned when an assertion fails.
// It includes the alignment to help debug the failure.
type AssertionError struct {
	Type      string // Assertion type for categorization
	Expected  string // Human-readable expected outcome
	Actual    string // Human-readable actual outcome
	Alignment string // Rendered alignment for context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)
	fmt.Fprintf(&buf, "  Alignment: %s\n", e.Alignment)

	return buf.String()
}

// EvaluateAssertions checks every assertion and returns one message per failure.
func EvaluateAssertions(a *align.Alignment, assertions []Assertion) []string {
	var errs []string
	for _, assertion := range assertions {
		if err := evaluateAssertion(a, assertion); err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}

func evaluateAssertion(a *align.Alignment, assertion Assertion) error {
	switch assertion.Type {
	case AssertOpContains:
		return assertOpContains(a, assertion)
	case AssertOpOrder:
		return assertOpOrder(a, assertion)
	case AssertOpCount:
		return assertOpCount(a, assertion)
	case AssertMatrixCell:
		return assertMatrixCell(a, assertion)
	default:
		return fmt.Errorf("unknown assertion type %q", assertion.Type)
	}
}

// assertOpContains checks the alignment holds the operation.
func assertOpContains(a *align.Alignment, assertion Assertion) error {
	for _, op := range a.Operations() {
		if op.String() == assertion.Op {
			return nil
		}
	}

	return &AssertionError{
		Type:      AssertOpContains,
		Expected:  fmt.Sprintf("operation %s", assertion.Op),
		Actual:    "not found in alignment",
		Alignment: a.RenderAlignment(),
	}
}

// assertOpOrder checks operations appear in the specified order.
// They need not be consecutive; each is matched after the previous one.
func assertOpOrder(a *align.Alignment, assertion Assertion) error {
	ops := a.Operations()
	pos := 0
	for _, want := range assertion.Ops {
		found := false
		for pos < len(ops) {
			s := ops[pos].String()
			pos++
			if s == want {
				found = true
				break
			}
		}
		if !found {
			return &AssertionError{
				Type:      AssertOpOrder,
				Expected:  fmt.Sprintf("operations in order: %v", assertion.Ops),
				Actual:    fmt.Sprintf("%s missing or out of order", want),
				Alignment: a.RenderAlignment(),
			}
		}
	}
	return nil
}

// assertOpCount checks the number of operations of one kind.
func assertOpCount(a *align.Alignment, assertion Assertion) error {
	kind, ok := parseKind(assertion.Kind)
	if !ok {
		return fmt.Errorf("unknown kind %q", assertion.Kind)
	}

	count := 0
	for _, op := range a.Operations() {
		if op.Kind() == kind {
			count++
		}
	}
	if count == assertion.Count {
		return nil
	}

	return &AssertionError{
		Type:      AssertOpCount,
		Expected:  fmt.Sprintf("%d %s operations", assertion.Count, assertion.Kind),
		Actual:    fmt.Sprintf("%d", count),
		Alignment: a.RenderAlignment(),
	}
}

// assertMatrixCell checks one cost matrix value.
func assertMatrixCell(a *align.Alignment, assertion Assertion) error {
	m := a.Matrix()
	if assertion.Row >= len(m) || assertion.Col >= len(m[0]) {
		return &AssertionError{
			Type:      AssertMatrixCell,
			Expected:  fmt.Sprintf("cell (%d, %d)", assertion.Row, assertion.Col),
			Actual:    fmt.Sprintf("matrix is %dx%d", len(m), len(m[0])),
			Alignment: a.RenderAlignment(),
		}
	}

	got := cellString(m[assertion.Row][assertion.Col])
	if got == assertion.Value {
		return nil
	}

	return &AssertionError{
		Type:      AssertMatrixCell,
		Expected:  fmt.Sprintf("m[%d][%d] = %s", assertion.Row, assertion.Col, assertion.Value),
		Actual:    got,
		Alignment: a.RenderAlignment(),
	}
}

func cellString(v int) string {
	if v == align.Unreachable {
		return "∞"
	}
	return strconv.Itoa(v)
}
