package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/sernalign/internal/align"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. It names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// X and Y are the structural sequences to align. Either may be empty.
	X []int `yaml:"x"`
	Y []int `yaml:"y"`

	// Constraints applies the admissibility rule in every DP cell.
	Constraints bool `yaml:"constraints"`

	// Expect specifies the expected outcome.
	Expect ExpectClause `yaml:"expect"`

	// Assertions validate details of the alignment and the cost matrix.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// ExpectClause specifies the expected alignment outcome.
// Unset fields are not checked.
type ExpectClause struct {
	// Distance is the expected edit distance.
	Distance *int `yaml:"distance,omitempty"`

	// Alignment is the expected rendering, e.g. "(1, 1)(-, 3)".
	Alignment string `yaml:"alignment,omitempty"`

	// Verified is the expected result of the admissibility check.
	Verified *bool `yaml:"verified,omitempty"`

	// Error names an expected failure. Only "unreachable" is supported.
	Error string `yaml:"error,omitempty"`
}

// Assertion validates a detail of the alignment.
type Assertion struct {
	// Type specifies the assertion type:
	// - "op_contains": Check an operation appears in the alignment
	// - "op_order": Check operations appear in order
	// - "op_count": Check the number of operations of one kind
	// - "matrix_cell": Check one cost matrix value
	Type string `yaml:"type"`

	// Op is the rendered operation (used by op_contains), e.g. "(3, -)".
	Op string `yaml:"op,omitempty"`

	// Ops is the expected operation order (used by op_order).
	Ops []string `yaml:"ops,omitempty"`

	// Kind is match, mismatch, insertion or deletion (used by op_count).
	Kind string `yaml:"kind,omitempty"`

	// Count is the expected number of operations (used by op_count).
	Count int `yaml:"count,omitempty"`

	// Row and Col address the cell (used by matrix_cell).
	Row int `yaml:"row,omitempty"`
	Col int `yaml:"col,omitempty"`

	// Value is the expected cell value (used by matrix_cell); "∞" for
	// an unreachable cell.
	Value string `yaml:"value,omitempty"`
}

// Assertion type constants.
const (
	AssertOpContains  = "op_contains"
	AssertOpOrder     = "op_order"
	AssertOpCount     = "op_count"
	AssertMatrixCell  = "matrix_cell"
	ExpectUnreachable = "unreachable"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	for i, c := range s.X {
		if c < 1 {
			return fmt.Errorf("x[%d]: code must be positive, got %d", i, c)
		}
	}
	for i, c := range s.Y {
		if c < 1 {
			return fmt.Errorf("y[%d]: code must be positive, got %d", i, c)
		}
	}

	e := s.Expect
	switch e.Error {
	case "":
		if e.Distance == nil && e.Alignment == "" && e.Verified == nil && len(s.Assertions) == 0 {
			return fmt.Errorf("expect or assertions must check something")
		}
	case ExpectUnreachable:
		if e.Distance != nil || e.Alignment != "" || e.Verified != nil || len(s.Assertions) > 0 {
			return fmt.Errorf("expect.error cannot be combined with other expectations")
		}
	default:
		return fmt.Errorf("expect.error: unknown error %q", e.Error)
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertOpContains:
		if a.Op == "" {
			return fmt.Errorf("assertions[%d]: op is required for op_contains", index)
		}
	case AssertOpOrder:
		if len(a.Ops) == 0 {
			return fmt.Errorf("assertions[%d]: ops list is required for op_order", index)
		}
	case AssertOpCount:
		if _, ok := parseKind(a.Kind); !ok {
			return fmt.Errorf("assertions[%d]: unknown kind %q for op_count", index, a.Kind)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for op_count", index)
		}
	case AssertMatrixCell:
		if a.Row < 0 || a.Col < 0 {
			return fmt.Errorf("assertions[%d]: row and col must be non-negative for matrix_cell", index)
		}
		if a.Value == "" {
			return fmt.Errorf("assertions[%d]: value is required for matrix_cell", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}

// parseKind maps an op_count kind name to its OpKind.
func parseKind(name string) (align.OpKind, bool) {
	for _, k := range []align.OpKind{align.OpMatch, align.OpMismatch, align.OpDeletion, align.OpInsertion} {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}
