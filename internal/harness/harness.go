package harness

import (
	"errors"
	"fmt"

	"github.com/roach88/sernalign/internal/align"
	"github.com/roach88/sernalign/internal/sseq"
)

// Run executes a test scenario and returns the result.
//
// Execution flow:
// 1. Build both structural sequences
// 2. Align them under the scenario's constraints flag
// 3. Check the expect clause
// 4. Evaluate assertions against the alignment
// 5. Return result with pass/fail, snapshot and errors
//
// An error is returned only when the scenario cannot be executed at all.
// A pair with no admissible alignment is an outcome, not an error.
func Run(scenario *Scenario) (*Result, error) {
	x, err := sseq.New(scenario.X...)
	if err != nil {
		return nil, fmt.Errorf("x: %w", err)
	}
	y, err := sseq.New(scenario.Y...)
	if err != nil {
		return nil, fmt.Errorf("y: %w", err)
	}

	result := NewResult()
	result.Snapshot = Snapshot{
		Name:        scenario.Name,
		Constraints: scenario.Constraints,
	}
	expect := scenario.Expect

	a, err := align.Align(x, y, scenario.Constraints)
	if errors.Is(err, align.ErrUnreachable) {
		result.Snapshot.Error = ExpectUnreachable
		if expect.Error != ExpectUnreachable {
			result.AddError("no admissible alignment exists")
		}
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to align: %w", err)
	}

	result.Snapshot.Distance = a.Distance()
	result.Snapshot.Verified = a.Check()
	result.Snapshot.Alignment = a.RenderAlignment()
	result.Snapshot.Matrix = a.RenderMatrix()
	result.Snapshot.Execution = a.RenderExecutionTrace()
	result.Snapshot.Derivation = a.RenderConstraintDerivation()

	if expect.Error != "" {
		result.AddError(fmt.Sprintf("expected error %q, got distance %d", expect.Error, a.Distance()))
	}
	if expect.Distance != nil && *expect.Distance != result.Snapshot.Distance {
		result.AddError(fmt.Sprintf("distance: expected %d, got %d", *expect.Distance, result.Snapshot.Distance))
	}
	if expect.Alignment != "" && expect.Alignment != result.Snapshot.Alignment {
		result.AddError(fmt.Sprintf("alignment: expected %s, got %s", expect.Alignment, result.Snapshot.Alignment))
	}
	if expect.Verified != nil && *expect.Verified != result.Snapshot.Verified {
		result.AddError(fmt.Sprintf("verified: expected %t, got %t", *expect.Verified, result.Snapshot.Verified))
	}

	for _, msg := range EvaluateAssertions(a, scenario.Assertions) {
		result.AddError(msg)
	}

	return result, nil
}
