// Package harness provides conformance testing for the alignment engine.
//
// A scenario names two structural sequences, the constraints flag and the
// expected outcome. The harness aligns them, checks the expectations and
// assertions, and snapshots everything the alignment renders for golden
// file comparison.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	x: [1, 1, 3]
//	y: [1, 3]
//	constraints: true
//	expect:
//	  distance: 1
//	  alignment: "(1, 1)(1, -)(3, 3)"
//	  verified: true
//	assertions:
//	  - type: op_contains
//	    op: "(3, 3)"
//	  - type: matrix_cell
//	    row: 1
//	    col: 1
//	    value: "0"
//
// A scenario for a pair with no admissible alignment expects an error
// instead:
//
//	expect:
//	  error: unreachable
//
// # Assertion Types
//
// The following assertion types are supported:
//
//   - op_contains: Verifies an operation appears in the alignment
//   - op_order: Verifies operations appear in the specified order
//   - op_count: Verifies the alignment holds exactly N operations of a kind
//   - matrix_cell: Verifies one cost matrix cell ("∞" for unreachable)
//
// # Deterministic Testing
//
// The alignment is deterministic: ties are broken in a fixed order, so the
// same scenario always yields byte-identical snapshots.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/pseudoknot.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, e := range result.Errors {
//	        log.Println(e)
//	    }
//	}
package harness
