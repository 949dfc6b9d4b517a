package harness

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRunWithGolden_Scenarios runs every scenario under testdata/scenarios
// against testdata/golden/{name}.golden.
//
// Regenerate with:
//
//	go test ./internal/harness -run TestRunWithGolden_Scenarios -update
func TestRunWithGolden_Scenarios(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		scenario, err := LoadScenario(file)
		require.NoError(t, err)

		t.Run(scenario.Name, func(t *testing.T) {
			result, err := RunWithGolden(t, scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestMarshalSnapshot_Deterministic(t *testing.T) {
	snap := &Snapshot{
		Name:        "det",
		Constraints: true,
		Distance:    2,
		Verified:    true,
		Alignment:   "(3, -)(-, 1)",
		Matrix:      "0, 1\n1, 2\n",
		Execution:   "3\n(3, -)\nε\n(-, 1)\n1\n",
		Derivation:  "y_1 = 1 <= 1 = C_1\n",
	}

	first, err := MarshalSnapshot(snap)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := MarshalSnapshot(snap)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	// Keys sorted, no HTML escaping of "<=".
	assert.True(t, strings.HasPrefix(string(first), `{"alignment":`))
	assert.Contains(t, string(first), `"derivation":"y_1 = 1 <= 1 = C_1\n"`)
}

func TestMarshalSnapshot_ErrorOmitsRenderings(t *testing.T) {
	data, err := MarshalSnapshot(&Snapshot{Name: "none", Constraints: true, Error: ExpectUnreachable})
	require.NoError(t, err)
	assert.Equal(t, `{"constraints":true,"error":"unreachable","name":"none"}`, string(data))
}

func TestGoldenPath(t *testing.T) {
	got := GoldenPath(filepath.Join("scenarios", "scenario_b.yaml"))
	assert.Equal(t, filepath.Join("scenarios", "golden", "scenario_b.golden"), got)
}

func TestUpdateAndCompareGolden(t *testing.T) {
	dir := t.TempDir()
	scenarioFile := filepath.Join(dir, "scenario_b.yaml")
	goldenPath := GoldenPath(scenarioFile)

	result, err := Run(&Scenario{
		Name:        "scenario_b",
		Description: "Constrained mismatch",
		X:           []int{3},
		Y:           []int{1},
		Constraints: true,
	})
	require.NoError(t, err)

	_, err = CompareGolden(result, goldenPath)
	require.Error(t, err, "golden file does not exist yet")

	require.NoError(t, UpdateGolden(result, goldenPath))

	match, err := CompareGolden(result, goldenPath)
	require.NoError(t, err)
	assert.True(t, match)

	// The written golden matches the checked-in one.
	want, err := os.ReadFile(filepath.Join("testdata", "golden", "scenario_b.golden"))
	require.NoError(t, err)
	got, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))

	result.Snapshot.Distance = 9
	match, err = CompareGolden(result, goldenPath)
	require.NoError(t, err)
	assert.False(t, match)
}
