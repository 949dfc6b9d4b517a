package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.cue")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse("run.cue", []byte(`input: "structures"`))
	require.NoError(t, err)

	assert.Equal(t, "structures", cfg.Input)
	assert.True(t, cfg.Constraints)
	assert.Equal(t, 1, cfg.Workers)
	assert.False(t, cfg.JSON)
	assert.Empty(t, cfg.DB)
	assert.Nil(t, cfg.Outputs)
}

func TestParse_AllFields(t *testing.T) {
	src := `
input:       "data"
constraints: false
workers:     8
json:        true
db:          "results.db"
metrics:     "sernalign.prom"
outputs: {
	structures:  "s.csv"
	comparisons: "c.csv"
}
`
	cfg, err := Parse("run.cue", []byte(src))
	require.NoError(t, err)

	assert.Equal(t, &Config{
		Input:       "data",
		Constraints: false,
		Workers:     8,
		JSON:        true,
		DB:          "results.db",
		Metrics:     "sernalign.prom",
		Outputs:     &Outputs{Structures: "s.csv", Comparisons: "c.csv"},
	}, cfg)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantCode string
		contains string
	}{
		{"syntax", "input: \"data\n", ErrCodeBuildFailed, ""},
		{"missing input", "workers: 2", ErrCodeInvalidValue, "input"},
		{"empty input", `input: ""`, ErrCodeInvalidValue, "input"},
		{"zero workers", "input: \"d\"\nworkers: 0", ErrCodeInvalidValue, "workers"},
		{"wrong type", "input: \"d\"\nconstraints: \"yes\"", ErrCodeInvalidValue, "constraints"},
		{"unknown field", "input: \"d\"\nworkerz: 2", ErrCodeInvalidValue, "workerz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("run.cue", []byte(tt.src))
			require.Error(t, err)

			var le *LoadError
			require.True(t, errors.As(err, &le), "got %T: %v", err, err)
			assert.Equal(t, tt.wantCode, le.Code)
			if tt.contains != "" {
				assert.Contains(t, le.Error(), tt.contains)
			}
		})
	}
}

func TestParse_SyntaxErrorPosition(t *testing.T) {
	_, err := Parse("run.cue", []byte("input: \"data\"\nworkers: ]\n"))

	var le *LoadError
	require.True(t, errors.As(err, &le))
	require.True(t, le.Pos.IsValid())
	assert.Equal(t, "run.cue", le.Pos.Filename())
	assert.Equal(t, 2, le.Pos.Line())
}

func TestLoad_ResolvesRelativePaths(t *testing.T) {
	path := writeConfig(t, `
input: "data"
db:    "/var/lib/sernalign.db"
outputs: {
	structures:  "out/s.csv"
	comparisons: "out/c.csv"
}
`)
	dir := filepath.Dir(path)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data"), cfg.Input)
	assert.Equal(t, "/var/lib/sernalign.db", cfg.DB)
	assert.Empty(t, cfg.Metrics)
	assert.Equal(t, filepath.Join(dir, "out", "s.csv"), cfg.Outputs.Structures)
	assert.Equal(t, filepath.Join(dir, "out", "c.csv"), cfg.Outputs.Comparisons)
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.cue"))

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, ErrCodeNotFound, le.Code)
}

func TestDefault(t *testing.T) {
	assert.Equal(t, Config{Input: "dir", Constraints: true, Workers: 1}, Default("dir"))
}
