package cli

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/roach88/sernalign/internal/batch"
	"github.com/roach88/sernalign/internal/testutil"
)

// execute runs the root command with args and returns stdout, stderr and
// the command error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// executeCompare runs the compare command with a deterministic run id
// generator and a frozen wall clock.
func executeCompare(t *testing.T, format string, ids batch.RunIDGenerator, args ...string) (string, error) {
	t.Helper()
	opts := &CompareOptions{
		RootOptions:    &RootOptions{Format: format},
		RunIDGenerator: ids,
		Now:            testutil.FrozenNow(time.Unix(1700000000, 0)),
	}
	cmd := newCompareCommand(opts)
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// decodeResponse decodes a CLIResponse and its data into data.
func decodeResponse(t *testing.T, out string, data any) CLIResponse {
	t.Helper()
	var resp struct {
		CLIResponse
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp), "output: %s", out)
	if data != nil {
		require.NoError(t, json.Unmarshal(resp.Data, data))
	}
	return resp.CLIResponse
}

// sampleFolder holds three admissible structures plus entries the batch
// runner skips.
func sampleFolder(t *testing.T) string {
	t.Helper()
	return testutil.WriteFiles(t, t.TempDir(), map[string]string{
		"a.txt":     "1, 3\n",
		"b.txt":     "1 1 2\n",
		"c.txt":     "> named\n1, 2, 3\n",
		"bad.txt":   "1, x\n",
		".hidden":   "1\n",
		"sub/d.txt": "1\n",
	})
}
