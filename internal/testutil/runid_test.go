package testutil

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedRunIDGenerator_ReturnsSameID(t *testing.T) {
	gen := NewFixedRunIDGenerator("run-1")

	assert.Equal(t, "run-1", gen.Generate())
	assert.Equal(t, "run-1", gen.Generate())
}

func TestFixedRunIDGenerator_EmptyIDDefault(t *testing.T) {
	gen := NewFixedRunIDGenerator("")
	assert.Equal(t, "test-run-default", gen.Generate())
}

func TestFixedRunIDGenerator_ThreadSafe(t *testing.T) {
	gen := NewFixedRunIDGenerator("shared")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, "shared", gen.Generate())
		}()
	}
	wg.Wait()
}

func TestFrozenNow(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	now := FrozenNow(at)

	start := now()
	assert.Equal(t, time.Duration(0), now().Sub(start))
	assert.True(t, at.Equal(start))
}

func TestWriteFiles(t *testing.T) {
	dir := WriteFiles(t, t.TempDir(), map[string]string{
		"a.txt":     "1, 2",
		"sub/b.txt": "3",
	})

	data, err := os.ReadFile(filepath.Join(dir, "sub", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "3", string(data))
}
