package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/sernalign/internal/ir"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRun creates a run with minimal required fields.
func createTestRun(id string) ir.Run {
	return ir.Run{
		ID:               id,
		Input:            "testdata",
		Constraints:      true,
		Workers:          2,
		AlgorithmVersion: ir.AlgorithmVersion,
	}
}

// createTestStructure creates a structure record for the given codes.
func createTestStructure(num int, name string, codes []int) ir.StructureRecord {
	return ir.StructureRecord{
		ID:         ir.MustStructureID(codes),
		Num:        num,
		FileName:   name,
		Length:     len(codes),
		Admissible: true,
		BuildNanos: int64(num * 100),
	}
}

// createTestComparison creates a comparison between two structures.
func createTestComparison(runID string, seq int64, left, right ir.StructureRecord, distance int) ir.ComparisonRecord {
	return ir.ComparisonRecord{
		ID:          ir.MustComparisonID(left.ID, right.ID, true),
		RunID:       runID,
		Seq:         seq,
		Left:        left,
		Right:       right,
		MaxLength:   max(left.Length, right.Length),
		Distance:    distance,
		Constraints: true,
		Verified:    true,
		Alignment:   "(1, 1)",
		Nanos:       42,
	}
}

// seedRun writes a run and its structures, failing the test on error.
func seedRun(t *testing.T, s *Store, run ir.Run, structures ...ir.StructureRecord) {
	t.Helper()
	ctx := context.Background()
	if err := s.WriteRun(ctx, run); err != nil {
		t.Fatalf("WriteRun() failed: %v", err)
	}
	for _, rec := range structures {
		if err := s.WriteStructure(ctx, run.ID, rec); err != nil {
			t.Fatalf("WriteStructure() failed: %v", err)
		}
	}
}
