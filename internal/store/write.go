package store

import (
	"context"
	"fmt"

	"github.com/roach88/sernalign/internal/ir"
)

// WriteRun records the start of a batch run.
// Idempotent: writing the same run twice is a no-op.
func (s *Store) WriteRun(ctx context.Context, run ir.Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, input, constraints, workers, algorithm_version)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, run.ID, run.Input, boolToInt(run.Constraints), run.Workers, run.AlgorithmVersion)
	if err != nil {
		return fmt.Errorf("write run %s: %w", run.ID, err)
	}
	return nil
}

// WriteStructure records a structure processed by a run.
// The run must already exist. Idempotent on (run, num).
func (s *Store) WriteStructure(ctx context.Context, runID string, rec ir.StructureRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO structures (run_id, num, id, file_name, length, admissible, build_nanos)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, num) DO NOTHING
	`, runID, rec.Num, rec.ID, rec.FileName, rec.Length, boolToInt(rec.Admissible), rec.BuildNanos)
	if err != nil {
		return fmt.Errorf("write structure %d of run %s: %w", rec.Num, runID, err)
	}
	return nil
}

// WriteComparison records one aligned pair.
// Both structures must already be written for rec.RunID. Idempotent on (run, seq).
func (s *Store) WriteComparison(ctx context.Context, rec ir.ComparisonRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO comparisons (
			run_id, id, seq, left_num, right_num, max_length,
			distance, constraints, verified, alignment, nanos
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, seq) DO NOTHING
	`,
		rec.RunID, rec.ID, rec.Seq, rec.Left.Num, rec.Right.Num, rec.MaxLength,
		rec.Distance, boolToInt(rec.Constraints), boolToInt(rec.Verified), rec.Alignment, rec.Nanos,
	)
	if err != nil {
		return fmt.Errorf("write comparison %s: %w", rec.ID, err)
	}
	return nil
}

// boolToInt converts a bool to SQLite's integer representation.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
