package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/sernalign/internal/ir"
)

// CachedResult is a distance previously computed for a comparison id.
type CachedResult struct {
	Distance  int
	Verified  bool
	Alignment string
}

// ReadRuns returns every recorded run, oldest first.
// UUIDv7 ids sort by creation time, so ordering by id is chronological.
// Returns an empty slice (not nil) if there are none.
func (s *Store) ReadRuns(ctx context.Context) ([]ir.Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, input, constraints, workers, algorithm_version
		FROM runs
		ORDER BY id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []ir.Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadRun returns a single run by id.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadRun(ctx context.Context, id string) (ir.Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, input, constraints, workers, algorithm_version
		FROM runs
		WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ir.Run{}, err
		}
		return ir.Run{}, fmt.Errorf("read run %s: %w", id, err)
	}
	return run, nil
}

// ReadStructures returns the structures of a run in processing order.
// Returns an empty slice (not nil) if there are none.
func (s *Store) ReadStructures(ctx context.Context, runID string) ([]ir.StructureRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, num, file_name, length, admissible, build_nanos
		FROM structures
		WHERE run_id = ?
		ORDER BY num ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query structures: %w", err)
	}
	defer rows.Close()

	recs := []ir.StructureRecord{}
	for rows.Next() {
		var rec ir.StructureRecord
		var admissible int
		if err := rows.Scan(&rec.ID, &rec.Num, &rec.FileName, &rec.Length, &admissible, &rec.BuildNanos); err != nil {
			return nil, fmt.Errorf("scan structure: %w", err)
		}
		rec.Admissible = admissible != 0
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate structures: %w", err)
	}
	return recs, nil
}

// ReadComparisons returns the comparisons of a run with both structures
// joined in. Results are ordered by seq ASC, id ASC COLLATE BINARY.
// Returns an empty slice (not nil) if there are none.
func (s *Store) ReadComparisons(ctx context.Context, runID string) ([]ir.ComparisonRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			c.id, c.run_id, c.seq, c.max_length, c.distance,
			c.constraints, c.verified, c.alignment, c.nanos,
			l.id, l.num, l.file_name, l.length, l.admissible, l.build_nanos,
			r.id, r.num, r.file_name, r.length, r.admissible, r.build_nanos
		FROM comparisons c
		JOIN structures l ON l.run_id = c.run_id AND l.num = c.left_num
		JOIN structures r ON r.run_id = c.run_id AND r.num = c.right_num
		WHERE c.run_id = ?
		ORDER BY c.seq ASC, c.id COLLATE BINARY ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query comparisons: %w", err)
	}
	defer rows.Close()

	recs := []ir.ComparisonRecord{}
	for rows.Next() {
		var rec ir.ComparisonRecord
		var constraints, verified, leftAdm, rightAdm int
		if err := rows.Scan(
			&rec.ID, &rec.RunID, &rec.Seq, &rec.MaxLength, &rec.Distance,
			&constraints, &verified, &rec.Alignment, &rec.Nanos,
			&rec.Left.ID, &rec.Left.Num, &rec.Left.FileName, &rec.Left.Length, &leftAdm, &rec.Left.BuildNanos,
			&rec.Right.ID, &rec.Right.Num, &rec.Right.FileName, &rec.Right.Length, &rightAdm, &rec.Right.BuildNanos,
		); err != nil {
			return nil, fmt.Errorf("scan comparison: %w", err)
		}
		rec.Constraints = constraints != 0
		rec.Verified = verified != 0
		rec.Left.Admissible = leftAdm != 0
		rec.Right.Admissible = rightAdm != 0
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comparisons: %w", err)
	}
	return recs, nil
}

// LookupComparison returns the result of any earlier run that aligned the
// same content-addressed comparison. The bool is false on a cache miss.
func (s *Store) LookupComparison(ctx context.Context, id string) (CachedResult, bool, error) {
	var res CachedResult
	var verified int
	err := s.db.QueryRowContext(ctx, `
		SELECT distance, verified, alignment
		FROM comparisons
		WHERE id = ?
		ORDER BY run_id COLLATE BINARY ASC
		LIMIT 1
	`, id).Scan(&res.Distance, &verified, &res.Alignment)
	if errors.Is(err, sql.ErrNoRows) {
		return CachedResult{}, false, nil
	}
	if err != nil {
		return CachedResult{}, false, fmt.Errorf("lookup comparison %s: %w", id, err)
	}
	res.Verified = verified != 0
	return res, true, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (ir.Run, error) {
	var run ir.Run
	var constraints int
	if err := sc.Scan(&run.ID, &run.Input, &constraints, &run.Workers, &run.AlgorithmVersion); err != nil {
		return ir.Run{}, err
	}
	run.Constraints = constraints != 0
	return run, nil
}

// Distance looks up a cached result by the two structure ids and the
// constraints flag, resolving them to the content-addressed comparison id.
func (s *Store) Distance(ctx context.Context, leftID, rightID string, constraints bool) (CachedResult, bool, error) {
	id, err := ir.ComparisonID(leftID, rightID, constraints)
	if err != nil {
		return CachedResult{}, false, err
	}
	return s.LookupComparison(ctx, id)
}
