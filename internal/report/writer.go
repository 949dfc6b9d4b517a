package report

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/roach88/sernalign/internal/ir"
)

// Writer streams a run's records as CSV, and optionally JSON.
// It satisfies batch.Sink.
type Writer struct {
	structures  *csv.Writer
	comparisons *csv.Writer

	jsonStructures  io.Writer
	jsonComparisons io.Writer
	structureRows   []StructureRow
	comparisonRows  []ComparisonRow
}

// NewWriter creates a Writer emitting CSV to the given writers.
func NewWriter(structures, comparisons io.Writer) *Writer {
	return &Writer{
		structures:  csv.NewWriter(structures),
		comparisons: csv.NewWriter(comparisons),
	}
}

// WithJSON additionally writes both tables as JSON arrays when the run ends.
func (w *Writer) WithJSON(structures, comparisons io.Writer) *Writer {
	w.jsonStructures = structures
	w.jsonComparisons = comparisons
	return w
}

// BeginRun writes the CSV headers.
func (w *Writer) BeginRun(_ context.Context, _ ir.Run) error {
	if err := w.structures.Write(StructuresHeader); err != nil {
		return fmt.Errorf("structures header: %w", err)
	}
	if err := w.comparisons.Write(ComparisonsHeader); err != nil {
		return fmt.Errorf("comparisons header: %w", err)
	}
	return nil
}

// AddStructure writes one structures row.
func (w *Writer) AddStructure(_ context.Context, rec ir.StructureRecord) error {
	row := NewStructureRow(rec)
	if err := w.structures.Write(row.Record()); err != nil {
		return fmt.Errorf("structure %d: %w", rec.Num, err)
	}
	if w.jsonStructures != nil {
		w.structureRows = append(w.structureRows, row)
	}
	return nil
}

// AddComparison writes one comparisons row.
func (w *Writer) AddComparison(_ context.Context, rec ir.ComparisonRecord) error {
	row := NewComparisonRow(rec)
	if err := w.comparisons.Write(row.Record()); err != nil {
		return fmt.Errorf("comparison seq=%d: %w", rec.Seq, err)
	}
	if w.jsonComparisons != nil {
		w.comparisonRows = append(w.comparisonRows, row)
	}
	return nil
}

// EndRun flushes the CSV output and writes the JSON arrays.
func (w *Writer) EndRun(_ context.Context) error {
	if err := w.Flush(); err != nil {
		return err
	}
	if w.jsonStructures != nil {
		if err := writeJSON(w.jsonStructures, nonNil(w.structureRows)); err != nil {
			return fmt.Errorf("structures json: %w", err)
		}
	}
	if w.jsonComparisons != nil {
		if err := writeJSON(w.jsonComparisons, nonNil(w.comparisonRows)); err != nil {
			return fmt.Errorf("comparisons json: %w", err)
		}
	}
	return nil
}

// Flush writes any buffered CSV rows.
func (w *Writer) Flush() error {
	w.structures.Flush()
	w.comparisons.Flush()
	return errors.Join(w.structures.Error(), w.comparisons.Error())
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// nonNil makes empty tables encode as [] rather than null.
func nonNil[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}

// Files is a Writer bound to files on disk. Rows go to hidden temporary
// files next to each target; Commit renames them into place, so a failed
// run never leaves truncated reports behind.
type Files struct {
	*Writer
	staged    []stagedFile
	closed    bool
	committed bool
}

type stagedFile struct {
	file   *os.File
	target string
}

// Create stages the CSV files of p, and the JSON files too when withJSON
// is set. Existing reports are untouched until Commit.
func Create(p Paths, withJSON bool) (*Files, error) {
	f := &Files{}
	open := func(target string) (*os.File, error) {
		dir, base := filepath.Split(target)
		if dir == "" {
			dir = "."
		}
		file, err := os.CreateTemp(dir, "."+base+".*.tmp")
		if err != nil {
			return nil, fmt.Errorf("create report %s: %w", target, err)
		}
		if err := file.Chmod(0o644); err != nil {
			file.Close()
			os.Remove(file.Name())
			return nil, fmt.Errorf("create report %s: %w", target, err)
		}
		f.staged = append(f.staged, stagedFile{file: file, target: target})
		return file, nil
	}

	structures, err := open(p.Structures)
	if err != nil {
		return nil, err
	}
	comparisons, err := open(p.Comparisons)
	if err != nil {
		f.Close()
		return nil, err
	}
	f.Writer = NewWriter(structures, comparisons)

	if withJSON {
		js, err := open(p.StructuresJSON)
		if err != nil {
			f.Close()
			return nil, err
		}
		jc, err := open(p.ComparisonsJSON)
		if err != nil {
			f.Close()
			return nil, err
		}
		f.Writer.WithJSON(js, jc)
	}
	return f, nil
}

// Staged returns the paths of the temporary files, so a batch run can
// exclude them from its inputs.
func (f *Files) Staged() []string {
	out := make([]string, len(f.staged))
	for i, s := range f.staged {
		out[i] = s.file.Name()
	}
	return out
}

// Commit flushes pending rows and moves every staged file over its target.
func (f *Files) Commit() error {
	if f.closed {
		return errors.New("commit reports: already closed")
	}
	var errs []error
	if f.Writer != nil {
		errs = append(errs, f.Writer.Flush())
	}
	errs = append(errs, f.closeFiles())
	if err := errors.Join(errs...); err != nil {
		f.discard()
		return fmt.Errorf("commit reports: %w", err)
	}

	for _, s := range f.staged {
		if err := os.Rename(s.file.Name(), s.target); err != nil {
			f.discard()
			return fmt.Errorf("commit report %s: %w", s.target, err)
		}
	}
	f.committed = true
	return nil
}

// Close discards the staged files unless Commit succeeded. It is safe to
// call after Commit.
func (f *Files) Close() error {
	if f.committed {
		return nil
	}
	err := f.closeFiles()
	f.discard()
	return err
}

func (f *Files) closeFiles() error {
	if f.closed {
		return nil
	}
	f.closed = true
	var errs []error
	for _, s := range f.staged {
		errs = append(errs, s.file.Close())
	}
	return errors.Join(errs...)
}

func (f *Files) discard() {
	for _, s := range f.staged {
		os.Remove(s.file.Name())
	}
}
