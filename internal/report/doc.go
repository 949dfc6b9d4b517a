// Package report writes the CSV and JSON result files of a batch run.
//
// A run produces two tables: the processed structures, one row per
// readable sequence file, and the comparison results, one row per pair.
// Writer receives the records from the batch runner as a sink and streams
// CSV rows as they arrive; JSON arrays are written once the run ends.
package report
