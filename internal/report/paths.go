package report

import "path/filepath"

// Default report file names, created in the input folder.
const (
	DefaultStructuresName  = "SERNAlignProcessedStructures.csv"
	DefaultComparisonsName = "SERNAlignComparisonResults.csv"
)

// Paths names the report files of a run.
type Paths struct {
	Structures      string
	Comparisons     string
	StructuresJSON  string
	ComparisonsJSON string
}

// DefaultPaths places the reports in the input folder.
func DefaultPaths(input string) Paths {
	return Paths{
		Structures:      filepath.Join(input, DefaultStructuresName),
		Comparisons:     filepath.Join(input, DefaultComparisonsName),
		StructuresJSON:  filepath.Join(input, "SERNAlignProcessedStructures.json"),
		ComparisonsJSON: filepath.Join(input, "SERNAlignComparisonResults.json"),
	}
}

// CustomPaths uses the given CSV names; the JSON files get a ".json" suffix.
func CustomPaths(structures, comparisons string) Paths {
	return Paths{
		Structures:      structures,
		Comparisons:     comparisons,
		StructuresJSON:  structures + ".json",
		ComparisonsJSON: comparisons + ".json",
	}
}

// All returns every path, CSV first.
func (p Paths) All() []string {
	return []string{p.Structures, p.Comparisons, p.StructuresJSON, p.ComparisonsJSON}
}
