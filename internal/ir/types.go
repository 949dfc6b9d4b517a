package ir

// StructureRecord describes one structural sequence processed by a run.
type StructureRecord struct {
	ID         string `json:"id"`  // Content-addressed (StructureID)
	Num        int    `json:"num"` // 1-based processing order
	FileName   string `json:"file_name"`
	Length     int    `json:"length"`      // Number of codes
	Admissible bool   `json:"admissible"`  // Every code c at position k satisfies c <= 2k-1
	BuildNanos int64  `json:"build_nanos"` // Time to read and build the sequence
}

// ComparisonRecord is the result of aligning two structures.
type ComparisonRecord struct {
	ID          string          `json:"id"` // Content-addressed (ComparisonID)
	RunID       string          `json:"run_id"`
	Seq         int64           `json:"seq"` // Logical clock within the run
	Left        StructureRecord `json:"left"`
	Right       StructureRecord `json:"right"`
	MaxLength   int             `json:"max_length"`
	Distance    int             `json:"distance"`
	Constraints bool            `json:"constraints"`
	Verified    bool            `json:"verified"`            // Alignment passes the admissibility check
	Alignment   string          `json:"alignment,omitempty"` // Rendered "(a, b)" list
	Nanos       int64           `json:"nanos"`               // Time to compute the alignment
}

// Run describes one batch comparison.
type Run struct {
	ID               string `json:"id"` // UUIDv7
	Input            string `json:"input"`
	Constraints      bool   `json:"constraints"`
	Workers          int    `json:"workers"`
	AlgorithmVersion string `json:"algorithm_version"`
}
