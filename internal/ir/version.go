package ir

// Version constants for records and the alignment algorithm.
const (
	// RecordVersion is the record schema version.
	RecordVersion = "1"

	// AlgorithmVersion identifies the alignment cost model and tie-break
	// order. Distances are only comparable across equal versions.
	AlgorithmVersion = "sernalign/1.0"
)
