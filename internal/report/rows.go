package report

import (
	"strconv"

	"github.com/roach88/sernalign/internal/ir"
)

// CSV headers of the two report files.
var (
	StructuresHeader = []string{
		"Num",
		"FileName",
		"NumberOfCodes",
		"IsAdmissible",
		"TimeToReadStructuralSequence[ns]",
	}
	ComparisonsHeader = []string{
		"FileName1",
		"NumberOfCodes1",
		"FileName2",
		"NumberOfCodes2",
		"MaxNumberOfCodes1-2",
		"SERNADistance",
		"IsAlignmentAdmissible",
		"TimeToCalculateSERNADistance[ns]",
	}
)

// StructureRow is one line of the structures report.
type StructureRow struct {
	Num           int    `json:"Num"`
	FileName      string `json:"FileName"`
	NumberOfCodes int    `json:"NumberOfCodes"`
	IsAdmissible  string `json:"IsAdmissible"`
	TimeNanos     int64  `json:"TimeToReadStructuralSequence_ns"`
}

// ComparisonRow is one line of the comparisons report.
type ComparisonRow struct {
	FileName1             string `json:"FileName1"`
	NumberOfCodes1        int    `json:"NumberOfCodes1"`
	FileName2             string `json:"FileName2"`
	NumberOfCodes2        int    `json:"NumberOfCodes2"`
	MaxNumberOfCodes      int    `json:"MaxNumberOfCodes1-2"`
	SERNADistance         int    `json:"SERNADistance"`
	IsAlignmentAdmissible string `json:"IsAlignmentAdmissible"`
	TimeNanos             int64  `json:"TimeToCalculateSERNADistance_ns"`
}

// NewStructureRow converts a structure record to its report row.
func NewStructureRow(rec ir.StructureRecord) StructureRow {
	return StructureRow{
		Num:           rec.Num,
		FileName:      rec.FileName,
		NumberOfCodes: rec.Length,
		IsAdmissible:  yesNo(rec.Admissible),
		TimeNanos:     rec.BuildNanos,
	}
}

// NewComparisonRow converts a comparison record to its report row.
func NewComparisonRow(rec ir.ComparisonRecord) ComparisonRow {
	return ComparisonRow{
		FileName1:             rec.Left.FileName,
		NumberOfCodes1:        rec.Left.Length,
		FileName2:             rec.Right.FileName,
		NumberOfCodes2:        rec.Right.Length,
		MaxNumberOfCodes:      rec.MaxLength,
		SERNADistance:         rec.Distance,
		IsAlignmentAdmissible: yesNo(rec.Verified),
		TimeNanos:             rec.Nanos,
	}
}

// Record returns the CSV fields in header order.
func (r StructureRow) Record() []string {
	return []string{
		strconv.Itoa(r.Num),
		r.FileName,
		strconv.Itoa(r.NumberOfCodes),
		r.IsAdmissible,
		strconv.FormatInt(r.TimeNanos, 10),
	}
}

// Record returns the CSV fields in header order.
func (r ComparisonRow) Record() []string {
	return []string{
		r.FileName1,
		strconv.Itoa(r.NumberOfCodes1),
		r.FileName2,
		strconv.Itoa(r.NumberOfCodes2),
		strconv.Itoa(r.MaxNumberOfCodes),
		strconv.Itoa(r.SERNADistance),
		r.IsAlignmentAdmissible,
		strconv.FormatInt(r.TimeNanos, 10),
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
