package harness

// Snapshot captures everything an alignment renders, for golden comparison.
type Snapshot struct {
	Name        string `json:"name"`
	Constraints bool   `json:"constraints"`
	Distance    int    `json:"distance"`
	Verified    bool   `json:"verified"`
	Alignment   string `json:"alignment"`
	Matrix      string `json:"matrix"`
	Execution   string `json:"execution"`
	Derivation  string `json:"derivation"`

	// Error is set instead of the rendered fields when no alignment exists.
	Error string `json:"error,omitempty"`
}

// toCanonicalMap converts a Snapshot to a map[string]any for canonical JSON
// serialization, since ir.MarshalCanonical only handles primitives.
func (s *Snapshot) toCanonicalMap() map[string]any {
	m := map[string]any{
		"name":        s.Name,
		"constraints": s.Constraints,
	}
	if s.Error != "" {
		m["error"] = s.Error
		return m
	}
	m["distance"] = s.Distance
	m["verified"] = s.Verified
	m["alignment"] = s.Alignment
	m["matrix"] = s.Matrix
	m["execution"] = s.Execution
	m["derivation"] = s.Derivation
	return m
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if all expectations and assertions match.
	Pass bool `json:"pass"`

	// Snapshot holds the rendered alignment.
	Snapshot Snapshot `json:"snapshot"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
