package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/sernalign/internal/sseq"
)

// FileValidation is the validation outcome of one sequence file.
type FileValidation struct {
	File       string `json:"file"`
	Name       string `json:"name,omitempty"`
	Length     int    `json:"length"`
	Admissible bool   `json:"admissible"`
	Violation  int    `json:"violation,omitempty"` // first 1-based position whose code exceeds 2k-1
	Code       int    `json:"code,omitempty"`      // code found at Violation
	Error      string `json:"error,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid        bool             `json:"valid"`
	Files        []FileValidation `json:"files"`
	Unreadable   int              `json:"unreadable"`
	Inadmissible int              `json:"inadmissible"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <files...>",
		Short: "Check sequence files for admissibility",
		Long: `Parse structural sequence files and check that every code h at
position pos satisfies 1 <= h <= 2*pos-1.

Exit codes:
  0 - Every file is admissible
  1 - One or more files are inadmissible
  2 - One or more files could not be read or parsed`,
		Args:          usageArgs(cobra.MinimumNArgs(1)),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, files []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	result := ValidationResult{Files: make([]FileValidation, 0, len(files))}
	for _, file := range files {
		formatter.VerboseLog("Validating %s", file)
		v := validateFile(file)
		switch {
		case v.Error != "":
			result.Unreadable++
		case !v.Admissible:
			result.Inadmissible++
		}
		result.Files = append(result.Files, v)
	}
	result.Valid = result.Unreadable == 0 && result.Inadmissible == 0

	if formatter.IsJSON() {
		resp := CLIResponse{Status: "ok", Data: result}
		if !result.Valid {
			resp.Status = "error"
			resp.Error = validationError(result)
		}
		if err := formatter.encode(resp); err != nil {
			return err
		}
	} else {
		outputValidateText(formatter, result)
	}

	return validationExit(result)
}

func validateFile(file string) FileValidation {
	s, err := sseq.ReadFile(file)
	if err != nil {
		return FileValidation{File: file, Error: err.Error()}
	}

	v := FileValidation{
		File:       file,
		Name:       s.Name(),
		Length:     s.Len(),
		Admissible: true,
	}
	if pos, bad := s.FirstViolation(); bad {
		v.Admissible = false
		v.Violation = pos
		v.Code = s.At(pos)
	}
	return v
}

func validationError(r ValidationResult) *CLIError {
	if r.Unreadable > 0 {
		return &CLIError{
			Code:    ErrCodeInvalidSequence,
			Message: fmt.Sprintf("%d file(s) could not be parsed", r.Unreadable),
		}
	}
	return &CLIError{
		Code:    ErrCodeInadmissible,
		Message: fmt.Sprintf("%d file(s) are not admissible", r.Inadmissible),
	}
}

// validationExit maps a result to its exit code: parse failures win over
// inadmissible files.
func validationExit(r ValidationResult) error {
	if r.Valid {
		return nil
	}
	e := validationError(r)
	if r.Unreadable > 0 {
		return NewExitError(ExitCommandError, e.Message)
	}
	return NewExitError(ExitFailure, e.Message)
}

func outputValidateText(formatter *OutputFormatter, r ValidationResult) {
	w := formatter.Writer
	for _, v := range r.Files {
		switch {
		case v.Error != "":
			fmt.Fprintf(w, "✗ %s\n  %s\n", v.File, v.Error)
		case !v.Admissible:
			fmt.Fprintf(w, "✗ %s: code %d at position %d exceeds %d\n", v.File, v.Code, v.Violation, 2*v.Violation-1)
		default:
			fmt.Fprintf(w, "✓ %s (%d codes)\n", v.File, v.Length)
		}
	}

	if r.Valid {
		fmt.Fprintln(w, "✓ All sequences admissible")
	}
}
