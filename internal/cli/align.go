package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/sernalign/internal/align"
)

// AlignOptions holds flags for the align command.
type AlignOptions struct {
	*RootOptions
	NoConstraints bool
	Matrix        bool
	Trace         bool
	Derivation    bool
}

// AlignResult is the output of the align command.
type AlignResult struct {
	X           []int                 `json:"x"`
	Y           []int                 `json:"y"`
	Constraints bool                  `json:"constraints"`
	Distance    int                   `json:"distance"`
	Alignment   string                `json:"alignment"`
	Operations  []align.EditOperation `json:"operations"`
	Verified    bool                  `json:"verified"`
	Matrix      string                `json:"matrix,omitempty"`
	Execution   string                `json:"execution,omitempty"`
	Derivation  string                `json:"derivation,omitempty"`
}

// NewAlignCommand creates the align command.
func NewAlignCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AlignOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "align <x> <y>",
		Short: "Align two structural sequences",
		Long: `Align two structural sequences and print the SERNA distance.

Each argument is either a sequence file or an inline code list. By
default every step of the alignment respects the admissibility
constraints; --no-constraints computes the plain edit distance.

The verification flag reports whether the optimal alignment keeps every
code admissible at its position.

Examples:
  sernalign align 1,1,3 1,3
  sernalign align a.txt b.txt --matrix --trace
  sernalign align 1 1,3 --no-constraints --derivation
  sernalign align a.txt b.txt --format json`,
		Args:          usageArgs(cobra.ExactArgs(2)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAlign(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.NoConstraints, "no-constraints", false, "compute the unconstrained edit distance")
	cmd.Flags().BoolVar(&opts.Matrix, "matrix", false, "print the cost matrix")
	cmd.Flags().BoolVar(&opts.Trace, "trace", false, "print the execution trace")
	cmd.Flags().BoolVar(&opts.Derivation, "derivation", false, "print the constraint derivation")

	return cmd
}

func runAlign(opts *AlignOptions, xArg, yArg string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	x, err := loadSequence(xArg)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidSequence, "invalid x", err)
	}
	y, err := loadSequence(yArg)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidSequence, "invalid y", err)
	}
	formatter.VerboseLog("x = %s (%d codes), y = %s (%d codes)", x, x.Len(), y, y.Len())

	constraints := !opts.NoConstraints
	a, err := align.Align(x, y, constraints)
	if errors.Is(err, align.ErrUnreachable) {
		return formatter.Fail(ExitFailure, ErrCodeUnreachable, "no admissible alignment exists", err)
	}
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "alignment failed", err)
	}

	result := AlignResult{
		X:           codesOf(x),
		Y:           codesOf(y),
		Constraints: constraints,
		Distance:    a.Distance(),
		Alignment:   a.RenderAlignment(),
		Operations:  a.Operations(),
		Verified:    a.Check(),
	}
	if opts.Matrix {
		result.Matrix = a.RenderMatrix()
	}
	if opts.Trace {
		result.Execution = a.RenderExecutionTrace()
	}
	if opts.Derivation {
		result.Derivation = a.RenderConstraintDerivation()
	}

	if formatter.IsJSON() {
		return formatter.Success(result)
	}
	return formatter.Success(formatAlignText(result))
}

// formatAlignText renders result for the text format, without a trailing newline.
func formatAlignText(r AlignResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Distance: %d\n", r.Distance)
	fmt.Fprintf(&b, "Alignment: %s\n", r.Alignment)
	fmt.Fprintf(&b, "Verified: %t", r.Verified)
	section := func(title, body string) {
		if body == "" {
			return
		}
		fmt.Fprintf(&b, "\n\n%s:\n%s", title, strings.TrimSuffix(body, "\n"))
	}
	section("Matrix", r.Matrix)
	section("Execution trace", r.Execution)
	section("Constraint derivation", r.Derivation)
	return b.String()
}
