package cli

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/sernalign/internal/ir"
	"github.com/roach88/sernalign/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	RunID    string
}

// RunDetail is one run with everything it recorded.
type RunDetail struct {
	Run         ir.Run                `json:"run"`
	Structures  []ir.StructureRecord  `json:"structures"`
	Comparisons []ir.ComparisonRecord `json:"comparisons"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		Long: `List the batch runs recorded in a result database.

With --run, prints the structures and comparisons of one run in the
order they were recorded.

Examples:
  sernalign history --db ./sernalign.db
  sernalign history --db ./sernalign.db --run 0190a1b2-...
  sernalign history --db ./sernalign.db --format json`,
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite result database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "show the records of one run")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	ctx := cmd.Context()

	// Never create a database just to read it.
	if _, err := os.Stat(opts.Database); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, fmt.Sprintf("database not found: %s", opts.Database), nil)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to open database", err)
	}
	defer st.Close()

	if opts.RunID == "" {
		runs, err := st.ReadRuns(ctx)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to read runs", err)
		}
		if formatter.IsJSON() {
			return formatter.Success(runs)
		}
		return outputRunsText(formatter, runs)
	}

	run, err := st.ReadRun(ctx, opts.RunID)
	if errors.Is(err, sql.ErrNoRows) {
		return formatter.Fail(ExitCommandError, ErrCodeStore, fmt.Sprintf("run not found: %s", opts.RunID), nil)
	}
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to read run", err)
	}

	detail := RunDetail{Run: run}
	if detail.Structures, err = st.ReadStructures(ctx, run.ID); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to read structures", err)
	}
	if detail.Comparisons, err = st.ReadComparisons(ctx, run.ID); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to read comparisons", err)
	}

	if formatter.IsJSON() {
		return formatter.encode(CLIResponse{Status: "ok", Data: detail, RunID: run.ID})
	}
	return outputRunDetailText(formatter, detail)
}

func outputRunsText(formatter *OutputFormatter, runs []ir.Run) error {
	if len(runs) == 0 {
		fmt.Fprintln(formatter.Writer, "No runs recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(formatter.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tINPUT\tCONSTRAINTS\tWORKERS\tVERSION")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%t\t%d\t%s\n", r.ID, r.Input, r.Constraints, r.Workers, r.AlgorithmVersion)
	}
	return tw.Flush()
}

func outputRunDetailText(formatter *OutputFormatter, d RunDetail) error {
	w := formatter.Writer
	fmt.Fprintf(w, "Run %s\n", d.Run.ID)
	fmt.Fprintf(w, "Input: %s (constraints=%t, workers=%d)\n\n", d.Run.Input, d.Run.Constraints, d.Run.Workers)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NUM\tFILE\tCODES\tADMISSIBLE")
	for _, s := range d.Structures {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%t\n", s.Num, s.FileName, s.Length, s.Admissible)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)

	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tLEFT\tRIGHT\tDISTANCE\tVERIFIED\tALIGNMENT")
	for _, c := range d.Comparisons {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%t\t%s\n",
			c.Seq, c.Left.FileName, c.Right.FileName, c.Distance, c.Verified, strings.TrimSpace(c.Alignment))
	}
	return tw.Flush()
}
