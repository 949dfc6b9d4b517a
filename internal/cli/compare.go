package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/sernalign/internal/batch"
	"github.com/roach88/sernalign/internal/config"
	"github.com/roach88/sernalign/internal/report"
	"github.com/roach88/sernalign/internal/store"
)

// CompareOptions holds flags for the compare command.
type CompareOptions struct {
	*RootOptions
	NoConstraints bool
	Workers       int
	JSON          bool
	Output        []string
	Database      string
	Config        string
	Metrics       string

	// RunIDGenerator allows overriding the run id generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	RunIDGenerator batch.RunIDGenerator

	// Now allows overriding the wall clock used for timings (for testing).
	Now func() time.Time
}

// CompareResult is the output of the compare command.
type CompareResult struct {
	RunID       string   `json:"run_id"`
	Input       string   `json:"input"`
	Constraints bool     `json:"constraints"`
	Workers     int      `json:"workers"`
	Structures  int      `json:"structures"`
	Comparisons int      `json:"comparisons"`
	CacheHits   int      `json:"cache_hits"`
	Unreachable int      `json:"unreachable"`
	Skipped     []string `json:"skipped"`
	Reports     []string `json:"reports"`
	Database    string   `json:"database,omitempty"`
	Metrics     string   `json:"metrics,omitempty"`
}

// NewCompareCommand creates the compare command.
func NewCompareCommand(rootOpts *RootOptions) *cobra.Command {
	return newCompareCommand(&CompareOptions{RootOptions: rootOpts})
}

func newCompareCommand(opts *CompareOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [folder]",
		Short: "Compare every pair of structures in a folder",
		Long: `Read one structural sequence per file from a folder and align every
pair of structures.

Two CSV reports are written, by default into the folder itself:
  SERNAlignProcessedStructures.csv  one row per structure read
  SERNAlignComparisonResults.csv    one row per compared pair

Hidden files, sub-folders and files that cannot be parsed are skipped
with a warning. With --db, runs are recorded in a SQLite database and
distances already computed by earlier runs are reused.

A CUE configuration file (--config) can describe the run; flags set on
the command line override its values.

Examples:
  sernalign compare ./structures
  sernalign compare ./structures --workers 8 --json
  sernalign compare ./structures -o structs.csv,pairs.csv --no-constraints
  sernalign compare ./structures --db ./sernalign.db --metrics ./sernalign.prom
  sernalign compare --config ./run.cue`,
		Args:          usageArgs(cobra.MaximumNArgs(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.NoConstraints, "no-constraints", false, "compute unconstrained edit distances")
	cmd.Flags().IntVar(&opts.Workers, "workers", batch.DefaultWorkers, "number of concurrent workers")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "also write the reports as JSON")
	cmd.Flags().StringSliceVarP(&opts.Output, "output", "o", nil, "structures and comparisons report files (file1,file2)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite result database")
	cmd.Flags().StringVar(&opts.Config, "config", "", "path to CUE run configuration")
	cmd.Flags().StringVar(&opts.Metrics, "metrics", "", "write Prometheus metrics to this textfile")

	return cmd
}

func runCompare(opts *CompareOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)

	cfg, err := resolveCompareConfig(opts, args, cmd)
	if err != nil {
		var loadErr *config.LoadError
		if errors.As(err, &loadErr) {
			return formatter.Fail(ExitCommandError, loadErr.Code, "invalid configuration", err)
		}
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}

	if info, err := os.Stat(cfg.Input); err != nil || !info.IsDir() {
		be := batch.NewInputNotDirError(cfg.Input, err)
		return formatter.Fail(ExitCommandError, ErrCodeBatch, be.Error(), be)
	}

	paths := report.DefaultPaths(cfg.Input)
	if cfg.Outputs != nil {
		paths = report.CustomPaths(cfg.Outputs.Structures, cfg.Outputs.Comparisons)
	}
	reportFiles := paths.All()[:2]
	if cfg.JSON {
		reportFiles = paths.All()
	}

	exclude := paths.All()
	var storeOpts []batch.Option

	// The store opens first so a bad --db path fails before any report is
	// staged.
	if cfg.DB != "" {
		logger.Info("opening database", "path", cfg.DB)
		st, err := store.Open(cfg.DB)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to open database", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				logger.Error("error closing database", "error", closeErr)
			}
		}()
		storeOpts = append(storeOpts, batch.WithSinks(batch.NewStoreSink(st)), batch.WithCache(st))
		exclude = append(exclude, cfg.DB, cfg.DB+"-wal", cfg.DB+"-shm", cfg.DB+"-journal")
	}

	files, err := report.Create(paths, cfg.JSON)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "failed to create reports", err)
	}
	defer func() {
		if closeErr := files.Close(); closeErr != nil {
			logger.Error("error discarding reports", "error", closeErr)
		}
	}()
	exclude = append(exclude, files.Staged()...)
	runnerOpts := []batch.Option{
		batch.WithLogger(logger),
		batch.WithSinks(files),
	}
	runnerOpts = append(runnerOpts, storeOpts...)

	var metrics *batch.Metrics
	if cfg.Metrics != "" {
		metrics = batch.NewMetrics()
		runnerOpts = append(runnerOpts, batch.WithMetrics(metrics))
		exclude = append(exclude, cfg.Metrics)
	}
	if opts.RunIDGenerator != nil {
		runnerOpts = append(runnerOpts, batch.WithRunIDGenerator(opts.RunIDGenerator))
	}
	if opts.Now != nil {
		runnerOpts = append(runnerOpts, batch.WithNow(opts.Now))
	}

	runner := batch.New(batch.Config{
		Input:       cfg.Input,
		Constraints: cfg.Constraints,
		Workers:     cfg.Workers,
		Exclude:     exclude,
	}, runnerOpts...)

	// Setup signal handling for graceful shutdown
	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan) // Prevent signal handler leak

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("received signal, stopping run", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	summary, runErr := runner.Run(ctx)

	if metrics != nil {
		if err := metrics.WriteTextfile(cfg.Metrics); err != nil {
			logger.Error("failed to write metrics", "path", cfg.Metrics, "error", err)
		}
	}

	if runErr != nil {
		var be *batch.BatchError
		switch {
		case errors.As(runErr, &be):
			return formatter.Fail(ExitCommandError, ErrCodeBatch, be.Error(), runErr)
		case errors.Is(runErr, context.Canceled):
			return formatter.Fail(ExitFailure, ErrCodeBatch, "run interrupted", runErr)
		default:
			return formatter.Fail(ExitFailure, ErrCodeBatch, "run failed", runErr)
		}
	}

	if err := files.Commit(); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "failed to write reports", err)
	}

	skipped := summary.Skipped
	if skipped == nil {
		skipped = []string{}
	}
	result := CompareResult{
		RunID:       summary.Run.ID,
		Input:       summary.Run.Input,
		Constraints: summary.Run.Constraints,
		Workers:     summary.Run.Workers,
		Structures:  summary.Structures,
		Comparisons: summary.Comparisons,
		CacheHits:   summary.CacheHits,
		Unreachable: summary.Unreachable,
		Skipped:     skipped,
		Reports:     reportFiles,
		Database:    cfg.DB,
		Metrics:     cfg.Metrics,
	}

	if formatter.IsJSON() {
		return formatter.encode(CLIResponse{Status: "ok", Data: result, RunID: result.RunID})
	}
	return formatter.Success(formatCompareText(result))
}

// resolveCompareConfig merges the configuration file, the folder argument
// and the flags set on the command line, in increasing precedence.
func resolveCompareConfig(opts *CompareOptions, args []string, cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	switch {
	case opts.Config != "":
		loaded, err := config.Load(opts.Config)
		if err != nil {
			return config.Config{}, err
		}
		cfg = *loaded
		if len(args) == 1 {
			cfg.Input = args[0]
		}
	case len(args) == 1:
		cfg = config.Default(args[0])
	default:
		return config.Config{}, fmt.Errorf("an input folder or --config is required")
	}

	flags := cmd.Flags()
	if flags.Changed("no-constraints") {
		cfg.Constraints = !opts.NoConstraints
	}
	if flags.Changed("workers") {
		cfg.Workers = opts.Workers
	}
	if flags.Changed("json") {
		cfg.JSON = opts.JSON
	}
	if flags.Changed("db") {
		cfg.DB = opts.Database
	}
	if flags.Changed("metrics") {
		cfg.Metrics = opts.Metrics
	}
	if flags.Changed("output") {
		if len(opts.Output) != 2 {
			return config.Config{}, fmt.Errorf("--output takes two files (structures,comparisons), got %d", len(opts.Output))
		}
		cfg.Outputs = &config.Outputs{Structures: opts.Output[0], Comparisons: opts.Output[1]}
	}

	if cfg.Workers < 1 {
		return config.Config{}, fmt.Errorf("--workers must be at least 1, got %d", cfg.Workers)
	}
	return cfg, nil
}

// formatCompareText renders result for the text format, without a trailing newline.
func formatCompareText(r CompareResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run %s\n", r.RunID)
	fmt.Fprintf(&b, "Compared %d structures: %d comparisons (%d cached, %d unreachable)",
		r.Structures, r.Comparisons, r.CacheHits, r.Unreachable)
	if len(r.Skipped) > 0 {
		fmt.Fprintf(&b, "\nSkipped: %s", strings.Join(r.Skipped, ", "))
	}
	for _, p := range r.Reports {
		fmt.Fprintf(&b, "\nReport: %s", p)
	}
	if r.Database != "" {
		fmt.Fprintf(&b, "\nDatabase: %s", r.Database)
	}
	if r.Metrics != "" {
		fmt.Fprintf(&b, "\nMetrics: %s", r.Metrics)
	}
	return b.String()
}
