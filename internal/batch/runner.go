package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/roach88/sernalign/internal/align"
	"github.com/roach88/sernalign/internal/ir"
	"github.com/roach88/sernalign/internal/sseq"
)

// DefaultWorkers is the worker count used when Config.Workers is unset.
const DefaultWorkers = 1

// Config controls a batch comparison.
type Config struct {
	Input       string   // folder holding one sequence file per structure
	Constraints bool     // apply admissibility constraints in every DP cell
	Workers     int      // number of worker goroutines (>=1)
	Exclude     []string // paths never read as input, e.g. the report files
}

// Summary describes a finished run.
type Summary struct {
	Run         ir.Run
	Structures  int
	Comparisons int
	CacheHits   int
	Unreachable int      // pairs with no admissible alignment
	Skipped     []string // names of skipped folder entries, in listing order
}

// Runner compares every pair of structures in a folder.
//
// Thread-safety model:
//   - Run(): must not be called concurrently on the same Runner
//   - Sinks are only ever called from the collector goroutine
type Runner struct {
	cfg     Config
	logger  *slog.Logger
	clock   SeqClock
	ids     RunIDGenerator
	metrics *Metrics
	cache   Cache
	sinks   []Sink
	now     func() time.Time
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger for warnings and progress. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// WithClock sets the logical clock stamping comparisons.
func WithClock(c SeqClock) Option {
	return func(r *Runner) {
		r.clock = c
	}
}

// WithRunIDGenerator sets the run id generator. Default: UUIDv7Generator.
func WithRunIDGenerator(g RunIDGenerator) Option {
	return func(r *Runner) {
		r.ids = g
	}
}

// WithMetrics enables Prometheus metrics.
func WithMetrics(m *Metrics) Option {
	return func(r *Runner) {
		r.metrics = m
	}
}

// WithCache enables reuse of distances computed by earlier runs.
func WithCache(c Cache) Option {
	return func(r *Runner) {
		r.cache = c
	}
}

// WithSinks adds sinks receiving the run's records, called in the given order.
func WithSinks(sinks ...Sink) Option {
	return func(r *Runner) {
		r.sinks = append(r.sinks, sinks...)
	}
}

// WithNow replaces the wall clock used for build and alignment timings.
func WithNow(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

// New creates a Runner for cfg.
func New(cfg Config, opts ...Option) *Runner {
	if cfg.Workers < 1 {
		cfg.Workers = DefaultWorkers
	}

	r := &Runner{
		cfg:    cfg,
		logger: slog.Default(),
		clock:  NewClock(),
		ids:    UUIDv7Generator{},
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// structure is a sequence read from the input folder.
type structure struct {
	rec ir.StructureRecord
	seq *sseq.Sequence
}

// Run reads the input folder, compares every pair and delivers the records
// to the sinks. It returns ctx.Err() if the context is cancelled.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	paths, skipped, err := r.listInputs()
	if err != nil {
		return Summary{}, err
	}

	structures, unreadable := r.readStructures(paths)
	skipped = append(skipped, unreadable...)
	if len(structures) == 0 {
		return Summary{Skipped: skipped}, NewNoStructuresError(r.cfg.Input, len(skipped))
	}

	run := ir.Run{
		ID:               r.ids.Generate(),
		Input:            r.cfg.Input,
		Constraints:      r.cfg.Constraints,
		Workers:          r.cfg.Workers,
		AlgorithmVersion: ir.AlgorithmVersion,
	}
	summary := Summary{
		Run:        run,
		Structures: len(structures),
		Skipped:    skipped,
	}

	r.logger.Info("batch run started",
		"run_id", run.ID,
		"input", run.Input,
		"structures", len(structures),
		"constraints", run.Constraints,
		"workers", run.Workers,
	)

	for _, sink := range r.sinks {
		if err := sink.BeginRun(ctx, run); err != nil {
			return summary, fmt.Errorf("begin run: %w", err)
		}
	}
	for _, st := range structures {
		for _, sink := range r.sinks {
			if err := sink.AddStructure(ctx, st.rec); err != nil {
				return summary, fmt.Errorf("structure %s: %w", st.rec.FileName, err)
			}
		}
	}

	if err := r.compareAll(ctx, run, structures, &summary); err != nil {
		return summary, err
	}

	for _, sink := range r.sinks {
		if err := sink.EndRun(ctx); err != nil {
			return summary, fmt.Errorf("end run: %w", err)
		}
	}

	r.logger.Info("batch run finished",
		"run_id", run.ID,
		"comparisons", summary.Comparisons,
		"cache_hits", summary.CacheHits,
		"unreachable", summary.Unreachable,
		"skipped", len(summary.Skipped),
	)
	return summary, nil
}

// listInputs returns the readable candidate files, sorted by name, and the
// names of the entries skipped on the way.
func (r *Runner) listInputs() ([]string, []string, error) {
	info, err := os.Stat(r.cfg.Input)
	if err != nil {
		return nil, nil, NewInputNotDirError(r.cfg.Input, err)
	}
	if !info.IsDir() {
		return nil, nil, NewInputNotDirError(r.cfg.Input, nil)
	}

	// os.ReadDir returns entries sorted by filename.
	entries, err := os.ReadDir(r.cfg.Input)
	if err != nil {
		return nil, nil, fmt.Errorf("list input folder: %w", err)
	}

	excluded := make(map[string]bool, len(r.cfg.Exclude))
	for _, p := range r.cfg.Exclude {
		if abs, err := filepath.Abs(p); err == nil {
			excluded[abs] = true
		}
	}

	var paths, skipped []string
	for _, e := range entries {
		name := e.Name()
		path := filepath.Join(r.cfg.Input, name)

		if abs, err := filepath.Abs(path); err == nil && excluded[abs] {
			r.logger.Debug("ignoring output file", "name", name)
			continue
		}

		reason := ""
		switch {
		case e.IsDir():
			reason = reasonDirectory
			r.logger.Warn("skipping subfolder", "name", name)
		case strings.HasPrefix(name, "."):
			reason = reasonHidden
			r.logger.Warn("skipping hidden file", "name", name)
		default:
			// Follow symlinks; only regular files hold sequences.
			fi, err := os.Stat(path)
			if err != nil || !fi.Mode().IsRegular() {
				reason = reasonIrregular
				r.logger.Warn("skipping non-regular file", "name", name)
			}
		}

		if reason != "" {
			r.metrics.observeSkip(reason)
			skipped = append(skipped, name)
			continue
		}
		paths = append(paths, path)
	}
	return paths, skipped, nil
}

// readStructures reads every path in order. Unreadable files are skipped
// with a warning and never take part in a pair.
func (r *Runner) readStructures(paths []string) ([]structure, []string) {
	var (
		out     []structure
		skipped []string
	)
	for _, path := range paths {
		name := filepath.Base(path)

		start := r.now()
		seq, err := sseq.ReadFile(path)
		elapsed := r.now().Sub(start)
		if err == nil {
			var id string
			id, err = ir.StructureID(seq.Codes())
			if err == nil {
				out = append(out, structure{
					rec: ir.StructureRecord{
						ID:         id,
						Num:        len(out) + 1,
						FileName:   name,
						Length:     seq.Len(),
						Admissible: seq.Admissible(),
						BuildNanos: elapsed.Nanoseconds(),
					},
					seq: seq,
				})
				continue
			}
		}

		r.logger.Warn("skipping file", "name", name, "error", NewParseError(path, err))
		r.metrics.observeSkip(reasonParse)
		skipped = append(skipped, name)
	}
	return out, skipped
}

// task is one unordered pair; idx is its position in (i, j) order.
type task struct {
	idx         int
	left, right *structure
}

// outcome is a worker's result for one task.
type outcome struct {
	idx    int
	rec    ir.ComparisonRecord
	cached bool
	err    error
}

// compareAll runs every pair through the worker pool and delivers the
// results in (i, j) order.
func (r *Runner) compareAll(ctx context.Context, run ir.Run, structures []structure, summary *Summary) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := r.cfg.Workers
	tasks := make(chan task, workers*2)
	results := make(chan outcome, workers*2)

	// Workers
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case t, ok := <-tasks:
					if !ok {
						return
					}
					o := r.compare(ctx, run, t)
					select {
					case results <- o:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector: buffers out-of-order results until their turn comes.
	var (
		cerr error
		cwg  sync.WaitGroup
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		pending := make(map[int]outcome)
		next := 0
		for o := range results {
			pending[o.idx] = o
			for {
				p, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				next++
				if cerr != nil {
					continue
				}
				if err := r.deliver(ctx, p, summary); err != nil {
					cerr = err
					cancel()
				}
			}
		}
	}()

	// Feed work
	idx := 0
feed:
	for i := range structures {
		for j := i + 1; j < len(structures); j++ {
			select {
			case <-ctx.Done():
				break feed
			case tasks <- task{idx: idx, left: &structures[i], right: &structures[j]}:
			}
			idx++
		}
	}

	close(tasks)
	wg.Wait()
	close(results)
	cwg.Wait()

	if cerr != nil {
		return cerr
	}
	return ctx.Err()
}

// compare aligns one pair, or reuses a cached distance.
func (r *Runner) compare(ctx context.Context, run ir.Run, t task) outcome {
	left, right := t.left.rec, t.right.rec
	o := outcome{
		idx: t.idx,
		rec: ir.ComparisonRecord{
			RunID:       run.ID,
			Left:        left,
			Right:       right,
			MaxLength:   max(left.Length, right.Length),
			Constraints: run.Constraints,
		},
	}

	id, err := ir.ComparisonID(left.ID, right.ID, run.Constraints)
	if err != nil {
		o.err = err
		return o
	}
	o.rec.ID = id

	if r.cache != nil {
		res, ok, err := r.cache.Distance(ctx, left.ID, right.ID, run.Constraints)
		if err != nil {
			o.err = fmt.Errorf("cache lookup %s: %w", id, err)
			return o
		}
		if ok {
			o.rec.Distance = res.Distance
			o.rec.Verified = res.Verified
			o.rec.Alignment = res.Alignment
			o.cached = true
			r.metrics.observeComparison(sourceCached, 0, 0)
			return o
		}
	}

	start := r.now()
	a, err := align.Align(t.left.seq, t.right.seq, run.Constraints)
	elapsed := r.now().Sub(start)
	if err != nil {
		o.err = err
		return o
	}

	o.rec.Distance = a.Distance()
	o.rec.Verified = a.Check()
	o.rec.Alignment = a.RenderAlignment()
	o.rec.Nanos = elapsed.Nanoseconds()
	r.metrics.observeComparison(sourceComputed, (left.Length+1)*(right.Length+1), elapsed.Seconds())
	return o
}

// deliver stamps a result with the next seq and hands it to every sink.
// Runs on the collector goroutine only.
func (r *Runner) deliver(ctx context.Context, o outcome, summary *Summary) error {
	if o.err != nil {
		if errors.Is(o.err, align.ErrUnreachable) {
			r.logger.Warn("no admissible alignment",
				"left", o.rec.Left.FileName,
				"right", o.rec.Right.FileName,
			)
			r.metrics.observeUnreachable()
			summary.Unreachable++
			return nil
		}
		return fmt.Errorf("compare %s with %s: %w", o.rec.Left.FileName, o.rec.Right.FileName, o.err)
	}

	o.rec.Seq = r.clock.Next()
	for _, sink := range r.sinks {
		if err := sink.AddComparison(ctx, o.rec); err != nil {
			return fmt.Errorf("comparison seq=%d: %w", o.rec.Seq, err)
		}
	}

	summary.Comparisons++
	if o.cached {
		summary.CacheHits++
	}
	r.logger.Debug("comparison delivered",
		"seq", o.rec.Seq,
		"left", o.rec.Left.FileName,
		"right", o.rec.Right.FileName,
		"distance", o.rec.Distance,
		"cached", o.cached,
	)
	return nil
}
