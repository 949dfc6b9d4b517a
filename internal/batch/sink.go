package batch

import (
	"context"

	"github.com/roach88/sernalign/internal/ir"
	"github.com/roach88/sernalign/internal/store"
)

// Sink receives the records of a run. The Runner calls a sink from a single
// goroutine: BeginRun once, then every structure in processing order, then
// every comparison in seq order, then EndRun once if the run succeeded.
type Sink interface {
	BeginRun(ctx context.Context, run ir.Run) error
	AddStructure(ctx context.Context, rec ir.StructureRecord) error
	AddComparison(ctx context.Context, rec ir.ComparisonRecord) error
	EndRun(ctx context.Context) error
}

// Cache returns distances computed by earlier runs.
// Implemented by *store.Store.
type Cache interface {
	Distance(ctx context.Context, leftID, rightID string, constraints bool) (store.CachedResult, bool, error)
}

// StoreSink persists a run into a result store.
type StoreSink struct {
	store *store.Store
	runID string
}

// NewStoreSink creates a sink writing to s.
func NewStoreSink(s *store.Store) *StoreSink {
	return &StoreSink{store: s}
}

// BeginRun implements Sink.
func (k *StoreSink) BeginRun(ctx context.Context, run ir.Run) error {
	k.runID = run.ID
	return k.store.WriteRun(ctx, run)
}

// AddStructure implements Sink.
func (k *StoreSink) AddStructure(ctx context.Context, rec ir.StructureRecord) error {
	return k.store.WriteStructure(ctx, k.runID, rec)
}

// AddComparison implements Sink.
func (k *StoreSink) AddComparison(ctx context.Context, rec ir.ComparisonRecord) error {
	return k.store.WriteComparison(ctx, rec)
}

// EndRun implements Sink.
func (k *StoreSink) EndRun(ctx context.Context) error {
	return nil
}
