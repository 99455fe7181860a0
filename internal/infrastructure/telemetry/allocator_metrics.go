package telemetry

import (
	"context"
	"fmt"

	"github.com/petroerp/backend/internal/domain/sequence"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AttrTier labels allocations with the tier that produced the code
var AttrTier = attribute.Key("tier")

// AllocatorMetrics implements sequence.Recorder on OpenTelemetry counters.
// Fallback-tier allocations are the signal worth alerting on: they mean both
// the atomic primitive and the retry loop failed to produce a number.
type AllocatorMetrics struct {
	allocationsTotal metric.Int64Counter
	conflictsTotal   metric.Int64Counter
}

// NewAllocatorMetrics creates the allocator instruments on the given meter
func NewAllocatorMetrics(meter metric.Meter) (*AllocatorMetrics, error) {
	allocations, err := meter.Int64Counter(
		"sequence.allocations.total",
		metric.WithDescription("Reference codes issued, labeled by allocation tier"),
		metric.WithUnit("{allocation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create allocations counter: %w", err)
	}

	conflicts, err := meter.Int64Counter(
		"sequence.conflicts.total",
		metric.WithDescription("Uniqueness conflicts hit during optimistic retries"),
		metric.WithUnit("{conflict}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create conflicts counter: %w", err)
	}

	return &AllocatorMetrics{
		allocationsTotal: allocations,
		conflictsTotal:   conflicts,
	}, nil
}

// RecordAllocation implements sequence.Recorder
func (m *AllocatorMetrics) RecordAllocation(ctx context.Context, tier string) {
	m.allocationsTotal.Add(ctx, 1, metric.WithAttributes(AttrTier.String(tier)))
}

// RecordConflict implements sequence.Recorder
func (m *AllocatorMetrics) RecordConflict(ctx context.Context) {
	m.conflictsTotal.Add(ctx, 1)
}

var _ sequence.Recorder = (*AllocatorMetrics)(nil)
