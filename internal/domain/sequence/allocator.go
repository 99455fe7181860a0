package sequence

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Allocation tiers, in escalation order.
const (
	TierAtomic     = "atomic"
	TierOptimistic = "optimistic"
	TierFallback   = "fallback"
)

const (
	defaultMaxAttempts = 5
	defaultBackoffStep = 50 * time.Millisecond
	fallbackSuffixLen  = 4
)

// Issuer is the allocation surface consumed by application services.
// Allocator is the only production implementation.
type Issuer interface {
	AllocateNext(ctx context.Context, counterKey, prefix string) (string, error)
	PreviewNext(ctx context.Context, counterKey, prefix string) (string, error)
}

// Recorder receives allocation telemetry. Implementations must be safe for
// concurrent use.
type Recorder interface {
	RecordAllocation(ctx context.Context, tier string)
	RecordConflict(ctx context.Context)
}

type nopRecorder struct{}

func (nopRecorder) RecordAllocation(context.Context, string) {}
func (nopRecorder) RecordConflict(context.Context)           {}

// Allocator issues unique, ordered, human-readable reference codes per
// numbering stream, safe under concurrent callers sharing an out-of-process
// store. Allocation escalates through three tiers: atomic counter increment,
// optimistic read-check-retry against a uniqueness constraint, and a
// timestamp-randomized last resort that cannot collide on external state.
type Allocator struct {
	store       Store
	logger      *zap.Logger
	recorder    Recorder
	maxAttempts int
	backoffStep time.Duration

	// Injectable for tests
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
	randN func(n int) int
}

// Option configures an Allocator
type Option func(*Allocator)

// WithLogger sets the logger used for degradation warnings
func WithLogger(logger *zap.Logger) Option {
	return func(a *Allocator) { a.logger = logger }
}

// WithRecorder sets the telemetry recorder
func WithRecorder(r Recorder) Option {
	return func(a *Allocator) { a.recorder = r }
}

// WithMaxAttempts bounds the optimistic retry loop
func WithMaxAttempts(n int) Option {
	return func(a *Allocator) {
		if n > 0 {
			a.maxAttempts = n
		}
	}
}

// WithBackoffStep sets the linear backoff unit between retry attempts
func WithBackoffStep(d time.Duration) Option {
	return func(a *Allocator) {
		if d >= 0 {
			a.backoffStep = d
		}
	}
}

// NewAllocator creates an Allocator backed by the given store
func NewAllocator(store Store, opts ...Option) *Allocator {
	a := &Allocator{
		store:       store,
		logger:      zap.NewNop(),
		recorder:    nopRecorder{},
		maxAttempts: defaultMaxAttempts,
		backoffStep: defaultBackoffStep,
		now:         time.Now,
		sleep:       sleepContext,
		randN:       rand.Intn,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AllocateNext returns a reference code of the form PREFIX-COUNTERKEY-NNNN
// that has not been issued before for this stream, persisting the counter
// advance or uniqueness-checked claim that backs it. Under contention the
// issued numbers may have gaps, but never duplicates. The only error returned
// is ErrStoreUnreachable; every other failure mode degrades to the next tier.
func (a *Allocator) AllocateNext(ctx context.Context, counterKey, prefix string) (string, error) {
	if counterKey == "" {
		return "", fmt.Errorf("sequence: counter key must not be empty")
	}
	if prefix == "" {
		return "", fmt.Errorf("sequence: prefix must not be empty")
	}
	streamKey := StreamKey(prefix, counterKey)

	// Tier 1: atomic counter increment. No retry loop; atomicity eliminates
	// the race.
	code, err := a.allocateAtomic(ctx, streamKey, counterKey, prefix)
	if err == nil {
		a.recorder.RecordAllocation(ctx, TierAtomic)
		return code, nil
	}
	if errors.Is(err, ErrStoreUnreachable) {
		return "", err
	}
	a.logger.Warn("atomic sequence allocation unavailable, falling back to optimistic retry",
		zap.String("stream_key", streamKey),
		zap.Error(err),
	)

	// Tier 2: optimistic retry against the uniqueness constraint.
	code, err = a.allocateOptimistic(ctx, streamKey, counterKey, prefix)
	if err == nil {
		a.recorder.RecordAllocation(ctx, TierOptimistic)
		return code, nil
	}
	if errors.Is(err, ErrStoreUnreachable) {
		return "", err
	}
	a.logger.Warn("optimistic sequence allocation exhausted, using timestamp fallback",
		zap.String("stream_key", streamKey),
		zap.Error(err),
	)

	// Tier 3: timestamp fallback. Loses strict ordering but cannot collide on
	// external state, so it always succeeds.
	a.recorder.RecordAllocation(ctx, TierFallback)
	return a.fallbackCode(counterKey, prefix), nil
}

// PreviewNext computes the code a subsequent AllocateNext would most likely
// return, without mutating any counter. The preview is not a reservation: a
// concurrent allocation may issue the same or a different number, and the
// committed record is authoritative.
func (a *Allocator) PreviewNext(ctx context.Context, counterKey, prefix string) (string, error) {
	if counterKey == "" {
		return "", fmt.Errorf("sequence: counter key must not be empty")
	}
	if prefix == "" {
		return "", fmt.Errorf("sequence: prefix must not be empty")
	}
	last, err := a.store.MaxIssuedSequence(ctx, StreamKey(prefix, counterKey))
	if err != nil {
		if errors.Is(err, ErrStoreUnreachable) {
			return "", err
		}
		last = 0
	}
	return FormatCode(prefix, counterKey, last+1), nil
}

func (a *Allocator) allocateAtomic(ctx context.Context, streamKey, counterKey, prefix string) (string, error) {
	if err := a.store.EnsureCounter(ctx, streamKey); err != nil {
		return "", err
	}
	seq, err := a.store.IncrementAndGet(ctx, streamKey)
	if err != nil {
		return "", err
	}
	return FormatCode(prefix, counterKey, seq), nil
}

func (a *Allocator) allocateOptimistic(ctx context.Context, streamKey, counterKey, prefix string) (string, error) {
	for attempt := 0; attempt < a.maxAttempts; attempt++ {
		last, err := a.store.MaxIssuedSequence(ctx, streamKey)
		if err != nil {
			return "", err
		}

		// The attempt offset reduces the chance of re-colliding with another
		// writer that read the same stale maximum.
		candidate := FormatCode(prefix, counterKey, last+1+int64(attempt))

		err = a.store.ClaimCode(ctx, streamKey, candidate)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, ErrUniquenessConflict) {
			return "", err
		}
		a.recorder.RecordConflict(ctx)

		if err := a.sleep(ctx, a.backoffStep*time.Duration(attempt+1)); err != nil {
			return "", err
		}
	}
	return "", ErrRetryExhausted
}

// fallbackCode synthesizes a code from a base-36 timestamp plus a short
// random suffix. The prefix and counter key stay parseable; the final segment
// is intentionally alphanumeric.
func (a *Allocator) fallbackCode(counterKey, prefix string) string {
	ts := strings.ToUpper(strconv.FormatInt(a.now().UnixMilli(), 36))
	suffix := make([]byte, fallbackSuffixLen)
	const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	for i := range suffix {
		suffix[i] = alphabet[a.randN(len(alphabet))]
	}
	return fmt.Sprintf("%s-%s-%s%s", prefix, counterKey, ts, suffix)
}

var _ Issuer = (*Allocator)(nil)

// sleepContext waits for d without busy-waiting, yielding early if the
// context is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
