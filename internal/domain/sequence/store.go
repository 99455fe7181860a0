package sequence

import "context"

// Store abstracts the record-store primitives the allocator coordinates
// through. All coordination happens in the external store: either a genuinely
// atomic increment, or a uniqueness constraint used as a CAS substitute.
// There is no in-process lock that could serialize callers, since callers may
// be on different machines entirely.
type Store interface {
	// EnsureCounter creates the counter row for the stream with value 0 if it
	// does not exist yet. Must be idempotent (insert-or-ignore semantics).
	EnsureCounter(ctx context.Context, streamKey string) error

	// IncrementAndGet atomically increments the stream's counter and returns
	// the post-increment value. Implementations that cannot do this in a
	// single indivisible store operation return ErrPrimitiveUnavailable.
	IncrementAndGet(ctx context.Context, streamKey string) (int64, error)

	// MaxIssuedSequence returns the highest sequence number observed for the
	// stream across the counter row and previously claimed codes, or 0 when
	// nothing has been issued. Used only by the optimistic-retry tier.
	MaxIssuedSequence(ctx context.Context, streamKey string) (int64, error)

	// ClaimCode commits a candidate reference code against the stream's
	// uniqueness constraint. Returns ErrUniquenessConflict when the code is
	// already taken.
	ClaimCode(ctx context.Context, streamKey, code string) error
}
