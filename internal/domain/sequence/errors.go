package sequence

import "errors"

// Allocation errors. Only ErrStoreUnreachable ever crosses the allocator
// boundary; the others are signals exchanged between the store and the
// allocation tiers.
var (
	// ErrPrimitiveUnavailable indicates the store cannot perform an atomic
	// increment. The allocator falls back to optimistic retry.
	ErrPrimitiveUnavailable = errors.New("sequence: atomic increment not supported by store")

	// ErrUniquenessConflict indicates a candidate reference code is already
	// claimed. Expected during contention; triggers a retry with a new offset.
	ErrUniquenessConflict = errors.New("sequence: reference code already claimed")

	// ErrRetryExhausted indicates the optimistic retry loop ran out of
	// attempts. Triggers the timestamp fallback.
	ErrRetryExhausted = errors.New("sequence: optimistic retry attempts exhausted")

	// ErrStoreUnreachable indicates total connectivity failure. Callers must
	// not create the dependent record when allocation fails with this error.
	ErrStoreUnreachable = errors.New("sequence: store unreachable")
)
