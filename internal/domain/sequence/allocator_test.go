package sequence

import (
	"context"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory Store with injectable failure modes
type fakeStore struct {
	mu       sync.Mutex
	counters map[string]int64
	claimed  map[string]string // code -> stream key

	atomicUnsupported bool
	unreachable       bool
	rejectClaims      int // reject this many claims before accepting
	claimAttempts     []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		counters: make(map[string]int64),
		claimed:  make(map[string]string),
	}
}

func (s *fakeStore) EnsureCounter(ctx context.Context, streamKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unreachable {
		return ErrStoreUnreachable
	}
	if _, ok := s.counters[streamKey]; !ok {
		s.counters[streamKey] = 0
	}
	return nil
}

func (s *fakeStore) IncrementAndGet(ctx context.Context, streamKey string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unreachable {
		return 0, ErrStoreUnreachable
	}
	if s.atomicUnsupported {
		return 0, ErrPrimitiveUnavailable
	}
	s.counters[streamKey]++
	return s.counters[streamKey], nil
}

func (s *fakeStore) MaxIssuedSequence(ctx context.Context, streamKey string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unreachable {
		return 0, ErrStoreUnreachable
	}
	max := s.counters[streamKey]
	for code, key := range s.claimed {
		if key != streamKey {
			continue
		}
		if seq, err := SequenceFromCode(code); err == nil && seq > max {
			max = seq
		}
	}
	return max, nil
}

func (s *fakeStore) ClaimCode(ctx context.Context, streamKey, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unreachable {
		return ErrStoreUnreachable
	}
	s.claimAttempts = append(s.claimAttempts, code)
	if s.rejectClaims > 0 {
		s.rejectClaims--
		return ErrUniquenessConflict
	}
	if _, taken := s.claimed[code]; taken {
		return ErrUniquenessConflict
	}
	s.claimed[code] = streamKey
	return nil
}

func newTestAllocator(store Store, opts ...Option) *Allocator {
	a := NewAllocator(store, opts...)
	a.sleep = func(ctx context.Context, d time.Duration) error { return nil }
	return a
}

func TestAllocateNextAtomic(t *testing.T) {
	ctx := context.Background()

	t.Run("first allocation for a new key starts at 0001", func(t *testing.T) {
		a := newTestAllocator(newFakeStore())
		code, err := a.AllocateNext(ctx, "20260203", "INV")
		require.NoError(t, err)
		assert.Equal(t, "INV-20260203-0001", code)

		code, err = a.AllocateNext(ctx, "20260203", "INV")
		require.NoError(t, err)
		assert.Equal(t, "INV-20260203-0002", code)
	})

	t.Run("sequential calls increase by exactly one", func(t *testing.T) {
		a := newTestAllocator(newFakeStore())
		var prev int64
		for i := 0; i < 20; i++ {
			code, err := a.AllocateNext(ctx, "20260203", "INV")
			require.NoError(t, err)
			seq, err := SequenceFromCode(code)
			require.NoError(t, err)
			assert.Equal(t, prev+1, seq)
			prev = seq
		}
	})

	t.Run("prefixes maintain independent streams", func(t *testing.T) {
		a := newTestAllocator(newFakeStore())
		inv, err := a.AllocateNext(ctx, "20260203", "INV")
		require.NoError(t, err)
		rcp, err := a.AllocateNext(ctx, "20260203", "RCP")
		require.NoError(t, err)
		assert.Equal(t, "INV-20260203-0001", inv)
		assert.Equal(t, "RCP-20260203-0001", rcp)
	})

	t.Run("day boundary restarts the visible sequence", func(t *testing.T) {
		a := newTestAllocator(newFakeStore())
		_, err := a.AllocateNext(ctx, "20260203", "INV")
		require.NoError(t, err)

		code, err := a.AllocateNext(ctx, "20260204", "INV")
		require.NoError(t, err)
		assert.Equal(t, "INV-20260204-0001", code)
	})

	t.Run("rejects empty inputs", func(t *testing.T) {
		a := newTestAllocator(newFakeStore())
		_, err := a.AllocateNext(ctx, "", "INV")
		assert.Error(t, err)
		_, err = a.AllocateNext(ctx, "20260203", "")
		assert.Error(t, err)
	})
}

func TestAllocateNextOptimisticRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("falls back to optimistic retry when atomic increment is unsupported", func(t *testing.T) {
		store := newFakeStore()
		store.atomicUnsupported = true
		a := newTestAllocator(store)

		code, err := a.AllocateNext(ctx, "20260203", "INV")
		require.NoError(t, err)
		assert.Equal(t, "INV-20260203-0001", code)

		code, err = a.AllocateNext(ctx, "20260203", "INV")
		require.NoError(t, err)
		assert.Equal(t, "INV-20260203-0002", code)
	})

	t.Run("resolves collisions with increasing offsets and backoff", func(t *testing.T) {
		store := newFakeStore()
		store.atomicUnsupported = true
		store.rejectClaims = 3

		var delays []time.Duration
		a := NewAllocator(store)
		a.sleep = func(ctx context.Context, d time.Duration) error {
			delays = append(delays, d)
			return nil
		}

		code, err := a.AllocateNext(ctx, "20260203", "INV")
		require.NoError(t, err)

		// Rejected candidates consume offsets 1..3; the fourth attempt wins.
		require.Len(t, store.claimAttempts, 4)
		assert.Equal(t, "INV-20260203-0001", store.claimAttempts[0])
		assert.Equal(t, "INV-20260203-0002", store.claimAttempts[1])
		assert.Equal(t, "INV-20260203-0003", store.claimAttempts[2])
		assert.Equal(t, store.claimAttempts[3], code)

		require.Len(t, delays, 3)
		for i := 1; i < len(delays); i++ {
			assert.Greater(t, delays[i], delays[i-1])
		}
	})

	t.Run("stops looping on first committed candidate", func(t *testing.T) {
		store := newFakeStore()
		store.atomicUnsupported = true
		a := newTestAllocator(store)

		_, err := a.AllocateNext(ctx, "20260203", "INV")
		require.NoError(t, err)
		assert.Len(t, store.claimAttempts, 1)
	})
}

func TestAllocateNextTimestampFallback(t *testing.T) {
	ctx := context.Background()

	t.Run("exhausted retries degrade to a well-formed timestamp code", func(t *testing.T) {
		store := newFakeStore()
		store.atomicUnsupported = true
		store.rejectClaims = 1 << 20 // never accept
		a := newTestAllocator(store)

		code, err := a.AllocateNext(ctx, "20260203", "INV")
		require.NoError(t, err)
		assert.Len(t, store.claimAttempts, defaultMaxAttempts)

		assert.Regexp(t, regexp.MustCompile(`^INV-20260203-[0-9A-Z]{4,}$`), code)
		_, err = SequenceFromCode(code)
		assert.Error(t, err, "fallback suffix is intentionally non-numeric")
	})

	t.Run("fallback codes are unpredictable across calls", func(t *testing.T) {
		store := newFakeStore()
		store.atomicUnsupported = true
		store.rejectClaims = 1 << 20
		a := newTestAllocator(store, WithMaxAttempts(1))

		seen := make(map[string]bool)
		for i := 0; i < 10; i++ {
			code, err := a.AllocateNext(ctx, "20260203", "INV")
			require.NoError(t, err)
			assert.False(t, seen[code], "duplicate fallback code %s", code)
			seen[code] = true
		}
	})
}

func TestAllocateNextStoreUnreachable(t *testing.T) {
	ctx := context.Background()

	store := newFakeStore()
	store.unreachable = true
	a := newTestAllocator(store)

	_, err := a.AllocateNext(ctx, "20260203", "INV")
	require.ErrorIs(t, err, ErrStoreUnreachable)
}

func TestPreviewNext(t *testing.T) {
	ctx := context.Background()

	t.Run("preview is stable without intervening allocations", func(t *testing.T) {
		a := newTestAllocator(newFakeStore())
		first, err := a.PreviewNext(ctx, "20260203", "INV")
		require.NoError(t, err)
		second, err := a.PreviewNext(ctx, "20260203", "INV")
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, "INV-20260203-0001", first)
	})

	t.Run("preview does not reserve the number", func(t *testing.T) {
		a := newTestAllocator(newFakeStore())
		preview, err := a.PreviewNext(ctx, "20260203", "INV")
		require.NoError(t, err)

		// A concurrent caller takes the previewed slot.
		taken, err := a.AllocateNext(ctx, "20260203", "INV")
		require.NoError(t, err)
		assert.Equal(t, preview, taken)

		next, err := a.AllocateNext(ctx, "20260203", "INV")
		require.NoError(t, err)
		assert.NotEqual(t, preview, next)
	})

	t.Run("preview surfaces unreachable store", func(t *testing.T) {
		store := newFakeStore()
		store.unreachable = true
		a := newTestAllocator(store)
		_, err := a.PreviewNext(ctx, "20260203", "INV")
		require.ErrorIs(t, err, ErrStoreUnreachable)
	})
}

func TestAllocateNextConcurrentUniqueness(t *testing.T) {
	ctx := context.Background()
	const workers = 50

	run := func(t *testing.T, store *fakeStore) {
		a := newTestAllocator(store)
		codes := make(chan string, workers)
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				code, err := a.AllocateNext(ctx, "20260203", "INV")
				assert.NoError(t, err)
				codes <- code
			}()
		}
		wg.Wait()
		close(codes)

		seen := make(map[string]bool)
		for code := range codes {
			assert.False(t, seen[code], "duplicate code %s", code)
			seen[code] = true
		}
		assert.Len(t, seen, workers)
	}

	t.Run("atomic tier", func(t *testing.T) {
		run(t, newFakeStore())
	})

	t.Run("optimistic tier", func(t *testing.T) {
		store := newFakeStore()
		store.atomicUnsupported = true
		run(t, store)
	})
}
