package cache

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/petroerp/backend/internal/domain/sequence"
	"github.com/redis/go-redis/v9"
)

// Key layout for the allocator's Redis store. Counters and claims live under
// a common namespace so they can be inspected and expired together.
const (
	counterKeyPrefix = "seq:counter:"
	claimKeyPrefix   = "seq:claim:"
	highestKeyPrefix = "seq:highest:"
)

// highestScript advances the per-stream high-water mark only when the claimed
// sequence exceeds the stored one. Running it server-side keeps the
// read-compare-write race out of the client.
var highestScript = redis.NewScript(`
local current = tonumber(redis.call('GET', KEYS[1]) or '0')
local candidate = tonumber(ARGV[1])
if candidate > current then
	redis.call('SET', KEYS[1], candidate)
end
return current
`)

// RedisSequenceStore implements sequence.Store on Redis. INCR gives the
// tier-1 atomic primitive; SETNX on the full code gives tier-2 claims.
type RedisSequenceStore struct {
	client *redis.Client
}

// NewRedisSequenceStore creates a new RedisSequenceStore
func NewRedisSequenceStore(client *redis.Client) *RedisSequenceStore {
	return &RedisSequenceStore{client: client}
}

// EnsureCounter initialises the counter key to 0 if it does not exist
func (s *RedisSequenceStore) EnsureCounter(ctx context.Context, streamKey string) error {
	if err := s.client.SetNX(ctx, counterKeyPrefix+streamKey, 0, 0).Err(); err != nil {
		return s.classify(err)
	}
	return nil
}

// IncrementAndGet advances the counter atomically and returns the new value
func (s *RedisSequenceStore) IncrementAndGet(ctx context.Context, streamKey string) (int64, error) {
	seq, err := s.client.Incr(ctx, counterKeyPrefix+streamKey).Result()
	if err != nil {
		return 0, s.classify(err)
	}
	return seq, nil
}

// MaxIssuedSequence returns the highest sequence observed for the stream,
// whether issued through the counter or claimed directly.
func (s *RedisSequenceStore) MaxIssuedSequence(ctx context.Context, streamKey string) (int64, error) {
	counter, err := s.client.Get(ctx, counterKeyPrefix+streamKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, s.classify(err)
	}

	highest, err := s.client.Get(ctx, highestKeyPrefix+streamKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, s.classify(err)
	}

	if highest > counter {
		return highest, nil
	}
	return counter, nil
}

// ClaimCode reserves the exact code with SETNX. A lost race surfaces as a
// uniqueness conflict for the allocator to retry.
func (s *RedisSequenceStore) ClaimCode(ctx context.Context, streamKey, code string) error {
	ok, err := s.client.SetNX(ctx, claimKeyPrefix+code, streamKey, 0).Result()
	if err != nil {
		return s.classify(err)
	}
	if !ok {
		return fmt.Errorf("%w: code %s already issued", sequence.ErrUniquenessConflict, code)
	}

	if seq, perr := sequence.SequenceFromCode(code); perr == nil {
		if err := highestScript.Run(ctx, s.client, []string{highestKeyPrefix + streamKey}, seq).Err(); err != nil {
			return s.classify(err)
		}
	}
	return nil
}

func (s *RedisSequenceStore) classify(err error) error {
	if err == nil {
		return nil
	}
	var netErr net.Error
	if errors.As(err, &netErr) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, redis.ErrClosed) ||
		strings.Contains(err.Error(), "connection refused") {
		return fmt.Errorf("%w: %v", sequence.ErrStoreUnreachable, err)
	}
	return err
}

var _ sequence.Store = (*RedisSequenceStore)(nil)
