package persistence

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/petroerp/backend/internal/domain/sequence"
	"github.com/petroerp/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSequenceStore implements sequence.Store on a relational database.
// Tier-1 atomicity comes from a single UPDATE ... RETURNING statement;
// tier-2 claims lean on the unique index over issued codes.
type GormSequenceStore struct {
	db *gorm.DB
}

// NewGormSequenceStore creates a new GormSequenceStore
func NewGormSequenceStore(db *gorm.DB) *GormSequenceStore {
	return &GormSequenceStore{db: db}
}

// EnsureCounter creates the counter row with value 0 if absent. The insert
// ignores conflicts on the stream key, making it safe to call concurrently.
func (s *GormSequenceStore) EnsureCounter(ctx context.Context, streamKey string) error {
	counter := sequence.Counter{
		BaseEntity:      shared.NewBaseEntity(),
		StreamKey:       streamKey,
		CurrentSequence: 0,
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "stream_key"}},
			DoNothing: true,
		}).
		Create(&counter).Error
	if err != nil {
		return s.classify(err)
	}
	return nil
}

// IncrementAndGet advances the counter in one indivisible statement and
// returns the post-increment value.
func (s *GormSequenceStore) IncrementAndGet(ctx context.Context, streamKey string) (int64, error) {
	switch s.db.Dialector.Name() {
	case "postgres", "sqlite":
		// RETURNING is available
	default:
		return 0, sequence.ErrPrimitiveUnavailable
	}

	var seq int64
	result := s.db.WithContext(ctx).Raw(
		`UPDATE sequence_counters
		 SET current_sequence = current_sequence + 1, updated_at = ?
		 WHERE stream_key = ?
		 RETURNING current_sequence`,
		time.Now(), streamKey,
	).Scan(&seq)
	if result.Error != nil {
		return 0, s.classify(result.Error)
	}
	if result.RowsAffected == 0 {
		// Counter row missing despite EnsureCounter; let the allocator degrade
		return 0, fmt.Errorf("%w: counter row for %q not found", sequence.ErrPrimitiveUnavailable, streamKey)
	}
	return seq, nil
}

// MaxIssuedSequence returns the highest sequence observed for the stream
// across the counter row and claimed codes.
func (s *GormSequenceStore) MaxIssuedSequence(ctx context.Context, streamKey string) (int64, error) {
	var counterSeq int64
	err := s.db.WithContext(ctx).
		Model(&sequence.Counter{}).
		Where("stream_key = ?", streamKey).
		Limit(1).
		Pluck("current_sequence", &counterSeq).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, s.classify(err)
	}

	var lastCode string
	err = s.db.WithContext(ctx).
		Model(&sequence.IssuedCode{}).
		Where("stream_key = ?", streamKey).
		Order("code DESC").
		Limit(1).
		Pluck("code", &lastCode).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, s.classify(err)
	}

	max := counterSeq
	if lastCode != "" {
		if seq, perr := sequence.SequenceFromCode(lastCode); perr == nil && seq > max {
			max = seq
		}
	}
	return max, nil
}

// ClaimCode inserts the candidate into the issued-codes table, relying on its
// unique index to detect collisions.
func (s *GormSequenceStore) ClaimCode(ctx context.Context, streamKey, code string) error {
	issued := sequence.IssuedCode{
		BaseEntity: shared.NewBaseEntity(),
		StreamKey:  streamKey,
		Code:       code,
	}

	if err := s.db.WithContext(ctx).Create(&issued).Error; err != nil {
		return s.classify(err)
	}
	return nil
}

// classify maps driver-level errors onto the allocator's error taxonomy
func (s *GormSequenceStore) classify(err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %v", sequence.ErrUniquenessConflict, err)
	}
	if isUnreachable(err) {
		return fmt.Errorf("%w: %v", sequence.ErrStoreUnreachable, err)
	}
	return err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	// SQLite does not expose a typed error through the gorm driver
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isUnreachable(err error) bool {
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	msg := err.Error()
	for _, probe := range []string{
		"connection refused",
		"connection reset",
		"broken pipe",
		"no such host",
		"i/o timeout",
		"database is closed",
		"sql: database is closed",
	} {
		if strings.Contains(msg, probe) {
			return true
		}
	}
	return false
}

var _ sequence.Store = (*GormSequenceStore)(nil)
