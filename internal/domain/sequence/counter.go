package sequence

import (
	"time"

	"github.com/petroerp/backend/internal/domain/shared"
)

// Counter is the persistent entity backing a single numbering stream.
// A row is created lazily on first allocation for a new stream key and is
// never deleted. CurrentSequence is non-decreasing; only the allocator's
// prescribed operations may advance it.
type Counter struct {
	shared.BaseEntity
	StreamKey       string `gorm:"type:varchar(64);not null;uniqueIndex:idx_sequence_counter_stream"`
	CurrentSequence int64  `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Counter) TableName() string {
	return "sequence_counters"
}

// IssuedCode records a reference code claimed through the optimistic-retry
// path. The unique index on Code is what makes a claim collision-detectable.
type IssuedCode struct {
	shared.BaseEntity
	StreamKey string `gorm:"type:varchar(64);not null;index"`
	Code      string `gorm:"type:varchar(64);not null;uniqueIndex:idx_sequence_issued_code"`
}

// TableName returns the table name for GORM
func (IssuedCode) TableName() string {
	return "sequence_issued_codes"
}

// StreamKey builds the counter-row key for a prefix and counter key. Streams
// are independent per prefix, so invoices and receipts issued on the same day
// never contend for or consume each other's numbers.
func StreamKey(prefix, counterKey string) string {
	return prefix + "-" + counterKey
}

// DateStamp returns the 8-digit YYYYMMDD stamp used as the daily counter key.
func DateStamp(t time.Time) string {
	return t.Format("20060102")
}

// TodayKey returns the counter key for the current date. Because the key
// changes at midnight, each day's sequence restarts at 1 without any counter
// reset.
func TodayKey() string {
	return DateStamp(time.Now())
}
