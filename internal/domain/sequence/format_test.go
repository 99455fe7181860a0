package sequence

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCode(t *testing.T) {
	t.Run("pads sequence to four digits", func(t *testing.T) {
		assert.Equal(t, "INV-20260203-0001", FormatCode("INV", "20260203", 1))
		assert.Equal(t, "INV-20260203-0042", FormatCode("INV", "20260203", 42))
		assert.Equal(t, "RCP-20260203-9999", FormatCode("RCP", "20260203", 9999))
	})

	t.Run("grows wider past 9999 without overflow", func(t *testing.T) {
		assert.Equal(t, "INV-20260203-10000", FormatCode("INV", "20260203", 10000))
		assert.Equal(t, "INV-20260203-123456", FormatCode("INV", "20260203", 123456))
	})

	t.Run("matches the documented format", func(t *testing.T) {
		pattern := regexp.MustCompile(`^[A-Z]+-[0-9A-Z]+-[0-9A-Z]{4,}$`)
		for _, seq := range []int64{1, 500, 9999, 10000} {
			assert.Regexp(t, pattern, FormatCode("INV", "20260203", seq))
		}
	})
}

func TestSequenceFromCode(t *testing.T) {
	t.Run("round-trips formatted codes", func(t *testing.T) {
		for _, seq := range []int64{1, 7, 9999, 10000, 123456} {
			code := FormatCode("INV", "20260203", seq)
			parsed, err := SequenceFromCode(code)
			require.NoError(t, err)
			assert.Equal(t, seq, parsed)
		}
	})

	t.Run("rejects malformed codes", func(t *testing.T) {
		for _, code := range []string{"", "INV", "INV-", "INV-20260203-", "INV-20260203-0000"} {
			_, err := SequenceFromCode(code)
			assert.Error(t, err, "code %q", code)
		}
	})

	t.Run("rejects fallback codes with alphanumeric suffix", func(t *testing.T) {
		_, err := SequenceFromCode("INV-20260203-MC8Q1ZK7AB")
		assert.Error(t, err)
	})
}

func TestDateStamp(t *testing.T) {
	stamp := DateStamp(time.Date(2026, 2, 3, 14, 30, 0, 0, time.UTC))
	assert.Equal(t, "20260203", stamp)
	assert.Len(t, TodayKey(), 8)
}

func TestStreamKey(t *testing.T) {
	assert.Equal(t, "INV-20260203", StreamKey("INV", "20260203"))
	assert.Equal(t, "RCP-20260203", StreamKey("RCP", "20260203"))
}
