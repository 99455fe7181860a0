package sequence

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatCode builds a reference code of the form PREFIX-COUNTERKEY-NNNN.
// The sequence is zero-padded to 4 digits and simply grows wider past 9999.
func FormatCode(prefix, counterKey string, seq int64) string {
	return fmt.Sprintf("%s-%s-%04d", prefix, counterKey, seq)
}

// SequenceFromCode extracts the numeric sequence from a previously issued
// reference code by parsing the final dash-separated segment. Codes produced
// by the timestamp fallback carry an alphanumeric suffix and do not parse.
func SequenceFromCode(code string) (int64, error) {
	idx := strings.LastIndex(code, "-")
	if idx < 0 || idx == len(code)-1 {
		return 0, fmt.Errorf("malformed reference code %q", code)
	}
	seq, err := strconv.ParseInt(code[idx+1:], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("non-numeric sequence in reference code %q: %w", code, err)
	}
	if seq <= 0 {
		return 0, fmt.Errorf("non-positive sequence in reference code %q", code)
	}
	return seq, nil
}
