package value

import (
	"strconv"
	"strings"
)

// TimestampValue is an opaque 64-bit timestamp: imlabdb never interprets it
// as a calendar date, only stores, compares and renders the raw integer the
// loader handed it.
type TimestampValue int64

func (v TimestampValue) Type() Type     { return Timestamp() }
func (v TimestampValue) Hash() uint64   { return xorshiftMix(uint64(v)) }
func (v TimestampValue) Render() string { return strconv.FormatInt(int64(v), 10) }

func (v TimestampValue) Compare(other Value) int {
	o := other.(TimestampValue)
	switch {
	case v < o:
		return -1
	case v > o:
		return 1
	default:
		return 0
	}
}

func parseTimestamp(text string) (Value, error) {
	trimmed := strings.TrimSpace(text)
	n, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return nil, &ParseError{Type: Timestamp(), Text: text, Cause: "not a 64-bit integer"}
	}
	return TimestampValue(n), nil
}
