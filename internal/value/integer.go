package value

import (
	"fmt"
	"strconv"
	"strings"
)

// IntegerValue is a signed 32-bit integer.
type IntegerValue int32

func (v IntegerValue) Type() Type { return Integer() }
func (v IntegerValue) Hash() uint64 {
	return xorshiftMix(uint64(uint32(v)))
}

func (v IntegerValue) Compare(other Value) int {
	o := other.(IntegerValue)
	switch {
	case v < o:
		return -1
	case v > o:
		return 1
	default:
		return 0
	}
}

func (v IntegerValue) Render() string { return strconv.FormatInt(int64(v), 10) }

func parseInteger(text string) (Value, error) {
	trimmed := strings.TrimSpace(text)
	n, err := strconv.ParseInt(trimmed, 10, 32)
	if err != nil {
		return nil, &ParseError{Type: Integer(), Text: text, Cause: fmt.Sprintf("not a 32-bit integer: %s", err)}
	}
	return IntegerValue(n), nil
}
