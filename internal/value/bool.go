package value

import (
	"strconv"
	"strings"
)

// BoolValue holds a predicate's evaluation result; it has no column
// position in the fixed TPC-C schema and is never loaded from a .tbl file,
// only produced and consumed inside a compiled query.
type BoolValue bool

func (v BoolValue) Type() Type { return Bool() }

func (v BoolValue) Hash() uint64 {
	if v {
		return xorshiftMix(1)
	}
	return xorshiftMix(0)
}

func (v BoolValue) Render() string { return strconv.FormatBool(bool(v)) }

func (v BoolValue) Compare(other Value) int {
	o := other.(BoolValue)
	switch {
	case v == o:
		return 0
	case !bool(v) && bool(o):
		return -1
	default:
		return 1
	}
}

func parseBool(text string) (Value, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "true", "t", "1":
		return BoolValue(true), nil
	case "false", "f", "0":
		return BoolValue(false), nil
	default:
		return nil, &ParseError{Type: Bool(), Text: text, Cause: "not a boolean literal"}
	}
}
