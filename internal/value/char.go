package value

import "strings"

// CharValue is a fixed-length Char<N>: Data is always exactly N bytes,
// right-padded with spaces.
type CharValue struct {
	Data string
	N    int
}

func (v CharValue) Type() Type       { return Char(v.N) }
func (v CharValue) Hash() uint64     { return rotatingXorHash(v.Data) }
func (v CharValue) Render() string   { return strings.TrimRight(v.Data, " ") }

func (v CharValue) Compare(other Value) int {
	o := other.(CharValue)
	return compareStrings(v.Data, o.Data)
}

// compareStrings implements "lexicographic on min(len, other.len) then by
// length" from spec.md 4.1.
func compareStrings(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

func parseChar(text string, n int) (Value, error) {
	trimmed := strings.TrimLeft(text, " ")
	if len(trimmed) > n {
		return nil, &ParseError{Type: Char(n), Text: text, Cause: "exceeds declared length"}
	}
	for len(trimmed) < n {
		trimmed += " "
	}
	return CharValue{Data: trimmed, N: n}, nil
}
