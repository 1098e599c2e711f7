// Package value implements imlabdb's closed set of logical column types:
// Integer, Numeric(L,P), Char<N>, Varchar<N>, Timestamp and Bool. Every type
// has a stable hash, a total order compatible with equality, and a text
// cast used both by the bulk loader and by literal folding in the query
// compiler.
package value

import "fmt"

// Kind names one of the six logical types a column can hold.
type Kind int

const (
	KindInteger Kind = iota
	KindNumeric
	KindChar
	KindVarchar
	KindTimestamp
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "Integer"
	case KindNumeric:
		return "Numeric"
	case KindChar:
		return "Char"
	case KindVarchar:
		return "Varchar"
	case KindTimestamp:
		return "Timestamp"
	case KindBool:
		return "Bool"
	default:
		return "Unknown"
	}
}

// Type describes a concrete, parameterized logical type: L/P carry the
// precision/scale of a Numeric, N the declared length of a Char or Varchar.
type Type struct {
	Kind Kind
	L, P int
	N    int
}

func Integer() Type                 { return Type{Kind: KindInteger} }
func Numeric(l, p int) Type         { return Type{Kind: KindNumeric, L: l, P: p} }
func Char(n int) Type               { return Type{Kind: KindChar, N: n} }
func Varchar(n int) Type            { return Type{Kind: KindVarchar, N: n} }
func Timestamp() Type               { return Type{Kind: KindTimestamp} }
func Bool() Type                    { return Type{Kind: KindBool} }
func (t Type) String() string       { return goTypeName(t) }

// Equal reports whether two types are the identical parameterization of the
// same Kind; Equals expressions require this of both operands.
func (t Type) Equal(other Type) bool {
	return t.Kind == other.Kind && t.L == other.L && t.P == other.P && t.N == other.N
}

// Value is implemented by every logical value. Hash and Compare must agree:
// equal values hash equal, and Compare is a total order compatible with
// equality.
type Value interface {
	Type() Type
	Hash() uint64
	Compare(other Value) int
	Render() string
}

// ParseError reports a failed CastFromText.
type ParseError struct {
	Type  Type
	Text  string
	Cause string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot cast %q to %s: %s", e.Text, e.Type, e.Cause)
}

// CastFromText parses the on-disk / literal text representation of t into a
// Value, or fails with *ParseError.
func (t Type) CastFromText(text string) (Value, error) {
	switch t.Kind {
	case KindInteger:
		return parseInteger(text)
	case KindNumeric:
		return parseNumeric(text, t.L, t.P)
	case KindChar:
		return parseChar(text, t.N)
	case KindVarchar:
		return parseVarchar(text, t.N)
	case KindTimestamp:
		return parseTimestamp(text)
	case KindBool:
		return parseBool(text)
	default:
		return nil, &ParseError{Type: t, Text: text, Cause: "unknown kind"}
	}
}

// Zero returns the type's zero value, used to materialize a placeholder
// before a column read overwrites it.
func (t Type) Zero() Value {
	switch t.Kind {
	case KindInteger:
		return IntegerValue(0)
	case KindNumeric:
		return NumericValue{L: t.L, P: t.P}
	case KindChar:
		return CharValue{N: t.N}
	case KindVarchar:
		return VarcharValue{N: t.N}
	case KindTimestamp:
		return TimestampValue(0)
	case KindBool:
		return BoolValue(false)
	default:
		panic("value: Zero of unknown kind")
	}
}

// xorshiftMix implements the "self-mixed xorshift" hash spec.md requires
// for the fixed-width numeric-ish types.
func xorshiftMix(x uint64) uint64 {
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	return x
}

// rotatingXorHash implements the "byte-wise rotating xor" hash spec.md
// requires for string-shaped types.
func rotatingXorHash(s string) uint64 {
	var h uint64
	for i := 0; i < len(s); i++ {
		h = (h<<5 | h>>59) ^ uint64(s[i])
	}
	return h
}

func goTypeName(t Type) string {
	switch t.Kind {
	case KindNumeric:
		return fmt.Sprintf("Numeric(%d,%d)", t.L, t.P)
	case KindChar:
		return fmt.Sprintf("Char(%d)", t.N)
	case KindVarchar:
		return fmt.Sprintf("Varchar(%d)", t.N)
	default:
		return t.Kind.String()
	}
}
