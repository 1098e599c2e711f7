package value

// VarcharValue is a Varchar<N>: Data holds up to N bytes verbatim, no
// padding. The declared N also determines the byte width (1/2/4 bytes) a
// packed on-disk representation would use for the length indicator; imlabdb
// never packs values to bytes, so that width never surfaces past Type.N.
type VarcharValue struct {
	Data string
	N    int
}

func (v VarcharValue) Type() Type     { return Varchar(v.N) }
func (v VarcharValue) Hash() uint64   { return rotatingXorHash(v.Data) }
func (v VarcharValue) Render() string { return v.Data }

func (v VarcharValue) Compare(other Value) int {
	o := other.(VarcharValue)
	return compareStrings(v.Data, o.Data)
}

// LengthIndicatorBytes returns the byte width the original design used to
// store a Varchar<N>'s length prefix.
func LengthIndicatorBytes(n int) int {
	switch {
	case n < 1<<8:
		return 1
	case n < 1<<16:
		return 2
	default:
		return 4
	}
}

func parseVarchar(text string, n int) (Value, error) {
	if len(text) > n {
		return nil, &ParseError{Type: Varchar(n), Text: text, Cause: "exceeds declared length"}
	}
	return VarcharValue{Data: text, N: n}, nil
}
