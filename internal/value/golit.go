package value

import "fmt"

// GoLiteral renders v as a Go source expression that reconstructs it,
// package-qualified as the query compiler's generated code imports this
// package under the name "value". Used to fold WHERE-clause constants
// straight into the emitted translation unit.
func GoLiteral(v Value) (string, error) {
	switch t := v.(type) {
	case IntegerValue:
		return fmt.Sprintf("value.IntegerValue(%d)", int32(t)), nil
	case NumericValue:
		return fmt.Sprintf("value.NumericValue{Raw: %d, L: %d, P: %d}", t.Raw, t.L, t.P), nil
	case CharValue:
		return fmt.Sprintf("value.CharValue{Data: %q, N: %d}", t.Data, t.N), nil
	case VarcharValue:
		return fmt.Sprintf("value.VarcharValue{Data: %q, N: %d}", t.Data, t.N), nil
	case TimestampValue:
		return fmt.Sprintf("value.TimestampValue(%d)", int64(t)), nil
	case BoolValue:
		return fmt.Sprintf("value.BoolValue(%t)", bool(t)), nil
	default:
		return "", fmt.Errorf("value: no Go literal form for %T", v)
	}
}
