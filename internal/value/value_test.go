package value

import "testing"

func TestNumericRoundTrip(t *testing.T) {
	cases := []string{"12.34", "-0.01", "0", "100", "-100.00"}
	typ := Numeric(6, 2)
	for _, c := range cases {
		v, err := typ.CastFromText(c)
		if err != nil {
			t.Fatalf("CastFromText(%q): %v", c, err)
		}
		rendered := v.Render()
		v2, err := typ.CastFromText(rendered)
		if err != nil {
			t.Fatalf("re-cast %q: %v", rendered, err)
		}
		if v.(NumericValue).Raw != v2.(NumericValue).Raw {
			t.Fatalf("round trip mismatch for %q: %v != %v", c, v, v2)
		}
	}
}

func TestNumericRejectsExcessIntegralDigits(t *testing.T) {
	_, err := Numeric(4, 2).CastFromText("123.45")
	if err == nil {
		t.Fatal("expected error for excess integral digits")
	}
}

func TestNumericRejectsExcessFractionalDigits(t *testing.T) {
	_, err := Numeric(4, 2).CastFromText("1.2345")
	if err == nil {
		t.Fatal("expected error for excess fractional digits")
	}
}

func TestNumericMul(t *testing.T) {
	a, _ := Numeric(4, 2).CastFromText("2.00")
	b, _ := Numeric(4, 2).CastFromText("3.00")
	prod := a.(NumericValue).Mul(b.(NumericValue))
	if prod.P != 4 {
		t.Fatalf("expected scale 4, got %d", prod.P)
	}
	if prod.Raw != a.(NumericValue).Raw*b.(NumericValue).Raw {
		t.Fatalf("expected unscaled product, got %d", prod.Raw)
	}
}

func TestNumericAddRequiresSameShape(t *testing.T) {
	a, _ := Numeric(4, 2).CastFromText("1.50")
	b, _ := Numeric(4, 2).CastFromText("2.25")
	sum := a.(NumericValue).Add(b.(NumericValue))
	if sum.Render() != "3.75" {
		t.Fatalf("expected 3.75, got %s", sum.Render())
	}
}

func TestCharTrimsLeadingSpacesAndPads(t *testing.T) {
	v, err := Char(4).CastFromText("  a")
	if err != nil {
		t.Fatal(err)
	}
	cv := v.(CharValue)
	if cv.Data != "a   " {
		t.Fatalf("expected padded %q, got %q", "a   ", cv.Data)
	}
}

func TestCharEqualityOnLengthAndBytes(t *testing.T) {
	a, _ := Char(4).CastFromText("ab")
	b, _ := Char(4).CastFromText("ab")
	if a.Compare(b) != 0 {
		t.Fatal("expected equal Char values to compare equal")
	}
}

func TestVarcharRejectsOverflow(t *testing.T) {
	_, err := Varchar(3).CastFromText("abcd")
	if err == nil {
		t.Fatal("expected error for overlong varchar")
	}
}

func TestStringHashStableAcrossClones(t *testing.T) {
	a := VarcharValue{Data: "hello", N: 16}
	b := VarcharValue{Data: "hello", N: 16}
	if a.Hash() != b.Hash() {
		t.Fatal("expected stable hash for identical values")
	}
}

func TestStringOrderingByLengthWhenPrefixEqual(t *testing.T) {
	a := VarcharValue{Data: "ab", N: 16}
	b := VarcharValue{Data: "abc", N: 16}
	if a.Compare(b) >= 0 {
		t.Fatal("expected shorter prefix-equal string to sort first")
	}
}

func TestIntegerHashStable(t *testing.T) {
	a := IntegerValue(42)
	b := IntegerValue(42)
	if a.Hash() != b.Hash() {
		t.Fatal("expected stable hash")
	}
	if a.Hash() == IntegerValue(43).Hash() {
		t.Fatal("expected distinct hash for distinct values (not guaranteed, but should hold here)")
	}
}
