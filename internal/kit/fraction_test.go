package kit

import "testing"

func TestFractionValue(t *testing.T) {
	f := Fraction{Numerator: 3, Denominator: 4}
	if v := f.Value(); v != 0.75 {
		t.Fatalf("Value() = %v, want 0.75", v)
	}
}

func TestFractionZeroDenominatorIsZero(t *testing.T) {
	f := Fraction{Numerator: 5, Denominator: 0}
	if v := f.Value(); v != 0 {
		t.Fatalf("Value() with zero denominator = %v, want 0", v)
	}
}
