// Overflow arithmetic tests.
//
// word reproduces a specific overflow model: int64 until an operation
// overflows, float64 afterwards, folded modulo 2^64 when an integer is
// needed. These tests pin each transition directly, so a regression shows
// up here with a readable failure rather than as a changed golden offset.
package rbloom

import (
	"math"
	"testing"
)

// TestWordAddOverflow verifies that an overflowing addition widens to the
// sum of the two operands as float64, while a non-overflowing one stays an
// exact integer.
func TestWordAddOverflow(t *testing.T) {
	if got := add(w(40), w(2)); got.wide || got.i != 42 {
		t.Errorf("add(40, 2) = %+v, want exact 42", got)
	}

	got := add(w(math.MaxInt64), w(1))
	if !got.wide {
		t.Fatal("MaxInt64 + 1 did not widen")
	}
	if got.f != twoPow63 {
		t.Errorf("MaxInt64 + 1 = %v, want 2^63", got.f)
	}

	got = add(w(math.MinInt64), w(-1))
	if !got.wide || got.f != -twoPow63 {
		t.Errorf("MinInt64 - 1 = %+v, want widened -2^63", got)
	}

	// Mixed signs can never overflow.
	if got := add(w(math.MaxInt64), w(math.MinInt64)); got.wide || got.i != -1 {
		t.Errorf("MaxInt64 + MinInt64 = %+v, want exact -1", got)
	}
}

// TestWordSubOverflow mirrors the addition test for subtraction.
func TestWordSubOverflow(t *testing.T) {
	if got := sub(w(math.MinInt64), w(1)); !got.wide {
		t.Error("MinInt64 - 1 did not widen")
	}
	if got := sub(w(math.MaxInt64), w(-1)); !got.wide {
		t.Error("MaxInt64 - (-1) did not widen")
	}
	if got := sub(w(-5), w(-7)); got.wide || got.i != 2 {
		t.Errorf("-5 - -7 = %+v, want exact 2", got)
	}
}

// TestWordMulOverflow covers the multiplication overflow checks, including
// the MinInt64 * -1 case that integer division cannot detect.
func TestWordMulOverflow(t *testing.T) {
	if got := mul(w(1<<40), w(131)); got.wide || got.i != (1<<40)*131 {
		t.Errorf("2^40 * 131 = %+v, want exact", got)
	}
	if got := mul(w(1<<62), w(4)); !got.wide || got.f != 1<<64 {
		t.Errorf("2^62 * 4 = %+v, want widened 2^64", got)
	}
	if got := mul(w(math.MinInt64), w(-1)); !got.wide {
		t.Error("MinInt64 * -1 did not widen")
	}
	if got := mul(w(-1), w(math.MinInt64)); !got.wide {
		t.Error("-1 * MinInt64 did not widen")
	}
	if got := mul(w(0), w(math.MinInt64)); got.wide || got.i != 0 {
		t.Errorf("0 * MinInt64 = %+v, want exact 0", got)
	}
}

// TestWordWideStaysWide verifies that once a value is a float every later
// operation is done in floating point, even with small integer operands.
func TestWordWideStaysWide(t *testing.T) {
	x := add(w(math.MaxInt64), w(1))
	if got := add(x, w(1)); !got.wide {
		t.Error("wide + 1 became exact")
	}
	if got := mul(w(2), x); !got.wide || got.f != twoPow64 {
		t.Errorf("2 * wide = %+v, want 2^64", got)
	}
}

// TestFold checks the modulo 2^64 fold on representative values.
func TestFold(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{0, 0},
		{-12345, -12345},
		{twoPow63, math.MinInt64},
		{twoPow64, 0},
		{twoPow64 + 4096, 4096},
		{-twoPow63, math.MinInt64},
		{-twoPow64 - 4096, -4096},
		{3 * twoPow64, 0},
		{twoPow63 + 2048, math.MinInt64 + 2048},
		{math.NaN(), 0},
		{math.Inf(1), 0},
		{math.Inf(-1), 0},
	}
	for _, tt := range tests {
		if got := fold(tt.in); got != tt.want {
			t.Errorf("fold(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

// TestWordInt verifies that int folds only widened values.
func TestWordInt(t *testing.T) {
	if got := w(-7).int(); got != -7 {
		t.Errorf("w(-7).int() = %d", got)
	}
	if got := (word{f: twoPow64 + 8192, wide: true}).int(); got != 8192 {
		t.Errorf("wide 2^64+8192 folded to %d", got)
	}
}
