// Overflow-widening integer arithmetic for the classic hash functions.
//
// The classic hashes are defined over a signed 64-bit accumulator that does
// not wrap on overflow: an addition, subtraction or multiplication that leaves
// the int64 range produces a float64 instead, and an operation that needs an
// integer (shift, xor, mask, modulo) folds that float back into int64 modulo
// 2^64. The precision lost in the float step is part of the definition.
// Offsets already written to shared bit arrays depend on it, so the rounding
// here must stay bit-for-bit identical across releases.
package rbloom

import "math"

const (
	twoPow63 = 9223372036854775808.0
	twoPow64 = 18446744073709551616.0
)

// word is either an int64 or, after an overflow, a float64.
type word struct {
	i    int64
	f    float64
	wide bool
}

func w(i int64) word {
	return word{i: i}
}

// int returns the integer value, folding a widened value modulo 2^64.
func (x word) int() int64 {
	if !x.wide {
		return x.i
	}
	return fold(x.f)
}

func (x word) float() float64 {
	if x.wide {
		return x.f
	}
	return float64(x.i)
}

func add(a, b word) word {
	if a.wide || b.wide {
		return word{f: a.float() + b.float(), wide: true}
	}
	s := a.i + b.i
	if (a.i >= 0) == (b.i >= 0) && (s >= 0) != (a.i >= 0) {
		return word{f: float64(a.i) + float64(b.i), wide: true}
	}
	return word{i: s}
}

func sub(a, b word) word {
	if a.wide || b.wide {
		return word{f: a.float() - b.float(), wide: true}
	}
	d := a.i - b.i
	if (a.i >= 0) != (b.i >= 0) && (d >= 0) != (a.i >= 0) {
		return word{f: float64(a.i) - float64(b.i), wide: true}
	}
	return word{i: d}
}

func mul(a, b word) word {
	if a.wide || b.wide {
		return word{f: a.float() * b.float(), wide: true}
	}
	if a.i == 0 || b.i == 0 {
		return word{}
	}
	p := a.i * b.i
	if p/b.i != a.i || (a.i == -1 && b.i == math.MinInt64) || (b.i == -1 && a.i == math.MinInt64) {
		return word{f: float64(a.i) * float64(b.i), wide: true}
	}
	return word{i: p}
}

// fold converts f to int64 modulo 2^64. NaN and infinities fold to zero.
func fold(f float64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	if f >= -twoPow63 && f < twoPow63 {
		return int64(f)
	}
	d := math.Mod(f, twoPow64)
	if d < 0 {
		d += twoPow64
	}
	if d >= twoPow63 {
		d -= twoPow64
	}
	return int64(d)
}
