// Capacity planning.
//
// These functions answer "how many bits and hash functions does a filter
// need for n members at false positive rate p". They are advisory: a Filter
// uses whatever Config.BitSpace it is given, because production bit arrays
// are usually pinned to an allocation that already exists in the store.
package rbloom

import (
	"fmt"
	"math"
	"math/bits"
)

// ln2Squared is the square of the natural log of 2.
const ln2Squared = math.Ln2 * math.Ln2

// Calibration is the derived storage requirement for a target capacity.
type Calibration struct {
	BitArraySize      float64 `json:"bit_array_size"`      // m, in bits
	HashFunctionCount uint32  `json:"hash_function_count"` // k
}

// OptimalBitArraySize returns m = -(n * ln(p)) / ln(2)^2 for n expected
// members at false positive rate p.
func OptimalBitArraySize(n, p float64) (float64, error) {
	if !(n > 0) || math.IsInf(n, 1) {
		return 0, fmt.Errorf("%w: expected members must be positive, got %v", ErrInvalidArgument, n)
	}
	if !(p > 0 && p < 1) {
		return 0, fmt.Errorf("%w: false positive rate must be in (0,1), got %v", ErrInvalidArgument, p)
	}
	return -(n * math.Log(p)) / ln2Squared, nil
}

// OptimalHashFunctionCount returns k = floor((m / n) * ln(2)). m should come
// from OptimalBitArraySize with the same n. Non-positive inputs yield 0.
func OptimalHashFunctionCount(m, n float64) uint32 {
	if !(m > 0) || !(n > 0) {
		return 0
	}
	k := math.Floor((m / n) * math.Ln2)
	if k > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(k)
}

// Calibrate computes both m and k for n members at false positive rate p.
func Calibrate(n, p float64) (Calibration, error) {
	m, err := OptimalBitArraySize(n, p)
	if err != nil {
		return Calibration{}, err
	}
	return Calibration{
		BitArraySize:      m,
		HashFunctionCount: OptimalHashFunctionCount(m, n),
	}, nil
}

// BitSpace returns the smallest power of two that holds BitArraySize bits,
// capped at MaxBitSpace.
func (c Calibration) BitSpace() uint64 {
	m := math.Ceil(c.BitArraySize)
	if m <= 1 {
		return 1
	}
	if m >= MaxBitSpace {
		return MaxBitSpace
	}
	return 1 << bits.Len64(uint64(m)-1)
}

// Bytes returns the storage needed for BitArraySize bits.
func (c Calibration) Bytes() uint64 {
	m := math.Ceil(c.BitArraySize)
	if m <= 0 {
		return 0
	}
	if m >= twoPow64 {
		return math.MaxUint64 / 8
	}
	return (uint64(m) + 7) / 8
}

// FalsePositiveRate estimates the probability that Has reports a non-member
// as present once n members are stored in m bits with k hash functions:
// (1 - e^(-k*n/m))^k. Offsets shared between hash functions are ignored.
func FalsePositiveRate(m, n float64, k uint32) float64 {
	if !(m > 0) || k == 0 {
		return 1
	}
	if !(n > 0) {
		return 0
	}
	fk := float64(k)
	return math.Pow(1-math.Exp(-fk*n/m), fk)
}
