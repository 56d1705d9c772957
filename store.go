// Store contract.
//
// A Store owns the bit arrays. Each method receives the complete, deduplicated
// offset set of one filter operation and must apply it as a single atomic
// unit: no other call on the same bucket may observe or interleave with a
// partially applied batch. Bits only ever go from 0 to 1.
package rbloom

import "context"

// Store is a bit-addressable key space with atomic multi-bit operations.
type Store interface {
	// SetBits sets every offset in bucket to 1, all or nothing.
	SetBits(ctx context.Context, bucket string, offsets []uint64) error

	// CheckBits reports whether every offset in bucket reads 1. It must not
	// modify the bit array.
	CheckBits(ctx context.Context, bucket string, offsets []uint64) (bool, error)

	// CheckAndSetBits reports whether every offset in bucket already read 1,
	// and sets those that did not, in one atomic step.
	CheckAndSetBits(ctx context.Context, bucket string, offsets []uint64) (bool, error)
}
