// In-process Store.
//
// MemoryStore keeps bit arrays in process memory, one bitset per bucket,
// created on first write. A single mutex covers every bucket, which is what
// makes each batch atomic. It is meant for tests and single-process filters;
// nothing is shared between processes and nothing survives a restart.
package rbloom

import (
	"context"
	"sync"

	"github.com/bits-and-blooms/bitset"
)

// MemoryStore is a Store backed by in-memory bitsets.
type MemoryStore struct {
	mu      sync.Mutex
	buckets map[string]*bitset.BitSet
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{buckets: make(map[string]*bitset.BitSet)}
}

// SetBits sets every offset in bucket.
func (s *MemoryStore) SetBits(ctx context.Context, bucket string, offsets []uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.bucket(bucket)
	for _, off := range offsets {
		b.Set(uint(off))
	}
	return nil
}

// CheckBits reports whether every offset in bucket is set. A bucket that
// was never written reads as all zeroes.
func (s *MemoryStore) CheckBits(ctx context.Context, bucket string, offsets []uint64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.buckets[bucket]
	if !ok {
		return len(offsets) == 0, nil
	}
	for _, off := range offsets {
		if !b.Test(uint(off)) {
			return false, nil
		}
	}
	return true, nil
}

// CheckAndSetBits reports whether every offset was already set, setting
// the ones that were not.
func (s *MemoryStore) CheckAndSetBits(ctx context.Context, bucket string, offsets []uint64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.bucket(bucket)
	present := true
	for _, off := range offsets {
		if !b.Test(uint(off)) {
			b.Set(uint(off))
			present = false
		}
	}
	return present, nil
}

// Count returns the number of set bits in bucket.
func (s *MemoryStore) Count(bucket string) uint {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b, ok := s.buckets[bucket]; ok {
		return b.Count()
	}
	return 0
}

// Reset drops every bucket.
func (s *MemoryStore) Reset() {
	s.mu.Lock()
	clear(s.buckets)
	s.mu.Unlock()
}

// bucket returns the bitset for name, creating it. Callers hold s.mu.
func (s *MemoryStore) bucket(name string) *bitset.BitSet {
	b, ok := s.buckets[name]
	if !ok {
		b = bitset.New(0)
		s.buckets[name] = b
	}
	return b
}
