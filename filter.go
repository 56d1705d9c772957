// Filter operations.
//
// Every operation builds one offset set (all configured hashes applied to
// all given items, deduplicated and sorted) and hands it to the Store in a
// single call. The Filter holds no mutable state, so one value can be shared
// by any number of goroutines.
package rbloom

import (
	"context"
	"fmt"
	"slices"
)

// Filter is a Bloom filter whose bits live in a Store.
type Filter struct {
	store  Store
	config Config
	hashes []HashFunc
}

// New builds a filter over store. The configuration is validated and every
// hash name resolved before New returns.
func New(store Store, config Config) (*Filter, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: nil store", ErrInvalidConfig)
	}
	config = config.withDefaults()
	hashes, err := config.resolve()
	if err != nil {
		return nil, err
	}
	return &Filter{store: store, config: config, hashes: hashes}, nil
}

// Config returns the configuration the filter was built with, with defaults
// applied and hash names in canonical form.
func (f *Filter) Config() Config {
	c := f.config
	c.Hashes = slices.Clone(c.Hashes)
	return c
}

// Bucket returns the store key holding the filter's bits.
func (f *Filter) Bucket() string {
	return f.config.Bucket
}

// Add inserts items. At most Config.BatchLimit items may be passed per call;
// larger batches fail with ErrBatchTooLarge before the store is touched.
// Adding is global and irreversible: every client of the bucket sees it and
// bits are never cleared.
func (f *Filter) Add(ctx context.Context, items ...[]byte) error {
	if len(items) > int(f.config.BatchLimit) {
		return fmt.Errorf("%w: %d items, limit %d", ErrBatchTooLarge, len(items), f.config.BatchLimit)
	}
	if len(items) == 0 {
		return nil
	}
	if err := f.store.SetBits(ctx, f.config.Bucket, f.Offsets(items...)); err != nil {
		return fmt.Errorf("%w: set bits: %w", ErrStore, err)
	}
	return nil
}

// AddString is Add for string items.
func (f *Filter) AddString(ctx context.Context, items ...string) error {
	b := make([][]byte, len(items))
	for i, s := range items {
		b[i] = []byte(s)
	}
	return f.Add(ctx, b...)
}

// Has reports whether item may have been added. False is definite; true may
// be a false positive.
func (f *Filter) Has(ctx context.Context, item []byte) (bool, error) {
	ok, err := f.store.CheckBits(ctx, f.config.Bucket, f.Offsets(item))
	if err != nil {
		return false, fmt.Errorf("%w: check bits: %w", ErrStore, err)
	}
	return ok, nil
}

// HasString is Has for a string item.
func (f *Filter) HasString(ctx context.Context, item string) (bool, error) {
	return f.Has(ctx, []byte(item))
}

// HasAdd tests for item and inserts it in the same atomic step. It returns
// true if item was already (possibly) present and false if at least one of
// its bits had to be set. Two concurrent callers may both see false for the
// same new item; the bit array is unaffected either way.
func (f *Filter) HasAdd(ctx context.Context, item []byte) (bool, error) {
	ok, err := f.store.CheckAndSetBits(ctx, f.config.Bucket, f.Offsets(item))
	if err != nil {
		return false, fmt.Errorf("%w: check and set bits: %w", ErrStore, err)
	}
	return ok, nil
}

// HasAddString is HasAdd for a string item.
func (f *Filter) HasAddString(ctx context.Context, item string) (bool, error) {
	return f.HasAdd(ctx, []byte(item))
}

// Offsets returns the sorted, deduplicated bit offsets for items across all
// configured hash functions.
func (f *Filter) Offsets(items ...[]byte) []uint64 {
	offsets := make([]uint64, 0, len(items)*len(f.hashes))
	for _, hash := range f.hashes {
		for _, item := range items {
			offsets = append(offsets, hash(item, f.config.BitSpace))
		}
	}
	slices.Sort(offsets)
	return slices.Compact(offsets)
}
