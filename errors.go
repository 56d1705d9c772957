// Package rbloom provides a Bloom filter whose bit array lives in a shared
// store (normally Redis) rather than in process memory, so any number of
// processes can populate and query the same filter.
//
// A Filter hashes each element with every configured hash function, collapses
// the resulting bit offsets into a deduplicated set, and submits that set to
// the Store as a single atomic request. The filter itself keeps no state
// between calls: the bit array is owned and serialised by the store, which is
// why the package carries no locks of its own.
package rbloom

import "errors"

// Sentinel errors for programmatic handling. Callers can use errors.Is to
// distinguish caller mistakes (ErrInvalidConfig, ErrBatchTooLarge,
// ErrInvalidArgument) from store failures (ErrStore, ErrStoreUnavailable).
var (
	ErrInvalidConfig    = errors.New("invalid filter configuration")
	ErrUnknownHash      = errors.New("unknown hash function")
	ErrBatchTooLarge    = errors.New("batch exceeds insertion limit")
	ErrStore            = errors.New("store request failed")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrInvalidArgument  = errors.New("invalid argument")
)
