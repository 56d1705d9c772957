// Hash function registry.
//
// Every hash maps a byte string to a bit offset in [0, bitSpace). Functions
// are looked up by name when a Filter is built, so an unknown name fails at
// construction instead of on the first Add. The registry is fixed at init:
// changing what a name computes would silently orphan every bit array written
// with it.
package rbloom

import (
	"slices"
	"strings"
)

// HashFunc maps data to a bit offset in [0, bitSpace). The whole slice is
// hashed; callers pre-slice to hash a prefix. A zero bitSpace is treated as
// the full 32-bit space.
type HashFunc func(data []byte, bitSpace uint64) uint64

// Hash function identifiers.
const (
	HashJS        = "js"
	HashPJW       = "pjw"
	HashELF       = "elf"
	HashBKDR      = "bkdr"
	HashSDBM      = "sdbm"
	HashDJB       = "djb"
	HashDEK       = "dek"
	HashFNV       = "fnv"
	HashCRC32     = "crc32"
	HashFNV164    = "fnv164"
	HashMD5       = "md5"
	HashRIPEMD160 = "ripemd160"
	HashBlake2b   = "blake2b"
	HashXXH3      = "xxh3"
	HashXXHash    = "xxhash"
	HashMurmur3   = "murmur3"
)

// mask32 is both the modulus and the mask of the reduction rule, and the
// bit space used when none is given.
const mask32 = 0xFFFFFFFF

var registry = map[string]HashFunc{
	HashJS:        jsHash,
	HashPJW:       pjwHash,
	HashELF:       elfHash,
	HashBKDR:      bkdrHash,
	HashSDBM:      sdbmHash,
	HashDJB:       djbHash,
	HashDEK:       dekHash,
	HashFNV:       fnvHash,
	HashCRC32:     crc32Hash,
	HashFNV164:    fnv164Hash,
	HashMD5:       md5Hash,
	HashRIPEMD160: ripemd160Hash,
	HashBlake2b:   blake2bHash,
	HashXXH3:      xxh3Hash,
	HashXXHash:    xxhashHash,
	HashMurmur3:   murmur3Hash,
}

// aliases maps legacy spellings (after normalisation) to registry names.
var aliases = map[string]string{
	"ele": HashELF,
}

// LookupHash returns the hash registered under name. Matching ignores case
// and a trailing "hash", so "DJBHash", "djb" and "Djb" are the same function.
func LookupHash(name string) (HashFunc, bool) {
	fn, ok := registry[canonical(name)]
	return fn, ok
}

// CanonicalHashName returns the registry name for name, or "" if it is not
// registered.
func CanonicalHashName(name string) string {
	c := canonical(name)
	if _, ok := registry[c]; !ok {
		return ""
	}
	return c
}

// HashNames returns the registered identifiers in sorted order.
func HashNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func canonical(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if _, ok := registry[n]; !ok {
		n = strings.TrimSuffix(n, "hash")
	}
	if alias, ok := aliases[n]; ok {
		return alias
	}
	return n
}

// space returns the modulo base for bitSpace, never zero.
func space(bitSpace uint64) uint64 {
	if bitSpace == 0 {
		return mask32
	}
	return bitSpace
}

// reduceSigned applies the reduction rule to a signed accumulator: truncated
// modulo 0xFFFFFFFF, two's complement mask to 32 bits, then modulo bitSpace.
func reduceSigned(h int64, bitSpace uint64) uint64 {
	r := (h % mask32) & mask32
	return uint64(r) % space(bitSpace)
}

// reduce applies the reduction rule to an unsigned raw value.
func reduce(h uint64, bitSpace uint64) uint64 {
	return (h % mask32) % space(bitSpace)
}
