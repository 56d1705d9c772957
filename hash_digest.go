// Digest and 64-bit hashes.
//
// Each takes the first 8 bytes of its digest big-endian (or its native 64-bit
// sum) as the raw value and reduces it with the same rule as the classic
// hashes. The cryptographic digests are slower but behave as independent
// functions, which is what keeps the false positive rate near its target.
package rbloom

import (
	"crypto/md5"
	"encoding/binary"
	"hash/fnv"

	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // digest is part of the stored format
)

func fnv164Hash(data []byte, bitSpace uint64) uint64 {
	h := fnv.New64()
	h.Write(data)
	return reduce(h.Sum64(), bitSpace)
}

func md5Hash(data []byte, bitSpace uint64) uint64 {
	sum := md5.Sum(data)
	return reduce(binary.BigEndian.Uint64(sum[:8]), bitSpace)
}

func ripemd160Hash(data []byte, bitSpace uint64) uint64 {
	h := ripemd160.New()
	h.Write(data)
	return reduce(binary.BigEndian.Uint64(h.Sum(nil)[:8]), bitSpace)
}

func blake2bHash(data []byte, bitSpace uint64) uint64 {
	sum := blake2b.Sum256(data)
	return reduce(binary.BigEndian.Uint64(sum[:8]), bitSpace)
}

func xxh3Hash(data []byte, bitSpace uint64) uint64 {
	return reduce(xxh3.Hash(data), bitSpace)
}

func xxhashHash(data []byte, bitSpace uint64) uint64 {
	return reduce(xxhash.Sum64(data), bitSpace)
}

func murmur3Hash(data []byte, bitSpace uint64) uint64 {
	return reduce(uint64(murmur3.Sum32(data)), bitSpace)
}
