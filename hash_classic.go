// Classic non-cryptographic string hashes.
//
// These are the well known table-free hashes (Sobel, Weinberger, ELF, BKDR,
// SDBM, Bernstein, Knuth, FNV) in the exact variants existing bit arrays were
// written with. Several differ from the textbook form: PJW folds its high bits
// once after the loop rather than per byte, and FNV reduces modulo 2^32-1
// instead of 2^32. Arithmetic goes through word so overflow behaves the same
// way it did for the first writers of those arrays. Do not "fix" either.
//
// pjw and elf agree on short ASCII elements (up to about eight bytes). Do
// not use both in one filter: the effective number of hash functions drops
// and nothing reports it.
package rbloom

import "hash/crc32"

// jsHash is Justin Sobel's bitwise hash.
func jsHash(data []byte, bitSpace uint64) uint64 {
	h := int64(1315423911)
	for _, c := range data {
		t := add(add(w(h<<5), w(int64(c))), w(h>>2))
		h ^= t.int()
	}
	return reduceSigned(h, bitSpace)
}

// pjwHash is Peter J. Weinberger's hash from the dragon book.
func pjwHash(data []byte, bitSpace uint64) uint64 {
	const (
		bits          = 32
		threeQuarters = bits * 3 / 4
		oneEighth     = bits / 8
		highBits      = int64(mask32) << (bits - oneEighth)
	)
	h := w(0)
	for _, c := range data {
		h = add(w(h.int()<<oneEighth), w(int64(c)))
	}
	v := h.int()
	if test := v & highBits; test != 0 {
		v = (v ^ (test >> threeQuarters)) &^ highBits
	}
	return reduceSigned(v, bitSpace)
}

// elfHash is the Unix ELF object file variant of PJW.
func elfHash(data []byte, bitSpace uint64) uint64 {
	var h int64
	for _, c := range data {
		h = add(w(h<<4), w(int64(c))).int()
		x := h & 0xF0000000
		if x != 0 {
			h ^= x >> 24
		}
		h &^= x
	}
	return reduceSigned(h, bitSpace)
}

// bkdrHash is the Kernighan and Ritchie hash with seed 131.
func bkdrHash(data []byte, bitSpace uint64) uint64 {
	const seed = 131
	var h int64
	for _, c := range data {
		h = add(mul(w(h), w(seed)), w(int64(c))).int()
	}
	return reduceSigned(h, bitSpace)
}

// sdbmHash is the hash used by the SDBM database library.
func sdbmHash(data []byte, bitSpace uint64) uint64 {
	var h int64
	for _, c := range data {
		h = sub(add(add(w(int64(c)), w(h<<6)), w(h<<16)), w(h)).int()
	}
	return reduceSigned(h, bitSpace)
}

// djbHash is Daniel J. Bernstein's times-33 hash.
func djbHash(data []byte, bitSpace uint64) uint64 {
	h := w(5381)
	for _, c := range data {
		h = add(w(add(w(h.int()<<5), h).int()), w(int64(c)))
	}
	return reduceSigned(h.int(), bitSpace)
}

// dekHash is Donald E. Knuth's cyclic shift hash, seeded with the length.
func dekHash(data []byte, bitSpace uint64) uint64 {
	h := int64(len(data))
	for _, c := range data {
		h = (h << 5) ^ (h >> 27) ^ int64(c)
	}
	return reduceSigned(h, bitSpace)
}

// fnvHash is an FNV-1 style hash with the 32-bit prime and offset basis.
// The accumulator stays below 2^32, so the product never overflows.
func fnvHash(data []byte, bitSpace uint64) uint64 {
	const (
		prime  = 16777619
		offset = 2166136261
	)
	h := int64(offset)
	for _, c := range data {
		h = (h * prime) % mask32
		h ^= int64(c)
	}
	return reduceSigned(h, bitSpace)
}

// crc32Hash is the IEEE CRC-32 checksum. The checksum is already 32 bits,
// so only the bit space reduction applies.
func crc32Hash(data []byte, bitSpace uint64) uint64 {
	return uint64(crc32.ChecksumIEEE(data)) % space(bitSpace)
}
