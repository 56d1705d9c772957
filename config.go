// Filter configuration.
//
// Config is fixed when a Filter is built. Zero values that have a sensible
// default are filled in; everything else must be set explicitly and is
// validated up front, so a Filter that was built successfully cannot fail
// later because of its configuration.
package rbloom

import "fmt"

// Configuration limits and defaults.
const (
	// MaxBitSpace is the largest bit array a Redis string can address
	// (512 MiB). Offsets are reduced to 32 bits, so larger spaces would
	// never be used.
	MaxBitSpace = 1 << 32

	DefaultBitSpace   = 1 << 23 // 1 MiB of bits
	DefaultBatchLimit = 2000
)

// DefaultHashes is a set of pairwise independent functions suitable for most
// filters. Use it as a starting point; Config.Hashes has no implicit default.
// When choosing other classic hashes, never pair pjw with elf: they map
// short elements to the same offset.
var DefaultHashes = []string{HashFNV164, HashMD5, HashRIPEMD160}

// Config holds filter configuration options.
type Config struct {
	BitSpace   uint64   `yaml:"bit_space" json:"bit_space"`     // Bit array length m (power of two recommended)
	Hashes     []string `yaml:"hashes" json:"hashes"`           // Hash function names, applied in order
	Bucket     string   `yaml:"bucket" json:"bucket"`           // Store key holding the bit array
	BatchLimit uint32   `yaml:"batch_limit" json:"batch_limit"` // Max items per Add (default 2000)
}

// withDefaults returns a copy with defaults applied. Hashes is copied so the
// caller's slice can change without affecting a built filter.
func (c Config) withDefaults() Config {
	if c.BatchLimit == 0 {
		c.BatchLimit = DefaultBatchLimit
	}
	c.Hashes = append([]string(nil), c.Hashes...)
	return c
}

// resolve validates the configuration and looks up every hash function.
// Names are rewritten to their canonical form.
func (c *Config) resolve() ([]HashFunc, error) {
	if c.Bucket == "" {
		return nil, fmt.Errorf("%w: bucket is empty", ErrInvalidConfig)
	}
	if c.BitSpace == 0 {
		return nil, fmt.Errorf("%w: bit space must be positive", ErrInvalidConfig)
	}
	if c.BitSpace > MaxBitSpace {
		return nil, fmt.Errorf("%w: bit space %d exceeds %d", ErrInvalidConfig, c.BitSpace, uint64(MaxBitSpace))
	}
	if len(c.Hashes) == 0 {
		return nil, fmt.Errorf("%w: no hash functions", ErrInvalidConfig)
	}

	fns := make([]HashFunc, len(c.Hashes))
	for i, name := range c.Hashes {
		canon := CanonicalHashName(name)
		if canon == "" {
			return nil, fmt.Errorf("%w: %w %q", ErrInvalidConfig, ErrUnknownHash, name)
		}
		c.Hashes[i] = canon
		fns[i] = registry[canon]
	}
	return fns, nil
}

// Validate reports whether c would be accepted by New.
func (c Config) Validate() error {
	c = c.withDefaults()
	_, err := c.resolve()
	return err
}
