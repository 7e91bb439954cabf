// Package hash wraps the two digests used by the module: xxHash64 for frame
// integrity checks and Blake2b-256 for block header hashes.
package hash

import (
	"github.com/cespare/xxhash/v2"
	"golang.org/x/crypto/blake2b"
)

// Checksum computes the xxHash64 of data.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Blake2b256 computes the unkeyed 32-byte Blake2b digest of data.
func Blake2b256(data []byte) [32]byte {
	return blake2b.Sum256(data)
}
