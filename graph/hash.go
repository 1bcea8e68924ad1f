package graph

import (
	"github.com/minio/highwayhash"
)

var fingerprintKey = []byte("0123456789ABCDEF0123456789ABCDEF")

// Fingerprint returns a stable 64-bit hash of a signature string. Two nodes
// with equal fingerprints are treated as signature-compatible.
func Fingerprint(signature string) uint64 {
	hash, err := highwayhash.New64(fingerprintKey)
	if err != nil {
		// the key is a compile-time constant of valid length
		return 0
	}
	_, _ = hash.Write([]byte(signature))
	return hash.Sum64()
}
