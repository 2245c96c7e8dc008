package serialization

import (
	"crypto/sha256"
	"hash"
)

// ChecksumSize is the size of the trailing SHA-256 checksum.
const ChecksumSize = sha256.Size

// ComputeChecksum computes the SHA-256 checksum of header and tensor data.
func ComputeChecksum(header, data []byte) [ChecksumSize]byte {
	h := newChecksum()
	h.Write(header)
	h.Write(data)
	var sum [ChecksumSize]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

// ValidateChecksum compares computed checksum against stored checksum.
// Returns ErrChecksumMismatch if they don't match.
func ValidateChecksum(computed, stored [ChecksumSize]byte) error {
	if computed != stored {
		return ErrChecksumMismatch
	}
	return nil
}

func newChecksum() hash.Hash {
	return sha256.New()
}
