package project

import (
	"crypto/sha256"
)

// Digest is a SHA-256 sum, the same shape as source.File.Hash.
type Digest [32]byte

// DigestBytes hashes data.
func DigestBytes(data []byte) Digest {
	return sha256.Sum256(data)
}

// Combine hashes content followed by deps. The order of deps matters.
func Combine(content Digest, deps ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range deps {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
