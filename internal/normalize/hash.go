package normalize

import (
	"crypto/sha256"
	"fmt"
	"hash"
	"io"
	"os"
)

// FileHash computes the hex-encoded SHA-256 of the file at path.
func FileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file for hash: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// HashingReader hashes every byte read through it, so a source can be
// fingerprinted in the same pass that parses it.
type HashingReader struct {
	r io.Reader
	h hash.Hash
}

// NewHashingReader wraps r with a SHA-256 accumulator.
func NewHashingReader(r io.Reader) *HashingReader {
	return &HashingReader{r: r, h: sha256.New()}
}

func (hr *HashingReader) Read(p []byte) (int, error) {
	n, err := hr.r.Read(p)
	hr.h.Write(p[:n])
	return n, err
}

// Sum returns the hex digest of the bytes read so far.
func (hr *HashingReader) Sum() string {
	return fmt.Sprintf("%x", hr.h.Sum(nil))
}
