package services

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// digestBlockSize is the read block size used when hashing. Files are
// never loaded whole into memory.
const digestBlockSize = 64 * 1024

// DigestFile computes the SHA-256 content digest of the file at path,
// returned as lowercase hex. Identical bytes always produce identical
// digests, so the digest can name the cached extraction object even when
// the source file moves. An unreadable file is fatal for that single
// document, not for the run.
func DigestFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open for hashing: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, digestBlockSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
