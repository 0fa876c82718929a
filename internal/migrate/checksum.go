package migrate

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ChecksumDir fingerprints an entire content tree with one sha256
// digest. Entries are visited in lexicographic order per directory;
// each entry contributes its name followed by either its raw bytes
// (files) or its own digest as a lowercase hex string (directories).
// Timestamps, permissions and filesystem ordering never influence the
// result, so byte-identical trees hash identically on any host, while
// any content change, added/removed file or rename changes the digest.
func ChecksumDir(root string) (string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", fmt.Errorf("read dir %s: %w", root, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	h := sha256.New()
	for _, entry := range entries {
		full := filepath.Join(root, entry.Name())
		h.Write([]byte(entry.Name()))
		if entry.IsDir() {
			sub, err := ChecksumDir(full)
			if err != nil {
				return "", err
			}
			h.Write([]byte(sub))
			continue
		}
		content, err := os.ReadFile(full)
		if err != nil {
			return "", fmt.Errorf("read file %s: %w", full, err)
		}
		h.Write(content)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
