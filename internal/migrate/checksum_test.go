package migrate

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", rel, err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func buildTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "registry.json", `{"modules":[]}`)
	writeFile(t, root, "lessons/go-basics.json", `[{"title":"Hello"}]`)
	writeFile(t, root, "quizzes/go-basics.json", `{"questions":[]}`)
	return root
}

func TestChecksumDir_Deterministic(t *testing.T) {
	a := buildTree(t)
	b := buildTree(t)

	ca, err := ChecksumDir(a)
	if err != nil {
		t.Fatalf("ChecksumDir(a): %v", err)
	}
	cb, err := ChecksumDir(b)
	if err != nil {
		t.Fatalf("ChecksumDir(b): %v", err)
	}
	if ca != cb {
		t.Fatalf("identical trees produced different checksums: %s vs %s", ca, cb)
	}
	if len(ca) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(ca))
	}

	again, err := ChecksumDir(a)
	if err != nil {
		t.Fatalf("ChecksumDir(a) again: %v", err)
	}
	if again != ca {
		t.Fatalf("re-hashing the same tree changed the checksum")
	}
}

func TestChecksumDir_SingleByteChange(t *testing.T) {
	a := buildTree(t)
	b := buildTree(t)
	writeFile(t, b, "lessons/go-basics.json", `[{"title":"Hellp"}]`)

	ca, err := ChecksumDir(a)
	if err != nil {
		t.Fatalf("ChecksumDir(a): %v", err)
	}
	cb, err := ChecksumDir(b)
	if err != nil {
		t.Fatalf("ChecksumDir(b): %v", err)
	}
	if ca == cb {
		t.Fatalf("one-byte change did not change the checksum")
	}
}

func TestChecksumDir_AddedFile(t *testing.T) {
	a := buildTree(t)
	b := buildTree(t)
	writeFile(t, b, "lessons/extra.json", `[]`)

	ca, _ := ChecksumDir(a)
	cb, _ := ChecksumDir(b)
	if ca == cb {
		t.Fatalf("added file did not change the checksum")
	}
}

func TestChecksumDir_Rename(t *testing.T) {
	a := buildTree(t)
	b := buildTree(t)
	if err := os.Rename(filepath.Join(b, "lessons/go-basics.json"), filepath.Join(b, "lessons/go-basic.json")); err != nil {
		t.Fatalf("rename: %v", err)
	}

	ca, _ := ChecksumDir(a)
	cb, _ := ChecksumDir(b)
	if ca == cb {
		t.Fatalf("rename did not change the checksum")
	}
}

func TestChecksumDir_MissingRoot(t *testing.T) {
	if _, err := ChecksumDir(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatalf("expected error for missing root")
	}
}
