package util

import (
	"path/filepath"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	if _, err := SanitizeFilename("../../../etc/passwd"); err != nil {
		t.Errorf("SanitizeFilename should strip traversal, got error: %v", err)
	}
	got, err := SanitizeFilename("dir/photo.png")
	if err != nil {
		t.Fatalf("SanitizeFilename error: %v", err)
	}
	if got != "photo.png" {
		t.Errorf("SanitizeFilename = %q; want photo.png", got)
	}

	for _, bad := range []string{"", ".", ".."} {
		if _, err := SanitizeFilename(bad); err == nil {
			t.Errorf("SanitizeFilename(%q) should fail", bad)
		}
	}
}

func TestValidatePathWithinBase(t *testing.T) {
	base := t.TempDir()

	if err := ValidatePathWithinBase(base, filepath.Join(base, "banners", "a.webp")); err != nil {
		t.Errorf("path inside base rejected: %v", err)
	}
	if err := ValidatePathWithinBase(base, filepath.Join(base, "..", "escape")); err == nil {
		t.Error("path escaping base was accepted")
	}
	if err := ValidatePathWithinBase(base, base+"-evil/file"); err == nil {
		t.Error("sibling dir with shared prefix was accepted")
	}
}

func TestSafeJoinPath(t *testing.T) {
	base := t.TempDir()

	p, err := SafeJoinPath(base, "banners", "b.jpg")
	if err != nil {
		t.Fatalf("SafeJoinPath error: %v", err)
	}
	if p != filepath.Join(base, "banners", "b.jpg") {
		t.Errorf("SafeJoinPath = %q", p)
	}

	if _, err := SafeJoinPath(base, "..", "..", "etc"); err == nil {
		t.Error("SafeJoinPath should reject traversal")
	}
}
