package util

import "testing"

func TestHashScopeKeyStable(t *testing.T) {
	a := HashScopeKey("pos-1")
	b := HashScopeKey("pos-1")
	if a != b {
		t.Fatalf("hash not stable: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
	if a == HashScopeKey("pos-2") {
		t.Fatal("different inputs produced the same hash")
	}
}

func TestSanitizeFileName(t *testing.T) {
	if _, err := SanitizeFileName("../evil.pdf"); err == nil {
		t.Fatal("expected traversal rejection")
	}
	if _, err := SanitizeFileName("   "); err == nil {
		t.Fatal("expected empty rejection")
	}
	got, err := SanitizeFileName("a/b\\c.pdf")
	if err != nil {
		t.Fatalf("sanitize: %v", err)
	}
	if got != "a_b_c.pdf" {
		t.Fatalf("got %q", got)
	}
}
