package security

import (
	"testing"
)

func TestHasher_HashAndCompare(t *testing.T) {
	h := NewHasher(4)
	hash, err := h.Hash("secret123")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "" || hash == "secret123" {
		t.Fatalf("Hash returned %q", hash)
	}
	if err := h.Compare(hash, "secret123"); err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if err := h.Compare(hash, "wrong"); err == nil {
		t.Fatal("Compare with wrong password should fail")
	}
}

func TestHasher_Cost(t *testing.T) {
	if h := NewHasher(12); h.Cost != 12 {
		t.Errorf("Cost want 12, got %d", h.Cost)
	}
	if h := NewHasher(0); h.Cost < 4 {
		t.Errorf("zero cost should be clamped to at least MinCost, got %d", h.Cost)
	}
	if h := NewHasher(99); h.Cost != 31 {
		t.Errorf("cost should be clamped to MaxCost, got %d", h.Cost)
	}
}
