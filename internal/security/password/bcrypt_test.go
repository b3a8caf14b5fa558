package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	h := NewHasher(4) // min cost keeps the test fast

	digest, err := h.Hash("s3cret-pass")
	if err != nil {
		t.Fatalf("Hash err: %v", err)
	}
	if digest == "" || digest == "s3cret-pass" {
		t.Fatalf("suspicious digest %q", digest)
	}
	if !h.Verify("s3cret-pass", digest) {
		t.Fatalf("correct password did not verify")
	}
	if h.Verify("wrong-pass", digest) {
		t.Fatalf("wrong password verified")
	}
}

func TestHashRejectsEmpty(t *testing.T) {
	h := NewHasher(4)
	if _, err := h.Hash(""); err == nil {
		t.Fatalf("expected error for empty password")
	}
}

func TestEmptyDigestNeverVerifies(t *testing.T) {
	h := NewHasher(4)
	if h.Verify("", "") {
		t.Fatalf("empty digest verified empty password")
	}
	if h.Verify("anything", "") {
		t.Fatalf("empty digest verified a password")
	}
}

func TestNewHasherClampsCost(t *testing.T) {
	if h := NewHasher(99); h.Cost != DefaultCost {
		t.Fatalf("out-of-range cost not clamped: %d", h.Cost)
	}
	if h := NewHasher(0); h.Cost != DefaultCost {
		t.Fatalf("zero cost not clamped: %d", h.Cost)
	}
}
