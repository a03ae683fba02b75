package service

import "testing"

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	hasher := NewBcryptHasher(4) // min cost keeps the test fast

	hash, err := hasher.Hash("s3cret")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if hash == "s3cret" {
		t.Fatalf("hash must not equal the plaintext")
	}

	if !hasher.Verify("s3cret", hash) {
		t.Fatalf("expected password to verify against its own hash")
	}
	if hasher.Verify("wrong", hash) {
		t.Fatalf("wrong password must not verify")
	}
}

func TestBcryptHasher_SaltedHashesDiffer(t *testing.T) {
	hasher := NewBcryptHasher(4)

	h1, err := hasher.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	h2, err := hasher.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	if h1 == h2 {
		t.Fatalf("two hashes of the same password should differ")
	}
	if !hasher.Verify("same-password", h1) || !hasher.Verify("same-password", h2) {
		t.Fatalf("both hashes must verify independently")
	}
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	hasher := NewBcryptHasher(4)

	for _, malformed := range []string{"", "plainly-not-a-hash", "$2a$broken"} {
		if hasher.Verify("anything", malformed) {
			t.Fatalf("malformed hash %q must not verify", malformed)
		}
	}
}
