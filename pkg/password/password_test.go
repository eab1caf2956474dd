package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	salt, hash, err := Hash("qwerty")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if salt == "" || hash == "" {
		t.Fatal("expected non-empty salt and hash")
	}

	if !Verify("qwerty", salt, hash) {
		t.Fatal("correct password must verify")
	}
	if Verify("qwertz", salt, hash) {
		t.Fatal("wrong password must not verify")
	}
	if Verify("qwerty", salt, hash+"00") {
		t.Fatal("tampered hash must not verify")
	}
}

func TestHashUsesFreshSalt(t *testing.T) {
	salt1, hash1, err := Hash("12345")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	salt2, hash2, err := Hash("12345")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if salt1 == salt2 {
		t.Fatal("two hashes of the same password must not share a salt")
	}
	if hash1 == hash2 {
		t.Fatal("different salts must produce different hashes")
	}
}

func TestHashDeterministicForSalt(t *testing.T) {
	if hashWith("12345", "aabbcc") != hashWith("12345", "aabbcc") {
		t.Fatal("same password and salt must produce the same hash")
	}
	if hashWith("12345", "aabbcc") == hashWith("12345", "ccbbaa") {
		t.Fatal("different salts must produce different hashes")
	}
}
