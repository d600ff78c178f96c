package auth

import "testing"

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("pw123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if hash == "pw123" {
		t.Fatal("hash must not equal plaintext")
	}

	if !VerifyPassword("pw123", hash) {
		t.Error("VerifyPassword rejected the correct password")
	}
	if VerifyPassword("wrong", hash) {
		t.Error("VerifyPassword accepted a wrong password")
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	h1, err := HashPassword("pw123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	h2, err := HashPassword("pw123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if h1 == h2 {
		t.Error("two hashes of the same password should differ")
	}
}

func TestVerifyPassword_InvalidHash(t *testing.T) {
	if VerifyPassword("pw123", "not-a-bcrypt-hash") {
		t.Error("VerifyPassword accepted a malformed hash")
	}
}
