package utils

import "testing"

func TestHashPasswordRoundTrip(t *testing.T) {
	hashed, err := HashPassword("hunter2secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hashed == "hunter2secret" {
		t.Fatal("password not hashed")
	}
	if !CheckPassword("hunter2secret", hashed) {
		t.Fatal("correct password rejected")
	}
	if CheckPassword("wrong-password", hashed) {
		t.Fatal("wrong password accepted")
	}
}
