package utils

import (
	"testing"
	"time"
)

func TestTokenManagerAccessTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)

	token, err := m.GenerateToken(7, "alice@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != 7 || claims.Email != "alice@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.Subject != "alice@example.com" {
		t.Fatalf("expected email as subject, got %q", claims.Subject)
	}
}

func TestTokenManagerRejectsCrossTypeTokens(t *testing.T) {
	m := NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)

	access, err := m.GenerateToken(7, "alice@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	refresh, err := m.GenerateRefreshToken(7, "alice@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := m.ParseRefreshToken(access); err == nil {
		t.Fatal("access token accepted as refresh token")
	}
	if _, err := m.ParseToken(refresh); err == nil {
		t.Fatal("refresh token accepted as access token")
	}
}

func TestTokenManagerRejectsExpiredToken(t *testing.T) {
	m := NewTokenManager("access-secret", "refresh-secret", -time.Minute, time.Hour)

	token, err := m.GenerateToken(7, "alice@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := m.ParseToken(token); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestTokenManagerRejectsForeignSecret(t *testing.T) {
	issuer := NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	verifier := NewTokenManager("other-secret", "other-refresh", time.Minute, time.Hour)

	token, err := issuer.GenerateToken(7, "alice@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := verifier.ParseToken(token); err == nil {
		t.Fatal("token signed with a different secret accepted")
	}
}
