package auth

import (
	"testing"
	"time"

	"card-advisor/internal/config"
)

func TestTokenRoundTrip(t *testing.T) {
	ts := NewTokenService(config.Config{JWTSecret: "test-secret", JWTExpiresIn: time.Hour})

	token, err := ts.GenerateToken(42)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	userID, err := ts.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if userID != 42 {
		t.Errorf("userID = %d, want 42", userID)
	}
}

func TestParseToken_Rejects(t *testing.T) {
	ts := NewTokenService(config.Config{JWTSecret: "test-secret", JWTExpiresIn: time.Hour})
	other := NewTokenService(config.Config{JWTSecret: "other-secret", JWTExpiresIn: time.Hour})
	expired := NewTokenService(config.Config{JWTSecret: "test-secret", JWTExpiresIn: -time.Hour})

	foreign, _ := other.GenerateToken(1)
	stale, _ := expired.GenerateToken(1)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "wrong secret", token: foreign},
		{name: "expired", token: stale},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ts.ParseToken(tt.token); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := ts.GenerateToken(0); err == nil {
		t.Error("GenerateToken(0) should fail")
	}
}
