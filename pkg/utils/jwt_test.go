package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	config := JWTConfig{Secret: "test-secret", ExpiryHours: 1}
	userID := uuid.New()

	token, expiresAt, err := GenerateAccessToken(config, userID, "reader", "user")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Error("token already expired at mint time")
	}

	claims, err := ParseAccessToken(config, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != userID.String() {
		t.Errorf("user_id = %s, want %s", claims.UserID, userID)
	}
	if claims.Username != "reader" || claims.Role != "user" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestAccessTokenWrongSecret(t *testing.T) {
	token, _, err := GenerateAccessToken(JWTConfig{Secret: "secret-a", ExpiryHours: 1}, uuid.New(), "reader", "user")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := ParseAccessToken(JWTConfig{Secret: "secret-b"}, token); err == nil {
		t.Error("token accepted with wrong secret")
	}
}

func TestAccessTokenExpired(t *testing.T) {
	config := JWTConfig{Secret: "test-secret", ExpiryHours: -1}

	token, _, err := GenerateAccessToken(config, uuid.New(), "reader", "user")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := ParseAccessToken(config, token); err == nil {
		t.Error("expired token accepted")
	}
}

func TestGenerateAccessTokenRequiresSecret(t *testing.T) {
	if _, _, err := GenerateAccessToken(JWTConfig{}, uuid.New(), "reader", "user"); err == nil {
		t.Error("token minted without a secret")
	}
}

func TestAccessTokenGarbageInput(t *testing.T) {
	if _, err := ParseAccessToken(JWTConfig{Secret: "s"}, "not.a.jwt"); err == nil {
		t.Error("garbage token accepted")
	}
}
