package middleware

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestVerifyJWT(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	signed := signToken(t, "test-secret", jwt.MapClaims{
		"uuid": "user-123",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	claims, err := VerifyJWT(signed)
	if err != nil {
		t.Fatalf("VerifyJWT returned error: %v", err)
	}
	if claims["uuid"] != "user-123" {
		t.Errorf("uuid claim = %v, want user-123", claims["uuid"])
	}
}

func TestVerifyJWTRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	signed := signToken(t, "other-secret", jwt.MapClaims{
		"uuid": "user-123",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	if _, err := VerifyJWT(signed); err == nil {
		t.Fatal("token signed with the wrong secret was accepted")
	}
}

func TestVerifyJWTRejectsExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	signed := signToken(t, "test-secret", jwt.MapClaims{
		"uuid": "user-123",
		"exp":  time.Now().Add(-time.Hour).Unix(),
	})

	if _, err := VerifyJWT(signed); err == nil {
		t.Fatal("expired token was accepted")
	}
}
