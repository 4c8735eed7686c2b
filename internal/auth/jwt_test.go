package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndValidateToken(t *testing.T) {
	secret := "test-secret-key"

	token, err := GenerateToken(secret, 1, "ana@example.com")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := ValidateToken(secret, token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}

	if claims.UserID != 1 {
		t.Errorf("expected user_id 1, got %d", claims.UserID)
	}
	if claims.Email != "ana@example.com" {
		t.Errorf("expected email 'ana@example.com', got %q", claims.Email)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, _ := GenerateToken("secret1", 1, "ana@example.com")

	_, err := ValidateToken("secret2", token)
	if err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestValidateTokenInvalid(t *testing.T) {
	_, err := ValidateToken("secret", "not-a-token")
	if err == nil {
		t.Error("expected error for invalid token")
	}
}

func TestExpiresAt(t *testing.T) {
	token, _ := GenerateToken("test", 1, "ana@example.com")

	exp, ok := ExpiresAt(token)
	if !ok {
		t.Fatal("expected exp claim")
	}
	diff := time.Until(exp) - TokenExpiry
	if diff < -5*time.Second || diff > 5*time.Second {
		t.Errorf("token expiry too far from expected: diff=%v", diff)
	}

	if _, ok := ExpiresAt("opaque-token"); ok {
		t.Error("expected ok=false for non-JWT token")
	}

	noExp, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "x"}).SignedString([]byte("k"))
	if _, ok := ExpiresAt(noExp); ok {
		t.Error("expected ok=false for token without exp")
	}
}
