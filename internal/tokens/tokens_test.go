package tokens

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const secret = "test-secret-32-bytes-should-be-long-enough"

func TestGenerateAccessToken_ValidAndClaims(t *testing.T) {
	tokenStr, err := GenerateAccessToken(secret, "user-123", 2*time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}

	parsed, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatalf("claims type assertion failed")
	}
	if claims["sub"] != "user-123" {
		t.Fatalf("unexpected sub claim: %v", claims["sub"])
	}
}

func TestGenerateAccessToken_EmptySecret(t *testing.T) {
	if _, err := GenerateAccessToken("", "u", time.Minute); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}

func TestHMACVerifier(t *testing.T) {
	tokenStr, err := GenerateAccessToken(secret, "user-9", time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}
	tok, err := NewHMACVerifier(secret).Verify(context.Background(), tokenStr)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	var claims map[string]interface{}
	if err := tok.Claims(&claims); err != nil {
		t.Fatalf("claims: %v", err)
	}
	if claims["sub"] != "user-9" {
		t.Fatalf("unexpected sub claim: %v", claims["sub"])
	}

	if _, err := NewHMACVerifier("some-other-secret").Verify(context.Background(), tokenStr); err == nil {
		t.Fatalf("expected verification with the wrong secret to fail")
	}
}

func TestHMACVerifier_Expired(t *testing.T) {
	tokenStr, err := GenerateAccessToken(secret, "u2", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}
	if _, err := NewHMACVerifier(secret).Verify(context.Background(), tokenStr); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}
