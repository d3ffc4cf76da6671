package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"vendora/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)
	userID := uuid.New()

	raw, err := tokens.Generate(userID, models.RoleSeller)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	claims, err := tokens.Validate(raw)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("user id = %s, want %s", claims.UserID, userID)
	}
	if claims.Role != models.RoleSeller {
		t.Errorf("role = %q, want seller", claims.Role)
	}
}

func TestTokenExpired(t *testing.T) {
	tokens := NewTokens("test-secret", -time.Minute)
	raw, err := tokens.Generate(uuid.New(), models.RoleBuyer)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := tokens.Validate(raw); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestTokenWrongSecret(t *testing.T) {
	raw, err := NewTokens("secret-a", time.Hour).Generate(uuid.New(), models.RoleBuyer)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := NewTokens("secret-b", time.Hour).Validate(raw); err == nil {
		t.Error("expected error for token signed with a different secret")
	}
}

func TestTokenGarbage(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)
	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := tokens.Validate(raw); err == nil {
			t.Errorf("expected error for %q", raw)
		}
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Error("hash equals plain text")
	}
	if !CheckPassword(hash, "s3cret-pass") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("wrong password accepted")
	}
}
