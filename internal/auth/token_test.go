package auth

import (
	"errors"
	"testing"
	"time"
)

func TestGeneratePairAndValidate(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour, 24*time.Hour)

	pair, err := svc.GeneratePair(42, "ada@example.com", "user")
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("empty token in pair")
	}

	claims, err := svc.Validate(pair.AccessToken)
	if err != nil {
		t.Fatalf("validate access token: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "ada@example.com" || claims.Role != "user" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestValidateRejectsExpired(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute, 24*time.Hour)

	pair, err := svc.GeneratePair(1, "ada@example.com", "user")
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}
	if _, err := svc.Validate(pair.AccessToken); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected expired token error, got %v", err)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	signer := NewTokenService("secret-a", time.Hour, 24*time.Hour)
	verifier := NewTokenService("secret-b", time.Hour, 24*time.Hour)

	pair, err := signer.GeneratePair(1, "ada@example.com", "user")
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}
	if _, err := verifier.Validate(pair.AccessToken); err == nil {
		t.Fatal("token signed with another secret must not validate")
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour, 24*time.Hour)
	if _, err := svc.Validate("not.a.jwt"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
