package jwtutil

import (
	"testing"

	"recruiting-crm/internal/model"
	"recruiting-crm/pkg/config"
)

func TestGenerateAndValidateToken(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "test-secret", ExpirationHours: 168})

	token, err := GenerateToken(42, model.RoleAdmin)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("unexpected user_id: %d", claims.UserID)
	}
	if claims.Role != model.RoleAdmin {
		t.Fatalf("unexpected role: %s", claims.Role)
	}
}

func TestValidateTokenExpired(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "test-secret", ExpirationHours: -1})
	token, err := GenerateToken(7, model.RoleUser)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := ValidateToken(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestValidateTokenWrongKey(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "first-secret", ExpirationHours: 168})
	token, err := GenerateToken(7, model.RoleUser)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	Initialize(&config.JWTConfig{SigningKey: "second-secret", ExpirationHours: 168})
	if _, err := ValidateToken(token); err == nil {
		t.Fatal("expected token signed with another key to be rejected")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "test-secret", ExpirationHours: 168})
	if _, err := ValidateToken("not.a.token"); err == nil {
		t.Fatal("expected malformed token to be rejected")
	}
}
