package utils

import (
	"strings"
	"testing"

	"hireboard-backend/pkg/models"
)

func TestGenerateAndValidateTokenPair(t *testing.T) {
	service := NewJWTService("test-secret")
	user := &models.User{
		ID:        "u1",
		Email:     "u1@mail.test",
		Role:      models.RoleUser,
		CompanyID: "co-1",
	}

	access, refresh, expiresIn, err := service.GenerateTokenPair(user)
	if err != nil {
		t.Fatalf("GenerateTokenPair() error: %v", err)
	}
	if expiresIn == 0 {
		t.Error("expiresIn not set")
	}

	claims, err := service.ValidateToken(access)
	if err != nil {
		t.Fatalf("ValidateToken() error: %v", err)
	}
	if claims.UserID != "u1" || claims.Role != models.RoleUser || claims.CompanyID != "co-1" {
		t.Errorf("claims not carried: %+v", claims)
	}
	if claims.Type != "access" {
		t.Errorf("Type = %q, want access", claims.Type)
	}

	refreshClaims, err := service.ValidateRefreshToken(refresh)
	if err != nil {
		t.Fatalf("ValidateRefreshToken() error: %v", err)
	}
	if refreshClaims.Type != "refresh" {
		t.Errorf("refresh type = %q", refreshClaims.Type)
	}

	// An access token must not pass the refresh gate.
	if _, err := service.ValidateRefreshToken(access); err == nil {
		t.Error("ValidateRefreshToken accepted an access token")
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	access, _, _, err := NewJWTService("secret-a").GenerateTokenPair(&models.User{ID: "u1"})
	if err != nil {
		t.Fatalf("GenerateTokenPair() error: %v", err)
	}
	if _, err := NewJWTService("secret-b").ValidateToken(access); err == nil {
		t.Error("ValidateToken accepted a token signed with another secret")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	service := NewJWTService("test-secret")
	for _, token := range []string{"", "not-a-token", strings.Repeat("x", 64)} {
		if _, err := service.ValidateToken(token); err == nil {
			t.Errorf("ValidateToken(%q) accepted garbage", token)
		}
	}
}

func TestGenerateURLToken(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := GenerateURLToken(32)
		if err != nil {
			t.Fatalf("GenerateURLToken() error: %v", err)
		}
		if token == "" || seen[token] {
			t.Fatalf("token empty or repeated: %q", token)
		}
		if strings.ContainsAny(token, "+/=") {
			t.Errorf("token %q is not URL-safe", token)
		}
		seen[token] = true
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("supersecret")
	if err != nil {
		t.Fatalf("HashPassword() error: %v", err)
	}
	if hash == "supersecret" {
		t.Fatal("password stored in the clear")
	}
	if !CheckPassword(hash, "supersecret") {
		t.Error("CheckPassword rejected the right password")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("CheckPassword accepted the wrong password")
	}
}
