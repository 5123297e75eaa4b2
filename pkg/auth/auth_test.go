package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/HuiyanRoy/GomokuMaster/internal/config"
	"github.com/HuiyanRoy/GomokuMaster/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

func setupConfig(t *testing.T, ttl time.Duration) {
	t.Helper()
	prev := config.AppConfig
	config.AppConfig = &config.Config{JWTSecret: "test-secret", AccessTokenTTL: ttl}
	t.Cleanup(func() { config.AppConfig = prev })
}

func TestAccessTokenRoundTrip(t *testing.T) {
	setupConfig(t, time.Hour)

	token, expiresAt, err := GenerateAccessToken(7, "alice", "sess-1")
	if err != nil {
		t.Fatal(err)
	}
	if time.Until(expiresAt) <= 59*time.Minute {
		t.Fatalf("expiry too early: %v", expiresAt)
	}

	claims, err := ValidateAccessToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != 7 || claims.Username != "alice" || claims.SessionID != "sess-1" {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if r := claims.Remaining(); r <= 0 || r > time.Hour {
		t.Fatalf("remaining %v", r)
	}
}

func TestAccessTokenRejectsTamperingAndExpiry(t *testing.T) {
	setupConfig(t, time.Hour)
	token, _, err := GenerateAccessToken(1, "bob", "s")
	if err != nil {
		t.Fatal(err)
	}

	config.AppConfig.JWTSecret = "other-secret"
	if _, err := ValidateAccessToken(token); err == nil {
		t.Fatal("token signed with another secret must be rejected")
	}

	config.AppConfig.JWTSecret = "test-secret"
	config.AppConfig.AccessTokenTTL = -time.Minute
	expired, _, err := GenerateAccessToken(1, "bob", "s")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ValidateAccessToken(expired); err == nil {
		t.Fatal("expired token must be rejected")
	}

	if _, err := ValidateAccessToken("not.a.jwt"); err == nil {
		t.Fatal("garbage must be rejected")
	}
}

func TestPasswordHashing(t *testing.T) {
	BcryptCost = bcrypt.MinCost

	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatal(err)
	}
	if !CheckPasswordHash("hunter22", hash) {
		t.Fatal("correct password rejected")
	}
	if CheckPasswordHash("hunter23", hash) {
		t.Fatal("wrong password accepted")
	}
}

func TestValidateCredentials(t *testing.T) {
	tests := []struct {
		username, password string
		want               error
	}{
		{"alice", "secret", nil},
		{"  bob  ", "secret", nil},
		{"al", "secret", domain.ErrInvalidUsername},
		{strings.Repeat("x", 51), "secret", domain.ErrInvalidUsername},
		{"Computer", "secret", domain.ErrReservedUsername},
		{"carol", "12345", domain.ErrWeakPassword},
	}
	for _, tc := range tests {
		_, err := ValidateCredentials(tc.username, tc.password)
		if !errors.Is(err, tc.want) {
			t.Errorf("ValidateCredentials(%q, %q) = %v, want %v", tc.username, tc.password, err, tc.want)
		}
	}

	if name, _ := ValidateCredentials("  bob  ", "secret"); name != "bob" {
		t.Fatalf("username should be trimmed, got %q", name)
	}
}
