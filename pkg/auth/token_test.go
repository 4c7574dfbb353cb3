package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stockyard-hq/stockyard-backend/pkg/config"
)

var testCfg = config.JWTConfig{
	Secret:            "test-secret",
	Issuer:            "stockyard-test",
	ExpirationMinutes: 15,
}

func TestMintAndParseAccessToken(t *testing.T) {
	userID := uuid.New()
	now := time.Now()

	token, err := MintAccessToken(testCfg, now, AccessTokenPayload{
		UserID:   userID,
		Username: "alice",
		JTI:      "session-1",
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	claims, err := ParseAccessToken(testCfg, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("expected user id %s, got %s", userID, claims.UserID)
	}
	if claims.Username != "alice" {
		t.Fatalf("expected username alice, got %s", claims.Username)
	}
	if claims.ID != "session-1" {
		t.Fatalf("expected jti session-1, got %s", claims.ID)
	}
	if claims.Issuer != testCfg.Issuer {
		t.Fatalf("expected issuer %s, got %s", testCfg.Issuer, claims.Issuer)
	}
}

func TestMintAccessTokenGeneratesJTI(t *testing.T) {
	token, err := MintAccessToken(testCfg, time.Now(), AccessTokenPayload{
		UserID:   uuid.New(),
		Username: "alice",
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	claims, err := ParseAccessToken(testCfg, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.ID == "" {
		t.Fatal("expected a generated jti")
	}
	if _, err := uuid.Parse(claims.ID); err != nil {
		t.Fatalf("expected uuid jti, got %q", claims.ID)
	}
}

func TestMintAccessTokenValidation(t *testing.T) {
	cases := []struct {
		name    string
		cfg     config.JWTConfig
		payload AccessTokenPayload
	}{
		{"missing secret", config.JWTConfig{Issuer: "i", ExpirationMinutes: 15}, AccessTokenPayload{UserID: uuid.New()}},
		{"missing issuer", config.JWTConfig{Secret: "s", ExpirationMinutes: 15}, AccessTokenPayload{UserID: uuid.New()}},
		{"zero expiry", config.JWTConfig{Secret: "s", Issuer: "i"}, AccessTokenPayload{UserID: uuid.New()}},
		{"nil user", testCfg, AccessTokenPayload{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := MintAccessToken(tc.cfg, time.Now(), tc.payload); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	token, err := MintAccessToken(testCfg, time.Now(), AccessTokenPayload{UserID: uuid.New(), Username: "alice"})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	other := testCfg
	other.Secret = "other-secret"
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Fatal("expected signature error")
	}
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	token, err := MintAccessToken(testCfg, past, AccessTokenPayload{UserID: uuid.New(), Username: "alice"})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	if _, err := ParseAccessToken(testCfg, token); err == nil {
		t.Fatal("expected expiry error")
	}
}

func TestParseAccessTokenAllowExpired(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	userID := uuid.New()
	token, err := MintAccessToken(testCfg, past, AccessTokenPayload{UserID: userID, Username: "alice", JTI: "stale-session"})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	claims, err := ParseAccessTokenAllowExpired(testCfg, token)
	if err != nil {
		t.Fatalf("parse expired: %v", err)
	}
	if claims.ID != "stale-session" {
		t.Fatalf("expected jti stale-session, got %s", claims.ID)
	}
	if claims.UserID != userID {
		t.Fatalf("expected user id %s, got %s", userID, claims.UserID)
	}
}
