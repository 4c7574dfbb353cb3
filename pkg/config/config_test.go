package config

import (
	"strings"
	"testing"
	"time"
)

func TestEnsureDSNKeepsExplicitValue(t *testing.T) {
	cfg := DBConfig{DSN: "postgres://app:pw@db:5432/stockyard?sslmode=disable"}
	if err := cfg.ensureDSN(); err != nil {
		t.Fatalf("ensureDSN: %v", err)
	}
	if cfg.DSN != "postgres://app:pw@db:5432/stockyard?sslmode=disable" {
		t.Fatalf("DSN was rewritten: %s", cfg.DSN)
	}
}

func TestEnsureDSNBuildsFromLegacyVars(t *testing.T) {
	cfg := DBConfig{
		LegacyHost:     "db.internal",
		LegacyPort:     5432,
		LegacyUser:     "app",
		LegacyPassword: "pw",
		LegacyName:     "stockyard",
		LegacySSLMode:  "require",
	}
	if err := cfg.ensureDSN(); err != nil {
		t.Fatalf("ensureDSN: %v", err)
	}
	want := "postgres://app:pw@db.internal:5432/stockyard?sslmode=require"
	if cfg.DSN != want {
		t.Fatalf("expected %s, got %s", want, cfg.DSN)
	}
}

func TestEnsureDSNWithoutPassword(t *testing.T) {
	cfg := DBConfig{
		LegacyHost: "localhost",
		LegacyPort: 5432,
		LegacyUser: "app",
		LegacyName: "stockyard",
	}
	if err := cfg.ensureDSN(); err != nil {
		t.Fatalf("ensureDSN: %v", err)
	}
	if strings.Contains(cfg.DSN, ":@") {
		t.Fatalf("DSN should not carry an empty password: %s", cfg.DSN)
	}
}

func TestEnsureDSNReportsMissingVars(t *testing.T) {
	cfg := DBConfig{LegacyHost: "localhost"}
	err := cfg.ensureDSN()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, name := range []string{EnvDBUser, EnvDBName} {
		if !strings.Contains(err.Error(), name) {
			t.Fatalf("expected %s in error, got: %v", name, err)
		}
	}
}

func TestAppConfigEnvChecks(t *testing.T) {
	if !(AppConfig{Env: "dev"}).IsDev() {
		t.Fatal("dev should be dev")
	}
	if !(AppConfig{Env: "DEV"}).IsDev() {
		t.Fatal("env check should be case-insensitive")
	}
	if (AppConfig{Env: "prod"}).IsDev() {
		t.Fatal("prod is not dev")
	}
	if !(AppConfig{Env: "prod"}).IsProd() {
		t.Fatal("prod should be prod")
	}
}

func TestRefreshTokenTTL(t *testing.T) {
	cfg := JWTConfig{RefreshTokenTTLMinutes: 90}
	if got := cfg.RefreshTokenTTL(); got != 90*time.Minute {
		t.Fatalf("expected 90m, got %s", got)
	}
	if got := (JWTConfig{}).RefreshTokenTTL(); got != 0 {
		t.Fatalf("expected 0 for unset ttl, got %s", got)
	}
}
