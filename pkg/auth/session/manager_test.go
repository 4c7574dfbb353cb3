package session

import (
	"context"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"github.com/stockyard-hq/stockyard-backend/pkg/config"
)

type memoryStore struct {
	values map[string]string
	ttls   map[string]time.Duration
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memoryStore) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	m.values[key] = value.(string)
	m.ttls[key] = ttl
	return nil
}

func (m *memoryStore) Get(_ context.Context, key string) (string, error) {
	if v, ok := m.values[key]; ok {
		return v, nil
	}
	return "", redislib.Nil
}

func (m *memoryStore) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.values, k)
		delete(m.ttls, k)
	}
	return nil
}

type fixedKeyer struct{}

func (fixedKeyer) AccessSessionKey(accessID string) string { return "sy:session:access:" + accessID }

func newTestManager(store *memoryStore) *Manager {
	return &Manager{store: store, keyer: fixedKeyer{}, ttl: time.Hour}
}

func TestNewManagerRequiresClient(t *testing.T) {
	cfg := config.JWTConfig{ExpirationMinutes: 60, RefreshTokenTTLMinutes: 30}
	if _, err := NewManager(nil, cfg); err == nil {
		t.Fatal("expected error for nil client")
	}
}

func TestGenerateStoresSessionWithTTL(t *testing.T) {
	store := newMemoryStore()
	mgr := newTestManager(store)

	token, err := mgr.Generate(context.Background(), "access-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if token == "" {
		t.Fatal("expected a session token")
	}

	key := fixedKeyer{}.AccessSessionKey("access-1")
	if store.values[key] != token {
		t.Fatalf("expected stored token %q, got %q", token, store.values[key])
	}
	if store.ttls[key] != time.Hour {
		t.Fatalf("expected ttl 1h, got %s", store.ttls[key])
	}
}

func TestGenerateRequiresAccessID(t *testing.T) {
	mgr := newTestManager(newMemoryStore())
	if _, err := mgr.Generate(context.Background(), "  "); err == nil {
		t.Fatal("expected error for blank access id")
	}
}

func TestRevokeDeletesSession(t *testing.T) {
	store := newMemoryStore()
	mgr := newTestManager(store)

	if _, err := mgr.Generate(context.Background(), "access-1"); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if err := mgr.Revoke(context.Background(), "access-1"); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if len(store.values) != 0 {
		t.Fatalf("expected empty store, got %d entries", len(store.values))
	}
}

func TestHasSession(t *testing.T) {
	store := newMemoryStore()
	mgr := newTestManager(store)

	live, err := mgr.HasSession(context.Background(), "access-1")
	if err != nil {
		t.Fatalf("has session: %v", err)
	}
	if live {
		t.Fatal("expected no session before generate")
	}

	if _, err := mgr.Generate(context.Background(), "access-1"); err != nil {
		t.Fatalf("generate: %v", err)
	}

	live, err = mgr.HasSession(context.Background(), "access-1")
	if err != nil {
		t.Fatalf("has session: %v", err)
	}
	if !live {
		t.Fatal("expected live session after generate")
	}
}

func TestSessionTokensAreUnique(t *testing.T) {
	mgr := newTestManager(newMemoryStore())

	first, err := mgr.Generate(context.Background(), "access-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, err := mgr.Generate(context.Background(), "access-2")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct session tokens")
	}
}
