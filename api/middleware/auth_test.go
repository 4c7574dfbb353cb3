package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stockyard-hq/stockyard-backend/pkg/auth"
	"github.com/stockyard-hq/stockyard-backend/pkg/config"
	"github.com/stockyard-hq/stockyard-backend/pkg/logger"
)

var testJWTConfig = config.JWTConfig{
	Secret:            "test-secret",
	Issuer:            "stockyard-test",
	ExpirationMinutes: 15,
}

type stubSessionChecker struct {
	live map[string]bool
	err  error
}

func (s *stubSessionChecker) HasSession(_ context.Context, accessID string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.live[accessID], nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func mintTestToken(t *testing.T, userID uuid.UUID, jti string) string {
	t.Helper()
	token, err := auth.MintAccessToken(testJWTConfig, time.Now(), auth.AccessTokenPayload{
		UserID:   userID,
		Username: "alice",
		JTI:      jti,
	})
	require.NoError(t, err)
	return token
}

func TestAuthenticatedBindsIdentity(t *testing.T) {
	userID := uuid.New()
	sessions := &stubSessionChecker{live: map[string]bool{"session-1": true}}

	var gotUserID uuid.UUID
	var gotUsername, gotAccessID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = UserIDFromContext(r.Context())
		gotUsername = UsernameFromContext(r.Context())
		gotAccessID = AccessIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/user_auth/show_user/", nil)
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t, userID, "session-1"))

	Authenticated(testJWTConfig, sessions, testLogger())(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, userID, gotUserID)
	require.Equal(t, "alice", gotUsername)
	require.Equal(t, "session-1", gotAccessID)
}

func TestAuthenticatedRejectsMissingHeader(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	Authenticated(testJWTConfig, &stubSessionChecker{}, testLogger())(next).ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticatedRejectsBadScheme(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic abc123")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})
	Authenticated(testJWTConfig, &stubSessionChecker{}, testLogger())(next).ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticatedRejectsForgedToken(t *testing.T) {
	other := testJWTConfig
	other.Secret = "other-secret"
	forged, err := auth.MintAccessToken(other, time.Now(), auth.AccessTokenPayload{UserID: uuid.New(), Username: "mallory", JTI: "x"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+forged)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})
	Authenticated(testJWTConfig, &stubSessionChecker{}, testLogger())(next).ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticatedRejectsRevokedSession(t *testing.T) {
	sessions := &stubSessionChecker{live: map[string]bool{}}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t, uuid.New(), "revoked-session"))

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})
	Authenticated(testJWTConfig, sessions, testLogger())(next).ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
