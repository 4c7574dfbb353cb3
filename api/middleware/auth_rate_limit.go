package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/stockyard-hq/stockyard-backend/api/responses"
	"github.com/stockyard-hq/stockyard-backend/pkg/config"
	pkgerrors "github.com/stockyard-hq/stockyard-backend/pkg/errors"
	"github.com/stockyard-hq/stockyard-backend/pkg/logger"
	"github.com/stockyard-hq/stockyard-backend/pkg/redis"
)

const maxAuthBodyBytes = 1 << 16

// AuthRateLimitPolicy is a fixed-window limit applied per client IP and per
// submitted username.
type AuthRateLimitPolicy struct {
	Name          string
	Window        time.Duration
	IPLimit       int
	UsernameLimit int
}

// LoginRateLimitPolicy builds the policy guarding the login endpoint.
func LoginRateLimitPolicy(cfg config.AuthRateLimitConfig) AuthRateLimitPolicy {
	return AuthRateLimitPolicy{
		Name:          "login",
		Window:        cfg.LoginWindow,
		IPLimit:       cfg.LoginIPLimit,
		UsernameLimit: cfg.LoginUsernameLimit,
	}
}

// RegisterRateLimitPolicy builds the policy guarding the register endpoint.
func RegisterRateLimitPolicy(cfg config.AuthRateLimitConfig) AuthRateLimitPolicy {
	return AuthRateLimitPolicy{
		Name:          "register",
		Window:        cfg.RegisterWindow,
		IPLimit:       cfg.RegisterIPLimit,
		UsernameLimit: cfg.RegisterUsernameLimit,
	}
}

// AuthRateLimit throttles credential endpoints with per-IP and per-username
// counters. The body is re-wrapped so the handler can still decode it. Redis
// failures fail open so an outage does not lock everyone out.
func AuthRateLimit(client *redis.Client, policy AuthRateLimitPolicy, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if client == nil || policy.Window <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()

			if policy.IPLimit > 0 {
				scope := policy.Name + ":ip:" + clientIP(r)
				allowed, _, err := client.FixedWindowAllow(ctx, scope, int64(policy.IPLimit), policy.Window)
				if err != nil {
					if logg != nil {
						logg.Warn(logg.WithField(ctx, "limiter", policy.Name), "rate limit check failed, allowing request")
					}
				} else if !allowed {
					respondRateLimited(ctx, logg, w)
					return
				}
			}

			if policy.UsernameLimit > 0 {
				username, body, err := peekUsername(r)
				if err == nil && username != "" {
					scope := policy.Name + ":username:" + hashIdentifier(username)
					allowed, _, err := client.FixedWindowAllow(ctx, scope, int64(policy.UsernameLimit), policy.Window)
					if err != nil {
						if logg != nil {
							logg.Warn(logg.WithField(ctx, "limiter", policy.Name), "rate limit check failed, allowing request")
						}
					} else if !allowed {
						respondRateLimited(ctx, logg, w)
						return
					}
				}
				if body != nil {
					r.Body = io.NopCloser(bytes.NewReader(body))
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func peekUsername(r *http.Request) (string, []byte, error) {
	if r.Body == nil {
		return "", nil, nil
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxAuthBodyBytes))
	if err != nil {
		return "", nil, err
	}
	r.Body.Close()

	var probe struct {
		Username string `json:"username"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return "", body, err
	}
	return strings.ToLower(strings.TrimSpace(probe.Username)), body, nil
}

func hashIdentifier(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

func respondRateLimited(ctx context.Context, logg *logger.Logger, w http.ResponseWriter) {
	responses.WriteError(ctx, logg, w,
		pkgerrors.New(pkgerrors.CodeRateLimit, "too many attempts, try again later"))
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return strings.TrimSpace(realIP)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
