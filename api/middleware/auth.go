package middleware

import (
	"net/http"
	"strings"

	"github.com/stockyard-hq/stockyard-backend/api/responses"
	"github.com/stockyard-hq/stockyard-backend/pkg/auth"
	"github.com/stockyard-hq/stockyard-backend/pkg/auth/session"
	"github.com/stockyard-hq/stockyard-backend/pkg/config"
	pkgerrors "github.com/stockyard-hq/stockyard-backend/pkg/errors"
	"github.com/stockyard-hq/stockyard-backend/pkg/logger"
)

const bearerPrefix = "Bearer "

// Authenticated verifies the bearer JWT and its live session, then binds the
// caller identity to the request context.
func Authenticated(cfg config.JWTConfig, sessions session.AccessSessionChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := BearerToken(r)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			claims, err := auth.ParseAccessToken(cfg, tokenString)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid or expired token"))
				return
			}

			accessID := claims.ID
			if sessions != nil {
				live, err := sessions.HasSession(r.Context(), accessID)
				if err != nil {
					responses.WriteError(r.Context(), logg, w,
						pkgerrors.Wrap(pkgerrors.CodeDependency, err, "session store unavailable"))
					return
				}
				if !live {
					responses.WriteError(r.Context(), logg, w,
						pkgerrors.New(pkgerrors.CodeUnauthorized, "session revoked"))
					return
				}
			}

			ctx := WithIdentity(r.Context(), claims.UserID, claims.Username, accessID)
			if logg != nil {
				ctx = logg.WithUserID(ctx, claims.UserID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken pulls the raw token out of the Authorization header.
func BearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing authorization header")
	}
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "authorization header must use the Bearer scheme")
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if token == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing bearer token")
	}
	return token, nil
}
