package controllers

import (
	"net/http"

	"github.com/stockyard-hq/stockyard-backend/api/middleware"
	"github.com/stockyard-hq/stockyard-backend/api/responses"
	"github.com/stockyard-hq/stockyard-backend/api/validators"
	"github.com/stockyard-hq/stockyard-backend/internal/auth"
	"github.com/stockyard-hq/stockyard-backend/internal/users"
	pkgerrors "github.com/stockyard-hq/stockyard-backend/pkg/errors"
	"github.com/stockyard-hq/stockyard-backend/pkg/logger"
)

const tokenHeader = "X-SY-Token"

// LoginForm describes the credential fields for clients probing the endpoint.
func LoginForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{
			"fields": map[string]string{
				"username": "required",
				"password": "required",
			},
		})
	}
}

// Authenticate checks credentials and returns a fresh access token. The token
// is mirrored into the X-SY-Token header for clients that read headers only.
func Authenticate(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set(tokenHeader, result.AccessToken)
		responses.WriteSuccess(w, result)
	}
}

// ShowUser returns the profile behind the current session.
func ShowUser(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}

		profile, err := svc.Profile(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

// Logout revokes the presented token's session. The route sits outside the
// session-checking middleware so expired tokens can still log out.
func Logout(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawToken, err := middleware.BearerToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Logout(r.Context(), rawToken); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": "logged out"})
	}
}
