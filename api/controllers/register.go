package controllers

import (
	"net/http"

	"github.com/stockyard-hq/stockyard-backend/api/responses"
	"github.com/stockyard-hq/stockyard-backend/api/validators"
	"github.com/stockyard-hq/stockyard-backend/internal/auth"
	"github.com/stockyard-hq/stockyard-backend/pkg/logger"
)

// RegisterForm describes the registration fields.
func RegisterForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{
			"fields": map[string]string{
				"username":         "required, max 150 characters",
				"first_name":       "required",
				"last_name":        "required",
				"email":            "required, valid email",
				"password":         "required, min 8 characters",
				"password_confirm": "required, must match password",
			},
		})
	}
}

func Register(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req auth.RegisterRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Register(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, user)
	}
}
