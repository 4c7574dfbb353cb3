package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stockyard-hq/stockyard-backend/internal/users"
	pkgauth "github.com/stockyard-hq/stockyard-backend/pkg/auth"
	"github.com/stockyard-hq/stockyard-backend/pkg/auth/session"
	"github.com/stockyard-hq/stockyard-backend/pkg/config"
	pkgerrors "github.com/stockyard-hq/stockyard-backend/pkg/errors"
	"github.com/stockyard-hq/stockyard-backend/pkg/logger"
	"github.com/stockyard-hq/stockyard-backend/pkg/security"
	"gorm.io/gorm"
)

// One public failure message for unknown users, wrong passwords, and
// deactivated accounts so responses do not leak which one it was.
const msgInvalidCredentials = "invalid credentials"

// SessionStore is the session lifecycle surface the service needs.
type SessionStore interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Revoke(ctx context.Context, accessID string) error
}

// Service handles credential checks and session lifecycle.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, rawToken string) error
	Register(ctx context.Context, req RegisterRequest) (*users.UserDTO, error)
}

type service struct {
	repo     users.Repository
	sessions SessionStore
	tx       users.TxRunner
	jwtCfg   config.JWTConfig
	pwCfg    config.PasswordConfig
	logg     *logger.Logger
	now      func() time.Time
}

func NewService(
	repo users.Repository,
	sessions SessionStore,
	tx users.TxRunner,
	jwtCfg config.JWTConfig,
	pwCfg config.PasswordConfig,
	logg *logger.Logger,
) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository is required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{
		repo:     repo,
		sessions: sessions,
		tx:       tx,
		jwtCfg:   jwtCfg,
		pwCfg:    pwCfg,
		logg:     logg,
		now:      time.Now,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, msgInvalidCredentials)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading user")
	}

	match, err := security.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil || !match {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, msgInvalidCredentials)
	}

	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, msgInvalidCredentials)
	}

	now := s.now()
	accessID := session.NewAccessID()

	token, err := pkgauth.MintAccessToken(s.jwtCfg, now, pkgauth.AccessTokenPayload{
		UserID:   user.ID,
		Username: user.Username,
		JTI:      accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting access token")
	}

	if _, err := s.sessions.Generate(ctx, accessID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storing session")
	}

	if err := s.repo.RecordLogin(ctx, user.ID, now); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "user_id", user.ID.String()), "failed to record login time")
	} else {
		loginAt := now
		user.LastLoginAt = &loginAt
	}

	s.logg.Info(s.logg.WithField(ctx, "user_id", user.ID.String()), "user logged in")

	return &LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   s.jwtCfg.ExpirationMinutes * 60,
		User:        *users.ToDTO(user),
	}, nil
}

// Logout revokes the session behind the presented token. Expired tokens are
// still parsed so a stale client can always end its session.
func (s *service) Logout(ctx context.Context, rawToken string) error {
	claims, err := pkgauth.ParseAccessTokenAllowExpired(s.jwtCfg, rawToken)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token")
	}

	if err := s.sessions.Revoke(ctx, claims.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoking session")
	}

	s.logg.Info(s.logg.WithField(ctx, "user_id", claims.UserID.String()), "user logged out")
	return nil
}
