package auth

import (
	"context"
	"errors"

	"github.com/stockyard-hq/stockyard-backend/internal/users"
	"github.com/stockyard-hq/stockyard-backend/pkg/db"
	"github.com/stockyard-hq/stockyard-backend/pkg/db/models"
	pkgerrors "github.com/stockyard-hq/stockyard-backend/pkg/errors"
	"github.com/stockyard-hq/stockyard-backend/pkg/security"
	"gorm.io/gorm"
)

// Register creates an active account after hashing the password. Username
// uniqueness is checked inside the creation transaction so concurrent
// registrations of the same name race on the database constraint, not on a
// read outside the transaction.
func (s *service) Register(ctx context.Context, req RegisterRequest) (*users.UserDTO, error) {
	hash, err := security.HashPassword(req.Password, s.pwCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hash,
		IsActive:     true,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		_, err := repo.FindByUsername(ctx, req.Username)
		if err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "username already taken").
				WithDetails(map[string]string{"username": "already taken"})
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return repo.Create(ctx, user)
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "username already taken").
				WithDetails(map[string]string{"username": "already taken"})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating user")
	}

	s.logg.Info(s.logg.WithField(ctx, "user_id", user.ID.String()), "user registered")
	return users.ToDTO(user), nil
}
