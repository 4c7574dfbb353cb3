package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/stockyard-hq/stockyard-backend/internal/stock"
	"github.com/stockyard-hq/stockyard-backend/pkg/db/models"
	pkgerrors "github.com/stockyard-hq/stockyard-backend/pkg/errors"
	"github.com/stockyard-hq/stockyard-backend/pkg/logger"
	"gorm.io/gorm"
)

// TxRunner runs fn inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes the account management operations.
type Service interface {
	Profile(ctx context.Context, id uuid.UUID) (*UserDTO, error)
	List(ctx context.Context) ([]UserDTO, error)
	SetActive(ctx context.Context, id uuid.UUID, req EditUserRequest) (*UserDTO, error)
	Delete(ctx context.Context, id uuid.UUID, req DeleteUserRequest) error
}

type service struct {
	repo      Repository
	stockRepo stock.Repository
	tx        TxRunner
	logg      *logger.Logger
}

func NewService(repo Repository, stockRepo stock.Repository, tx TxRunner, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository is required")
	}
	if stockRepo == nil {
		return nil, fmt.Errorf("stock repository is required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{repo: repo, stockRepo: stockRepo, tx: tx, logg: logg}, nil
}

func (s *service) Profile(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToDTO(user), nil
}

func (s *service) List(ctx context.Context) ([]UserDTO, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing users")
	}
	return toDTOs(list), nil
}

// SetActive flips the account flag. Only the literal string "true" activates;
// every other value deactivates.
func (s *service) SetActive(ctx context.Context, id uuid.UUID, req EditUserRequest) (*UserDTO, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	active := req.IsActive == "true"
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating user active flag")
	}

	user.IsActive = active
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"target_user_id": id.String(),
		"is_active":      active,
	}), "user active flag updated")
	return ToDTO(user), nil
}

// Delete removes the account and every stock item it owns in one transaction.
// The caller must send confirm=true; anything else leaves the account alone.
func (s *service) Delete(ctx context.Context, id uuid.UUID, req DeleteUserRequest) error {
	if !req.Confirm {
		return pkgerrors.New(pkgerrors.CodeValidation, "deletion requires confirmation").
			WithDetails(map[string]string{"confirm": "must be true to delete the account"})
	}

	if _, err := s.find(ctx, id); err != nil {
		return err
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.stockRepo.WithTx(tx).DeleteByOwner(ctx, id); err != nil {
			return err
		}
		return s.repo.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting user")
	}

	s.logg.Info(s.logg.WithField(ctx, "target_user_id", id.String()), "user deleted")
	return nil
}

func (s *service) find(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading user")
	}
	return user, nil
}
