package stock

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/stockyard-hq/stockyard-backend/pkg/db/models"
	pkgerrors "github.com/stockyard-hq/stockyard-backend/pkg/errors"
	"github.com/stockyard-hq/stockyard-backend/pkg/logger"
	"gorm.io/gorm"
)

const msgMaintenanceExceedsStock = "Maintenance quantity cannot exceed available stock"

// ListScope selects which items a listing returns.
type ListScope string

const (
	ScopeActive ListScope = "active"
	ScopeAll    ListScope = "all"
)

// Service exposes the stock and maintenance operations.
type Service interface {
	List(ctx context.Context, scope ListScope) ([]StockItemDTO, error)
	ListInMaintenance(ctx context.Context) ([]StockItemDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*StockItemDTO, error)
	Create(ctx context.Context, ownerID uuid.UUID, req CreateStockItemRequest) (*StockItemDTO, error)
	UpdateDetails(ctx context.Context, id uuid.UUID, req UpdateStockDetailsRequest) (*StockItemDTO, error)
	AssignMaintenance(ctx context.Context, id uuid.UUID, req MaintenanceRequest) (*StockItemDTO, error)
	UpdateMaintenance(ctx context.Context, id uuid.UUID, req MaintenanceRequest) (*StockItemDTO, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("stock repository is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) List(ctx context.Context, scope ListScope) ([]StockItemDTO, error) {
	var (
		items []models.StockItem
		err   error
	)
	if scope == ScopeAll {
		items, err = s.repo.ListAll(ctx)
	} else {
		items, err = s.repo.ListActive(ctx)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing stock items")
	}
	return toDTOs(items), nil
}

func (s *service) ListInMaintenance(ctx context.Context) ([]StockItemDTO, error) {
	items, err := s.repo.ListInMaintenance(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing maintenance items")
	}
	return toDTOs(items), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*StockItemDTO, error) {
	item, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDTO(item), nil
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, req CreateStockItemRequest) (*StockItemDTO, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}

	item := &models.StockItem{
		Title:       req.Title,
		Description: req.Description,
		Qty:         req.Qty,
		OwnerID:     ownerID,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating stock item")
	}

	s.logg.Info(s.logg.WithField(ctx, "stock_item_id", item.ID.String()), "stock item created")
	return toDTO(item), nil
}

// UpdateDetails overwrites title, description, and qty. Owner, maintenance
// state, and last_modified are left alone.
func (s *service) UpdateDetails(ctx context.Context, id uuid.UUID, req UpdateStockDetailsRequest) (*StockItemDTO, error) {
	item, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	item.Title = req.Title
	item.Description = req.Description
	item.Qty = req.Qty

	if err := s.repo.UpdateDetails(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating stock item")
	}
	return toDTO(item), nil
}

// AssignMaintenance sets the maintenance quantity after checking it does not
// exceed the total on hand. The quantity is an overwrite, not an increment.
func (s *service) AssignMaintenance(ctx context.Context, id uuid.UUID, req MaintenanceRequest) (*StockItemDTO, error) {
	item, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.MaintenanceQuantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "maintenance quantity cannot be negative").
			WithDetails(map[string]string{"maintenance_quantity": "must be at least 0"})
	}
	if req.MaintenanceQuantity > item.Qty {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, msgMaintenanceExceedsStock).
			WithDetails(map[string]string{"maintenance_quantity": msgMaintenanceExceedsStock})
	}

	return s.applyMaintenance(ctx, item, req)
}

// UpdateMaintenance writes the maintenance fields without checking the
// quantity against the stock on hand. The detail endpoint has always behaved
// this way, unlike the assignment endpoint above.
func (s *service) UpdateMaintenance(ctx context.Context, id uuid.UUID, req MaintenanceRequest) (*StockItemDTO, error) {
	item, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.MaintenanceQuantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "maintenance quantity cannot be negative").
			WithDetails(map[string]string{"maintenance_quantity": "must be at least 0"})
	}

	return s.applyMaintenance(ctx, item, req)
}

func (s *service) applyMaintenance(ctx context.Context, item *models.StockItem, req MaintenanceRequest) (*StockItemDTO, error) {
	item.MaintenanceQuantity = req.MaintenanceQuantity
	item.MaintenanceNotes = req.MaintenanceNotes
	item.InMaintenance = req.MaintenanceQuantity > 0

	if err := s.repo.UpdateMaintenance(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating maintenance state")
	}
	return toDTO(item), nil
}

func (s *service) find(ctx context.Context, id uuid.UUID) (*models.StockItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "stock item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading stock item")
	}
	return item, nil
}
