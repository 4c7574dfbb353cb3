package stock

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockyard-hq/stockyard-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists stock items.
type Repository interface {
	ListAll(ctx context.Context) ([]models.StockItem, error)
	ListActive(ctx context.Context) ([]models.StockItem, error)
	ListInMaintenance(ctx context.Context) ([]models.StockItem, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.StockItem, error)
	Create(ctx context.Context, item *models.StockItem) error
	UpdateDetails(ctx context.Context, item *models.StockItem) error
	UpdateMaintenance(ctx context.Context, item *models.StockItem) error
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error
	WithTx(tx *gorm.DB) Repository
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) WithTx(tx *gorm.DB) Repository {
	return &gormRepository{db: tx}
}

func (r *gormRepository) ListAll(ctx context.Context) ([]models.StockItem, error) {
	var items []models.StockItem
	err := r.db.WithContext(ctx).
		Order("title ASC").
		Find(&items).Error
	return items, err
}

func (r *gormRepository) ListActive(ctx context.Context) ([]models.StockItem, error) {
	var items []models.StockItem
	err := r.db.WithContext(ctx).
		Where("in_maintenance = ?", false).
		Order("title ASC").
		Find(&items).Error
	return items, err
}

func (r *gormRepository) ListInMaintenance(ctx context.Context) ([]models.StockItem, error) {
	var items []models.StockItem
	err := r.db.WithContext(ctx).
		Where("in_maintenance = ?", true).
		Order("title ASC").
		Find(&items).Error
	return items, err
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.StockItem, error) {
	var item models.StockItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *gormRepository) Create(ctx context.Context, item *models.StockItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// UpdateDetails writes only the editable detail columns. last_modified keeps
// its creation value.
func (r *gormRepository) UpdateDetails(ctx context.Context, item *models.StockItem) error {
	return r.db.WithContext(ctx).
		Model(&models.StockItem{}).
		Where("id = ?", item.ID).
		Select("title", "description", "qty").
		Updates(map[string]any{
			"title":       item.Title,
			"description": item.Description,
			"qty":         item.Qty,
		}).Error
}

func (r *gormRepository) UpdateMaintenance(ctx context.Context, item *models.StockItem) error {
	return r.db.WithContext(ctx).
		Model(&models.StockItem{}).
		Where("id = ?", item.ID).
		Select("maintenance_quantity", "maintenance_notes", "in_maintenance").
		Updates(map[string]any{
			"maintenance_quantity": item.MaintenanceQuantity,
			"maintenance_notes":    item.MaintenanceNotes,
			"in_maintenance":       item.InMaintenance,
		}).Error
}

func (r *gormRepository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Delete(&models.StockItem{}).Error
}
