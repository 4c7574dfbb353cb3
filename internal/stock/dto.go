package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/stockyard-hq/stockyard-backend/pkg/db/models"
)

type CreateStockItemRequest struct {
	Title       string `json:"title" validate:"required,max=140"`
	Description string `json:"description" validate:"required,max=500"`
	Qty         int    `json:"qty" validate:"min=0"`
}

type UpdateStockDetailsRequest struct {
	Title       string `json:"title" validate:"required,max=140"`
	Description string `json:"description" validate:"required,max=500"`
	Qty         int    `json:"qty" validate:"min=0"`
}

// MaintenanceRequest is shared by both maintenance entry points.
type MaintenanceRequest struct {
	MaintenanceQuantity int     `json:"maintenance_quantity" validate:"min=0"`
	MaintenanceNotes    *string `json:"maintenance_notes" validate:"omitempty,max=500"`
}

type StockItemDTO struct {
	ID                  uuid.UUID `json:"id"`
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	Qty                 int       `json:"qty"`
	OwnerID             uuid.UUID `json:"owner_id"`
	LastModified        time.Time `json:"last_modified"`
	InMaintenance       bool      `json:"in_maintenance"`
	MaintenanceQuantity int       `json:"maintenance_quantity"`
	MaintenanceNotes    *string   `json:"maintenance_notes,omitempty"`
	AvailableStock      int       `json:"available_stock"`
}

func toDTO(item *models.StockItem) *StockItemDTO {
	if item == nil {
		return nil
	}
	return &StockItemDTO{
		ID:                  item.ID,
		Title:               item.Title,
		Description:         item.Description,
		Qty:                 item.Qty,
		OwnerID:             item.OwnerID,
		LastModified:        item.LastModified,
		InMaintenance:       item.InMaintenance,
		MaintenanceQuantity: item.MaintenanceQuantity,
		MaintenanceNotes:    item.MaintenanceNotes,
		AvailableStock:      item.AvailableStock(),
	}
}

func toDTOs(items []models.StockItem) []StockItemDTO {
	dtos := make([]StockItemDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, *toDTO(&items[i]))
	}
	return dtos
}
