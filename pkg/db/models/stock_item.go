package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockItem is an inventory record plus the slice of it pulled for maintenance.
//
// LastModified intentionally has no autoUpdateTime: it marks creation and is
// left alone on edits (there is no audit trail).
type StockItem struct {
	ID                  uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title               string    `gorm:"column:title;type:varchar(140);not null"`
	Description         string    `gorm:"column:description;type:varchar(500);not null"`
	Qty                 int       `gorm:"column:qty;not null;default:0"`
	OwnerID             uuid.UUID `gorm:"column:owner_id;type:uuid;not null"`
	Owner               *User     `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	LastModified        time.Time `gorm:"column:last_modified;autoCreateTime"`
	InMaintenance       bool      `gorm:"column:in_maintenance;not null;default:false"`
	MaintenanceQuantity int       `gorm:"column:maintenance_quantity;not null;default:0"`
	MaintenanceNotes    *string   `gorm:"column:maintenance_notes"`
}

// BeforeCreate assigns an ID when the database default is unavailable
// (sqlite in tests).
func (s *StockItem) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// AvailableStock is the quantity not reserved for maintenance. Always derived,
// never stored.
func (s *StockItem) AvailableStock() int {
	return s.Qty - s.MaintenanceQuantity
}
