package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryItem tracks a stocked product and its reorder thresholds.
type InventoryItem struct {
	ID                  uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID          uuid.UUID       `gorm:"column:category_id;type:uuid;not null;index"`
	Category            *Category       `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
	Name                string          `gorm:"column:name;not null"`
	Quantity            int             `gorm:"column:quantity;not null;default:0"`
	Price               decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	RecommendedQuantity int             `gorm:"column:recommended_quantity;not null;default:0"`
	WarningQuantity     int             `gorm:"column:warning_quantity;not null;default:0"`
	CreatedAt           time.Time       `gorm:"column:created_at;autoCreateTime"`
	LastUpdated         time.Time       `gorm:"column:last_updated;autoUpdateTime"`
}

// BelowWarning reports whether stock has dropped to the warning threshold.
func (i InventoryItem) BelowWarning() bool {
	return i.Quantity <= i.WarningQuantity
}

// BelowRecommended reports whether stock sits under the restock target.
func (i InventoryItem) BelowRecommended() bool {
	return i.Quantity < i.RecommendedQuantity
}
