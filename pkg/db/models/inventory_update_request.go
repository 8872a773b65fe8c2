package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ubhospitality/inventory-backend/pkg/enums"
)

// InventoryUpdateRequest is one entry in the quantity-change ledger. A
// pending row proposes a new absolute quantity; a final row records the
// reviewer and outcome.
type InventoryUpdateRequest struct {
	ID                uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ItemID            uuid.UUID           `gorm:"column:item_id;type:uuid;not null;index"`
	Item              *InventoryItem      `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	RequestedQuantity int                 `gorm:"column:requested_quantity;not null"`
	Status            enums.RequestStatus `gorm:"column:status;not null;default:pending;index"`
	SubmittedByID     uuid.UUID           `gorm:"column:submitted_by_id;type:uuid;not null;index"`
	SubmittedBy       *User               `gorm:"foreignKey:SubmittedByID;constraint:OnDelete:CASCADE"`
	ApprovedByID      *uuid.UUID          `gorm:"column:approved_by_id;type:uuid"`
	ApprovedBy        *User               `gorm:"foreignKey:ApprovedByID;constraint:OnDelete:SET NULL"`
	ApprovedAt        *time.Time          `gorm:"column:approved_at"`
	CreatedAt         time.Time           `gorm:"column:created_at;autoCreateTime;index"`
}

// IsFinal reports whether the request can no longer be decided.
func (r InventoryUpdateRequest) IsFinal() bool {
	return r.Status.IsFinal()
}
