package requests

import (
	"time"

	"github.com/google/uuid"

	"github.com/ubhospitality/inventory-backend/pkg/db/models"
	"github.com/ubhospitality/inventory-backend/pkg/enums"
)

// RequestDTO is the transport shape for one ledger entry.
type RequestDTO struct {
	ID                uuid.UUID           `json:"id"`
	ItemID            uuid.UUID           `json:"item_id"`
	ItemName          string              `json:"item_name,omitempty"`
	RequestedQuantity int                 `json:"requested_quantity"`
	Status            enums.RequestStatus `json:"status"`
	SubmittedByID     uuid.UUID           `json:"submitted_by_id"`
	SubmittedByName   string              `json:"submitted_by_name,omitempty"`
	ApprovedByID      *uuid.UUID          `json:"approved_by_id,omitempty"`
	ApprovedByName    string              `json:"approved_by_name,omitempty"`
	ApprovedAt        *time.Time          `json:"approved_at,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
}

// ChangeResult reports which path a quantity change took.
type ChangeResult struct {
	Applied bool        `json:"applied"`
	Request *RequestDTO `json:"request,omitempty"`
}

// Actor identifies the authenticated caller inside the workflow.
type Actor struct {
	UserID uuid.UUID
	Role   enums.UserRole
}

// ChangeQuantityInput carries a quantity-change submission.
type ChangeQuantityInput struct {
	ItemID            uuid.UUID
	RequestedQuantity int
}

// ListRequestsInput carries optional ledger filters.
type ListRequestsInput struct {
	ItemID *uuid.UUID
	Status *enums.RequestStatus
	Limit  int
	Cursor string
}

// RequestList is one page of ledger entries ordered newest first.
type RequestList struct {
	Requests   []RequestDTO `json:"requests"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

func fromModel(r *models.InventoryUpdateRequest) *RequestDTO {
	if r == nil {
		return nil
	}
	dto := &RequestDTO{
		ID:                r.ID,
		ItemID:            r.ItemID,
		RequestedQuantity: r.RequestedQuantity,
		Status:            r.Status,
		SubmittedByID:     r.SubmittedByID,
		ApprovedByID:      r.ApprovedByID,
		ApprovedAt:        r.ApprovedAt,
		CreatedAt:         r.CreatedAt,
	}
	if r.Item != nil {
		dto.ItemName = r.Item.Name
	}
	if r.SubmittedBy != nil {
		dto.SubmittedByName = fullName(r.SubmittedBy)
	}
	if r.ApprovedBy != nil {
		dto.ApprovedByName = fullName(r.ApprovedBy)
	}
	return dto
}

func fullName(u *models.User) string {
	if u == nil {
		return ""
	}
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
