package requests

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ubhospitality/inventory-backend/pkg/db/models"
	"github.com/ubhospitality/inventory-backend/pkg/enums"
	"github.com/ubhospitality/inventory-backend/pkg/pagination"
)

// Repository defines persistence operations for the update-request ledger.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, request *models.InventoryUpdateRequest) (*models.InventoryUpdateRequest, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.InventoryUpdateRequest, error)
	List(ctx context.Context, input ListRequestsInput) ([]models.InventoryUpdateRequest, error)
	FinalizePending(ctx context.Context, id uuid.UUID, status enums.RequestStatus, approverID uuid.UUID, at time.Time) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a ledger repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, request *models.InventoryUpdateRequest) (*models.InventoryUpdateRequest, error) {
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		return nil, err
	}
	return request, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.InventoryUpdateRequest, error) {
	var request models.InventoryUpdateRequest
	err := r.db.WithContext(ctx).
		Preload("Item").
		Preload("SubmittedBy").
		Preload("ApprovedBy").
		First(&request, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *repository) List(ctx context.Context, input ListRequestsInput) ([]models.InventoryUpdateRequest, error) {
	query := r.db.WithContext(ctx).
		Preload("Item").
		Preload("SubmittedBy").
		Preload("ApprovedBy").
		Order("created_at DESC, id DESC")

	if input.ItemID != nil {
		query = query.Where("item_id = ?", *input.ItemID)
	}
	if input.Status != nil {
		query = query.Where("status = ?", *input.Status)
	}

	cursor, err := pagination.ParseCursor(input.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var rows []models.InventoryUpdateRequest
	if err := query.Limit(pagination.LimitWithBuffer(input.Limit)).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FinalizePending performs the compare-and-set from pending to a terminal
// status. Returns false when the row was not pending (or absent), so a
// concurrent finalization wins at most once.
func (r *repository) FinalizePending(ctx context.Context, id uuid.UUID, status enums.RequestStatus, approverID uuid.UUID, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.InventoryUpdateRequest{}).
		Where("id = ? AND status = ?", id, enums.RequestStatusPending).
		Updates(map[string]any{
			"status":         status,
			"approved_by_id": approverID,
			"approved_at":    at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.InventoryUpdateRequest{}, "id = ?", id).Error
}
