package requests

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ubhospitality/inventory-backend/internal/catalog"
	"github.com/ubhospitality/inventory-backend/pkg/db/models"
	"github.com/ubhospitality/inventory-backend/pkg/enums"
	pkgerrors "github.com/ubhospitality/inventory-backend/pkg/errors"
	"github.com/ubhospitality/inventory-backend/pkg/metrics"
	"github.com/ubhospitality/inventory-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service drives the quantity-change approval workflow.
type Service interface {
	ChangeQuantity(ctx context.Context, actor Actor, input ChangeQuantityInput) (*ChangeResult, error)
	Decide(ctx context.Context, actor Actor, requestID uuid.UUID, decision enums.RequestDecision) (*RequestDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*RequestDTO, error)
	List(ctx context.Context, input ListRequestsInput) (*RequestList, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
}

type service struct {
	repo        Repository
	catalogRepo *catalog.Repository
	tx          txRunner
	metrics     *metrics.WorkflowMetrics
}

// NewService builds the workflow service with its required dependencies.
// Metrics may be nil; recording becomes a no-op.
func NewService(repo Repository, catalogRepo *catalog.Repository, tx txRunner, workflowMetrics *metrics.WorkflowMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("requests repository required")
	}
	if catalogRepo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:        repo,
		catalogRepo: catalogRepo,
		tx:          tx,
		metrics:     workflowMetrics,
	}, nil
}

func (s *service) ChangeQuantity(ctx context.Context, actor Actor, input ChangeQuantityInput) (*ChangeResult, error) {
	if actor.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.ItemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id required")
	}
	if input.RequestedQuantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid quantity").
			WithDetails(map[string]string{"requested_quantity": "must be zero or positive"})
	}

	switch {
	case actor.Role.CanManageInventory():
		return s.applyDirect(ctx, input)
	case actor.Role.CanSubmitUpdateRequests():
		return s.submitPending(ctx, actor, input)
	default:
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "role cannot change inventory quantities")
	}
}

// applyDirect writes the quantity immediately without a ledger entry.
func (s *service) applyDirect(ctx context.Context, input ChangeQuantityInput) (*ChangeResult, error) {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.catalogRepo.WithTx(tx)
		if _, err := repo.FindItemByID(ctx, input.ItemID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
		}
		if err := repo.SetItemQuantity(ctx, input.ItemID, input.RequestedQuantity); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "set item quantity")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.metrics.IncSubmitted("direct")
	return &ChangeResult{Applied: true}, nil
}

// submitPending records the proposal without touching the item.
func (s *service) submitPending(ctx context.Context, actor Actor, input ChangeQuantityInput) (*ChangeResult, error) {
	if _, err := s.catalogRepo.FindItemByID(ctx, input.ItemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}

	request := &models.InventoryUpdateRequest{
		ItemID:            input.ItemID,
		RequestedQuantity: input.RequestedQuantity,
		Status:            enums.RequestStatusPending,
		SubmittedByID:     actor.UserID,
	}
	created, err := s.repo.Create(ctx, request)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create update request")
	}
	s.metrics.IncSubmitted("pending")

	dto, err := s.Get(ctx, created.ID)
	if err != nil {
		return nil, err
	}
	return &ChangeResult{Applied: false, Request: dto}, nil
}

func (s *service) Decide(ctx context.Context, actor Actor, requestID uuid.UUID, decision enums.RequestDecision) (*RequestDTO, error) {
	if actor.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if requestID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "request id required")
	}
	if !decision.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "decision must be approve or reject")
	}
	if !actor.Role.CanManageInventory() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "finalizing requests requires manager or admin role")
	}

	targetStatus := enums.RequestStatusRejected
	if decision == enums.RequestDecisionApprove {
		targetStatus = enums.RequestStatusApproved
	}

	now := time.Now().UTC()
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		request, err := repo.FindByID(ctx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "update request not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load update request")
		}
		if request.Status != enums.RequestStatusPending {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "request already finalized")
		}
		// A stored negative quantity must never reach the item row.
		if request.RequestedQuantity < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid quantity").
				WithDetails(map[string]string{"requested_quantity": "must be zero or positive"})
		}

		won, err := repo.FinalizePending(ctx, requestID, targetStatus, actor.UserID, now)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "finalize update request")
		}
		if !won {
			s.metrics.IncConflict()
			return pkgerrors.New(pkgerrors.CodeStateConflict, "request already finalized")
		}

		if targetStatus == enums.RequestStatusApproved {
			catalogRepo := s.catalogRepo.WithTx(tx)
			if err := catalogRepo.SetItemQuantity(ctx, request.ItemID, request.RequestedQuantity); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "apply approved quantity")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncDecided(decision.String())
	return s.Get(ctx, requestID)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*RequestDTO, error) {
	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "update request not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load update request")
	}
	return fromModel(request), nil
}

func (s *service) List(ctx context.Context, input ListRequestsInput) (*RequestList, error) {
	if input.Status != nil && !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter")
	}
	if _, err := pagination.ParseCursor(input.Cursor); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}

	rows, err := s.repo.List(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list update requests")
	}

	limit := pagination.NormalizeLimit(input.Limit)
	list := &RequestList{Requests: make([]RequestDTO, 0, len(rows))}
	for idx := range rows {
		if idx == limit {
			last := rows[idx-1]
			list.NextCursor = pagination.EncodeCursor(pagination.Cursor{
				CreatedAt: last.CreatedAt,
				ID:        last.ID,
			})
			break
		}
		list.Requests = append(list.Requests, *fromModel(&rows[idx]))
	}
	return list, nil
}

func (s *service) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if actor.UserID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if !actor.Role.CanManageInventory() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "deleting requests requires manager or admin role")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete update request")
	}
	return nil
}
