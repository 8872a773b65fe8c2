package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ubhospitality/inventory-backend/pkg/db"
	"github.com/ubhospitality/inventory-backend/pkg/db/models"
	"github.com/ubhospitality/inventory-backend/pkg/enums"
	pkgerrors "github.com/ubhospitality/inventory-backend/pkg/errors"
)

// Service exposes category and item management operations.
type Service interface {
	CreateCategory(ctx context.Context, actorRole enums.UserRole, input CreateCategoryInput) (*CategoryDTO, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*CategoryDTO, error)
	ListCategories(ctx context.Context) ([]CategoryDTO, error)
	UpdateCategory(ctx context.Context, actorRole enums.UserRole, id uuid.UUID, input UpdateCategoryInput) (*CategoryDTO, error)
	DeleteCategory(ctx context.Context, actorRole enums.UserRole, id uuid.UUID) error

	CreateItem(ctx context.Context, actorRole enums.UserRole, input CreateItemInput) (*ItemDTO, error)
	GetItem(ctx context.Context, id uuid.UUID) (*ItemDTO, error)
	ListItems(ctx context.Context, input ListItemsInput) ([]ItemDTO, error)
	UpdateItem(ctx context.Context, actorRole enums.UserRole, id uuid.UUID, input UpdateItemInput) (*ItemDTO, error)
	DeleteItem(ctx context.Context, actorRole enums.UserRole, id uuid.UUID) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo *Repository
	tx   txRunner
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func requireManager(role enums.UserRole) error {
	if !role.CanManageInventory() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "inventory management requires manager or admin role")
	}
	return nil
}

func (s *service) CreateCategory(ctx context.Context, actorRole enums.UserRole, input CreateCategoryInput) (*CategoryDTO, error) {
	if err := requireManager(actorRole); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category").
			WithDetails(map[string]string{"name": "name is required"})
	}

	category := &models.Category{Name: name, Description: input.Description}
	created, err := s.repo.CreateCategory(ctx, category)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category name already exists").
				WithDetails(map[string]string{"name": "a category with this name already exists"})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	return categoryFromModel(created), nil
}

func (s *service) GetCategory(ctx context.Context, id uuid.UUID) (*CategoryDTO, error) {
	category, err := s.repo.FindCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	return categoryFromModel(category), nil
}

func (s *service) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return categoriesFromModels(categories), nil
}

func (s *service) UpdateCategory(ctx context.Context, actorRole enums.UserRole, id uuid.UUID, input UpdateCategoryInput) (*CategoryDTO, error) {
	if err := requireManager(actorRole); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category").
				WithDetails(map[string]string{"name": "name cannot be blank"})
		}
		updates["name"] = name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}

	if _, err := s.GetCategory(ctx, id); err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := s.repo.UpdateCategory(ctx, id, updates); err != nil {
			if db.IsUniqueViolation(err, "") {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "category name already exists")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update category")
		}
	}
	return s.GetCategory(ctx, id)
}

func (s *service) DeleteCategory(ctx context.Context, actorRole enums.UserRole, id uuid.UUID) error {
	if err := requireManager(actorRole); err != nil {
		return err
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.FindCategoryByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
		}
		count, err := repo.CountItemsInCategory(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count category items")
		}
		if count > 0 {
			return pkgerrors.New(pkgerrors.CodeConflict, "category still has items").
				WithDetails(map[string]any{"item_count": count})
		}
		if err := repo.DeleteCategory(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category")
		}
		return nil
	})
}

func validateItemThresholds(recommended, warning int) map[string]string {
	details := map[string]string{}
	if recommended < 0 {
		details["recommended_quantity"] = "must be zero or positive"
	}
	if warning < 0 {
		details["warning_quantity"] = "must be zero or positive"
	}
	if warning > recommended && recommended >= 0 && warning >= 0 {
		details["warning_quantity"] = "cannot exceed recommended_quantity"
	}
	return details
}

func (s *service) CreateItem(ctx context.Context, actorRole enums.UserRole, input CreateItemInput) (*ItemDTO, error) {
	if err := requireManager(actorRole); err != nil {
		return nil, err
	}

	details := map[string]string{}
	if strings.TrimSpace(input.Name) == "" {
		details["name"] = "name is required"
	}
	if input.Quantity < 0 {
		details["quantity"] = "must be zero or positive"
	}
	if input.Price.IsNegative() {
		details["price"] = "must be zero or positive"
	}
	for field, msg := range validateItemThresholds(input.RecommendedQuantity, input.WarningQuantity) {
		details[field] = msg
	}
	if len(details) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid item").WithDetails(details)
	}

	if _, err := s.GetCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	item := &models.InventoryItem{
		CategoryID:          input.CategoryID,
		Name:                strings.TrimSpace(input.Name),
		Quantity:            input.Quantity,
		Price:               input.Price,
		RecommendedQuantity: input.RecommendedQuantity,
		WarningQuantity:     input.WarningQuantity,
	}
	created, err := s.repo.CreateItem(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create item")
	}
	return s.GetItem(ctx, created.ID)
}

func (s *service) GetItem(ctx context.Context, id uuid.UUID) (*ItemDTO, error) {
	item, err := s.repo.FindItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}
	return itemFromModel(item), nil
}

func (s *service) ListItems(ctx context.Context, input ListItemsInput) ([]ItemDTO, error) {
	if input.CategoryID != nil {
		if _, err := s.GetCategory(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
	}
	items, err := s.repo.ListItems(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list items")
	}
	return itemsFromModels(items), nil
}

func (s *service) UpdateItem(ctx context.Context, actorRole enums.UserRole, id uuid.UUID, input UpdateItemInput) (*ItemDTO, error) {
	if err := requireManager(actorRole); err != nil {
		return nil, err
	}

	item, err := s.repo.FindItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}

	details := map[string]string{}
	updates := map[string]any{}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			details["name"] = "name cannot be blank"
		} else {
			updates["name"] = name
		}
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			details["price"] = "must be zero or positive"
		} else {
			updates["price"] = *input.Price
		}
	}

	recommended := item.RecommendedQuantity
	warning := item.WarningQuantity
	if input.RecommendedQuantity != nil {
		recommended = *input.RecommendedQuantity
		updates["recommended_quantity"] = recommended
	}
	if input.WarningQuantity != nil {
		warning = *input.WarningQuantity
		updates["warning_quantity"] = warning
	}
	for field, msg := range validateItemThresholds(recommended, warning) {
		details[field] = msg
	}

	if input.CategoryID != nil {
		if _, err := s.GetCategory(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
		updates["category_id"] = *input.CategoryID
	}

	if len(details) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid item").WithDetails(details)
	}

	if len(updates) > 0 {
		if err := s.repo.UpdateItem(ctx, id, updates); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update item")
		}
	}
	return s.GetItem(ctx, id)
}

func (s *service) DeleteItem(ctx context.Context, actorRole enums.UserRole, id uuid.UUID) error {
	if err := requireManager(actorRole); err != nil {
		return err
	}
	if _, err := s.GetItem(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteItem(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete item")
	}
	return nil
}
