package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ubhospitality/inventory-backend/pkg/db/models"
)

// CategoryDTO is the transport shape for a category.
type CategoryDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ItemDTO is the transport shape for an inventory item.
type ItemDTO struct {
	ID                  uuid.UUID       `json:"id"`
	CategoryID          uuid.UUID       `json:"category_id"`
	CategoryName        string          `json:"category_name,omitempty"`
	Name                string          `json:"name"`
	Quantity            int             `json:"quantity"`
	Price               decimal.Decimal `json:"price"`
	RecommendedQuantity int             `json:"recommended_quantity"`
	WarningQuantity     int             `json:"warning_quantity"`
	BelowWarning        bool            `json:"below_warning"`
	CreatedAt           time.Time       `json:"created_at"`
	LastUpdated         time.Time       `json:"last_updated"`
}

// CreateCategoryInput holds the validated payload to create a category.
type CreateCategoryInput struct {
	Name        string
	Description *string
}

// UpdateCategoryInput holds optional mutation values for a category.
type UpdateCategoryInput struct {
	Name        *string
	Description *string
}

// CreateItemInput holds the validated payload to create an item.
type CreateItemInput struct {
	CategoryID          uuid.UUID
	Name                string
	Quantity            int
	Price               decimal.Decimal
	RecommendedQuantity int
	WarningQuantity     int
}

// UpdateItemInput holds optional mutation values for an item. Quantity is
// deliberately absent; stock moves only through the update-request workflow.
type UpdateItemInput struct {
	CategoryID          *uuid.UUID
	Name                *string
	Price               *decimal.Decimal
	RecommendedQuantity *int
	WarningQuantity     *int
}

// ListItemsInput carries optional filters for item listing.
type ListItemsInput struct {
	CategoryID   *uuid.UUID
	BelowWarning bool
}

func categoryFromModel(c *models.Category) *CategoryDTO {
	if c == nil {
		return nil
	}
	return &CategoryDTO{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func itemFromModel(i *models.InventoryItem) *ItemDTO {
	if i == nil {
		return nil
	}
	dto := &ItemDTO{
		ID:                  i.ID,
		CategoryID:          i.CategoryID,
		Name:                i.Name,
		Quantity:            i.Quantity,
		Price:               i.Price,
		RecommendedQuantity: i.RecommendedQuantity,
		WarningQuantity:     i.WarningQuantity,
		BelowWarning:        i.BelowWarning(),
		CreatedAt:           i.CreatedAt,
		LastUpdated:         i.LastUpdated,
	}
	if i.Category != nil {
		dto.CategoryName = i.Category.Name
	}
	return dto
}

func itemsFromModels(items []models.InventoryItem) []ItemDTO {
	out := make([]ItemDTO, 0, len(items))
	for idx := range items {
		out = append(out, *itemFromModel(&items[idx]))
	}
	return out
}

func categoriesFromModels(categories []models.Category) []CategoryDTO {
	out := make([]CategoryDTO, 0, len(categories))
	for idx := range categories {
		out = append(out, *categoryFromModel(&categories[idx]))
	}
	return out
}
