package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ubhospitality/inventory-backend/api/responses"
	"github.com/ubhospitality/inventory-backend/api/validators"
	"github.com/ubhospitality/inventory-backend/internal/catalog"
	pkgerrors "github.com/ubhospitality/inventory-backend/pkg/errors"
	"github.com/ubhospitality/inventory-backend/pkg/logger"
)

type createItemRequest struct {
	CategoryID          uuid.UUID       `json:"category_id" validate:"required"`
	Name                string          `json:"name" validate:"required"`
	Quantity            int             `json:"quantity" validate:"omitempty,min=0"`
	Price               decimal.Decimal `json:"price"`
	RecommendedQuantity int             `json:"recommended_quantity" validate:"omitempty,min=0"`
	WarningQuantity     int             `json:"warning_quantity" validate:"omitempty,min=0"`
}

type updateItemRequest struct {
	CategoryID          *uuid.UUID       `json:"category_id,omitempty"`
	Name                *string          `json:"name,omitempty"`
	Price               *decimal.Decimal `json:"price,omitempty"`
	RecommendedQuantity *int             `json:"recommended_quantity,omitempty"`
	WarningQuantity     *int             `json:"warning_quantity,omitempty"`
}

// CreateItem handles item creation for manager roles.
func CreateItem(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var body createItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateItem(r.Context(), actorRole(r), catalog.CreateItemInput{
			CategoryID:          body.CategoryID,
			Name:                body.Name,
			Quantity:            body.Quantity,
			Price:               body.Price,
			RecommendedQuantity: body.RecommendedQuantity,
			WarningQuantity:     body.WarningQuantity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// GetItem returns one item by id.
func GetItem(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "itemID"), "item_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.GetItem(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, item)
	}
}

// ListItems returns items with optional category and low-stock filters.
func ListItems(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		categoryID, err := validators.ParseQueryUUID(r, "category_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.ListItems(r.Context(), catalog.ListItemsInput{
			CategoryID:   categoryID,
			BelowWarning: validators.ParseQueryBool(r, "below_warning"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"items": items})
	}
}

// UpdateItem applies a partial update to an item. Quantity never moves here.
func UpdateItem(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "itemID"), "item_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.UpdateItem(r.Context(), actorRole(r), id, catalog.UpdateItemInput{
			CategoryID:          body.CategoryID,
			Name:                body.Name,
			Price:               body.Price,
			RecommendedQuantity: body.RecommendedQuantity,
			WarningQuantity:     body.WarningQuantity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// DeleteItem removes an item.
func DeleteItem(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "itemID"), "item_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteItem(r.Context(), actorRole(r), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
