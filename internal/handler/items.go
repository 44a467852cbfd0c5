package handler

import (
	"net/http"

	"github.com/osse101/gameinventory/internal/domain"
	"github.com/osse101/gameinventory/internal/item"
	"github.com/osse101/gameinventory/internal/logger"
)

type CreateItemRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
	Script      string `json:"script"`
	Kind        string `json:"kind" validate:"omitempty,oneof=consumable currency"`
	UseLimit    int    `json:"use_limit" validate:"min=0"`
	Cooldown    int    `json:"cooldown" validate:"min=0"`
	ShopItemID  *int   `json:"shop_item_id" validate:"omitempty,min=0,max=2147483647"`
}

// HandleCreateItem creates a catalog item
// @Summary Create item
// @Description Add a new item to the catalog (admin only)
// @Tags items
// @Accept json
// @Produce json
// @Param request body CreateItemRequest true "Item definition"
// @Success 201 {object} domain.Item
// @Failure 400 {object} ValidationErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /items [post]
func HandleCreateItem(svc item.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		actor, ok := CallerFromContext(w, r)
		if !ok {
			return
		}

		var req CreateItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create item"); err != nil {
			return
		}

		created, err := svc.CreateItem(r.Context(), domain.NewItem{
			Name:        req.Name,
			Description: req.Description,
			Script:      req.Script,
			Kind:        domain.ItemKind(req.Kind),
			UseLimit:    req.UseLimit,
			Cooldown:    req.Cooldown,
			ShopItemID:  req.ShopItemID,
		}, actor)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		log.Info("Item created", "item_id", created.ID, "name", created.Name)
		respondJSON(w, http.StatusCreated, created)
	}
}

// HandleGetAllItems lists the item catalog
// @Summary List items
// @Description Get all catalog items
// @Tags items
// @Produce json
// @Success 200 {array} domain.Item
// @Router /items [get]
func HandleGetAllItems(svc item.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.GetAllItems(r.Context())
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		if items == nil {
			items = []domain.Item{}
		}
		respondJSON(w, http.StatusOK, items)
	}
}

// HandleGetItem fetches a single catalog item
// @Summary Get item
// @Description Get a catalog item by id
// @Tags items
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} domain.Item
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /items/{id} [get]
func HandleGetItem(svc item.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := IDURLParam(w, r, "id")
		if !ok {
			return
		}

		found, err := svc.GetItem(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, found)
	}
}

// HandleDeleteItem deletes a catalog item
// @Summary Delete item
// @Description Delete a catalog item and all inventory links to it (admin only)
// @Tags items
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /items/{id} [delete]
func HandleDeleteItem(svc item.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		actor, ok := CallerFromContext(w, r)
		if !ok {
			return
		}
		id, ok := IDURLParam(w, r, "id")
		if !ok {
			return
		}

		if err := svc.DeleteItem(r.Context(), id, actor); err != nil {
			respondServiceError(w, r, err)
			return
		}

		log.Info("Item deleted", "item_id", id)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgItemDeletedSuccess})
	}
}
