package handler

import (
	"net/http"

	"github.com/osse101/gameinventory/internal/domain"
	"github.com/osse101/gameinventory/internal/inventory"
	"github.com/osse101/gameinventory/internal/logger"
)

type AddToInventoryRequest struct {
	UserID int `json:"user_id" validate:"required,gt=0"`
	ItemID int `json:"item_id" validate:"required,gt=0"`
	Amount int `json:"amount" validate:"required,min=1,max=10000"`
}

type UseItemRequest struct {
	ItemID int `json:"item_id" validate:"required,gt=0"`
	Amount int `json:"amount" validate:"required,min=1,max=10000"`
}

// HandleCreateInventory provisions an inventory for the calling user
// @Summary Create inventory
// @Description Create the calling user's inventory (one per user)
// @Tags inventory
// @Produce json
// @Success 201 {object} domain.Inventory
// @Failure 409 {object} ErrorResponse
// @Router /inventory [post]
func HandleCreateInventory(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		user, ok := CallerFromContext(w, r)
		if !ok {
			return
		}

		inv, err := svc.CreateInventory(r.Context(), user)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		log.Info("Inventory created", "user_id", user.UserID, "inventory_id", inv.ID)
		respondJSON(w, http.StatusCreated, inv)
	}
}

// HandleGetInventory returns the calling user's inventory
// @Summary Get inventory
// @Description Get the calling user's inventory with item details
// @Tags inventory
// @Produce json
// @Success 200 {object} domain.InventoryResponse
// @Failure 404 {object} ErrorResponse
// @Router /inventory [get]
func HandleGetInventory(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := CallerFromContext(w, r)
		if !ok {
			return
		}

		resp, err := svc.GetUserInventory(r.Context(), user.UserID)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, resp)
	}
}

// HandleAddToInventory grants items to a user's inventory
// @Summary Add item to inventory
// @Description Add an item to a user's inventory (admin only)
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body AddToInventoryRequest true "Grant details"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /inventory/items [post]
func HandleAddToInventory(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		actor, ok := CallerFromContext(w, r)
		if !ok {
			return
		}

		var req AddToInventoryRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Add to inventory"); err != nil {
			return
		}

		err := svc.AddToInventory(r.Context(), inventory.ItemToInventory{
			UserID: req.UserID,
			ItemID: req.ItemID,
			Amount: req.Amount,
		}, actor)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		log.Info("Item added to inventory", "user_id", req.UserID, "item_id", req.ItemID, "amount", req.Amount)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgItemAddedSuccess})
	}
}

// HandleUseItem consumes items from the calling user's inventory
// @Summary Use item
// @Description Consume an amount of an item from the calling user's inventory
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body UseItemRequest true "Usage details"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /inventory/use [post]
func HandleUseItem(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		user, ok := CallerFromContext(w, r)
		if !ok {
			return
		}

		var req UseItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Use item"); err != nil {
			return
		}

		err := svc.UseItem(r.Context(), inventory.UseItemRequest{
			ItemID: req.ItemID,
			Amount: req.Amount,
		}, user)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		log.Info("Item used", "user_id", user.UserID, "item_id", req.ItemID, "amount", req.Amount)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgItemUsedSuccess})
	}
}

// HandleGetInventoriesWithItem lists every inventory holding an item
// @Summary Inventories containing item
// @Description List all inventories holding a given item (admin reporting)
// @Tags inventory
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {array} domain.InventoryResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /items/{id}/inventories [get]
func HandleGetInventoriesWithItem(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := CallerFromContext(w, r)
		if !ok {
			return
		}
		id, ok := IDURLParam(w, r, "id")
		if !ok {
			return
		}

		responses, err := svc.GetAllWithItem(r.Context(), id, actor)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		if responses == nil {
			responses = []domain.InventoryResponse{}
		}
		respondJSON(w, http.StatusOK, responses)
	}
}
