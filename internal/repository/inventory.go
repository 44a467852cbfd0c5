package repository

import (
	"context"

	"github.com/osse101/gameinventory/internal/domain"
)

// Inventory defines the interface for inventory persistence.
//
// AddItemLink and ConsumeFromLink are deliberately separate operations:
// add takes a non-negative delta and upserts the link, consume takes a
// positive amount and decrements a link that must already exist. Both run
// their row lookups and writes inside a single transaction so an inventory
// can never gain a dangling link to a half-validated item.
type Inventory interface {
	// CreateForUser inserts the inventory row for userID. Returns
	// domain.ErrInventoryAlreadyExists if one exists (the unique constraint
	// backs up the service-level existence check).
	CreateForUser(ctx context.Context, userID int) (*domain.Inventory, error)

	// AddItemLink increments the link for (inventory of userID, itemID) by
	// amount, inserting the link if absent. The inventory must already
	// exist; the item is verified and domain.ErrItemNotFound returned if
	// absent. A delta that would drive the amount negative fails with
	// domain.ErrInsufficientAmount.
	AddItemLink(ctx context.Context, userID, itemID, amount int) (*domain.Inventory, error)

	// GetUserInventory joins the user's links with the item catalog.
	// Returns domain.ErrInventoryNotFound if the user has no inventory.
	GetUserInventory(ctx context.Context, userID int) (*domain.InventoryResponse, error)

	// GetInventoryByID is GetUserInventory keyed by inventory surrogate id.
	GetInventoryByID(ctx context.Context, inventoryID int) (*domain.InventoryResponse, error)

	// GetInventoriesContainingItem returns one response per inventory
	// holding a link to the item. Returns domain.ErrItemNotFound if the
	// item itself does not exist.
	GetInventoriesContainingItem(ctx context.Context, itemID int) ([]domain.InventoryResponse, error)

	// ConsumeFromLink decrements the link for (inventory of userID, itemID)
	// by amount and deletes the row when the result is exactly zero.
	// Returns domain.ErrInsufficientAmount when amount exceeds the current
	// holding, domain.ErrItemNotOwned when no link exists.
	ConsumeFromLink(ctx context.Context, userID, itemID, amount int) error

	ExistsForUser(ctx context.Context, userID int) (bool, error)
}
