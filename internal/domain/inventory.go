package domain

// Inventory represents a user's inventory row. At most one exists per user.
type Inventory struct {
	ID     int `json:"inventory_id" db:"inventory_id"`
	UserID int `json:"user_id" db:"user_id"`
}

// InventoryLink is the junction row tying an item to an inventory with a
// quantity. Amount is never negative; a link whose amount reaches zero is
// deleted rather than retained.
type InventoryLink struct {
	ItemID      int `json:"item_id" db:"item_id"`
	InventoryID int `json:"inventory_id" db:"inventory_id"`
	Amount      int `json:"amount" db:"amount"`
}

// InventoryItem is one entry of an InventoryResponse: a link joined with
// its item definition.
type InventoryItem struct {
	ItemID     int    `json:"item_id"`
	Name       string `json:"name"`
	Script     string `json:"script,omitempty"`
	ShopItemID *int   `json:"shop_item_id,omitempty"`
	UseLimit   int    `json:"use_limit"`
	Cooldown   int    `json:"cooldown"`
	Amount     int    `json:"amount"`
}

// InventoryResponse is the derived read model for an inventory: the links
// joined with the item catalog. It is built per read, never persisted.
// Entry order is unspecified.
type InventoryResponse struct {
	UserID int             `json:"user_id"`
	Items  []InventoryItem `json:"items"`
}

// HasItem reports whether the inventory currently holds the given item
func (r InventoryResponse) HasItem(itemID int) bool {
	for _, it := range r.Items {
		if it.ItemID == itemID {
			return true
		}
	}
	return false
}
