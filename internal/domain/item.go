package domain

// ItemKind classifies how the game engine treats an item
type ItemKind string

const (
	KindConsumable ItemKind = "consumable"
	KindCurrency   ItemKind = "currency"
)

// Valid reports whether the kind is one of the known values
func (k ItemKind) Valid() bool {
	return k == KindConsumable || k == KindCurrency
}

// Item represents a catalog item definition.
// Script is opaque behavioral metadata interpreted by the game engine,
// never by this service.
type Item struct {
	ID          int      `json:"item_id" db:"item_id"`
	Name        string   `json:"name" db:"item_name"`
	Description string   `json:"description,omitempty" db:"item_description"`
	Script      string   `json:"script,omitempty" db:"script"`
	Kind        ItemKind `json:"kind" db:"kind"`
	UseLimit    int      `json:"use_limit" db:"use_limit"`
	Cooldown    int      `json:"cooldown" db:"cooldown"`
	ShopItemID  *int     `json:"shop_item_id,omitempty" db:"shop_item_id"` // Nullable: reference into the external shop system
}

// NewItem holds the caller-supplied fields for item creation.
// The ID is always server-assigned.
type NewItem struct {
	Name        string
	Description string
	Script      string
	Kind        ItemKind
	UseLimit    int
	Cooldown    int
	ShopItemID  *int
}

// DefaultUseLimit is applied when a new item does not specify one
const DefaultUseLimit = 1
