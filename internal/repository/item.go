package repository

import (
	"context"

	"github.com/osse101/gameinventory/internal/domain"
)

// Item defines the interface for item catalog persistence
type Item interface {
	InsertItem(ctx context.Context, item domain.NewItem) (*domain.Item, error)
	GetItemByID(ctx context.Context, id int) (*domain.Item, error)
	// GetAllItems returns the full catalog. No pagination: the catalog is
	// operator-curated and small.
	GetAllItems(ctx context.Context) ([]domain.Item, error)
	// DeleteItem removes the item and cascades to all inventory links
	// referencing it. Returns domain.ErrItemNotFound if absent.
	DeleteItem(ctx context.Context, id int) error
	ExistsByName(ctx context.Context, name string) (bool, error)
	ExistsByID(ctx context.Context, id int) (bool, error)
}
