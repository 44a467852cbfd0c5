package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/gameinventory/internal/domain"
	"github.com/osse101/gameinventory/internal/repository"
)

// ItemRepository implements repository.Item for PostgreSQL
type ItemRepository struct {
	pool *pgxpool.Pool
}

// NewItemRepository creates a new ItemRepository
func NewItemRepository(pool *pgxpool.Pool) repository.Item {
	return &ItemRepository{pool: pool}
}

const itemColumns = "item_id, item_name, item_description, script, kind, use_limit, cooldown, shop_item_id"

func scanItem(row pgx.Row) (*domain.Item, error) {
	var (
		item        domain.Item
		description pgtype.Text
		script      pgtype.Text
		shopItemID  pgtype.Int4
	)
	if err := row.Scan(&item.ID, &item.Name, &description, &script, &item.Kind, &item.UseLimit, &item.Cooldown, &shopItemID); err != nil {
		return nil, err
	}
	item.Description = textToStr(description)
	item.Script = textToStr(script)
	item.ShopItemID = int4ToPtr(shopItemID)
	return &item, nil
}

// InsertItem inserts a new item into the catalog and returns it with its
// server-assigned id
func (r *ItemRepository) InsertItem(ctx context.Context, in domain.NewItem) (*domain.Item, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO items (item_name, item_description, script, kind, use_limit, cooldown, shop_item_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+itemColumns,
		in.Name, strToText(in.Description), strToText(in.Script), in.Kind, in.UseLimit, in.Cooldown, ptrToInt4(in.ShopItemID))

	item, err := scanItem(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrItemAlreadyExists
		}
		return nil, fmt.Errorf("failed to insert item: %w", err)
	}

	return item, nil
}

// GetItemByID retrieves an item by ID
func (r *ItemRepository) GetItemByID(ctx context.Context, id int) (*domain.Item, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE item_id = $1`, id)

	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return item, nil
}

// GetAllItems retrieves all items from the catalog
func (r *ItemRepository) GetAllItems(ctx context.Context) ([]domain.Item, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+itemColumns+` FROM items ORDER BY item_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to get all items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read items: %w", err)
	}

	return items, nil
}

// DeleteItem deletes an item by ID. Inventory links referencing it are
// removed by the ON DELETE CASCADE on inventory_items.
func (r *ItemRepository) DeleteItem(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM items WHERE item_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// ExistsByName reports whether an item with the given name exists
func (r *ItemRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM items WHERE item_name = $1)`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check item name: %w", err)
	}
	return exists, nil
}

// ExistsByID reports whether an item with the given id exists
func (r *ItemRepository) ExistsByID(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM items WHERE item_id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check item: %w", err)
	}
	return exists, nil
}
