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

// InventoryRepository implements repository.Inventory for PostgreSQL
type InventoryRepository struct {
	pool *pgxpool.Pool
}

// NewInventoryRepository creates a new InventoryRepository
func NewInventoryRepository(pool *pgxpool.Pool) repository.Inventory {
	return &InventoryRepository{pool: pool}
}

// CreateForUser inserts the inventory row for a user
func (r *InventoryRepository) CreateForUser(ctx context.Context, userID int) (*domain.Inventory, error) {
	inv := domain.Inventory{UserID: userID}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO inventories (user_id) VALUES ($1) RETURNING inventory_id`, userID).Scan(&inv.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrInventoryAlreadyExists
		}
		return nil, fmt.Errorf("failed to create inventory: %w", err)
	}
	return &inv, nil
}

// ExistsForUser reports whether an inventory row exists for the user
func (r *InventoryRepository) ExistsForUser(ctx context.Context, userID int) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM inventories WHERE user_id = $1)`, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check inventory: %w", err)
	}
	return exists, nil
}

// AddItemLink upserts the link for (user's inventory, item) inside one
// transaction. The row is locked for the read-modify-write so two
// concurrent adds for the same pair serialize on the database.
func (r *InventoryRepository) AddItemLink(ctx context.Context, userID, itemID, amount int) (*domain.Inventory, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	inv := domain.Inventory{UserID: userID}
	err = tx.QueryRow(ctx, `SELECT inventory_id FROM inventories WHERE user_id = $1`, userID).Scan(&inv.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInventoryNotFound
		}
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}

	var itemExists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM items WHERE item_id = $1)`, itemID).Scan(&itemExists); err != nil {
		return nil, fmt.Errorf("failed to check item: %w", err)
	}
	if !itemExists {
		return nil, domain.ErrItemNotFound
	}

	var current int
	err = tx.QueryRow(ctx,
		`SELECT amount FROM inventory_items WHERE inventory_id = $1 AND item_id = $2 FOR UPDATE`,
		inv.ID, itemID).Scan(&current)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		if amount < 0 {
			return nil, fmt.Errorf("%w: insufficient amount", domain.ErrInsufficientAmount)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO inventory_items (inventory_id, item_id, amount) VALUES ($1, $2, $3)`,
			inv.ID, itemID, amount); err != nil {
			return nil, fmt.Errorf("failed to insert inventory link: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to get inventory link: %w", err)
	default:
		result := current + amount
		if result < 0 {
			return nil, fmt.Errorf("%w: insufficient amount", domain.ErrInsufficientAmount)
		}
		if result == 0 {
			if _, err := tx.Exec(ctx,
				`DELETE FROM inventory_items WHERE inventory_id = $1 AND item_id = $2`, inv.ID, itemID); err != nil {
				return nil, fmt.Errorf("failed to delete inventory link: %w", err)
			}
		} else {
			if _, err := tx.Exec(ctx,
				`UPDATE inventory_items SET amount = $3 WHERE inventory_id = $1 AND item_id = $2`,
				inv.ID, itemID, result); err != nil {
				return nil, fmt.Errorf("failed to update inventory link: %w", err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &inv, nil
}

// ConsumeFromLink decrements the link for (user's inventory, item),
// deleting the row when the amount reaches exactly zero
func (r *InventoryRepository) ConsumeFromLink(ctx context.Context, userID, itemID, amount int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var inventoryID int
	err = tx.QueryRow(ctx, `SELECT inventory_id FROM inventories WHERE user_id = $1`, userID).Scan(&inventoryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrInventoryNotFound
		}
		return fmt.Errorf("failed to get inventory: %w", err)
	}

	var current int
	err = tx.QueryRow(ctx,
		`SELECT amount FROM inventory_items WHERE inventory_id = $1 AND item_id = $2 FOR UPDATE`,
		inventoryID, itemID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrItemNotOwned
		}
		return fmt.Errorf("failed to get inventory link: %w", err)
	}

	if amount > current {
		return fmt.Errorf("%w: have %d, requested %d", domain.ErrInsufficientAmount, current, amount)
	}

	remaining := current - amount
	if remaining == 0 {
		if _, err := tx.Exec(ctx,
			`DELETE FROM inventory_items WHERE inventory_id = $1 AND item_id = $2`, inventoryID, itemID); err != nil {
			return fmt.Errorf("failed to delete inventory link: %w", err)
		}
	} else {
		if _, err := tx.Exec(ctx,
			`UPDATE inventory_items SET amount = $3 WHERE inventory_id = $1 AND item_id = $2`,
			inventoryID, itemID, remaining); err != nil {
			return fmt.Errorf("failed to update inventory link: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetUserInventory builds the joined read model for a user's inventory
func (r *InventoryRepository) GetUserInventory(ctx context.Context, userID int) (*domain.InventoryResponse, error) {
	var inventoryID int
	err := r.pool.QueryRow(ctx, `SELECT inventory_id FROM inventories WHERE user_id = $1`, userID).Scan(&inventoryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInventoryNotFound
		}
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}

	items, err := r.getLinkedItems(ctx, inventoryID)
	if err != nil {
		return nil, err
	}

	return &domain.InventoryResponse{UserID: userID, Items: items}, nil
}

// GetInventoryByID is GetUserInventory keyed by inventory surrogate id
func (r *InventoryRepository) GetInventoryByID(ctx context.Context, inventoryID int) (*domain.InventoryResponse, error) {
	var userID int
	err := r.pool.QueryRow(ctx, `SELECT user_id FROM inventories WHERE inventory_id = $1`, inventoryID).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInventoryNotFound
		}
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}

	items, err := r.getLinkedItems(ctx, inventoryID)
	if err != nil {
		return nil, err
	}

	return &domain.InventoryResponse{UserID: userID, Items: items}, nil
}

// GetInventoriesContainingItem returns one response per inventory holding
// a link to the item. The (item, inventory) pair is unique by construction,
// so each inventory contributes exactly one entry.
func (r *InventoryRepository) GetInventoriesContainingItem(ctx context.Context, itemID int) ([]domain.InventoryResponse, error) {
	var itemExists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM items WHERE item_id = $1)`, itemID).Scan(&itemExists); err != nil {
		return nil, fmt.Errorf("failed to check item: %w", err)
	}
	if !itemExists {
		return nil, domain.ErrItemNotFound
	}

	rows, err := r.pool.Query(ctx,
		`SELECT inv.user_id, ii.item_id, i.item_name, i.script, i.shop_item_id, i.use_limit, i.cooldown, ii.amount
		 FROM inventory_items ii
		 JOIN inventories inv ON inv.inventory_id = ii.inventory_id
		 JOIN items i ON i.item_id = ii.item_id
		 WHERE ii.item_id = $1`, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventories containing item: %w", err)
	}
	defer rows.Close()

	var responses []domain.InventoryResponse
	for rows.Next() {
		var (
			userID int
			entry  domain.InventoryItem
		)
		if err := scanInventoryItem(rows, &userID, &entry); err != nil {
			return nil, fmt.Errorf("failed to scan inventory entry: %w", err)
		}
		responses = append(responses, domain.InventoryResponse{
			UserID: userID,
			Items:  []domain.InventoryItem{entry},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read inventories: %w", err)
	}

	return responses, nil
}

// getLinkedItems joins an inventory's links with the item catalog
func (r *InventoryRepository) getLinkedItems(ctx context.Context, inventoryID int) ([]domain.InventoryItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT ii.item_id, i.item_name, i.script, i.shop_item_id, i.use_limit, i.cooldown, ii.amount
		 FROM inventory_items ii
		 JOIN items i ON i.item_id = ii.item_id
		 WHERE ii.inventory_id = $1`, inventoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory items: %w", err)
	}
	defer rows.Close()

	items := []domain.InventoryItem{}
	for rows.Next() {
		var entry domain.InventoryItem
		var (
			script     pgtype.Text
			shopItemID pgtype.Int4
		)
		if err := rows.Scan(&entry.ItemID, &entry.Name, &script, &shopItemID, &entry.UseLimit, &entry.Cooldown, &entry.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		entry.Script = textToStr(script)
		entry.ShopItemID = int4ToPtr(shopItemID)
		items = append(items, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read inventory items: %w", err)
	}

	return items, nil
}

// scanInventoryItem scans a row of (user_id, item columns, amount)
func scanInventoryItem(row pgx.Row, userID *int, entry *domain.InventoryItem) error {
	var (
		script     pgtype.Text
		shopItemID pgtype.Int4
	)
	if err := row.Scan(userID, &entry.ItemID, &entry.Name, &script, &shopItemID, &entry.UseLimit, &entry.Cooldown, &entry.Amount); err != nil {
		return err
	}
	entry.Script = textToStr(script)
	entry.ShopItemID = int4ToPtr(shopItemID)
	return nil
}
