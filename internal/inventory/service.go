package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/gameinventory/internal/cache"
	"github.com/osse101/gameinventory/internal/domain"
	"github.com/osse101/gameinventory/internal/logger"
	"github.com/osse101/gameinventory/internal/metrics"
	"github.com/osse101/gameinventory/internal/repository"
)

// ItemToInventory describes an admin request to grant an item to a user
type ItemToInventory struct {
	UserID int
	ItemID int
	Amount int
}

// UseItemRequest describes a user consuming items from their own inventory
type UseItemRequest struct {
	ItemID int
	Amount int
}

// ItemChecker is the slice of the item service the inventory service needs
type ItemChecker interface {
	CheckItemExists(ctx context.Context, id int) error
}

// Service defines the interface for inventory operations
type Service interface {
	// CreateInventory provisions an inventory for the calling user. Any
	// authenticated user may create their own inventory; catalog and
	// cross-user mutations stay admin-gated.
	CreateInventory(ctx context.Context, user domain.UserInfo) (*domain.Inventory, error)
	AddToInventory(ctx context.Context, req ItemToInventory, actor domain.UserInfo) error
	GetUserInventory(ctx context.Context, userID int) (*domain.InventoryResponse, error)
	UseItem(ctx context.Context, req UseItemRequest, user domain.UserInfo) error
	GetAllWithItem(ctx context.Context, itemID int, actor domain.UserInfo) ([]domain.InventoryResponse, error)
	CheckInventoryExists(ctx context.Context, userID int) error
}

// CheckUserIsAdmin fails with domain.ErrNotAdmin for non-admin users.
// Pure guard, no side effects.
func CheckUserIsAdmin(u domain.UserInfo) error {
	if !u.IsAdmin() {
		return domain.ErrNotAdmin
	}
	return nil
}

// service implements the Service interface
type service struct {
	repo     repository.Inventory
	items    ItemChecker
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewService creates a new inventory service
func NewService(repo repository.Inventory, items ItemChecker, c cache.Cache, cacheTTL time.Duration) Service {
	return &service{
		repo:     repo,
		items:    items,
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

// CreateInventory provisions the user's inventory. At most one inventory
// exists per user; the unique constraint backs up the existence check for
// concurrent calls.
func (s *service) CreateInventory(ctx context.Context, user domain.UserInfo) (*domain.Inventory, error) {
	log := logger.FromContext(ctx)

	exists, err := s.repo.ExistsForUser(ctx, user.UserID)
	if err != nil {
		log.Error("Failed to check inventory", "error", err, "user_id", user.UserID)
		return nil, fmt.Errorf("%w: %v", domain.ErrDatabase, err)
	}
	if exists {
		return nil, domain.ErrInventoryAlreadyExists
	}

	inv, err := s.repo.CreateForUser(ctx, user.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrInventoryAlreadyExists) {
			return nil, err
		}
		log.Error("Failed to create inventory", "error", err, "user_id", user.UserID)
		return nil, fmt.Errorf("%w: %v", domain.ErrDatabase, err)
	}

	metrics.InventoriesCreated.Inc()
	log.Info("Inventory created", "inventory_id", inv.ID, "user_id", user.UserID)
	return inv, nil
}

// AddToInventory grants items to a user's inventory. Admin only. The cache
// entry is evicted before the write so a concurrent reader never observes
// a value staler than the mutation about to happen.
func (s *service) AddToInventory(ctx context.Context, req ItemToInventory, actor domain.UserInfo) error {
	log := logger.FromContext(ctx)

	if err := CheckUserIsAdmin(actor); err != nil {
		return err
	}
	if req.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}

	cache.Evict(ctx, s.cache, inventoryCacheKey(req.UserID))

	if err := s.items.CheckItemExists(ctx, req.ItemID); err != nil {
		return err
	}
	if err := s.CheckInventoryExists(ctx, req.UserID); err != nil {
		return err
	}

	if _, err := s.repo.AddItemLink(ctx, req.UserID, req.ItemID, req.Amount); err != nil {
		if isDomainError(err) {
			return err
		}
		log.Error("Failed to add item to inventory", "error", err,
			"user_id", req.UserID, "item_id", req.ItemID, "amount", req.Amount)
		return fmt.Errorf("%w: %v", domain.ErrDatabase, err)
	}

	metrics.InventoryItemsAdded.Inc()
	log.Info("Item added to inventory", "user_id", req.UserID, "item_id", req.ItemID, "amount", req.Amount)
	return nil
}

// GetUserInventory returns the joined inventory read model, cache-first
func (s *service) GetUserInventory(ctx context.Context, userID int) (*domain.InventoryResponse, error) {
	return cache.GetOrLoad(ctx, s.cache, inventoryCacheKey(userID), s.cacheTTL,
		func(ctx context.Context) (*domain.InventoryResponse, error) {
			if err := s.CheckInventoryExists(ctx, userID); err != nil {
				return nil, err
			}
			resp, err := s.repo.GetUserInventory(ctx, userID)
			if err != nil {
				if isDomainError(err) {
					return nil, err
				}
				logger.FromContext(ctx).Error("Failed to get inventory", "error", err, "user_id", userID)
				return nil, fmt.Errorf("%w: %v", domain.ErrDatabase, err)
			}
			return resp, nil
		})
}

// UseItem consumes items from the caller's own inventory. Holding the item
// at all and holding enough of it are distinct failures: the first is
// domain.ErrItemNotOwned, the second domain.ErrInsufficientAmount from the
// store.
func (s *service) UseItem(ctx context.Context, req UseItemRequest, user domain.UserInfo) error {
	log := logger.FromContext(ctx)

	if req.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}

	if err := s.CheckInventoryExists(ctx, user.UserID); err != nil {
		return err
	}
	if err := s.items.CheckItemExists(ctx, req.ItemID); err != nil {
		return err
	}

	inv, err := s.GetUserInventory(ctx, user.UserID)
	if err != nil {
		return err
	}
	if !inv.HasItem(req.ItemID) {
		return domain.ErrItemNotOwned
	}

	if err := s.repo.ConsumeFromLink(ctx, user.UserID, req.ItemID, req.Amount); err != nil {
		if isDomainError(err) {
			return err
		}
		log.Error("Failed to consume item", "error", err,
			"user_id", user.UserID, "item_id", req.ItemID, "amount", req.Amount)
		return fmt.Errorf("%w: %v", domain.ErrDatabase, err)
	}

	cache.Evict(ctx, s.cache, inventoryCacheKey(user.UserID))

	metrics.ItemsUsed.Inc()
	log.Info("Item used", "user_id", user.UserID, "item_id", req.ItemID, "amount", req.Amount)
	return nil
}

// GetAllWithItem reports every inventory holding the given item. Admin
// reporting query, served straight from the store.
func (s *service) GetAllWithItem(ctx context.Context, itemID int, actor domain.UserInfo) ([]domain.InventoryResponse, error) {
	if err := CheckUserIsAdmin(actor); err != nil {
		return nil, err
	}

	responses, err := s.repo.GetInventoriesContainingItem(ctx, itemID)
	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		logger.FromContext(ctx).Error("Failed to get inventories containing item", "error", err, "item_id", itemID)
		return nil, fmt.Errorf("%w: %v", domain.ErrDatabase, err)
	}
	return responses, nil
}

// CheckInventoryExists fails with domain.ErrInventoryNotFound when the
// user has no inventory. Callers invoke this before operating on a
// possibly-nonexistent inventory instead of relying on store errors.
func (s *service) CheckInventoryExists(ctx context.Context, userID int) error {
	exists, err := s.repo.ExistsForUser(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to check inventory", "error", err, "user_id", userID)
		return fmt.Errorf("%w: %v", domain.ErrDatabase, err)
	}
	if !exists {
		return domain.ErrInventoryNotFound
	}
	return nil
}

// isDomainError reports whether err is one of the typed domain errors that
// must pass through to the caller unwrapped
func isDomainError(err error) bool {
	return errors.Is(err, domain.ErrItemNotFound) ||
		errors.Is(err, domain.ErrInventoryNotFound) ||
		errors.Is(err, domain.ErrInventoryAlreadyExists) ||
		errors.Is(err, domain.ErrItemNotOwned) ||
		errors.Is(err, domain.ErrInsufficientAmount)
}
