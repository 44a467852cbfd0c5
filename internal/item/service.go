package item

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/osse101/gameinventory/internal/cache"
	"github.com/osse101/gameinventory/internal/domain"
	"github.com/osse101/gameinventory/internal/logger"
	"github.com/osse101/gameinventory/internal/metrics"
	"github.com/osse101/gameinventory/internal/repository"
)

// Publisher is the catalog-update event sink. Publication is
// fire-and-forget: the catalog write and the event are not transactionally
// linked, so a lost event is an accepted inconsistency window.
type Publisher interface {
	PublishItemCreated(ctx context.Context, item domain.Item) error
}

// Service defines the interface for item catalog operations
type Service interface {
	CreateItem(ctx context.Context, in domain.NewItem, actor domain.UserInfo) (*domain.Item, error)
	GetAllItems(ctx context.Context) ([]domain.Item, error)
	GetItem(ctx context.Context, id int) (*domain.Item, error)
	CheckItemExists(ctx context.Context, id int) error
	DeleteItem(ctx context.Context, id int, actor domain.UserInfo) error
}

// service implements the Service interface
type service struct {
	repo      repository.Item
	cache     cache.Cache
	cacheTTL  time.Duration
	publisher Publisher
}

// NewService creates a new item service
func NewService(repo repository.Item, c cache.Cache, cacheTTL time.Duration, publisher Publisher) Service {
	return &service{
		repo:      repo,
		cache:     c,
		cacheTTL:  cacheTTL,
		publisher: publisher,
	}
}

// CreateItem adds a new item to the catalog. Admin only; names are
// globally unique.
func (s *service) CreateItem(ctx context.Context, in domain.NewItem, actor domain.UserInfo) (*domain.Item, error) {
	log := logger.FromContext(ctx)

	if !actor.IsAdmin() {
		return nil, domain.ErrNotAdmin
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: item name is required", domain.ErrInvalidInput)
	}
	if in.Kind == "" {
		in.Kind = domain.KindConsumable
	}
	if !in.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown item kind %q", domain.ErrInvalidInput, in.Kind)
	}
	if in.UseLimit == 0 {
		in.UseLimit = domain.DefaultUseLimit
	}
	// shop_item_id is stored as INTEGER; reject values the column cannot hold
	if in.ShopItemID != nil && (*in.ShopItemID < 0 || int64(*in.ShopItemID) > math.MaxInt32) {
		return nil, fmt.Errorf("%w: shop_item_id out of range", domain.ErrInvalidInput)
	}

	exists, err := s.repo.ExistsByName(ctx, in.Name)
	if err != nil {
		log.Error("Failed to check item name", "error", err, "name", in.Name)
		return nil, fmt.Errorf("%w: %v", domain.ErrDatabase, err)
	}
	if exists {
		return nil, domain.ErrItemAlreadyExists
	}

	// Evict before write so a concurrent list read never outlives the insert
	cache.Evict(ctx, s.cache, ItemsListCacheKey)

	created, err := s.repo.InsertItem(ctx, in)
	if err != nil {
		// The unique constraint can still fire if a concurrent create won
		// the race between the exists check and the insert
		if errors.Is(err, domain.ErrItemAlreadyExists) {
			return nil, err
		}
		log.Error("Failed to insert item", "error", err, "name", in.Name)
		return nil, fmt.Errorf("%w: %v", domain.ErrDatabase, err)
	}

	metrics.ItemsCreated.Inc()
	log.Info("Item created", "item_id", created.ID, "name", created.Name)

	if err := s.publisher.PublishItemCreated(ctx, *created); err != nil {
		// The item is committed; a missed event is logged, not rolled back
		log.Warn("Failed to publish item created event", "error", err, "item_id", created.ID)
	}

	return created, nil
}

// GetAllItems returns the full catalog, cache-first
func (s *service) GetAllItems(ctx context.Context) ([]domain.Item, error) {
	items, err := cache.GetOrLoad(ctx, s.cache, ItemsListCacheKey, s.cacheTTL,
		func(ctx context.Context) ([]domain.Item, error) {
			return s.repo.GetAllItems(ctx)
		})
	if err != nil {
		logger.FromContext(ctx).Error("Failed to get all items", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrDatabase, err)
	}
	return items, nil
}

// GetItem returns a single item by id, cache-first
func (s *service) GetItem(ctx context.Context, id int) (*domain.Item, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: item id must be positive", domain.ErrInvalidInput)
	}

	item, err := cache.GetOrLoad(ctx, s.cache, itemCacheKey(id), s.cacheTTL,
		func(ctx context.Context) (*domain.Item, error) {
			return s.repo.GetItemByID(ctx, id)
		})
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return nil, err
		}
		logger.FromContext(ctx).Error("Failed to get item", "error", err, "item_id", id)
		return nil, fmt.Errorf("%w: %v", domain.ErrDatabase, err)
	}
	return item, nil
}

// CheckItemExists fails with domain.ErrItemNotFound when the item is absent
func (s *service) CheckItemExists(ctx context.Context, id int) error {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to check item", "error", err, "item_id", id)
		return fmt.Errorf("%w: %v", domain.ErrDatabase, err)
	}
	if !exists {
		return domain.ErrItemNotFound
	}
	return nil
}

// DeleteItem removes an item from the catalog, cascading to all inventory
// links referencing it. Admin only.
func (s *service) DeleteItem(ctx context.Context, id int, actor domain.UserInfo) error {
	log := logger.FromContext(ctx)

	if id <= 0 {
		return fmt.Errorf("%w: item id must be positive", domain.ErrInvalidInput)
	}
	if !actor.IsAdmin() {
		return domain.ErrNotAdmin
	}

	if err := s.CheckItemExists(ctx, id); err != nil {
		return err
	}

	cache.Evict(ctx, s.cache, itemCacheKey(id))
	cache.Evict(ctx, s.cache, ItemsListCacheKey)

	if err := s.repo.DeleteItem(ctx, id); err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return err
		}
		log.Error("Failed to delete item", "error", err, "item_id", id)
		return fmt.Errorf("%w: %v", domain.ErrDatabase, err)
	}

	metrics.ItemsDeleted.Inc()
	log.Info("Item deleted", "item_id", id)
	return nil
}
